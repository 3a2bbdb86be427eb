package common

import (
	"strings"

	"github.com/google/uuid"
)

// ValidateUUID parses an id path/query parameter.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, ValidationError("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, ValidationError("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError("%s is required", fieldName)
	}
	return nil
}

// ValidatePagination clamps limit/offset to the listing bounds.
func ValidatePagination(limit, offset int) (int, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	if offset > 1000000 {
		return 0, 0, ValidationError("offset cannot exceed 1,000,000")
	}
	return limit, offset, nil
}

// NormalizeSort validates a listing sort parameter against the allowed set.
func NormalizeSort(sort string, allowed map[string]bool, def string) (string, error) {
	if sort == "" {
		return def, nil
	}
	sort = strings.ToLower(strings.TrimSpace(sort))
	if !allowed[sort] {
		return "", ValidationError("unsupported sort value %q", sort)
	}
	return sort, nil
}
