package common

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	SuperuserKey contextKey = "is_superuser"
)

// WithUser stores the authenticated caller's identity in the request context.
func WithUser(ctx context.Context, userID uuid.UUID, superuser bool) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, SuperuserKey, superuser)
}

// GetUserIDFromContext extracts the authenticated user ID from the request context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// IsSuperuserFromContext reports whether the caller is a superuser.
func IsSuperuserFromContext(ctx context.Context) bool {
	superuser, ok := ctx.Value(SuperuserKey).(bool)
	return ok && superuser
}
