package models

import "github.com/google/uuid"

type Brand struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
	Slug string    `json:"slug" db:"slug"`
}

// BrandPatch carries only the fields explicitly present in a merge-patch request.
type BrandPatch struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
}
