package models

import "github.com/google/uuid"

type Category struct {
	ID       uuid.UUID  `json:"id" db:"id"`
	Name     string     `json:"name" db:"name"`
	Slug     string     `json:"slug" db:"slug"`
	ParentID *uuid.UUID `json:"parent_id" db:"parent_id"`
}

// CategoryPatch carries only the fields explicitly present in a merge-patch request.
type CategoryPatch struct {
	Name     *string    `json:"name,omitempty"`
	Slug     *string    `json:"slug,omitempty"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}
