package models

import (
	"time"

	"github.com/google/uuid"
)

// Inventory is keyed by product. Untracked rows mean unlimited availability;
// tracked rows are checked and decremented at order time.
type Inventory struct {
	ProductID      uuid.UUID `json:"product_id" db:"product_id"`
	Qty            int       `json:"qty" db:"qty"`
	TrackInventory bool      `json:"track_inventory" db:"track_inventory"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
