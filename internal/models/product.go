package models

import (
	"time"

	"github.com/google/uuid"
)

// Product listing sort orders accepted by the public catalog endpoint.
const (
	SortPriceAsc    = "price_asc"
	SortPriceDesc   = "price_desc"
	SortCreatedAsc  = "created_asc"
	SortCreatedDesc = "created_desc"
)

type Product struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	SKU        string     `json:"sku" db:"sku"`
	Name       string     `json:"name" db:"name"`
	Slug       string     `json:"slug" db:"slug"`
	BrandID    *uuid.UUID `json:"brand_id" db:"brand_id"`
	CategoryID *uuid.UUID `json:"category_id" db:"category_id"`
	PriceCents int64      `json:"price_cents" db:"price_cents"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// ProductFilter holds filter, sort and pagination criteria for the public listing.
type ProductFilter struct {
	Query      string     `json:"query,omitempty"`       // Case-insensitive name substring
	CategoryID *uuid.UUID `json:"category_id,omitempty"` // Filter by category
	BrandID    *uuid.UUID `json:"brand_id,omitempty"`    // Filter by brand
	Sort       string     `json:"sort,omitempty"`        // price_asc, price_desc, created_asc, created_desc
	Limit      int        `json:"limit,omitempty"`       // Page size (default 20, max 100)
	Offset     int        `json:"offset,omitempty"`      // Page offset
}

// ProductPatch carries only the fields explicitly present in a merge-patch request.
type ProductPatch struct {
	SKU        *string    `json:"sku,omitempty"`
	Name       *string    `json:"name,omitempty"`
	Slug       *string    `json:"slug,omitempty"`
	BrandID    *uuid.UUID `json:"brand_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	PriceCents *int64     `json:"price_cents,omitempty"`
	IsActive   *bool      `json:"is_active,omitempty"`
}

// ProductPage is the paginated listing payload. Cached verbatim, so the shape
// must stay identical between cache hits and misses.
type ProductPage struct {
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Items  []*Product `json:"items"`
}
