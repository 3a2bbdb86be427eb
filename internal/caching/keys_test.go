package caching

import (
	"strings"
	"testing"

	"shopcore/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProductPageKey_Deterministic(t *testing.T) {
	categoryID := uuid.New()
	a := &models.ProductFilter{Query: "espresso", CategoryID: &categoryID, Sort: models.SortPriceAsc, Limit: 20, Offset: 40}
	b := &models.ProductFilter{Query: "espresso", CategoryID: &categoryID, Sort: models.SortPriceAsc, Limit: 20, Offset: 40}

	assert.Equal(t, ProductPageKey(a), ProductPageKey(b))
}

func TestProductPageKey_EveryParameterChangesKey(t *testing.T) {
	base := &models.ProductFilter{Sort: models.SortCreatedDesc, Limit: 20, Offset: 0}
	baseKey := ProductPageKey(base)

	categoryID := uuid.New()
	brandID := uuid.New()
	variants := []*models.ProductFilter{
		{Query: "espresso", Sort: models.SortCreatedDesc, Limit: 20, Offset: 0},
		{CategoryID: &categoryID, Sort: models.SortCreatedDesc, Limit: 20, Offset: 0},
		{BrandID: &brandID, Sort: models.SortCreatedDesc, Limit: 20, Offset: 0},
		{Sort: models.SortPriceAsc, Limit: 20, Offset: 0},
		{Sort: models.SortCreatedDesc, Limit: 50, Offset: 0},
		{Sort: models.SortCreatedDesc, Limit: 20, Offset: 20},
	}
	for _, v := range variants {
		assert.NotEqual(t, baseKey, ProductPageKey(v))
	}
}

func TestProductPageKey_QueryIsCaseInsensitive(t *testing.T) {
	a := ProductPageKey(&models.ProductFilter{Query: "Espresso", Sort: models.SortCreatedDesc, Limit: 20, Offset: 0})
	b := ProductPageKey(&models.ProductFilter{Query: "espresso", Sort: models.SortCreatedDesc, Limit: 20, Offset: 0})

	// The search itself is case-insensitive, so both requests produce the
	// same page and must share one cache entry.
	assert.Equal(t, a, b)
}

func TestProductPageKey_MatchesInvalidationPattern(t *testing.T) {
	key := ProductPageKey(&models.ProductFilter{Sort: models.SortCreatedDesc, Limit: 20, Offset: 0})
	assert.True(t, strings.HasPrefix(key, "shopcore:products:"))
}
