package caching

import (
	"fmt"
	"strings"

	"shopcore/internal/models"
)

const keyPrefix = "shopcore"

// ProductPageKey builds the cache key for a product listing. Every filter
// parameter participates so two requests share a key only when they would
// produce the same page. The query term is lowercased to match the
// case-insensitive name search.
func ProductPageKey(filter *models.ProductFilter) string {
	category := ""
	if filter.CategoryID != nil {
		category = filter.CategoryID.String()
	}
	brand := ""
	if filter.BrandID != nil {
		brand = filter.BrandID.String()
	}
	return fmt.Sprintf("%s:products:q=%s:cat=%s:brand=%s:sort=%s:limit=%d:offset=%d",
		keyPrefix, strings.ToLower(filter.Query), category, brand, filter.Sort, filter.Limit, filter.Offset)
}

func productKey(productID string) string {
	return fmt.Sprintf("%s:product:%s", keyPrefix, productID)
}

func productsPattern() string {
	return keyPrefix + ":products:*"
}
