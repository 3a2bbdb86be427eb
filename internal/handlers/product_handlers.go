package handlers

import (
	"net/http"
	"strconv"

	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var allowedSorts = map[string]bool{
	models.SortPriceAsc:    true,
	models.SortPriceDesc:   true,
	models.SortCreatedAsc:  true,
	models.SortCreatedDesc: true,
}

type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return common.SendError(c, err)
	}

	body, err := h.productService.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	product, err := h.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// GetProductImages handles GET /products/:id/images
func (h *ProductHandlers) GetProductImages(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	images, err := h.productService.GetProductImages(c.Request().Context(), id)
	if err != nil {
		return common.SendError(c, err)
	}
	if images == nil {
		images = []*models.ProductImage{}
	}
	return c.JSON(http.StatusOK, images)
}

func parseProductFilter(c echo.Context) (*models.ProductFilter, error) {
	filter := &models.ProductFilter{Query: c.QueryParam("q")}

	if v := c.QueryParam("category_id"); v != "" {
		id, err := common.ValidateUUID(v, "category_id")
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &id
	}
	if v := c.QueryParam("brand_id"); v != "" {
		id, err := common.ValidateUUID(v, "brand_id")
		if err != nil {
			return nil, err
		}
		filter.BrandID = &id
	}

	sort, err := common.NormalizeSort(c.QueryParam("sort"), allowedSorts, models.SortCreatedDesc)
	if err != nil {
		return nil, err
	}
	filter.Sort = sort

	limit, offset, err := parsePagination(c)
	if err != nil {
		return nil, err
	}
	filter.Limit = limit
	filter.Offset = offset
	return filter, nil
}

func parsePagination(c echo.Context) (int, int, error) {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, common.ValidationError("limit must be an integer")
		}
		limit = n
	}
	offset := 0
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, common.ValidationError("offset must be an integer")
		}
		offset = n
	}
	return common.ValidatePagination(limit, offset)
}

// parseOptionalUUID is shared by admin filters that accept an id query param.
func parseOptionalUUID(c echo.Context, name string) (*uuid.UUID, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	id, err := common.ValidateUUID(v, name)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
