package handlers

import (
	"net/http"

	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/services"

	"github.com/labstack/echo/v4"
)

// AdminCatalogHandlers exposes the superuser-only catalog management routes.
type AdminCatalogHandlers struct {
	catalogService services.CatalogService
	mediaService   services.MediaService
}

func NewAdminCatalogHandlers(catalogService services.CatalogService, mediaService services.MediaService) *AdminCatalogHandlers {
	return &AdminCatalogHandlers{
		catalogService: catalogService,
		mediaService:   mediaService,
	}
}

// --- Brands ---

// CreateBrand handles POST /admin/brands
func (h *AdminCatalogHandlers) CreateBrand(c echo.Context) error {
	var brand models.Brand
	if err := c.Bind(&brand); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := h.catalogService.CreateBrand(c.Request().Context(), &brand); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand handles PATCH /admin/brands/:id
func (h *AdminCatalogHandlers) UpdateBrand(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var patch models.BrandPatch
	if err := c.Bind(&patch); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	brand, err := h.catalogService.UpdateBrand(c.Request().Context(), id, &patch)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand handles DELETE /admin/brands/:id
func (h *AdminCatalogHandlers) DeleteBrand(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.catalogService.DeleteBrand(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListBrands handles GET /admin/brands
func (h *AdminCatalogHandlers) ListBrands(c echo.Context) error {
	limit, offset, err := parsePagination(c)
	if err != nil {
		return common.SendError(c, err)
	}
	brands, err := h.catalogService.ListBrands(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	if brands == nil {
		brands = []*models.Brand{}
	}
	return c.JSON(http.StatusOK, brands)
}

// --- Categories ---

// CreateCategory handles POST /admin/categories
func (h *AdminCatalogHandlers) CreateCategory(c echo.Context) error {
	var category models.Category
	if err := c.Bind(&category); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := h.catalogService.CreateCategory(c.Request().Context(), &category); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PATCH /admin/categories/:id
func (h *AdminCatalogHandlers) UpdateCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var patch models.CategoryPatch
	if err := c.Bind(&patch); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	category, err := h.catalogService.UpdateCategory(c.Request().Context(), id, &patch)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *AdminCatalogHandlers) DeleteCategory(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.catalogService.DeleteCategory(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCategories handles GET /admin/categories
func (h *AdminCatalogHandlers) ListCategories(c echo.Context) error {
	limit, offset, err := parsePagination(c)
	if err != nil {
		return common.SendError(c, err)
	}
	categories, err := h.catalogService.ListCategories(c.Request().Context(), limit, offset)
	if err != nil {
		return common.SendError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// --- Products ---

// CreateProduct handles POST /admin/products
func (h *AdminCatalogHandlers) CreateProduct(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	if err := h.catalogService.CreateProduct(c.Request().Context(), &product); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PATCH /admin/products/:id
func (h *AdminCatalogHandlers) UpdateProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var patch models.ProductPatch
	if err := c.Bind(&patch); err != nil {
		return common.SendClientError(c, "invalid request format")
	}
	product, err := h.catalogService.UpdateProduct(c.Request().Context(), id, &patch)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminCatalogHandlers) DeleteProduct(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	if err := h.catalogService.DeleteProduct(c.Request().Context(), id); err != nil {
		return common.SendError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Images ---

// AddProductImage handles POST /admin/products/:id/images
func (h *AdminCatalogHandlers) AddProductImage(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req struct {
		URL       string `json:"url"`
		IsPrimary bool   `json:"is_primary"`
		Position  int    `json:"position"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	image := &models.ProductImage{
		ProductID: productID,
		URL:       req.URL,
		IsPrimary: req.IsPrimary,
		Position:  req.Position,
	}
	if err := h.catalogService.AddProductImage(c.Request().Context(), image); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

// UploadProductImage handles POST /admin/products/:id/images/upload. The
// multipart file lands in object storage and the resulting URL is stored
// like any other image row.
func (h *AdminCatalogHandlers) UploadProductImage(c echo.Context) error {
	ctx := c.Request().Context()
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return common.SendClientError(c, "cannot read uploaded file")
	}
	defer file.Close()

	url, err := h.mediaService.UploadImage(ctx, productID, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		return common.SendError(c, err)
	}

	image := &models.ProductImage{
		ProductID: productID,
		URL:       url,
		IsPrimary: c.FormValue("is_primary") == "true",
	}
	if err := h.catalogService.AddProductImage(ctx, image); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, image)
}

// --- Inventory ---

// UpsertInventory handles PATCH /admin/products/:id/inventory
func (h *AdminCatalogHandlers) UpsertInventory(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	var req struct {
		Qty            int  `json:"qty"`
		TrackInventory bool `json:"track_inventory"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	inventory := &models.Inventory{
		ProductID:      productID,
		Qty:            req.Qty,
		TrackInventory: req.TrackInventory,
	}
	if err := h.catalogService.UpsertInventory(c.Request().Context(), inventory); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, inventory)
}

// GetInventory handles GET /admin/products/:id/inventory
func (h *AdminCatalogHandlers) GetInventory(c echo.Context) error {
	productID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}
	inventory, err := h.catalogService.GetInventory(c.Request().Context(), productID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, inventory)
}
