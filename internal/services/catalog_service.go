package services

import (
	"context"
	"log"
	"strings"

	"shopcore/internal/caching"
	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/repositories"

	"github.com/google/uuid"
)

// CatalogService covers the admin side of the catalog: brands, categories,
// products, images and stock levels. Every mutation invalidates the product
// cache since listings embed data from all of these.
type CatalogService interface {
	CreateBrand(ctx context.Context, brand *models.Brand) error
	UpdateBrand(ctx context.Context, id uuid.UUID, patch *models.BrandPatch) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id uuid.UUID) error
	ListBrands(ctx context.Context, limit, offset int) ([]*models.Brand, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uuid.UUID, patch *models.CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error)

	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, patch *models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AddProductImage demotes the existing primary in the same transaction
	// when the new image is primary, keeping at most one primary per product.
	AddProductImage(ctx context.Context, image *models.ProductImage) error

	UpsertInventory(ctx context.Context, inventory *models.Inventory) error
	GetInventory(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
}

type catalogService struct {
	db               repositories.DB
	brandRepo        repositories.BrandRepository
	categoryRepo     repositories.CategoryRepository
	productRepo      repositories.ProductRepository
	productImageRepo repositories.ProductImageRepository
	inventoryRepo    repositories.InventoryRepository
	cacheService     caching.CacheService
}

func NewCatalogService(db repositories.DB, brandRepo repositories.BrandRepository, categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, productImageRepo repositories.ProductImageRepository, inventoryRepo repositories.InventoryRepository, cacheService caching.CacheService) CatalogService {
	return &catalogService{
		db:               db,
		brandRepo:        brandRepo,
		categoryRepo:     categoryRepo,
		productRepo:      productRepo,
		productImageRepo: productImageRepo,
		inventoryRepo:    inventoryRepo,
		cacheService:     cacheService,
	}
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cacheService.InvalidateProducts(ctx); err != nil {
		log.Printf("WARN: product cache invalidation failed: %v", err)
	}
}

// invalidateProduct additionally drops the cached detail of the mutated
// product; listing pages alone go through invalidate.
func (s *catalogService) invalidateProduct(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteProduct(ctx, id); err != nil {
		log.Printf("WARN: product detail cache delete failed: %v", err)
	}
	s.invalidate(ctx)
}

// --- Brands ---

func (s *catalogService) CreateBrand(ctx context.Context, brand *models.Brand) error {
	if err := common.ValidateRequiredString(brand.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(brand.Slug, "slug"); err != nil {
		return err
	}
	brand.ID = uuid.New()
	brand.Slug = strings.ToLower(brand.Slug)
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.ConflictError("brand slug %q already exists", brand.Slug)
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) UpdateBrand(ctx context.Context, id uuid.UUID, patch *models.BrandPatch) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, common.NotFoundError("brand %s not found", id)
	}
	if patch.Name != nil {
		brand.Name = *patch.Name
	}
	if patch.Slug != nil {
		brand.Slug = strings.ToLower(*patch.Slug)
	}
	if err := s.brandRepo.Update(ctx, brand); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.ConflictError("brand slug %q already exists", brand.Slug)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return brand, nil
}

func (s *catalogService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.brandRepo.Delete(ctx, id)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.WrapError(common.KindConflict, err, "brand %s is referenced by products", id)
		}
		return err
	}
	if !deleted {
		return common.NotFoundError("brand %s not found", id)
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListBrands(ctx context.Context, limit, offset int) ([]*models.Brand, error) {
	return s.brandRepo.List(ctx, limit, offset)
}

// --- Categories ---

func (s *catalogService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := common.ValidateRequiredString(category.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(category.Slug, "slug"); err != nil {
		return err
	}
	if category.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *category.ParentID)
		if err != nil {
			return err
		}
		if parent == nil {
			return common.ValidationError("parent category %s not found", *category.ParentID)
		}
	}
	category.ID = uuid.New()
	category.Slug = strings.ToLower(category.Slug)
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.ConflictError("category slug %q already exists", category.Slug)
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, patch *models.CategoryPatch) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, common.NotFoundError("category %s not found", id)
	}
	if patch.Name != nil {
		category.Name = *patch.Name
	}
	if patch.Slug != nil {
		category.Slug = strings.ToLower(*patch.Slug)
	}
	if patch.ParentID != nil {
		if *patch.ParentID == id {
			return nil, common.ValidationError("category cannot be its own parent")
		}
		category.ParentID = patch.ParentID
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.ConflictError("category slug %q already exists", category.Slug)
		}
		return nil, err
	}
	s.invalidate(ctx)
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.WrapError(common.KindConflict, err, "category %s is referenced by products or subcategories", id)
		}
		return err
	}
	if !deleted {
		return common.NotFoundError("category %s not found", id)
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context, limit, offset int) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx, limit, offset)
}

// --- Products ---

func (s *catalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := common.ValidateRequiredString(product.SKU, "sku"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(product.Slug, "slug"); err != nil {
		return err
	}
	if product.PriceCents < 0 {
		return common.ValidationError("price_cents cannot be negative")
	}
	if err := s.checkProductRefs(ctx, product.BrandID, product.CategoryID); err != nil {
		return err
	}
	product.ID = uuid.New()
	product.Slug = strings.ToLower(product.Slug)
	if err := s.productRepo.Create(ctx, product); err != nil {
		if repositories.IsUniqueViolation(err) {
			return common.ConflictError("product sku or slug already exists")
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, patch *models.ProductPatch) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, common.NotFoundError("product %s not found", id)
	}
	if patch.SKU != nil {
		product.SKU = *patch.SKU
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Slug != nil {
		product.Slug = strings.ToLower(*patch.Slug)
	}
	if patch.BrandID != nil {
		product.BrandID = patch.BrandID
	}
	if patch.CategoryID != nil {
		product.CategoryID = patch.CategoryID
	}
	if patch.PriceCents != nil {
		if *patch.PriceCents < 0 {
			return nil, common.ValidationError("price_cents cannot be negative")
		}
		product.PriceCents = *patch.PriceCents
	}
	if patch.IsActive != nil {
		product.IsActive = *patch.IsActive
	}
	if err := s.checkProductRefs(ctx, product.BrandID, product.CategoryID); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, common.ConflictError("product sku or slug already exists")
		}
		return nil, err
	}
	s.invalidateProduct(ctx, id)
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		if repositories.IsForeignKeyViolation(err) {
			return common.WrapError(common.KindConflict, err, "product %s is referenced by orders", id)
		}
		return err
	}
	if !deleted {
		return common.NotFoundError("product %s not found", id)
	}
	s.invalidateProduct(ctx, id)
	return nil
}

func (s *catalogService) checkProductRefs(ctx context.Context, brandID, categoryID *uuid.UUID) error {
	if brandID != nil {
		brand, err := s.brandRepo.GetByID(ctx, *brandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return common.ValidationError("brand %s not found", *brandID)
		}
	}
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return common.ValidationError("category %s not found", *categoryID)
		}
	}
	return nil
}

// --- Images ---

func (s *catalogService) AddProductImage(ctx context.Context, image *models.ProductImage) error {
	if err := common.ValidateRequiredString(image.URL, "url"); err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(ctx, image.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return common.NotFoundError("product %s not found", image.ProductID)
	}

	image.ID = uuid.New()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if image.IsPrimary {
		if err := s.productImageRepo.DemotePrimary(ctx, tx, image.ProductID); err != nil {
			return err
		}
	}
	if err := s.productImageRepo.Create(ctx, tx, image); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// --- Inventory ---

func (s *catalogService) UpsertInventory(ctx context.Context, inventory *models.Inventory) error {
	if inventory.Qty < 0 {
		return common.ValidationError("qty cannot be negative")
	}
	product, err := s.productRepo.GetByID(ctx, inventory.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return common.NotFoundError("product %s not found", inventory.ProductID)
	}
	if err := s.inventoryRepo.Upsert(ctx, inventory); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) GetInventory(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	inventory, err := s.inventoryRepo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if inventory == nil {
		return nil, common.NotFoundError("inventory for product %s not found", productID)
	}
	return inventory, nil
}
