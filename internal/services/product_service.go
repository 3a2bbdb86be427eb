package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shopcore/internal/caching"
	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/repositories"

	"github.com/google/uuid"
)

type ProductService interface {
	// ListProducts returns the serialized page body. Cache hits replay the
	// stored bytes so hit and miss responses are byte-identical.
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]byte, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductImages(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error)
}

type productService struct {
	productRepo      repositories.ProductRepository
	productImageRepo repositories.ProductImageRepository
	cacheService     caching.CacheService
	cacheTTL         time.Duration
}

func NewProductService(productRepo repositories.ProductRepository, productImageRepo repositories.ProductImageRepository, cacheService caching.CacheService, cacheTTL time.Duration) ProductService {
	return &productService{
		productRepo:      productRepo,
		productImageRepo: productImageRepo,
		cacheService:     cacheService,
		cacheTTL:         cacheTTL,
	}
}

func (s *productService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]byte, error) {
	key := caching.ProductPageKey(filter)

	// Cache failures degrade to a database read, never to an error.
	cached, err := s.cacheService.GetProductPage(ctx, key)
	if err != nil {
		log.Printf("WARN: product page cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	products, err := s.productRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.CountActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*models.Product{}
	}

	page := &models.ProductPage{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
		Items:  products,
	}
	body, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetProductPage(ctx, key, body, s.cacheTTL); err != nil {
		log.Printf("WARN: product page cache write failed: %v", err)
	}
	return body, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	cached, err := s.cacheService.GetProduct(ctx, id)
	if err != nil {
		log.Printf("WARN: product cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, common.NotFoundError("product %s not found", id)
	}

	if err := s.cacheService.SetProduct(ctx, product, s.cacheTTL); err != nil {
		log.Printf("WARN: product cache write failed: %v", err)
	}
	return product, nil
}

func (s *productService) GetProductImages(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, common.NotFoundError("product %s not found", productID)
	}
	return s.productImageRepo.ListByProduct(ctx, productID)
}
