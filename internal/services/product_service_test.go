package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"shopcore/internal/caching"
	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ListActive(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) CountActive(ctx context.Context, filter *models.ProductFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) ActiveByIDs(ctx context.Context, q repositories.Querier, ids []uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, q, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockProductImageRepository struct {
	mock.Mock
}

func (m *MockProductImageRepository) Create(ctx context.Context, q repositories.Querier, image *models.ProductImage) error {
	args := m.Called(ctx, q, image)
	return args.Error(0)
}

func (m *MockProductImageRepository) DemotePrimary(ctx context.Context, q repositories.Querier, productID uuid.UUID) error {
	args := m.Called(ctx, q, productID)
	return args.Error(0)
}

func (m *MockProductImageRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductImage), args.Error(1)
}

func newProductServiceUnderTest() (*MockProductRepository, *MockProductImageRepository, *MockCacheService, ProductService) {
	productRepo := new(MockProductRepository)
	imageRepo := new(MockProductImageRepository)
	cache := new(MockCacheService)
	svc := NewProductService(productRepo, imageRepo, cache, time.Minute)
	return productRepo, imageRepo, cache, svc
}

func testFilter() *models.ProductFilter {
	return &models.ProductFilter{Sort: models.SortCreatedDesc, Limit: 20, Offset: 0}
}

func TestListProducts_CacheHitReturnsStoredBytes(t *testing.T) {
	_, _, cache, svc := newProductServiceUnderTest()
	filter := testFilter()
	stored := []byte(`{"total":1,"limit":20,"offset":0,"items":[]}`)

	cache.On("GetProductPage", mock.Anything, caching.ProductPageKey(filter)).Return(stored, nil)

	body, err := svc.ListProducts(context.Background(), filter)
	assert.NoError(t, err)
	assert.Equal(t, stored, body)
	cache.AssertExpectations(t)
}

func TestListProducts_CacheMissQueriesAndStores(t *testing.T) {
	productRepo, _, cache, svc := newProductServiceUnderTest()
	filter := testFilter()
	product := &models.Product{ID: uuid.New(), SKU: "SKU-1", Name: "Espresso Machine", PriceCents: 700000, IsActive: true}

	cache.On("GetProductPage", mock.Anything, caching.ProductPageKey(filter)).Return(nil, nil)
	productRepo.On("ListActive", mock.Anything, filter).Return([]*models.Product{product}, nil)
	productRepo.On("CountActive", mock.Anything, filter).Return(1, nil)
	cache.On("SetProductPage", mock.Anything, caching.ProductPageKey(filter), mock.Anything, time.Minute).Return(nil)

	body, err := svc.ListProducts(context.Background(), filter)
	assert.NoError(t, err)

	var page models.ProductPage
	assert.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 20, page.Limit)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, product.ID, page.Items[0].ID)
	cache.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestListProducts_CacheErrorsAreSwallowed(t *testing.T) {
	productRepo, _, cache, svc := newProductServiceUnderTest()
	filter := testFilter()

	cache.On("GetProductPage", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	productRepo.On("ListActive", mock.Anything, filter).Return([]*models.Product{}, nil)
	productRepo.On("CountActive", mock.Anything, filter).Return(0, nil)
	cache.On("SetProductPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	body, err := svc.ListProducts(context.Background(), filter)
	assert.NoError(t, err)

	var page models.ProductPage
	assert.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Items)
}

func TestGetProduct_InactiveIsNotFound(t *testing.T) {
	productRepo, _, cache, svc := newProductServiceUnderTest()
	id := uuid.New()

	cache.On("GetProduct", mock.Anything, id).Return(nil, nil)
	productRepo.On("GetByID", mock.Anything, id).Return(&models.Product{ID: id, IsActive: false}, nil)

	product, err := svc.GetProduct(context.Background(), id)
	assert.Nil(t, product)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestGetProduct_CacheMissStoresDetail(t *testing.T) {
	productRepo, _, cache, svc := newProductServiceUnderTest()
	id := uuid.New()
	stored := &models.Product{ID: id, SKU: "SKU-1", Name: "Espresso Machine", IsActive: true}

	cache.On("GetProduct", mock.Anything, id).Return(nil, nil)
	productRepo.On("GetByID", mock.Anything, id).Return(stored, nil)
	cache.On("SetProduct", mock.Anything, stored, time.Minute).Return(nil)

	product, err := svc.GetProduct(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, stored, product)
	cache.AssertExpectations(t)
}
