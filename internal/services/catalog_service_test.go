package services

import (
	"context"
	"errors"
	"testing"

	"shopcore/internal/common"
	"shopcore/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUpdateProduct_DropsDetailAndListingCaches(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockCacheService)
	svc := NewCatalogService(nil, nil, nil, productRepo, nil, nil, cache)

	id := uuid.New()
	existing := &models.Product{ID: id, SKU: "SKU-1", Name: "Espresso Machine", Slug: "espresso-machine", PriceCents: 700000, IsActive: true}
	productRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	productRepo.On("Update", mock.Anything, existing).Return(nil)
	cache.On("DeleteProduct", mock.Anything, id).Return(nil)
	cache.On("InvalidateProducts", mock.Anything).Return(nil)

	newPrice := int64(650000)
	product, err := svc.UpdateProduct(context.Background(), id, &models.ProductPatch{PriceCents: &newPrice})
	assert.NoError(t, err)
	assert.Equal(t, int64(650000), product.PriceCents)
	cache.AssertExpectations(t)
}

func TestDeleteProduct_DropsDetailAndListingCaches(t *testing.T) {
	productRepo := new(MockProductRepository)
	cache := new(MockCacheService)
	svc := NewCatalogService(nil, nil, nil, productRepo, nil, nil, cache)

	id := uuid.New()
	productRepo.On("Delete", mock.Anything, id).Return(true, nil)
	cache.On("DeleteProduct", mock.Anything, id).Return(nil)
	cache.On("InvalidateProducts", mock.Anything).Return(nil)

	assert.NoError(t, svc.DeleteProduct(context.Background(), id))
	cache.AssertExpectations(t)
}

func TestDeleteProduct_ReferencedByOrders(t *testing.T) {
	productRepo := new(MockProductRepository)
	svc := NewCatalogService(nil, nil, nil, productRepo, nil, nil, new(MockCacheService))

	id := uuid.New()
	pgErr := &pgconn.PgError{Code: "23503"}
	productRepo.On("Delete", mock.Anything, id).Return(false, pgErr)

	err := svc.DeleteProduct(context.Background(), id)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
	// The database error stays in the chain for logging.
	assert.True(t, errors.Is(err, pgErr))
}
