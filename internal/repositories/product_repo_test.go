package repositories

import (
	"context"
	"testing"
	"time"

	"shopcore/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      ProductRepository
	productID uuid.UUID
	ctx       context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepo(mock)
	suite.productID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) TestGetByID_Found() {
	suite.mock.ExpectQuery(`SELECT id, sku, name, slug, brand_id, category_id, price_cents, is_active, created_at FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sku", "name", "slug", "brand_id", "category_id", "price_cents", "is_active", "created_at"}).
			AddRow(suite.productID, "SKU-1", "Espresso Machine", "espresso-machine", nil, nil, int64(700000), true, time.Now()))

	product, err := suite.repo.GetByID(suite.ctx, suite.productID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.productID, product.ID)
	assert.Equal(suite.T(), int64(700000), product.PriceCents)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestGetByID_NotFoundIsNil() {
	suite.mock.ExpectQuery(`SELECT id, sku, name, slug, brand_id, category_id, price_cents, is_active, created_at FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sku", "name", "slug", "brand_id", "category_id", "price_cents", "is_active", "created_at"}))

	product, err := suite.repo.GetByID(suite.ctx, suite.productID)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), product)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestListActive_AppliesFiltersAndSort() {
	categoryID := uuid.New()
	filter := &models.ProductFilter{
		Query:      "espresso",
		CategoryID: &categoryID,
		Sort:       models.SortPriceAsc,
		Limit:      20,
		Offset:     40,
	}

	suite.mock.ExpectQuery(`SELECT id, sku, name, slug, brand_id, category_id, price_cents, is_active, created_at FROM products WHERE is_active = TRUE AND LOWER\(name\) LIKE \$1 AND category_id = \$2 ORDER BY price_cents ASC LIMIT \$3 OFFSET \$4`).
		WithArgs("%espresso%", categoryID, 20, 40).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sku", "name", "slug", "brand_id", "category_id", "price_cents", "is_active", "created_at"}).
			AddRow(suite.productID, "SKU-1", "Espresso Machine", "espresso-machine", nil, &categoryID, int64(700000), true, time.Now()))

	products, err := suite.repo.ListActive(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestListActive_LowercasesQueryTerm() {
	// The name column is lowered in SQL, so a mixed-case search term has to
	// be lowered before binding or it can never match.
	filter := &models.ProductFilter{
		Query:  "Espresso",
		Sort:   models.SortCreatedDesc,
		Limit:  20,
		Offset: 0,
	}

	suite.mock.ExpectQuery(`SELECT id, sku, name, slug, brand_id, category_id, price_cents, is_active, created_at FROM products WHERE is_active = TRUE AND LOWER\(name\) LIKE \$1 ORDER BY created_at DESC LIMIT \$2 OFFSET \$3`).
		WithArgs("%espresso%", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "sku", "name", "slug", "brand_id", "category_id", "price_cents", "is_active", "created_at"}).
			AddRow(suite.productID, "SKU-1", "Espresso Machine", "espresso-machine", nil, nil, int64(700000), true, time.Now()))

	products, err := suite.repo.ListActive(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestCountActive_SharesFilterConditions() {
	filter := &models.ProductFilter{Query: "espresso"}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM products WHERE is_active = TRUE AND LOWER\(name\) LIKE \$1`).
		WithArgs("%espresso%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	total, err := suite.repo.CountActive(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, total)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *ProductRepoTestSuite) TestDelete_ReportsMissingRow() {
	suite.mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
		WithArgs(suite.productID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := suite.repo.Delete(suite.ctx, suite.productID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}
