package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopcore/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListActive(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error)
	CountActive(ctx context.Context, filter *models.ProductFilter) (int, error)
	// ActiveByIDs runs on the caller's transaction so the order builder sees
	// a consistent snapshot of the products it is about to sell.
	ActiveByIDs(ctx context.Context, q Querier, ids []uuid.UUID) ([]*models.Product, error)
}

type productRepo struct {
	db Querier
}

func NewProductRepo(db Querier) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, sku, name, slug, brand_id, category_id, price_cents, is_active, created_at`

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.SKU, &product.Name, &product.Slug, &product.BrandID, &product.CategoryID, &product.PriceCents, &product.IsActive, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, sku, name, slug, brand_id, category_id, price_cents, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.SKU, product.Name, product.Slug, product.BrandID, product.CategoryID, product.PriceCents, product.IsActive)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET sku = $1, name = $2, slug = $3, brand_id = $4, category_id = $5, price_cents = $6, is_active = $7
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, product.SKU, product.Name, product.Slug, product.BrandID, product.CategoryID, product.PriceCents, product.IsActive, product.ID)
	return err
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// buildActiveFilter appends the listing WHERE conditions shared by ListActive
// and CountActive so both always agree on the result set.
func buildActiveFilter(filter *models.ProductFilter, query string, args []any) (string, []any) {
	n := len(args)
	if filter.Query != "" {
		n++
		query += fmt.Sprintf(` AND LOWER(name) LIKE $%d`, n)
		// The column side is lowered, so the pattern must be too.
		args = append(args, "%"+strings.ToLower(filter.Query)+"%")
	}
	if filter.CategoryID != nil {
		n++
		query += fmt.Sprintf(` AND category_id = $%d`, n)
		args = append(args, *filter.CategoryID)
	}
	if filter.BrandID != nil {
		n++
		query += fmt.Sprintf(` AND brand_id = $%d`, n)
		args = append(args, *filter.BrandID)
	}
	return query, args
}

var sortClauses = map[string]string{
	models.SortPriceAsc:    "price_cents ASC",
	models.SortPriceDesc:   "price_cents DESC",
	models.SortCreatedAsc:  "created_at ASC",
	models.SortCreatedDesc: "created_at DESC",
}

func (r *productRepo) ListActive(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE`
	args := []any{}
	query, args = buildActiveFilter(filter, query, args)

	orderBy, ok := sortClauses[filter.Sort]
	if !ok {
		orderBy = sortClauses[models.SortCreatedDesc]
	}
	query += ` ORDER BY ` + orderBy
	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) CountActive(ctx context.Context, filter *models.ProductFilter) (int, error) {
	query := `SELECT COUNT(*) FROM products WHERE is_active = TRUE`
	args := []any{}
	query, args = buildActiveFilter(filter, query, args)

	var total int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *productRepo) ActiveByIDs(ctx context.Context, q Querier, ids []uuid.UUID) ([]*models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE AND id = ANY($1)`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
