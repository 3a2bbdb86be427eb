package repositories

import (
	"context"

	"shopcore/internal/models"

	"github.com/google/uuid"
)

type ProductImageRepository interface {
	// Create inserts the image on the caller's transaction so primary
	// demotion and the insert commit together.
	Create(ctx context.Context, q Querier, image *models.ProductImage) error
	// DemotePrimary clears the primary flag on every image of the product.
	DemotePrimary(ctx context.Context, q Querier, productID uuid.UUID) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error)
}

type productImageRepo struct {
	db Querier
}

func NewProductImageRepo(db Querier) ProductImageRepository {
	return &productImageRepo{db: db}
}

func (r *productImageRepo) Create(ctx context.Context, q Querier, image *models.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, url, is_primary, position, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	return q.QueryRow(ctx, query, image.ID, image.ProductID, image.URL, image.IsPrimary, image.Position).
		Scan(&image.CreatedAt)
}

func (r *productImageRepo) DemotePrimary(ctx context.Context, q Querier, productID uuid.UUID) error {
	query := `UPDATE product_images SET is_primary = FALSE WHERE product_id = $1 AND is_primary = TRUE`
	_, err := q.Exec(ctx, query, productID)
	return err
}

func (r *productImageRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductImage, error) {
	query := `
		SELECT id, product_id, url, is_primary, position, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY position, created_at
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []*models.ProductImage
	for rows.Next() {
		image := &models.ProductImage{}
		if err := rows.Scan(&image.ID, &image.ProductID, &image.URL, &image.IsPrimary, &image.Position, &image.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}
