package repositories

import (
	"context"
	"errors"

	"shopcore/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*models.Brand, error)
}

type brandRepo struct {
	db Querier
}

func NewBrandRepo(db Querier) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *models.Brand) error {
	query := `INSERT INTO brands (id, name, slug) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, brand.ID, brand.Name, brand.Slug)
	return err
}

func (r *brandRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	brand := &models.Brand{}
	query := `SELECT id, name, slug FROM brands WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&brand.ID, &brand.Name, &brand.Slug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return brand, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *models.Brand) error {
	query := `UPDATE brands SET name = $1, slug = $2 WHERE id = $3`
	_, err := r.db.Exec(ctx, query, brand.Name, brand.Slug, brand.ID)
	return err
}

func (r *brandRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	ct, err := r.db.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *brandRepo) List(ctx context.Context, limit, offset int) ([]*models.Brand, error) {
	query := `SELECT id, name, slug FROM brands ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}
