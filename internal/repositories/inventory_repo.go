package repositories

import (
	"context"
	"errors"

	"shopcore/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type InventoryRepository interface {
	Upsert(ctx context.Context, inventory *models.Inventory) error
	GetByProductID(ctx context.Context, productID uuid.UUID) (*models.Inventory, error)
	// TrackedByProductIDsForUpdate locks the tracked rows for the duration of
	// the caller's transaction. Row locking is the only oversell defence.
	TrackedByProductIDsForUpdate(ctx context.Context, q Querier, productIDs []uuid.UUID) ([]*models.Inventory, error)
	DecrementQty(ctx context.Context, q Querier, productID uuid.UUID, qty int) error
	ListLowStock(ctx context.Context, threshold, limit int) ([]*models.Inventory, error)
}

type inventoryRepo struct {
	db Querier
}

func NewInventoryRepo(db Querier) InventoryRepository {
	return &inventoryRepo{db: db}
}

func (r *inventoryRepo) Upsert(ctx context.Context, inventory *models.Inventory) error {
	query := `
		INSERT INTO inventory (product_id, qty, track_inventory, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (product_id) DO UPDATE
		SET qty = EXCLUDED.qty, track_inventory = EXCLUDED.track_inventory, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, inventory.ProductID, inventory.Qty, inventory.TrackInventory)
	return err
}

func (r *inventoryRepo) GetByProductID(ctx context.Context, productID uuid.UUID) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	query := `
		SELECT product_id, qty, track_inventory, updated_at
		FROM inventory
		WHERE product_id = $1
	`
	err := r.db.QueryRow(ctx, query, productID).Scan(&inventory.ProductID, &inventory.Qty, &inventory.TrackInventory, &inventory.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inventory, nil
}

func (r *inventoryRepo) TrackedByProductIDsForUpdate(ctx context.Context, q Querier, productIDs []uuid.UUID) ([]*models.Inventory, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT product_id, qty, track_inventory, updated_at
		FROM inventory
		WHERE track_inventory = TRUE AND product_id = ANY($1)
		FOR UPDATE
	`
	rows, err := q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*models.Inventory
	for rows.Next() {
		inventory := &models.Inventory{}
		if err := rows.Scan(&inventory.ProductID, &inventory.Qty, &inventory.TrackInventory, &inventory.UpdatedAt); err != nil {
			return nil, err
		}
		inventories = append(inventories, inventory)
	}
	return inventories, rows.Err()
}

func (r *inventoryRepo) DecrementQty(ctx context.Context, q Querier, productID uuid.UUID, qty int) error {
	query := `
		UPDATE inventory
		SET qty = qty - $2, updated_at = NOW()
		WHERE product_id = $1
	`
	ct, err := q.Exec(ctx, query, productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return errors.New("inventory row vanished during decrement")
	}
	return nil
}

func (r *inventoryRepo) ListLowStock(ctx context.Context, threshold, limit int) ([]*models.Inventory, error) {
	query := `
		SELECT product_id, qty, track_inventory, updated_at
		FROM inventory
		WHERE track_inventory = TRUE AND qty <= $1
		ORDER BY qty ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*models.Inventory
	for rows.Next() {
		inventory := &models.Inventory{}
		if err := rows.Scan(&inventory.ProductID, &inventory.Qty, &inventory.TrackInventory, &inventory.UpdatedAt); err != nil {
			return nil, err
		}
		inventories = append(inventories, inventory)
	}
	return inventories, rows.Err()
}
