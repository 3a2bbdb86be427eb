package repositories

import (
	"context"

	"shopcore/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	// Create inserts the payment on the caller's transaction.
	Create(ctx context.Context, q Querier, payment *models.Payment) error
	// HasPaidForOrder reports whether a paid payment already exists,
	// consulted on the same transaction that locks the order row.
	HasPaidForOrder(ctx context.Context, q Querier, orderID uuid.UUID) (bool, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Payment, error)
}

type paymentRepo struct {
	db Querier
}

func NewPaymentRepo(db Querier) PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, q Querier, payment *models.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, amount_cents, provider, provider_payment_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	return q.QueryRow(ctx, query, payment.ID, payment.OrderID, payment.AmountCents, payment.Provider, payment.ProviderPaymentID, payment.Status).
		Scan(&payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepo) HasPaidForOrder(ctx context.Context, q Querier, orderID uuid.UUID) (bool, error) {
	var n int
	query := `SELECT COUNT(*) FROM payments WHERE order_id = $1 AND status = $2`
	if err := q.QueryRow(ctx, query, orderID, models.PaymentStatusPaid).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *paymentRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT id, order_id, amount_cents, provider, provider_payment_id, status, created_at, updated_at
		FROM payments
		WHERE order_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.OrderID, &payment.AmountCents, &payment.Provider, &payment.ProviderPaymentID, &payment.Status, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
