package services

import (
	"context"

	"shopcore/internal/common"
	"shopcore/internal/events"
	"shopcore/internal/models"
	"shopcore/internal/repositories"

	"github.com/google/uuid"
)

// Payments run against a stubbed provider that always settles instantly.
const (
	paymentProvider         = "test"
	providerPaymentIDPrefix = "test-"
)

type PaymentService interface {
	// PayOrder settles the full amount of a NEW order owned by the caller
	// and confirms it. At most one paid payment can exist per order.
	PayOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Payment, error)
}

type paymentService struct {
	db          repositories.DB
	orderRepo   repositories.OrderRepository
	paymentRepo repositories.PaymentRepository
	publisher   events.Publisher
}

func NewPaymentService(db repositories.DB, orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository, publisher events.Publisher) PaymentService {
	return &paymentService{
		db:          db,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		publisher:   publisher,
	}
}

func (s *paymentService) PayOrder(ctx context.Context, orderID, userID uuid.UUID) (*models.Payment, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// The row lock serializes concurrent payment attempts for the same order.
	order, err := s.orderRepo.GetByIDForUserLocked(ctx, tx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.NotFoundError("order %s not found", orderID)
	}
	if order.Status != models.OrderStatusNew {
		return nil, common.InvalidStateError("order %s is %s, only new orders can be paid", orderID, order.Status)
	}
	paid, err := s.paymentRepo.HasPaidForOrder(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, common.ConflictError("order %s already has a completed payment", orderID)
	}

	payment := &models.Payment{
		ID:                uuid.New(),
		OrderID:           orderID,
		AmountCents:       order.TotalCents,
		Provider:          paymentProvider,
		ProviderPaymentID: providerPaymentIDPrefix + uuid.NewString(),
		Status:            models.PaymentStatusPaid,
	}
	if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, tx, orderID, models.OrderStatusConfirmed); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.publisher.Publish(orderID.String(), events.NewEnvelope(events.EventOrderConfirmed, events.OrderConfirmedPayload{
		OrderID:     orderID.String(),
		PaymentID:   payment.ID.String(),
		AmountCents: payment.AmountCents,
	}))

	return payment, nil
}
