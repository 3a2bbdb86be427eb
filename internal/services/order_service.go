package services

import (
	"context"

	"shopcore/internal/caching"
	"shopcore/internal/common"
	"shopcore/internal/events"
	"shopcore/internal/models"
	"shopcore/internal/repositories"

	"github.com/google/uuid"
)

type OrderService interface {
	// CreateOrder validates the requested lines, reserves tracked stock and
	// persists the order atomically. Prices are snapshotted from the catalog.
	CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItemInput) (*models.Order, error)
	// GetOrderForUser returns the order with its items and payment history.
	GetOrderForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error)

	// Admin operations
	ListOrders(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, error)
	AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	db            repositories.DB
	orderRepo     repositories.OrderRepository
	paymentRepo   repositories.PaymentRepository
	productRepo   repositories.ProductRepository
	inventoryRepo repositories.InventoryRepository
	cacheService  caching.CacheService
	publisher     events.Publisher
}

func NewOrderService(db repositories.DB, orderRepo repositories.OrderRepository, paymentRepo repositories.PaymentRepository, productRepo repositories.ProductRepository, inventoryRepo repositories.InventoryRepository, cacheService caching.CacheService, publisher events.Publisher) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		paymentRepo:   paymentRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		cacheService:  cacheService,
		publisher:     publisher,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, userID uuid.UUID, items []models.OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, common.ValidationError("order must contain at least one item")
	}
	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, common.ValidationError("quantity must be at least 1 for product %s", item.ProductID)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	products, err := s.productRepo.ActiveByIDs(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*models.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}
	for _, item := range items {
		if _, ok := productsByID[item.ProductID]; !ok {
			return nil, common.ValidationError("product %s not found or inactive", item.ProductID)
		}
	}

	// Lock tracked rows up front so concurrent orders for the same products
	// serialize here instead of overselling.
	tracked, err := s.inventoryRepo.TrackedByProductIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}
	trackedByID := make(map[uuid.UUID]*models.Inventory, len(tracked))
	for _, inv := range tracked {
		trackedByID[inv.ProductID] = inv
	}

	order := &models.Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: models.OrderStatusNew,
	}
	for _, item := range items {
		product := productsByID[item.ProductID]
		if inv, ok := trackedByID[item.ProductID]; ok {
			if inv.Qty < item.Quantity {
				return nil, common.ValidationError("insufficient stock for product %s", item.ProductID)
			}
			if err := s.inventoryRepo.DecrementQty(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return nil, err
			}
			inv.Qty -= item.Quantity
		}
		order.Items = append(order.Items, &models.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: product.PriceCents,
		})
		order.TotalCents += product.PriceCents * int64(item.Quantity)
	}

	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Stock changed, so cached listings may show stale availability.
	_ = s.cacheService.InvalidateProducts(ctx)

	payload := events.OrderCreatedPayload{
		OrderID:    order.ID.String(),
		UserID:     userID.String(),
		TotalCents: order.TotalCents,
	}
	for _, item := range order.Items {
		payload.Items = append(payload.Items, events.OrderItemPayload{
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}
	s.publisher.Publish(order.ID.String(), events.NewEnvelope(events.EventOrderCreated, payload))

	return order, nil
}

func (s *orderService) GetOrderForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, common.NotFoundError("order %s not found", orderID)
	}
	order.Items, err = s.orderRepo.ItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.Payments, err = s.paymentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

func (s *orderService) ListOrders(ctx context.Context, filter *models.OrderListFilter) ([]*models.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, common.ValidationError("unknown order status %q", *filter.Status)
	}
	return s.orderRepo.List(ctx, filter)
}

// AdminUpdateStatus sets an order's status directly. Deliberately no
// transition check here, the endpoint exists for support overrides.
func (s *orderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, common.ValidationError("unknown order status %q", status)
	}
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, common.NotFoundError("order %s not found", orderID)
	}
	if err := s.orderRepo.UpdateStatus(ctx, s.db, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}
