package handlers

import (
	"net/http"

	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/services"

	"github.com/labstack/echo/v4"
)

type OrderHandlers struct {
	orderService   services.OrderService
	paymentService services.PaymentService
}

func NewOrderHandlers(orderService services.OrderService, paymentService services.PaymentService) *OrderHandlers {
	return &OrderHandlers{
		orderService:   orderService,
		paymentService: paymentService,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandlers) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	var req struct {
		Items []models.OrderItemInput `json:"items"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	order, err := h.orderService.CreateOrder(ctx, userID, req.Items)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

// ListMyOrders handles GET /orders/me
func (h *OrderHandlers) ListMyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	orders, err := h.orderService.ListOrdersForUser(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	order, err := h.orderService.GetOrderForUser(ctx, orderID, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

// PayOrder handles POST /orders/:id/pay
func (h *OrderHandlers) PayOrder(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	payment, err := h.paymentService.PayOrder(ctx, orderID, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}
