package handlers

import (
	"net/http"

	"shopcore/internal/common"
	"shopcore/internal/models"
	"shopcore/internal/services"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandlers struct {
	orderService services.OrderService
}

func NewAdminOrderHandlers(orderService services.OrderService) *AdminOrderHandlers {
	return &AdminOrderHandlers{orderService: orderService}
}

// ListOrders handles GET /admin/orders
func (h *AdminOrderHandlers) ListOrders(c echo.Context) error {
	filter := &models.OrderListFilter{}
	if v := c.QueryParam("status"); v != "" {
		status := models.OrderStatus(v)
		filter.Status = &status
	}
	userID, err := parseOptionalUUID(c, "user_id")
	if err != nil {
		return common.SendError(c, err)
	}
	filter.UserID = userID

	orders, err := h.orderService.ListOrders(c.Request().Context(), filter)
	if err != nil {
		return common.SendError(c, err)
	}
	if orders == nil {
		orders = []*models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus handles PATCH /admin/orders/:id
func (h *AdminOrderHandlers) UpdateOrderStatus(c echo.Context) error {
	orderID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "invalid request format")
	}

	order, err := h.orderService.AdminUpdateStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
