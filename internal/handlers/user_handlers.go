package handlers

import (
	"net/http"

	"shopcore/internal/common"
	"shopcore/internal/services"

	"github.com/labstack/echo/v4"
)

type UserHandlers struct {
	authService services.AuthService
}

func NewUserHandlers(authService services.AuthService) *UserHandlers {
	return &UserHandlers{authService: authService}
}

// Me handles GET /users/me
func (h *UserHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
