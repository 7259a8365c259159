package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) DashboardStats(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context(), ownerID(c))
	if err != nil {
		return fail(c, err, "Dashboard")
	}
	return c.JSON(http.StatusOK, stats)
}
