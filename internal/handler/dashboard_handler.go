package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) GetDashboard(c echo.Context) error {
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Dashboard", "fetch dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}
