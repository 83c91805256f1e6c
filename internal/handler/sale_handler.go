package handler

import (
	"net/http"

	"pos-service/internal/model"
	"pos-service/internal/store"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListSales returns sales newest first, optionally limited by startDate and endDate
func (h *Handler) ListSales(c echo.Context) error {
	filter := store.SaleFilter{
		StartDate: c.QueryParam("startDate"),
		EndDate:   c.QueryParam("endDate"),
	}

	sales, err := h.sales.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "Sale", "fetch sales")
	}

	logger.FromContext(c).Debug("Sales retrieved",
		zap.Int("count", len(sales)),
		zap.String("start_date", filter.StartDate),
		zap.String("end_date", filter.EndDate))
	return c.JSON(http.StatusOK, sales)
}

func (h *Handler) GetSale(c echo.Context) error {
	sale, err := h.sales.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err, "Sale", "fetch sale")
	}
	return c.JSON(http.StatusOK, sale)
}

// CreateSale records a checkout and decrements stock for its items.
// Items whose stock could not be updated are listed under stockFailures.
func (h *Handler) CreateSale(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.Sale
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err, "Sale", "create sale")
	}

	log.Info("Creating sale",
		zap.String("sale_id", req.ID),
		zap.Int("items", len(req.Items)),
		zap.String("payment_method", string(req.PaymentMethod)))

	result, err := h.sales.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Sale", "create sale")
	}

	if len(result.StockFailures) > 0 {
		log.Warn("Sale recorded with stock failures",
			zap.String("sale_id", result.ID),
			zap.Int("failures", len(result.StockFailures)))
	}
	return c.JSON(http.StatusCreated, result)
}
