package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"pos-service/internal/model"
	"pos-service/internal/service"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) GetInventory(c echo.Context) error {
	summary, err := h.inventory.Summary(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Inventory", "fetch inventory")
	}
	return c.JSON(http.StatusOK, summary)
}

// AdjustInventory applies an add, remove or set to one product's stock
func (h *Handler) AdjustInventory(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.StockAdjustment
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err, "Product", "update inventory")
	}

	log.Info("Adjusting stock",
		zap.String("barcode", req.Barcode),
		zap.String("type", string(req.Type)),
		zap.Int("quantity", req.Quantity))

	product, err := h.inventory.Adjust(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Product", "update inventory")
	}
	return c.JSON(http.StatusOK, product)
}

// ExportInventory streams the product list as a CSV attachment, or XLSX with ?format=xlsx
func (h *Handler) ExportInventory(c echo.Context) error {
	format, err := service.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return respondError(c, err, "Export", "export inventory")
	}

	var buf bytes.Buffer
	if err := h.inventory.Export(c.Request().Context(), format, &buf); err != nil {
		return respondError(c, err, "Export", "export inventory")
	}

	filename := format.Filename(h.now())
	logger.FromContext(c).Info("Inventory exported",
		zap.String("filename", filename),
		zap.Int("bytes", buf.Len()))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
