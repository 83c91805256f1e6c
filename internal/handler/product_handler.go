package handler

import (
	"net/http"

	"pos-service/internal/model"
	"pos-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListProducts returns every product sorted by name
func (h *Handler) ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.products.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Product", "fetch products")
	}

	log.Debug("Products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a product by barcode
func (h *Handler) GetProduct(c echo.Context) error {
	barcode := c.Param("barcode")

	product, err := h.products.Get(c.Request().Context(), barcode)
	if err != nil {
		return respondError(c, err, "Product", "fetch product")
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct adds a new product to the catalog
func (h *Handler) CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.Product
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err, "Product", "create product")
	}

	log.Info("Creating product",
		zap.String("barcode", req.Barcode),
		zap.String("name", req.Name))

	product, err := h.products.Create(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Product", "create product")
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces the product whose barcode is in the body
func (h *Handler) UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)

	var req model.Product
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err, "Product", "update product")
	}

	log.Info("Updating product", zap.String("barcode", req.Barcode))

	product, err := h.products.Update(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, "Product", "update product")
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product. Past sales keep their line items.
func (h *Handler) DeleteProduct(c echo.Context) error {
	barcode := c.Param("barcode")
	logger.FromContext(c).Info("Deleting product", zap.String("barcode", barcode))

	if err := h.products.Delete(c.Request().Context(), barcode); err != nil {
		return respondError(c, err, "Product", "delete product")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
