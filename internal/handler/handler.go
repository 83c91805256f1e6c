// Package handler exposes the point-of-sale services over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"pos-service/internal/service"
	"pos-service/internal/store"
	"pos-service/pkg/config"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// Services bundles the business services the routes call into
type Services struct {
	Products  *service.ProductService
	Sales     *service.SaleService
	Inventory *service.InventoryService
	Dashboard *service.DashboardService
}

// Handler owns the HTTP routes of the service
type Handler struct {
	api       config.APIConfig
	products  *service.ProductService
	sales     *service.SaleService
	inventory *service.InventoryService
	dashboard *service.DashboardService
	store     store.Store
	metrics   *prometheus.Metrics
	now       func() time.Time
}

func New(api config.APIConfig, svc Services, st store.Store, metrics *prometheus.Metrics) *Handler {
	return &Handler{
		api:       api,
		products:  svc.Products,
		sales:     svc.Sales,
		inventory: svc.Inventory,
		dashboard: svc.Dashboard,
		store:     st,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Register mounts every route on e
func (h *Handler) Register(e *echo.Echo) {
	if e.Validator == nil {
		e.Validator = NewValidator()
	}

	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(h.metrics.Handler()))

	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:barcode", h.GetProduct)
	products.POST("", h.CreateProduct)
	products.PUT("", h.UpdateProduct)
	products.DELETE("/:barcode", h.DeleteProduct)

	sales := api.Group("/sales")
	sales.GET("", h.ListSales)
	sales.GET("/:id", h.GetSale)
	sales.POST("", h.CreateSale)

	inventory := api.Group("/inventory")
	inventory.GET("", h.GetInventory)
	inventory.PUT("", h.AdjustInventory)
	inventory.GET("/export", h.ExportInventory)

	api.GET("/dashboard", h.GetDashboard)
}

// Root reports that the API is up
func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": h.api.Title,
		"status":  "running",
	})
}

// Health answers liveness probes. With ?check=db it also pings the store.
func (h *Handler) Health(c echo.Context) error {
	body := echo.Map{
		"status":  "ok",
		"version": h.api.Version,
		"time":    h.now().UTC().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "db" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			logger.FromContext(c).Error("Database health check failed", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status": "error",
				"error":  "Database unavailable",
			})
		}
		body["database"] = "ok"
	}

	return c.JSON(http.StatusOK, body)
}

// respondError maps an error to its status code. Unexpected errors are logged
// and answered with "Failed to <action>" so store details never reach clients.
func respondError(c echo.Context, err error, subject, action string) error {
	log := logger.FromContext(c)

	var validationErrs validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		log.Warn("Request validation failed", zap.String("subject", subject), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": validationMessage(validationErrs),
		})
	case errors.Is(err, service.ErrInvalidInput):
		log.Warn("Invalid input", zap.String("subject", subject), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	case errors.Is(err, store.ErrNotFound):
		log.Info(subject+" not found", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": subject + " not found",
		})
	case errors.Is(err, store.ErrDuplicate):
		log.Warn(subject+" already exists", zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": subject + " already exists",
		})
	default:
		log.Error("Failed to "+action, zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to " + action,
		})
	}
}

func badRequest(c echo.Context, err error) error {
	logger.FromContext(c).Warn("Invalid request data", zap.Error(err))
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "Invalid request data",
	})
}
