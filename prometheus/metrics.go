package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service exports. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration *prometheus.HistogramVec

	// Product metrics
	ProductOperationsCounter *prometheus.CounterVec
	ProductStockGauge        *prometheus.GaugeVec

	// Sale metrics
	SalesCounter           *prometheus.CounterVec
	SaleItemsCounter       prometheus.Counter
	StockDecrementFailures prometheus.Counter

	// Inventory metrics
	StockAdjustmentsCounter *prometheus.CounterVec
}

// NewMetrics creates the collectors on a fresh registry using prefix for every metric name
func NewMetrics(prefix string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		DbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),

		ProductOperationsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_product_operations_total",
				Help: "Total number of product operations",
			},
			[]string{"operation"},
		),

		ProductStockGauge: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: prefix + "_product_stock",
				Help: "Current stock level for products",
			},
			[]string{"barcode", "category"},
		),

		SalesCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_sales_total",
				Help: "Total number of recorded sales",
			},
			[]string{"payment_method"},
		),

		SaleItemsCounter: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_sale_items_total",
				Help: "Total number of units sold",
			},
		),

		StockDecrementFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_stock_decrement_failures_total",
				Help: "Total number of sale line items whose stock could not be decremented",
			},
		),

		StockAdjustmentsCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_stock_adjustments_total",
				Help: "Total number of manual stock adjustments",
			},
			[]string{"type"},
		),
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if m == nil {
			return
		}
		m.DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordProductOperation increments the counter for product operations
func (m *Metrics) RecordProductOperation(operation string) {
	if m == nil {
		return
	}
	m.ProductOperationsCounter.WithLabelValues(operation).Inc()
}

// UpdateProductStock updates the gauge for a product's stock
func (m *Metrics) UpdateProductStock(barcode, category string, stock int) {
	if m == nil {
		return
	}
	m.ProductStockGauge.WithLabelValues(barcode, category).Set(float64(stock))
}

// ForgetProduct drops the stock series of a deleted product
func (m *Metrics) ForgetProduct(barcode, category string) {
	if m == nil {
		return
	}
	m.ProductStockGauge.DeleteLabelValues(barcode, category)
}

// RecordSale counts a recorded sale and its units
func (m *Metrics) RecordSale(paymentMethod string, units int) {
	if m == nil {
		return
	}
	m.SalesCounter.WithLabelValues(paymentMethod).Inc()
	m.SaleItemsCounter.Add(float64(units))
}

// RecordStockDecrementFailure counts a line item left unadjusted
func (m *Metrics) RecordStockDecrementFailure() {
	if m == nil {
		return
	}
	m.StockDecrementFailures.Inc()
}

// RecordStockAdjustment counts a manual adjustment by type
func (m *Metrics) RecordStockAdjustment(adjustmentType string) {
	if m == nil {
		return
	}
	m.StockAdjustmentsCounter.WithLabelValues(adjustmentType).Inc()
}
