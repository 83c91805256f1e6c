package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pos-service/internal/handler"
	"pos-service/internal/server"
	"pos-service/internal/service"
	"pos-service/internal/store"
	"pos-service/internal/store/gormstore"
	"pos-service/internal/store/memstore"
	"pos-service/pkg/config"
	"pos-service/pkg/database"
	"pos-service/pkg/logger"
	"pos-service/prometheus"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(appConfig)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	log.Info("Starting pos-service", appConfig.LogFields()...)

	// Initialize Prometheus metrics
	metrics := prometheus.NewMetrics(appConfig.Metrics.Prefix)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize store
	st, err := openStore(appConfig, metrics)
	if err != nil {
		log.Fatal("Failed to initialize store", zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn("Failed to close store", zap.Error(err))
		}
	}()
	log.Info("Store ready", zap.String("driver", appConfig.Database.Driver))

	products := service.NewProductService(st, metrics, log)
	seedStockGauge(st, metrics, log)

	h := handler.New(appConfig.API, handler.Services{
		Products:  products,
		Sales:     service.NewSaleService(st, metrics, log),
		Inventory: service.NewInventoryService(st, metrics, log),
		Dashboard: service.NewDashboardService(st, nil),
	}, st, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(appConfig, log, metrics, h).Run(ctx); err != nil {
		log.Error("Server error", zap.Error(err))
		return
	}
	log.Info("Server has been gracefully shut down")
}

func openStore(cfg *config.Config, metrics *prometheus.Metrics) (store.Store, error) {
	if cfg.Database.Driver == config.DriverMemory {
		return memstore.New(), nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, gormstore.Models()...); err != nil {
		return nil, err
	}
	return gormstore.New(db, metrics), nil
}

// seedStockGauge publishes the stock level of every existing product at startup
func seedStockGauge(st store.Store, metrics *prometheus.Metrics, log *zap.Logger) {
	products, err := st.ListProducts(context.Background())
	if err != nil {
		log.Warn("Failed to seed stock gauge", zap.Error(err))
		return
	}
	for _, p := range products {
		metrics.UpdateProductStock(p.Barcode, p.Category, p.Stock)
	}
}
