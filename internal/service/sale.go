package service

import (
	"context"
	"fmt"
	"strings"

	"pos-service/internal/model"
	"pos-service/internal/store"
	"pos-service/prometheus"

	"go.uber.org/zap"
)

// SaleService records checkouts and keeps stock in step with them
type SaleService struct {
	store   store.Store
	metrics *prometheus.Metrics
	log     *zap.Logger
}

func NewSaleService(st store.Store, metrics *prometheus.Metrics, log *zap.Logger) *SaleService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SaleService{store: st, metrics: metrics, log: log}
}

// Create records sale and then decrements stock for each line item.
//
// The header and items are written together. Each decrement runs on its own
// afterwards; one that fails is logged and reported in the result while the
// sale stays recorded.
func (s *SaleService) Create(ctx context.Context, sale model.Sale) (*model.SaleResult, error) {
	if err := validateSale(sale); err != nil {
		return nil, err
	}

	if err := s.store.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	// the sale is committed, finish the stock updates even if the client goes away
	ctx = context.WithoutCancel(ctx)

	var failures []model.StockFailure
	units := 0
	for _, item := range sale.Items {
		units += item.Quantity

		product, err := s.store.DecrementStock(ctx, item.Barcode, item.Quantity)
		if err != nil {
			s.log.Warn("Failed to decrement stock for sale item",
				zap.String("sale_id", sale.ID),
				zap.String("barcode", item.Barcode),
				zap.Int("quantity", item.Quantity),
				zap.Error(err))
			s.metrics.RecordStockDecrementFailure()
			failures = append(failures, model.StockFailure{
				Barcode:  item.Barcode,
				Quantity: item.Quantity,
				Error:    err.Error(),
			})
			continue
		}
		s.metrics.UpdateProductStock(product.Barcode, product.Category, product.Stock)
	}

	s.metrics.RecordSale(string(sale.PaymentMethod), units)
	s.log.Info("Sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.Int("items", len(sale.Items)),
		zap.Float64("total", sale.Total),
		zap.Int("stock_failures", len(failures)))

	recorded, err := s.store.GetSale(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("reload sale %s: %w", sale.ID, err)
	}
	return &model.SaleResult{Sale: *recorded, StockFailures: failures}, nil
}

func (s *SaleService) Get(ctx context.Context, id string) (*model.Sale, error) {
	return s.store.GetSale(ctx, id)
}

// List returns the sales inside filter, newest first
func (s *SaleService) List(ctx context.Context, filter store.SaleFilter) ([]model.Sale, error) {
	return s.store.ListSales(ctx, filter)
}

func validateSale(sale model.Sale) error {
	switch {
	case strings.TrimSpace(sale.ID) == "":
		return invalid("id is required")
	case strings.TrimSpace(sale.Date) == "":
		return invalid("date is required")
	case len(sale.Items) == 0:
		return invalid("a sale needs at least one item")
	case !sale.PaymentMethod.Valid():
		return invalid("unknown payment method %q", sale.PaymentMethod)
	}

	for i, item := range sale.Items {
		switch {
		case strings.TrimSpace(item.Barcode) == "":
			return invalid("item %d: barcode is required", i)
		case item.Quantity <= 0:
			return invalid("item %s: quantity must be greater than 0", item.Barcode)
		case item.Price <= 0:
			return invalid("item %s: price must be greater than 0", item.Barcode)
		case item.Cost < 0:
			return invalid("item %s: cost must not be negative", item.Barcode)
		}
	}
	return nil
}
