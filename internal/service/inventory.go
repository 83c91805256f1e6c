package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pos-service/internal/model"
	"pos-service/internal/store"
	"pos-service/prometheus"

	"go.uber.org/zap"
)

// InventoryService reports on and corrects stock levels
type InventoryService struct {
	store   store.Store
	metrics *prometheus.Metrics
	log     *zap.Logger
}

func NewInventoryService(st store.Store, metrics *prometheus.Metrics, log *zap.Logger) *InventoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &InventoryService{store: st, metrics: metrics, log: log}
}

// Summary returns the inventory totals together with every product
func (s *InventoryService) Summary(ctx context.Context) (*model.InventoryResponse, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	summary := ComputeInventorySummary(products)
	return &summary, nil
}

// Adjust applies a manual add, remove or set to one product
func (s *InventoryService) Adjust(ctx context.Context, adj model.StockAdjustment) (*model.Product, error) {
	if strings.TrimSpace(adj.Barcode) == "" {
		return nil, invalid("barcode is required")
	}
	if err := adj.Check(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	product, err := s.store.AdjustStock(ctx, adj)
	if err != nil {
		if errors.Is(err, model.ErrUnknownAdjustment) || errors.Is(err, model.ErrNegativeQuantity) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}

	s.metrics.RecordStockAdjustment(string(adj.Type))
	s.metrics.UpdateProductStock(product.Barcode, product.Category, product.Stock)
	s.log.Info("Stock adjusted",
		zap.String("barcode", product.Barcode),
		zap.String("type", string(adj.Type)),
		zap.Int("quantity", adj.Quantity),
		zap.Int("stock", product.Stock))
	return product, nil
}

// Export writes every product to w in the given format
func (s *InventoryService) Export(ctx context.Context, format ExportFormat, w io.Writer) error {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return WriteInventoryCSV(w, products)
	case FormatXLSX:
		return WriteInventoryXLSX(w, products)
	default:
		return invalid("unknown export format %q", format)
	}
}
