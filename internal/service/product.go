package service

import (
	"context"
	"strings"

	"pos-service/internal/model"
	"pos-service/internal/store"
	"pos-service/prometheus"

	"go.uber.org/zap"
)

// ProductService manages the catalog
type ProductService struct {
	store   store.Store
	metrics *prometheus.Metrics
	log     *zap.Logger
}

func NewProductService(st store.Store, metrics *prometheus.Metrics, log *zap.Logger) *ProductService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductService{store: st, metrics: metrics, log: log}
}

// List returns every product sorted by name
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	s.metrics.RecordProductOperation("list")
	return s.store.ListProducts(ctx)
}

func (s *ProductService) Get(ctx context.Context, barcode string) (*model.Product, error) {
	s.metrics.RecordProductOperation("get")
	return s.store.GetProduct(ctx, barcode)
}

func (s *ProductService) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	created, err := s.store.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordProductOperation("create")
	s.metrics.UpdateProductStock(created.Barcode, created.Category, created.Stock)
	s.log.Info("Product created",
		zap.String("barcode", created.Barcode),
		zap.String("name", created.Name),
		zap.Int("stock", created.Stock))
	return created, nil
}

// Update replaces every field of the product identified by p.Barcode
func (s *ProductService) Update(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}

	previous, err := s.store.GetProduct(ctx, p.Barcode)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProduct(ctx, p)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordProductOperation("update")
	if previous.Category != updated.Category {
		s.metrics.ForgetProduct(previous.Barcode, previous.Category)
	}
	s.metrics.UpdateProductStock(updated.Barcode, updated.Category, updated.Stock)
	s.log.Info("Product updated",
		zap.String("barcode", updated.Barcode),
		zap.String("name", updated.Name),
		zap.Int("stock", updated.Stock))
	return updated, nil
}

// Delete removes a product. Sales that reference it keep their line items.
func (s *ProductService) Delete(ctx context.Context, barcode string) error {
	existing, err := s.store.GetProduct(ctx, barcode)
	if err != nil {
		return err
	}
	if err := s.store.DeleteProduct(ctx, barcode); err != nil {
		return err
	}

	s.metrics.RecordProductOperation("delete")
	s.metrics.ForgetProduct(existing.Barcode, existing.Category)
	s.log.Info("Product deleted", zap.String("barcode", barcode))
	return nil
}

func validateProduct(p model.Product) error {
	switch {
	case strings.TrimSpace(p.Barcode) == "":
		return invalid("barcode is required")
	case strings.TrimSpace(p.Name) == "":
		return invalid("name is required")
	case p.Price <= 0:
		return invalid("price must be greater than 0")
	case p.Cost < 0:
		return invalid("cost must not be negative")
	case p.Stock < 0:
		return invalid("stock must not be negative")
	}
	return nil
}
