// Package memstore is an in-memory store used for local runs and tests.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"pos-service/internal/model"
	"pos-service/internal/store"
)

type saleRecord struct {
	sale  model.Sale
	items []store.LineItem
}

// Store keeps products and sales in maps guarded by a RWMutex
type Store struct {
	mu       sync.RWMutex
	products map[string]model.Product
	sales    map[string]saleRecord
}

var _ store.Store = (*Store)(nil)

// New returns an empty store seeded with products
func New(products ...model.Product) *Store {
	s := &Store{
		products: make(map[string]model.Product, len(products)),
		sales:    make(map[string]saleRecord),
	}
	for _, p := range products {
		s.products[p.Barcode] = p
	}
	return s
}

func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].Barcode < products[j].Barcode
		}
		return products[i].Name < products[j].Name
	})
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, barcode string) (*model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[barcode]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.Barcode]; exists {
		return nil, fmt.Errorf("product %s: %w", p.Barcode, store.ErrDuplicate)
	}
	s.products[p.Barcode] = p
	return &p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[p.Barcode]; !exists {
		return nil, store.ErrNotFound
	}
	s.products[p.Barcode] = p
	return &p, nil
}

func (s *Store) DeleteProduct(ctx context.Context, barcode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[barcode]; !exists {
		return store.ErrNotFound
	}
	delete(s.products, barcode)
	return nil
}

func (s *Store) AdjustStock(ctx context.Context, adj model.StockAdjustment) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adjustLocked(adj)
}

func (s *Store) DecrementStock(ctx context.Context, barcode string, quantity int) (*model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.adjustLocked(model.Decrement(barcode, quantity))
}

func (s *Store) adjustLocked(adj model.StockAdjustment) (*model.Product, error) {
	p, ok := s.products[adj.Barcode]
	if !ok {
		return nil, store.ErrNotFound
	}

	next, err := model.NextStock(p.Stock, adj)
	if err != nil {
		return nil, err
	}
	p.Stock = next
	s.products[p.Barcode] = p
	return &p, nil
}

func (s *Store) CreateSale(ctx context.Context, sale model.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sales[sale.ID]; exists {
		return fmt.Errorf("sale %s: %w", sale.ID, store.ErrDuplicate)
	}

	header := sale
	header.Items = nil
	s.sales[sale.ID] = saleRecord{sale: header, items: store.LineItems(sale)}
	return nil
}

func (s *Store) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sales[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	sale := s.hydrateLocked(rec)
	return &sale, nil
}

func (s *Store) ListSales(ctx context.Context, filter store.SaleFilter) ([]model.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sales := make([]model.Sale, 0, len(s.sales))
	for _, rec := range s.sales {
		if filter.Matches(rec.sale.Date) {
			sales = append(sales, s.hydrateLocked(rec))
		}
	}
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].Date == sales[j].Date {
			return sales[i].ID > sales[j].ID
		}
		return sales[i].Date > sales[j].Date
	})
	return sales, nil
}

func (s *Store) hydrateLocked(rec saleRecord) model.Sale {
	sale := rec.sale
	sale.Items = store.Hydrate(rec.items, s.products)
	return sale
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close() error {
	return nil
}
