// Package store defines the persistence gateway shared by the SQL and in-memory backends.
package store

import (
	"context"
	"errors"

	"pos-service/internal/model"
)

var (
	// ErrNotFound is returned when a barcode or sale id does not resolve
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a barcode or sale id is already taken
	ErrDuplicate = errors.New("record already exists")
)

// Store is the persistence gateway for products and sales
type Store interface {
	// ListProducts returns every product ordered by name
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, barcode string) (*model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, barcode string) error

	// AdjustStock applies adj in a single atomic step and returns the updated product
	AdjustStock(ctx context.Context, adj model.StockAdjustment) (*model.Product, error)
	// DecrementStock lowers stock by quantity, never below zero
	DecrementStock(ctx context.Context, barcode string, quantity int) (*model.Product, error)

	// CreateSale writes the sale header and its line items together or not at all
	CreateSale(ctx context.Context, sale model.Sale) error
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	// ListSales returns the sales matching filter ordered by date, newest first
	ListSales(ctx context.Context, filter SaleFilter) ([]model.Sale, error)

	Ping(ctx context.Context) error
	Close() error
}
