package gormstore

import (
	"fmt"
	"time"

	"pos-service/internal/model"
	"pos-service/internal/store"
)

type productRow struct {
	Barcode   string    `gorm:"primaryKey;type:varchar(64)"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Category  string    `gorm:"type:varchar(100);not null;index"`
	Price     float64   `gorm:"not null;check:chk_products_price,price > 0"`
	Cost      float64   `gorm:"not null;default:0;check:chk_products_cost,cost >= 0"`
	Stock     int       `gorm:"not null;default:0;check:chk_products_stock,stock >= 0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (productRow) TableName() string { return "products" }

type saleRow struct {
	ID            string        `gorm:"primaryKey;type:varchar(64)"`
	Date          string        `gorm:"type:varchar(40);not null;index"`
	Subtotal      float64       `gorm:"not null"`
	Tax           float64       `gorm:"not null"`
	Total         float64       `gorm:"not null"`
	PaymentMethod string        `gorm:"type:varchar(16);not null"`
	CustomerID    *string       `gorm:"type:varchar(64)"`
	Items         []saleItemRow `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time     `gorm:"autoCreateTime"`
}

func (saleRow) TableName() string { return "sales" }

type saleItemRow struct {
	ID       uint    `gorm:"primaryKey"`
	SaleID   string  `gorm:"type:varchar(64);not null;index"`
	Barcode  string  `gorm:"type:varchar(64);not null;index"`
	Quantity int     `gorm:"not null"`
	Price    float64 `gorm:"not null"`
	Cost     float64 `gorm:"not null"`
}

func (saleItemRow) TableName() string { return "sale_items" }

// Models lists the row types for migrations
func Models() []interface{} {
	return []interface{}{&productRow{}, &saleRow{}, &saleItemRow{}}
}

func newProductRow(p model.Product) productRow {
	return productRow{
		Barcode:  p.Barcode,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Cost:     p.Cost,
		Stock:    p.Stock,
	}
}

func (r productRow) toModel() model.Product {
	return model.Product{
		Barcode:  r.Barcode,
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Cost:     r.Cost,
		Stock:    r.Stock,
	}
}

func newSaleRows(sale model.Sale) (saleRow, []saleItemRow) {
	header := saleRow{
		ID:            sale.ID,
		Date:          sale.Date,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentMethod: string(sale.PaymentMethod),
	}

	items := make([]saleItemRow, 0, len(sale.Items))
	for _, item := range store.LineItems(sale) {
		items = append(items, saleItemRow{
			SaleID:   sale.ID,
			Barcode:  item.Barcode,
			Quantity: item.Quantity,
			Price:    item.Price,
			Cost:     item.Cost,
		})
	}
	return header, items
}

// toModel is the only place sale rows leave the store, so it is where they are checked.
func (r saleRow) toModel(products map[string]model.Product) (model.Sale, error) {
	method := model.PaymentMethod(r.PaymentMethod)
	if !method.Valid() {
		return model.Sale{}, fmt.Errorf("sale %s has unknown payment method %q", r.ID, r.PaymentMethod)
	}

	lines := make([]store.LineItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Quantity <= 0 {
			return model.Sale{}, fmt.Errorf("sale %s item %s has quantity %d", r.ID, item.Barcode, item.Quantity)
		}
		lines = append(lines, store.LineItem{
			Barcode:  item.Barcode,
			Quantity: item.Quantity,
			Price:    item.Price,
			Cost:     item.Cost,
		})
	}

	return model.Sale{
		ID:            r.ID,
		Date:          r.Date,
		Items:         store.Hydrate(lines, products),
		Subtotal:      r.Subtotal,
		Tax:           r.Tax,
		Total:         r.Total,
		PaymentMethod: method,
	}, nil
}

func barcodesOf(rows []saleRow) []string {
	seen := make(map[string]struct{})
	barcodes := []string{}
	for _, r := range rows {
		for _, item := range r.Items {
			if _, ok := seen[item.Barcode]; ok {
				continue
			}
			seen[item.Barcode] = struct{}{}
			barcodes = append(barcodes, item.Barcode)
		}
	}
	return barcodes
}
