package store

import "pos-service/internal/model"

// Placeholders used for line items whose product has been deleted
const (
	UnknownProductName = "Unknown Product"
	UnknownCategory    = "Unknown"
)

// LineItem is a sale line as persisted: the historical price and cost plus quantity
type LineItem struct {
	Barcode  string
	Quantity int
	Price    float64
	Cost     float64
}

// Hydrate joins persisted line items with the current product state.
func Hydrate(items []LineItem, products map[string]model.Product) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		ci := model.CartItem{
			Product: model.Product{
				Barcode:  item.Barcode,
				Name:     UnknownProductName,
				Category: UnknownCategory,
				Price:    item.Price,
				Cost:     item.Cost,
			},
			Quantity: item.Quantity,
		}
		if p, ok := products[item.Barcode]; ok {
			ci.Name = p.Name
			ci.Category = p.Category
			ci.Stock = p.Stock
		}
		out = append(out, ci)
	}
	return out
}

// LineItems strips a sale's items down to what is persisted
func LineItems(sale model.Sale) []LineItem {
	out := make([]LineItem, 0, len(sale.Items))
	for _, item := range sale.Items {
		out = append(out, LineItem{
			Barcode:  item.Barcode,
			Quantity: item.Quantity,
			Price:    item.Price,
			Cost:     item.Cost,
		})
	}
	return out
}
