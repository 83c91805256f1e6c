package store

import (
	"testing"

	"pos-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestSaleFilterMatches(t *testing.T) {
	tests := []struct {
		name   string
		filter SaleFilter
		date   string
		want   bool
	}{
		{"open filter", SaleFilter{}, "2024-05-01T10:00:00Z", true},
		{"before start", SaleFilter{StartDate: "2024-05-02"}, "2024-05-01T23:59:59Z", false},
		{"on start", SaleFilter{StartDate: "2024-05-01"}, "2024-05-01T00:00:00Z", true},
		{"bare end date covers whole day", SaleFilter{EndDate: "2024-05-01"}, "2024-05-01T23:59:59Z", true},
		{"bare end date excludes next day", SaleFilter{EndDate: "2024-05-01"}, "2024-05-02T00:00:00Z", false},
		{"timestamp end is inclusive", SaleFilter{EndDate: "2024-05-01T12:00:00Z"}, "2024-05-01T12:00:00Z", true},
		{"timestamp end excludes later", SaleFilter{EndDate: "2024-05-01T12:00:00Z"}, "2024-05-01T12:00:01Z", false},
		{"range", SaleFilter{StartDate: "2024-05-01", EndDate: "2024-05-31"}, "2024-05-15T08:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.date))
		})
	}
}

func TestSaleFilterUpper(t *testing.T) {
	bound, inclusive := SaleFilter{EndDate: "2024-12-31"}.Upper()
	assert.Equal(t, "2025-01-01", bound)
	assert.False(t, inclusive)

	bound, inclusive = SaleFilter{EndDate: "garbage123"}.Upper()
	assert.Equal(t, "garbage123", bound)
	assert.True(t, inclusive)
}

func TestHydrateUsesCurrentProductAndHistoricalPrice(t *testing.T) {
	items := []LineItem{
		{Barcode: "A", Quantity: 2, Price: 10, Cost: 4},
		{Barcode: "GONE", Quantity: 1, Price: 3, Cost: 1},
	}
	products := map[string]model.Product{
		"A": {Barcode: "A", Name: "Apple", Category: "Fruit", Price: 12, Cost: 5, Stock: 7},
	}

	got := Hydrate(items, products)

	assert.Equal(t, []model.CartItem{
		{Product: model.Product{Barcode: "A", Name: "Apple", Category: "Fruit", Price: 10, Cost: 4, Stock: 7}, Quantity: 2},
		{Product: model.Product{Barcode: "GONE", Name: UnknownProductName, Category: UnknownCategory, Price: 3, Cost: 1, Stock: 0}, Quantity: 1},
	}, got)
}

func TestLineItems(t *testing.T) {
	sale := model.Sale{Items: []model.CartItem{
		{Product: model.Product{Barcode: "A", Name: "Apple", Price: 10, Cost: 4, Stock: 9}, Quantity: 2},
	}}

	assert.Equal(t, []LineItem{{Barcode: "A", Quantity: 2, Price: 10, Cost: 4}}, LineItems(sale))
}
