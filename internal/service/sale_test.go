package service

import (
	"context"
	"fmt"
	"testing"

	"pos-service/internal/model"
	"pos-service/internal/store"
	"pos-service/internal/store/memstore"
	"pos-service/prometheus"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func apple(stock int) model.Product {
	return model.Product{Barcode: "A", Name: "Apple", Category: "Fruit", Price: 10, Cost: 4, Stock: stock}
}

func bread(stock int) model.Product {
	return model.Product{Barcode: "B", Name: "Bread", Category: "Bakery", Price: 3, Cost: 1, Stock: stock}
}

func saleOf(id string, items ...model.CartItem) model.Sale {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return model.Sale{
		ID:            id,
		Date:          "2024-05-01T10:00:00.000Z",
		Items:         items,
		Subtotal:      subtotal,
		Tax:           subtotal * 0.08,
		Total:         subtotal * 1.08,
		PaymentMethod: model.PaymentCash,
	}
}

func line(p model.Product, quantity int) model.CartItem {
	return model.CartItem{Product: p, Quantity: quantity}
}

// flakyDecrements fails every stock decrement for one barcode
type flakyDecrements struct {
	*memstore.Store
	failing string
}

func (s flakyDecrements) DecrementStock(ctx context.Context, barcode string, quantity int) (*model.Product, error) {
	if barcode == s.failing {
		return nil, fmt.Errorf("decrement %s: connection reset", barcode)
	}
	return s.Store.DecrementStock(ctx, barcode, quantity)
}

func TestCreateSaleDecrementsStock(t *testing.T) {
	ctx := context.Background()
	st := memstore.New(apple(5), bread(8))
	metrics := prometheus.NewMetrics("pos")
	svc := NewSaleService(st, metrics, zaptest.NewLogger(t))

	result, err := svc.Create(ctx, saleOf("s1", line(apple(5), 2), line(bread(8), 3)))
	require.NoError(t, err)
	assert.Empty(t, result.StockFailures)
	require.Len(t, result.Items, 2)
	assert.Equal(t, 3, result.Items[0].Stock)
	assert.Equal(t, 5, result.Items[1].Stock)

	got, err := st.GetProduct(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SalesCounter.WithLabelValues("cash")))
	assert.Equal(t, 5.0, testutil.ToFloat64(metrics.SaleItemsCounter))
}

func TestCreateSaleClampsStockAtZero(t *testing.T) {
	ctx := context.Background()
	st := memstore.New(apple(1))
	svc := NewSaleService(st, nil, nil)

	result, err := svc.Create(ctx, saleOf("s1", line(apple(1), 2)))
	require.NoError(t, err)
	assert.Empty(t, result.StockFailures)

	got, err := st.GetProduct(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)
}

func TestCreateSaleReportsPartialStockFailures(t *testing.T) {
	ctx := context.Background()
	st := flakyDecrements{Store: memstore.New(apple(5), bread(8)), failing: "B"}
	metrics := prometheus.NewMetrics("pos")
	svc := NewSaleService(st, metrics, zaptest.NewLogger(t))

	result, err := svc.Create(ctx, saleOf("s1", line(apple(5), 1), line(bread(8), 2)))
	require.NoError(t, err)

	require.Len(t, result.StockFailures, 1)
	assert.Equal(t, "B", result.StockFailures[0].Barcode)
	assert.Equal(t, 2, result.StockFailures[0].Quantity)
	assert.NotEmpty(t, result.StockFailures[0].Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StockDecrementFailures))

	a, _ := st.GetProduct(ctx, "A")
	b, _ := st.GetProduct(ctx, "B")
	assert.Equal(t, 4, a.Stock)
	assert.Equal(t, 8, b.Stock)

	_, err = st.GetSale(ctx, "s1")
	assert.NoError(t, err)
}

func TestCreateSaleUnknownBarcodeIsRecorded(t *testing.T) {
	ctx := context.Background()
	st := memstore.New(apple(5))
	svc := NewSaleService(st, nil, nil)

	ghost := model.Product{Barcode: "Z", Name: "Ghost", Category: "None", Price: 2, Cost: 1}
	result, err := svc.Create(ctx, saleOf("s1", line(ghost, 1)))
	require.NoError(t, err)

	require.Len(t, result.StockFailures, 1)
	assert.Equal(t, "Z", result.StockFailures[0].Barcode)
	assert.Equal(t, store.UnknownProductName, result.Items[0].Name)
	assert.Equal(t, 2.0, result.Items[0].Price)
}

func TestCreateSaleRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	st := memstore.New(apple(5))
	svc := NewSaleService(st, nil, nil)

	_, err := svc.Create(ctx, saleOf("s1", line(apple(5), 1)))
	require.NoError(t, err)

	_, err = svc.Create(ctx, saleOf("s1", line(apple(5), 1)))
	assert.ErrorIs(t, err, store.ErrDuplicate)

	got, err := st.GetProduct(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Stock)
}

func TestCreateSaleValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Sale)
	}{
		{"missing id", func(s *model.Sale) { s.ID = "" }},
		{"missing date", func(s *model.Sale) { s.Date = " " }},
		{"no items", func(s *model.Sale) { s.Items = nil }},
		{"bad payment method", func(s *model.Sale) { s.PaymentMethod = "cheque" }},
		{"zero quantity", func(s *model.Sale) { s.Items[0].Quantity = 0 }},
		{"zero price", func(s *model.Sale) { s.Items[0].Price = 0 }},
		{"negative cost", func(s *model.Sale) { s.Items[0].Cost = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := memstore.New(apple(5))
			svc := NewSaleService(st, nil, nil)

			sale := saleOf("s1", line(apple(5), 1))
			tt.mutate(&sale)

			_, err := svc.Create(context.Background(), sale)
			assert.ErrorIs(t, err, ErrInvalidInput)

			_, err = st.GetSale(context.Background(), "s1")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestSaleShowsCurrentProductState(t *testing.T) {
	ctx := context.Background()
	st := memstore.New(apple(5), bread(8))
	svc := NewSaleService(st, nil, nil)

	_, err := svc.Create(ctx, saleOf("s1", line(apple(5), 1), line(bread(8), 1)))
	require.NoError(t, err)

	renamed := apple(4)
	renamed.Name = "Green Apple"
	renamed.Price = 99
	_, err = st.UpdateProduct(ctx, renamed)
	require.NoError(t, err)
	require.NoError(t, st.DeleteProduct(ctx, "B"))

	sale, err := svc.Get(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, "Green Apple", sale.Items[0].Name)
	assert.Equal(t, 10.0, sale.Items[0].Price)
	assert.Equal(t, store.UnknownProductName, sale.Items[1].Name)
	assert.Equal(t, store.UnknownCategory, sale.Items[1].Category)
	assert.Equal(t, 0, sale.Items[1].Stock)
}

func TestListSalesFiltersByDate(t *testing.T) {
	ctx := context.Background()
	st := memstore.New(apple(50))
	svc := NewSaleService(st, nil, nil)

	for id, date := range map[string]string{
		"s1": "2024-04-30T23:59:59.000Z",
		"s2": "2024-05-01T08:00:00.000Z",
		"s3": "2024-05-01T20:00:00.000Z",
		"s4": "2024-05-02T00:00:00.000Z",
	} {
		sale := saleOf(id, line(apple(50), 1))
		sale.Date = date
		_, err := svc.Create(ctx, sale)
		require.NoError(t, err)
	}

	sales, err := svc.List(ctx, store.SaleFilter{StartDate: "2024-05-01", EndDate: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "s3", sales[0].ID)
	assert.Equal(t, "s2", sales[1].ID)

	all, err := svc.List(ctx, store.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "s4", all[0].ID)
}
