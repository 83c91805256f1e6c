package service

import (
	"strings"
	"time"

	"pos-service/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// DashboardLowStockThreshold counts products with stock strictly below it on the dashboard
	DashboardLowStockThreshold = 10
	// InventoryLowStockThreshold counts products with stock strictly below it in the inventory summary
	InventoryLowStockThreshold = 20

	isoDate = "2006-01-02"
)

// ComputeDashboardStats summarises every sale and product.
// Transactions only counts sales dated on now's calendar day.
func ComputeDashboardStats(products []model.Product, sales []model.Sale, now time.Time) model.DashboardStats {
	today := now.Format(isoDate)

	revenue := decimal.Zero
	profit := decimal.Zero
	taxes := decimal.Zero
	transactions := 0

	for _, sale := range sales {
		total := decimal.NewFromFloat(sale.Total)
		revenue = revenue.Add(total)
		taxes = taxes.Add(decimal.NewFromFloat(sale.Tax))

		cost := decimal.Zero
		for _, item := range sale.Items {
			cost = cost.Add(lineValue(item.Cost, item.Quantity))
		}
		profit = profit.Add(total.Sub(cost))

		if saleDay(sale.Date) == today {
			transactions++
		}
	}

	inventoryValue := decimal.Zero
	lowStock := 0
	for _, p := range products {
		inventoryValue = inventoryValue.Add(lineValue(p.Price, p.Stock))
		if p.Stock < DashboardLowStockThreshold {
			lowStock++
		}
	}

	avgSale := decimal.Zero
	if len(sales) > 0 {
		avgSale = revenue.Div(decimal.NewFromInt(int64(len(sales))))
	}

	return model.DashboardStats{
		Revenue:        revenue.InexactFloat64(),
		Profit:         profit.InexactFloat64(),
		Taxes:          taxes.InexactFloat64(),
		Transactions:   transactions,
		Products:       len(products),
		InventoryValue: inventoryValue.InexactFloat64(),
		LowStock:       lowStock,
		AvgSale:        avgSale.InexactFloat64(),
	}
}

// ComputeInventorySummary values stock at cost. products is returned as given.
func ComputeInventorySummary(products []model.Product) model.InventoryResponse {
	totalValue := decimal.Zero
	lowStock := 0
	totalUnits := 0

	for _, p := range products {
		totalValue = totalValue.Add(lineValue(p.Cost, p.Stock))
		totalUnits += p.Stock
		if p.Stock < InventoryLowStockThreshold {
			lowStock++
		}
	}

	if products == nil {
		products = []model.Product{}
	}

	return model.InventoryResponse{
		TotalProducts: len(products),
		TotalValue:    totalValue.InexactFloat64(),
		LowStock:      lowStock,
		TotalUnits:    totalUnits,
		Products:      products,
	}
}

func lineValue(amount float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(int64(quantity)))
}

// saleDay is the calendar part of an ISO-8601 timestamp
func saleDay(date string) string {
	day, _, _ := strings.Cut(date, "T")
	return day
}
