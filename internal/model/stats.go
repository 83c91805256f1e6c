package model

// DashboardStats is the computed summary behind the dashboard view
type DashboardStats struct {
	Revenue        float64 `json:"revenue"`
	Profit         float64 `json:"profit"`
	Taxes          float64 `json:"taxes"`
	Transactions   int     `json:"transactions"`
	Products       int     `json:"products"`
	InventoryValue float64 `json:"inventoryValue"`
	LowStock       int     `json:"lowStock"`
	AvgSale        float64 `json:"avgSale"`
}

// InventoryResponse is the inventory summary plus the full product list
type InventoryResponse struct {
	TotalProducts int       `json:"totalProducts"`
	TotalValue    float64   `json:"totalValue"`
	LowStock      int       `json:"lowStock"`
	TotalUnits    int       `json:"totalUnits"`
	Products      []Product `json:"products"`
}
