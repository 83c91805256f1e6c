package model

// Product is a catalog entry identified by its barcode
type Product struct {
	Barcode  string  `json:"barcode" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price" validate:"gt=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
}
