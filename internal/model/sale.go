package model

// PaymentMethod is the closed set of tenders a sale can be paid with
type PaymentMethod string

const (
	PaymentCash    PaymentMethod = "cash"
	PaymentCard    PaymentMethod = "card"
	PaymentDigital PaymentMethod = "digital"
)

// Valid reports whether p is one of the accepted payment methods
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentDigital:
		return true
	}
	return false
}

// CartItem is a sale line: price and cost as sold, name, category and stock as the product is now.
type CartItem struct {
	Product  `validate:"-"`
	Quantity int `json:"quantity" validate:"gt=0"`
}

// Sale is an immutable record of a checkout
type Sale struct {
	ID            string        `json:"id" validate:"required"`
	Date          string        `json:"date" validate:"required"`
	Items         []CartItem    `json:"items" validate:"required,min=1,dive"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=cash card digital"`
}

// StockFailure describes a line item whose stock could not be decremented
type StockFailure struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
	Error    string `json:"error"`
}

// SaleResult is a recorded sale together with the stock decrements that failed
type SaleResult struct {
	Sale
	StockFailures []StockFailure `json:"stockFailures,omitempty"`
}
