package model

import (
	"errors"
	"fmt"
)

// AdjustmentType is the kind of manual stock correction
type AdjustmentType string

const (
	AdjustAdd    AdjustmentType = "add"
	AdjustRemove AdjustmentType = "remove"
	AdjustSet    AdjustmentType = "set"
)

var (
	// ErrUnknownAdjustment is returned for adjustment types other than add, remove and set
	ErrUnknownAdjustment = errors.New("invalid adjustment type")
	// ErrNegativeQuantity is returned when an adjustment or decrement carries a quantity below zero
	ErrNegativeQuantity = errors.New("quantity must be non-negative")
)

// StockAdjustment is a request to change a product's stock level
type StockAdjustment struct {
	Barcode  string         `json:"barcode" validate:"required"`
	Type     AdjustmentType `json:"type"`
	Quantity int            `json:"quantity" validate:"gte=0"`
}

// Check validates the type and quantity without touching any stock
func (a StockAdjustment) Check() error {
	switch a.Type {
	case AdjustAdd, AdjustRemove, AdjustSet:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAdjustment, a.Type)
	}
	if a.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// NextStock computes the stock level after applying a to current.
// Stock never drops below zero.
func NextStock(current int, a StockAdjustment) (int, error) {
	if err := a.Check(); err != nil {
		return current, err
	}

	switch a.Type {
	case AdjustAdd:
		return current + a.Quantity, nil
	case AdjustRemove:
		return max(0, current-a.Quantity), nil
	default:
		return a.Quantity, nil
	}
}

// Decrement returns the adjustment a sale of quantity units applies to a product
func Decrement(barcode string, quantity int) StockAdjustment {
	return StockAdjustment{Barcode: barcode, Type: AdjustRemove, Quantity: quantity}
}
