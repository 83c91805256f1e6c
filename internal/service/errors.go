// Package service holds the point-of-sale business rules on top of the store.
package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks a request rejected before anything was written
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
