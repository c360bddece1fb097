package entity

import (
	"fmt"

	"github.com/mgudino/stock-ledger-api/internal/domain"
)

// MaxQuantity is the upper bound for any stored quantity. Movement deltas
// are bounded by ±MaxQuantity.
const MaxQuantity int64 = 999_999_999

// Quantity is a non-negative bounded integer count of units. Zero value is
// a valid quantity of 0; equality is by value.
type Quantity int64

// NewQuantity validates n and returns it as a Quantity.
func NewQuantity(n int64) (Quantity, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: quantity %d is negative", domain.ErrInvalidInput, n)
	}
	if n > MaxQuantity {
		return 0, fmt.Errorf("%w: quantity %d exceeds maximum %d", domain.ErrInvalidInput, n, MaxQuantity)
	}
	return Quantity(n), nil
}

// Add returns q+delta, re-validated. Fails instead of clamping.
func (q Quantity) Add(delta int64) (Quantity, error) {
	return NewQuantity(int64(q) + delta)
}

// Sub returns q-delta, re-validated. Fails instead of clamping.
func (q Quantity) Sub(delta int64) (Quantity, error) {
	return NewQuantity(int64(q) - delta)
}

// Value returns the underlying count.
func (q Quantity) Value() int64 {
	return int64(q)
}
