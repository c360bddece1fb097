package entity

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mgudino/stock-ledger-api/internal/domain"
)

// StockLine is the current quantity snapshot for one (variant, warehouse)
// pair. It is owned exclusively by its warehouse: construction and mutation
// go through the inventory.Warehouse aggregate, never through this package's
// callers directly.
type StockLine struct {
	ID          string
	VariantID   string // immutable after creation
	WarehouseID string // immutable after creation

	QtyAvailable Quantity
	QtyReserved  Quantity

	// Optional logistics metadata.
	ProductLocation            *string
	LotNumber                  *string
	SerialNumbers              []string
	EstimatedReplenishmentDate *time.Time

	// Version guards against lost updates at the repository boundary.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockLineBase is the creation input for a stock line. The warehouse id is
// always overwritten by the owning aggregate.
type StockLineBase struct {
	VariantID                  string
	WarehouseID                string
	QtyAvailable               int64
	QtyReserved                int64
	ProductLocation            *string
	LotNumber                  *string
	SerialNumbers              []string
	EstimatedReplenishmentDate *time.Time
}

// StockLinePatch is a partial update. Nil fields are left unchanged;
// SerialNumbers replaces the whole set when non-nil.
type StockLinePatch struct {
	QtyAvailable               *int64
	QtyReserved                *int64
	ProductLocation            *string
	LotNumber                  *string
	SerialNumbers              []string
	EstimatedReplenishmentDate *time.Time
}

// NewStockLine validates base and builds a stock line with a fresh id.
func NewStockLine(base StockLineBase, now time.Time) (StockLine, error) {
	if base.VariantID == "" {
		return StockLine{}, fmt.Errorf("%w: variant id is required", domain.ErrInvalidInput)
	}
	if base.WarehouseID == "" {
		return StockLine{}, fmt.Errorf("%w: warehouse id is required", domain.ErrInvalidInput)
	}
	available, err := NewQuantity(base.QtyAvailable)
	if err != nil {
		return StockLine{}, err
	}
	reserved, err := NewQuantity(base.QtyReserved)
	if err != nil {
		return StockLine{}, err
	}
	if reserved > available {
		return StockLine{}, fmt.Errorf("%w: reserved %d exceeds available %d", domain.ErrInvalidInput, reserved, available)
	}
	if base.EstimatedReplenishmentDate != nil && !base.EstimatedReplenishmentDate.After(now) {
		return StockLine{}, fmt.Errorf("%w: estimated replenishment date must be in the future", domain.ErrInvalidInput)
	}
	return StockLine{
		ID:                         uuid.New().String(),
		VariantID:                  base.VariantID,
		WarehouseID:                base.WarehouseID,
		QtyAvailable:               available,
		QtyReserved:                reserved,
		ProductLocation:            base.ProductLocation,
		LotNumber:                  base.LotNumber,
		SerialNumbers:              normalizeSerials(base.SerialNumbers),
		EstimatedReplenishmentDate: base.EstimatedReplenishmentDate,
		Version:                    1,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}, nil
}

// Apply returns a new StockLine with only the patched fields replaced.
// It never mutates the receiver; the caller computes quantity deltas by
// comparing the line before and after.
func (s StockLine) Apply(patch StockLinePatch, now time.Time) (StockLine, error) {
	next := s
	if patch.QtyAvailable != nil {
		q, err := NewQuantity(*patch.QtyAvailable)
		if err != nil {
			return StockLine{}, err
		}
		next.QtyAvailable = q
	}
	if patch.QtyReserved != nil {
		q, err := NewQuantity(*patch.QtyReserved)
		if err != nil {
			return StockLine{}, err
		}
		next.QtyReserved = q
	}
	if next.QtyReserved > next.QtyAvailable {
		return StockLine{}, fmt.Errorf("%w: reserved %d exceeds available %d", domain.ErrInvalidInput, next.QtyReserved, next.QtyAvailable)
	}
	if patch.ProductLocation != nil {
		next.ProductLocation = patch.ProductLocation
	}
	if patch.LotNumber != nil {
		next.LotNumber = patch.LotNumber
	}
	if patch.SerialNumbers != nil {
		next.SerialNumbers = normalizeSerials(patch.SerialNumbers)
	}
	if patch.EstimatedReplenishmentDate != nil {
		if !patch.EstimatedReplenishmentDate.After(now) {
			return StockLine{}, fmt.Errorf("%w: estimated replenishment date must be in the future", domain.ErrInvalidInput)
		}
		next.EstimatedReplenishmentDate = patch.EstimatedReplenishmentDate
	}
	next.UpdatedAt = now
	return next, nil
}

// GetQtyAvailable returns the available count.
func (s StockLine) GetQtyAvailable() int64 {
	return s.QtyAvailable.Value()
}

// GetQtyReserved returns the reserved count.
func (s StockLine) GetQtyReserved() int64 {
	return s.QtyReserved.Value()
}

// normalizeSerials deduplicates and sorts serial numbers (set semantics).
func normalizeSerials(serials []string) []string {
	if serials == nil {
		return nil
	}
	out := make([]string, 0, len(serials))
	for _, s := range serials {
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}
