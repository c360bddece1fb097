package entity

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mgudino/stock-ledger-api/internal/domain"
)

// MaxReasonLength bounds the free-text reason on a movement record.
const MaxReasonLength = 10_000

// MovementRecord is an immutable audit fact: at warehouse W, stock line S
// changed by delta D, for reason R, caused by actor A, at time T. Records
// are append-only; corrections are new compensating records, never edits.
type MovementRecord struct {
	ID          string
	WarehouseID string
	StockLineID string
	DeltaQty    int64  // positive = increase, negative = decrease; zero allowed
	Reason      string
	CreatedByID string // optional actor id, empty when system-generated
	OccurredAt  time.Time
	CreatedAt   time.Time
}

// NewMovementRecord validates and builds a movement record. occurredAt may
// be backdated; the zero time defaults to now.
func NewMovementRecord(deltaQty int64, reason, warehouseID, stockLineID, createdByID string, occurredAt, now time.Time) (MovementRecord, error) {
	if deltaQty > MaxQuantity || deltaQty < -MaxQuantity {
		return MovementRecord{}, fmt.Errorf("%w: movement delta %d out of bounds", domain.ErrInvalidInput, deltaQty)
	}
	if reason == "" {
		return MovementRecord{}, fmt.Errorf("%w: movement reason is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return MovementRecord{}, fmt.Errorf("%w: movement reason exceeds %d characters", domain.ErrInvalidInput, MaxReasonLength)
	}
	if warehouseID == "" {
		return MovementRecord{}, fmt.Errorf("%w: warehouse id is required", domain.ErrInvalidInput)
	}
	if stockLineID == "" {
		return MovementRecord{}, fmt.Errorf("%w: stock line id is required", domain.ErrInvalidInput)
	}
	if occurredAt.IsZero() {
		occurredAt = now
	}
	return MovementRecord{
		ID:          uuid.New().String(),
		WarehouseID: warehouseID,
		StockLineID: stockLineID,
		DeltaQty:    deltaQty,
		Reason:      reason,
		CreatedByID: createdByID,
		OccurredAt:  occurredAt,
		CreatedAt:   now,
	}, nil
}

// MovementFilter narrows ledger queries. Nil/empty fields match everything.
type MovementFilter struct {
	StockLineID string
	VariantID   string
	ActorID     string
	From        *time.Time
	To          *time.Time
}
