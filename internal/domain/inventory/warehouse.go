package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

// DefaultRemovalReason documents a tombstone movement when the caller
// supplies no reason of their own.
const DefaultRemovalReason = "variant no longer stocked in this warehouse"

// Warehouse is the aggregate root of the stock engine: the only entry point
// through which stock lines are added, mutated or removed. All operations
// are pure state transitions; they return the new state, the paired
// movement record and the emitted events, and the caller hands line and
// movement to the repository for one atomic commit.
type Warehouse struct {
	entity.Warehouse

	// Lines is a summary index (id + variant) of the stock lines owned by
	// this warehouse. Full line detail is fetched lazily per operation.
	Lines []entity.StockLineRef
}

// StockChange is the result of a stock mutation: the new aggregate state,
// the new stock line value, the movement record explaining the quantity
// delta (nil for metadata-only updates) and the events to publish after
// commit.
type StockChange struct {
	Warehouse Warehouse
	Line      entity.StockLine
	Movement  *entity.MovementRecord
	Events    []Event
}

// New creates a warehouse with a fresh id and an empty stock set.
func New(name, addressID, tenantID string, now time.Time) (Warehouse, []Event, error) {
	if name == "" {
		return Warehouse{}, nil, fmt.Errorf("%w: warehouse name is required", domain.ErrInvalidInput)
	}
	if tenantID == "" {
		return Warehouse{}, nil, fmt.Errorf("%w: tenant id is required", domain.ErrInvalidInput)
	}
	w := Warehouse{
		Warehouse: entity.Warehouse{
			ID:        uuid.New().String(),
			TenantID:  tenantID,
			Name:      name,
			AddressID: addressID,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	events := []Event{WarehouseCreated{
		WarehouseID: w.ID,
		TenantID:    w.TenantID,
		Name:        w.Name,
		OccurredAt:  now,
	}}
	return w, events, nil
}

// Update replaces name and/or address and bumps UpdatedAt. Stock is never
// mutated through this path.
func (w Warehouse) Update(patch entity.WarehousePatch, now time.Time) (Warehouse, []Event, error) {
	next := w
	if patch.Name != nil {
		if *patch.Name == "" {
			return Warehouse{}, nil, fmt.Errorf("%w: warehouse name cannot be empty", domain.ErrInvalidInput)
		}
		next.Name = *patch.Name
	}
	if patch.AddressID != nil {
		next.AddressID = *patch.AddressID
	}
	next.UpdatedAt = now
	events := []Event{WarehouseUpdated{
		WarehouseID: next.ID,
		TenantID:    next.TenantID,
		Name:        next.Name,
		OccurredAt:  now,
	}}
	return next, events, nil
}

// AddStock creates a stock line scoped to this warehouse. The warehouse id
// in the base is overwritten, never trusted. The initial delta is the full
// available quantity, since the line did not exist before.
func (w Warehouse) AddStock(base entity.StockLineBase, reason, actorID string, now time.Time) (StockChange, error) {
	base.WarehouseID = w.ID
	line, err := entity.NewStockLine(base, now)
	if err != nil {
		return StockChange{}, err
	}
	mov, err := entity.NewMovementRecord(line.GetQtyAvailable(), reason, w.ID, line.ID, actorID, now, now)
	if err != nil {
		return StockChange{}, err
	}
	next := w
	next.Lines = append(append([]entity.StockLineRef(nil), w.Lines...), entity.StockLineRef{ID: line.ID, VariantID: line.VariantID})
	return StockChange{
		Warehouse: next,
		Line:      line,
		Movement:  &mov,
		Events: []Event{StockAdded{
			WarehouseID: w.ID,
			StockLineID: line.ID,
			VariantID:   line.VariantID,
			DeltaQty:    mov.DeltaQty,
			MovementID:  mov.ID,
			OccurredAt:  now,
		}},
	}, nil
}

// UpdateStock applies a functional update to one of this warehouse's lines
// and pairs it with a movement record carrying the available-quantity
// delta. A zero delta (metadata-only change) produces no movement record.
func (w Warehouse) UpdateStock(line entity.StockLine, patch entity.StockLinePatch, reason, actorID string, now time.Time) (StockChange, error) {
	if err := w.owns(line); err != nil {
		return StockChange{}, err
	}
	next, err := line.Apply(patch, now)
	if err != nil {
		return StockChange{}, err
	}
	delta := next.GetQtyAvailable() - line.GetQtyAvailable()

	change := StockChange{Warehouse: w, Line: next}
	if delta != 0 {
		mov, err := entity.NewMovementRecord(delta, reason, w.ID, line.ID, actorID, now, now)
		if err != nil {
			return StockChange{}, err
		}
		change.Movement = &mov
	}
	ev := StockUpdated{
		WarehouseID: w.ID,
		StockLineID: line.ID,
		VariantID:   line.VariantID,
		DeltaQty:    delta,
		OccurredAt:  now,
	}
	if change.Movement != nil {
		ev.MovementID = change.Movement.ID
	}
	change.Events = []Event{ev}
	return change, nil
}

// RemoveStock tombstones a line: quantity goes to zero, the row stays so
// historical movements remain attributable. Exactly one movement record is
// created even when the line already held zero units.
func (w Warehouse) RemoveStock(line entity.StockLine, reason, actorID string, now time.Time) (StockChange, error) {
	if err := w.owns(line); err != nil {
		return StockChange{}, err
	}
	if reason == "" {
		reason = DefaultRemovalReason
	}
	next := line
	next.QtyAvailable = 0
	next.QtyReserved = 0
	next.UpdatedAt = now

	mov, err := entity.NewMovementRecord(-line.GetQtyAvailable(), reason, w.ID, line.ID, actorID, now, now)
	if err != nil {
		return StockChange{}, err
	}
	return StockChange{
		Warehouse: w,
		Line:      next,
		Movement:  &mov,
		Events: []Event{StockRemoved{
			WarehouseID: w.ID,
			StockLineID: line.ID,
			VariantID:   line.VariantID,
			DeltaQty:    mov.DeltaQty,
			MovementID:  mov.ID,
			OccurredAt:  now,
		}},
	}, nil
}

// owns verifies the line belongs to this warehouse. Foreign lines are
// reported as not found, not as a distinct error, so callers cannot probe
// other warehouses' stock.
func (w Warehouse) owns(line entity.StockLine) error {
	if line.WarehouseID != w.ID {
		return fmt.Errorf("%w: stock line %s does not belong to warehouse %s", domain.ErrNotFound, line.ID, w.ID)
	}
	return nil
}
