package inventory

import "time"

// Event is a domain event emitted by the warehouse aggregate. Events are
// handed to the caller together with the new state and published only after
// the transaction commits; observers are fire-and-forget.
type Event interface {
	EventName() string
}

// WarehouseCreated is emitted when a warehouse is created.
type WarehouseCreated struct {
	WarehouseID string    `json:"warehouse_id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (WarehouseCreated) EventName() string { return "warehouse.created" }

// WarehouseUpdated is emitted when a warehouse's name or address changes.
type WarehouseUpdated struct {
	WarehouseID string    `json:"warehouse_id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (WarehouseUpdated) EventName() string { return "warehouse.updated" }

// WarehouseDeleted is emitted when a warehouse and its stock lines are
// deleted. Movement records are retained for audit.
type WarehouseDeleted struct {
	WarehouseID string    `json:"warehouse_id"`
	TenantID    string    `json:"tenant_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (WarehouseDeleted) EventName() string { return "warehouse.deleted" }

// StockAdded is emitted when a new stock line is created in a warehouse.
type StockAdded struct {
	WarehouseID string    `json:"warehouse_id"`
	StockLineID string    `json:"stock_line_id"`
	VariantID   string    `json:"variant_id"`
	DeltaQty    int64     `json:"delta_qty"`
	MovementID  string    `json:"movement_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (StockAdded) EventName() string { return "stock.added" }

// StockUpdated is emitted on every stock line update, including
// metadata-only changes that produce no movement record.
type StockUpdated struct {
	WarehouseID string    `json:"warehouse_id"`
	StockLineID string    `json:"stock_line_id"`
	VariantID   string    `json:"variant_id"`
	DeltaQty    int64     `json:"delta_qty"`
	MovementID  string    `json:"movement_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (StockUpdated) EventName() string { return "stock.updated" }

// StockRemoved is emitted when a stock line is tombstoned (quantity zeroed,
// row retained so history stays attributable).
type StockRemoved struct {
	WarehouseID string    `json:"warehouse_id"`
	StockLineID string    `json:"stock_line_id"`
	VariantID   string    `json:"variant_id"`
	DeltaQty    int64     `json:"delta_qty"`
	MovementID  string    `json:"movement_id"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (StockRemoved) EventName() string { return "stock.removed" }
