package dto

import "time"

// MovementQueryRequest filters the ledger query for a warehouse.
type MovementQueryRequest struct {
	StockLineID string     `query:"stock_line_id"`
	VariantID   string     `query:"variant_id"`
	ActorID     string     `query:"actor_id"`
	From        *time.Time `query:"from"`
	To          *time.Time `query:"to"`
	PageRequest
}

// MovementResponse is the external shape of a movement record.
type MovementResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	StockLineID string    `json:"stock_line_id"`
	DeltaQty    int64     `json:"delta_qty"`
	Reason      string    `json:"reason"`
	CreatedByID string    `json:"created_by_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovementListResponse is a paginated slice of the ledger.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
