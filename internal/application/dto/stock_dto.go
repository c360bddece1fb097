package dto

import "time"

// AddStockRequest is the body for POST /api/warehouses/:id/stock. The
// warehouse id always comes from the route, never from the body.
type AddStockRequest struct {
	VariantID                  string     `json:"variant_id" validate:"required"`
	QtyAvailable               int64      `json:"qty_available" validate:"min=0"`
	QtyReserved                int64      `json:"qty_reserved,omitempty" validate:"min=0"`
	ProductLocation            *string    `json:"product_location,omitempty"`
	LotNumber                  *string    `json:"lot_number,omitempty"`
	SerialNumbers              []string   `json:"serial_numbers,omitempty"`
	EstimatedReplenishmentDate *time.Time `json:"estimated_replenishment_date,omitempty"`
	Reason                     string     `json:"reason" validate:"required,max=10000"`
}

// UpdateStockRequest is the body for PUT /api/warehouses/:id/stock/:lineId.
// Omitted fields stay unchanged; a movement record is created only when the
// available quantity actually moves.
type UpdateStockRequest struct {
	QtyAvailable               *int64     `json:"qty_available,omitempty"`
	QtyReserved                *int64     `json:"qty_reserved,omitempty"`
	ProductLocation            *string    `json:"product_location,omitempty"`
	LotNumber                  *string    `json:"lot_number,omitempty"`
	SerialNumbers              []string   `json:"serial_numbers,omitempty"`
	EstimatedReplenishmentDate *time.Time `json:"estimated_replenishment_date,omitempty"`
	Reason                     string     `json:"reason" validate:"required,max=10000"`
}

// RemoveStockRequest is the body for DELETE /api/warehouses/:id/stock/:lineId.
// Reason is optional; a default tombstone reason is used when empty.
type RemoveStockRequest struct {
	Reason string `json:"reason,omitempty" validate:"max=10000"`
}

// StockLineResponse is the external shape of a stock line.
type StockLineResponse struct {
	ID                         string     `json:"id"`
	VariantID                  string     `json:"variant_id"`
	WarehouseID                string     `json:"warehouse_id"`
	QtyAvailable               int64      `json:"qty_available"`
	QtyReserved                int64      `json:"qty_reserved"`
	ProductLocation            *string    `json:"product_location,omitempty"`
	LotNumber                  *string    `json:"lot_number,omitempty"`
	SerialNumbers              []string   `json:"serial_numbers,omitempty"`
	EstimatedReplenishmentDate *time.Time `json:"estimated_replenishment_date,omitempty"`
	Version                    int64      `json:"version"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

// StockChangeResponse pairs the resulting line with the movement that
// explains the quantity delta (absent for metadata-only updates).
type StockChangeResponse struct {
	Line     StockLineResponse `json:"line"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// StockLineListResponse is a paginated list of stock lines.
type StockLineListResponse struct {
	Items []StockLineResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
