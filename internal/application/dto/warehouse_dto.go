package dto

import "time"

// CreateWarehouseRequest is the input to create a warehouse.
type CreateWarehouseRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	AddressID string `json:"address_id"`
}

// UpdateWarehouseRequest is the input to rename/re-address a warehouse.
// Stock is never mutated through this path.
type UpdateWarehouseRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	AddressID *string `json:"address_id"`
}

// WarehouseResponse is the external shape of a warehouse.
type WarehouseResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	Name       string    `json:"name"`
	AddressID  string    `json:"address_id"`
	StockLines int       `json:"stock_lines"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// WarehouseListResponse is a paginated list of warehouses.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
