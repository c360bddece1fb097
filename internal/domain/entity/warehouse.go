package entity

import "time"

// Warehouse is one physical or logical storage location, scoped to exactly
// one tenant. Stock lines under it are referenced by id (summary index);
// full line detail is loaded per operation, not as an object graph.
type Warehouse struct {
	ID        string
	TenantID  string
	Name      string
	AddressID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockLineRef is the summary entry a warehouse keeps for each of its
// stock lines.
type StockLineRef struct {
	ID        string
	VariantID string
}

// WarehousePatch is a partial update for name/address. Stock is never
// touched through this path.
type WarehousePatch struct {
	Name      *string
	AddressID *string
}
