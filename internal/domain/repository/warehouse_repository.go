package repository

import (
	"context"

	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

// WarehouseRepository is the persistence port for warehouses (DIP). All
// reads are tenant-scoped: a warehouse that exists under another tenant is
// reported as not found.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	// GetByID returns (nil, nil) when the warehouse does not exist for the
	// given tenant.
	GetByID(ctx context.Context, id, tenantID string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Warehouse, error)
	// Delete removes the warehouse and cascades to its stock lines.
	// Movement records are retained for audit.
	Delete(ctx context.Context, id, tenantID string) error
	// ListLineRefs returns the summary index of stock lines owned by a
	// warehouse (id + variant), used to hydrate the aggregate without
	// loading full line detail.
	ListLineRefs(ctx context.Context, warehouseID string) ([]entity.StockLineRef, error)
}
