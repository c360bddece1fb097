package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

// WarehouseRepo implements repository.WarehouseRepository over PostgreSQL
// (usable with pool or tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository builds the warehouse persistence adapter.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persists a new warehouse.
func (r *WarehouseRepo) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, tenant_id, name, address_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.TenantID, warehouse.Name, nullableUUID(warehouse.AddressID),
		warehouse.CreatedAt, warehouse.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert warehouse", err)
	}
	return nil
}

// GetByID fetches a warehouse scoped to its tenant. Returns (nil, nil) when
// absent or owned by a different tenant.
func (r *WarehouseRepo) GetByID(ctx context.Context, id, tenantID string) (*entity.Warehouse, error) {
	query := `
		SELECT id, tenant_id, name, COALESCE(address_id::text, ''), created_at, updated_at
		FROM warehouses WHERE id = $1 AND tenant_id = $2`
	var w entity.Warehouse
	err := r.q.QueryRow(ctx, query, id, tenantID).Scan(
		&w.ID, &w.TenantID, &w.Name, &w.AddressID, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get warehouse", err)
	}
	return &w, nil
}

// Update rewrites name/address and updated_at.
func (r *WarehouseRepo) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	query := `
		UPDATE warehouses SET name = $2, address_id = $3, updated_at = $4
		WHERE id = $1 AND tenant_id = $5`
	_, err := r.q.Exec(ctx, query,
		warehouse.ID, warehouse.Name, nullableUUID(warehouse.AddressID), warehouse.UpdatedAt, warehouse.TenantID,
	)
	if err != nil {
		return storageErr("update warehouse", err)
	}
	return nil
}

// ListByTenant lists warehouses for a tenant, newest first.
func (r *WarehouseRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT id, tenant_id, name, COALESCE(address_id::text, ''), created_at, updated_at
		FROM warehouses WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, storageErr("list warehouses", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		if err := rows.Scan(&w.ID, &w.TenantID, &w.Name, &w.AddressID, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, storageErr("scan warehouse", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Delete removes the warehouse; stock lines cascade via FK. Movement
// records carry no FK and survive for audit.
func (r *WarehouseRepo) Delete(ctx context.Context, id, tenantID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM warehouses WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return storageErr("delete warehouse", err)
	}
	return nil
}

// ListLineRefs returns the stock line summary index for a warehouse.
func (r *WarehouseRepo) ListLineRefs(ctx context.Context, warehouseID string) ([]entity.StockLineRef, error) {
	query := `SELECT id, variant_id FROM stock_lines WHERE warehouse_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, storageErr("list line refs", err)
	}
	defer rows.Close()
	var refs []entity.StockLineRef
	for rows.Next() {
		var ref entity.StockLineRef
		if err := rows.Scan(&ref.ID, &ref.VariantID); err != nil {
			return nil, storageErr("scan line ref", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
