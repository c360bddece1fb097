package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction. It is the
// adapter behind the stock engine's atomic-commit contract: the stock line
// write and the movement insert either both commit or neither does.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, calls fn with repositories bound to it, and
// commits or rolls back as a unit.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lineRepo repository.StockLineRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lineRepo := NewStockLineRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(lineRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}

// Ensure the repos satisfy their ports whether bound to pool or tx.
var (
	_ repository.StockLineRepository = (*StockLineRepo)(nil)
	_ repository.MovementRepository  = (*MovementRepo)(nil)
	_ repository.WarehouseRepository = (*WarehouseRepo)(nil)
)

// SchemaDDL is the reference schema for the stock engine tables.
const SchemaDDL = `
CREATE TABLE IF NOT EXISTS warehouses (
    id          UUID PRIMARY KEY,
    tenant_id   UUID NOT NULL,
    name        TEXT NOT NULL,
    address_id  UUID,
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_warehouses_tenant ON warehouses (tenant_id);

CREATE TABLE IF NOT EXISTS stock_lines (
    id                           UUID PRIMARY KEY,
    variant_id                   UUID NOT NULL,
    warehouse_id                 UUID NOT NULL REFERENCES warehouses (id) ON DELETE CASCADE,
    qty_available                BIGINT NOT NULL CHECK (qty_available >= 0),
    qty_reserved                 BIGINT NOT NULL CHECK (qty_reserved >= 0),
    product_location             TEXT,
    lot_number                   TEXT,
    serial_numbers               TEXT[],
    estimated_replenishment_date TIMESTAMPTZ,
    version                      BIGINT NOT NULL,
    created_at                   TIMESTAMPTZ NOT NULL,
    updated_at                   TIMESTAMPTZ NOT NULL,
    UNIQUE (variant_id, warehouse_id)
);

-- Append-only; no FK to stock_lines so the ledger survives warehouse deletion.
CREATE TABLE IF NOT EXISTS stock_movements (
    id            UUID PRIMARY KEY,
    warehouse_id  UUID NOT NULL,
    stock_line_id UUID NOT NULL,
    delta_qty     BIGINT NOT NULL,
    reason        TEXT NOT NULL,
    created_by_id UUID,
    occurred_at   TIMESTAMPTZ NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stock_movements_wh_occurred ON stock_movements (warehouse_id, occurred_at DESC);
CREATE INDEX IF NOT EXISTS idx_stock_movements_line ON stock_movements (stock_line_id);
`

// EnsureSchema creates the tables when they do not exist yet. Intended for
// development and tests; production schemas go through migrations.
func (r *TxRunner) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, SchemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
