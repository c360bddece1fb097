package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

const stockLineColumns = `id, variant_id, warehouse_id, qty_available, qty_reserved,
		product_location, lot_number, serial_numbers, estimated_replenishment_date,
		version, created_at, updated_at`

// StockLineRepo implements repository.StockLineRepository over PostgreSQL
// (usable with pool or tx).
type StockLineRepo struct {
	q Querier
}

// NewStockLineRepository builds the stock line persistence adapter.
func NewStockLineRepository(q Querier) *StockLineRepo {
	return &StockLineRepo{q: q}
}

// Get fetches a line scoped to its warehouse. Returns (nil, nil) when absent.
func (r *StockLineRepo) Get(ctx context.Context, id, warehouseID string) (*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines WHERE id = $1 AND warehouse_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, warehouseID), "get stock line")
}

// GetForUpdate fetches a line and locks its row (SELECT ... FOR UPDATE) so
// concurrent mutations of the same line serialize on the database.
func (r *StockLineRepo) GetForUpdate(ctx context.Context, id, warehouseID string) (*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines WHERE id = $1 AND warehouse_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id, warehouseID), "get stock line for update")
}

// Insert persists a new line.
func (r *StockLineRepo) Insert(ctx context.Context, line *entity.StockLine) error {
	query := `
		INSERT INTO stock_lines (` + stockLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.VariantID, line.WarehouseID,
		line.GetQtyAvailable(), line.GetQtyReserved(),
		line.ProductLocation, line.LotNumber, line.SerialNumbers, line.EstimatedReplenishmentDate,
		line.Version, line.CreatedAt, line.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert stock line", err)
	}
	return nil
}

// Update writes the new line state only when the stored version still
// matches expectedVersion; zero affected rows means another transaction
// committed in between (domain.ErrConflict). On success the in-memory
// version is bumped to the stored value.
func (r *StockLineRepo) Update(ctx context.Context, line *entity.StockLine, expectedVersion int64) error {
	query := `
		UPDATE stock_lines
		SET qty_available = $3, qty_reserved = $4, product_location = $5, lot_number = $6,
		    serial_numbers = $7, estimated_replenishment_date = $8, version = $9, updated_at = $10
		WHERE id = $1 AND warehouse_id = $2 AND version = $11`
	cmd, err := r.q.Exec(ctx, query,
		line.ID, line.WarehouseID,
		line.GetQtyAvailable(), line.GetQtyReserved(),
		line.ProductLocation, line.LotNumber, line.SerialNumbers, line.EstimatedReplenishmentDate,
		expectedVersion+1, line.UpdatedAt, expectedVersion,
	)
	if err != nil {
		return storageErr("update stock line", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock line %s version %d is stale", domain.ErrConflict, line.ID, expectedVersion)
	}
	line.Version = expectedVersion + 1
	return nil
}

// ListByWarehouse lists a warehouse's lines, oldest first.
func (r *StockLineRepo) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLine, error) {
	query := `SELECT ` + stockLineColumns + ` FROM stock_lines
		WHERE warehouse_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, warehouseID, limit, offset)
	if err != nil {
		return nil, storageErr("list stock lines", err)
	}
	defer rows.Close()
	var list []*entity.StockLine
	for rows.Next() {
		line, err := scanStockLine(rows)
		if err != nil {
			return nil, storageErr("scan stock line", err)
		}
		list = append(list, line)
	}
	return list, rows.Err()
}

func (r *StockLineRepo) scanOne(row pgx.Row, op string) (*entity.StockLine, error) {
	line, err := scanStockLine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr(op, err)
	}
	return line, nil
}

func scanStockLine(row pgx.Row) (*entity.StockLine, error) {
	var (
		l         entity.StockLine
		available int64
		reserved  int64
	)
	err := row.Scan(
		&l.ID, &l.VariantID, &l.WarehouseID, &available, &reserved,
		&l.ProductLocation, &l.LotNumber, &l.SerialNumbers, &l.EstimatedReplenishmentDate,
		&l.Version, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.QtyAvailable = entity.Quantity(available)
	l.QtyReserved = entity.Quantity(reserved)
	return &l, nil
}
