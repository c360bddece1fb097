package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

const movementColumns = `id, warehouse_id, stock_line_id, delta_qty, reason, created_by_id, occurred_at, created_at`

// MovementRepo implements repository.MovementRepository over PostgreSQL
// (usable with pool or tx). The table is append-only; this adapter issues
// no UPDATE or DELETE statements.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository builds the movement ledger adapter.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create appends one movement record.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.MovementRecord) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.WarehouseID, movement.StockLineID,
		movement.DeltaQty, movement.Reason, nullableUUID(movement.CreatedByID),
		movement.OccurredAt, movement.CreatedAt,
	)
	if err != nil {
		return storageErr("insert movement", err)
	}
	return nil
}

// GetByID fetches one record. Returns (nil, nil) when absent.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get movement", err)
	}
	return m, nil
}

// Query lists committed records for a warehouse, newest first by
// occurred_at, plus the unpaginated total. The variant filter joins through
// stock_lines since movements store only the line id.
func (r *MovementRepo) Query(ctx context.Context, warehouseID string, filter entity.MovementFilter, limit, offset int) ([]*entity.MovementRecord, int, error) {
	where := `WHERE m.warehouse_id = $1`
	args := []any{warehouseID}
	pos := 2
	if filter.StockLineID != "" {
		where += fmt.Sprintf(" AND m.stock_line_id = $%d", pos)
		args = append(args, filter.StockLineID)
		pos++
	}
	if filter.VariantID != "" {
		where += fmt.Sprintf(" AND m.stock_line_id IN (SELECT id FROM stock_lines WHERE variant_id = $%d)", pos)
		args = append(args, filter.VariantID)
		pos++
	}
	if filter.ActorID != "" {
		where += fmt.Sprintf(" AND m.created_by_id = $%d", pos)
		args = append(args, filter.ActorID)
		pos++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND m.occurred_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND m.occurred_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}

	var total int
	countQuery := `SELECT count(*) FROM stock_movements m ` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storageErr("count movements", err)
	}

	query := `SELECT m.id, m.warehouse_id, m.stock_line_id, m.delta_qty, m.reason,
			m.created_by_id, m.occurred_at, m.created_at
		FROM stock_movements m ` + where +
		fmt.Sprintf(" ORDER BY m.occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storageErr("query movements", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, 0, storageErr("scan movement", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.MovementRecord, error) {
	var m entity.MovementRecord
	var createdBy *string
	err := row.Scan(
		&m.ID, &m.WarehouseID, &m.StockLineID, &m.DeltaQty, &m.Reason,
		&createdBy, &m.OccurredAt, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if createdBy != nil {
		m.CreatedByID = *createdBy
	}
	return &m, nil
}
