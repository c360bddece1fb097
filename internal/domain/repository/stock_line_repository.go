package repository

import (
	"context"

	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

// StockLineRepository is the persistence port for stock lines. Used inside
// transactions to guarantee that a quantity change and its movement record
// commit together.
type StockLineRepository interface {
	// Get returns (nil, nil) when the line does not exist in the given
	// warehouse.
	Get(ctx context.Context, id, warehouseID string) (*entity.StockLine, error)
	// GetForUpdate locks the row (SELECT ... FOR UPDATE) so concurrent
	// mutations of the same line serialize on the database.
	GetForUpdate(ctx context.Context, id, warehouseID string) (*entity.StockLine, error)
	Insert(ctx context.Context, line *entity.StockLine) error
	// Update writes the new line state only if the stored version matches
	// expectedVersion, and bumps the version. A stale version returns
	// domain.ErrConflict (lost-update guard).
	Update(ctx context.Context, line *entity.StockLine, expectedVersion int64) error
	ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLine, error)
}
