package repository

import (
	"context"

	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
)

// MovementRepository is the persistence port for the append-only movement
// ledger. There are deliberately no update or delete methods: corrections
// are new compensating records.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.MovementRecord) error
	// GetByID returns (nil, nil) when the record does not exist.
	GetByID(ctx context.Context, id string) (*entity.MovementRecord, error)
	// Query lists committed records for a warehouse, newest first by
	// occurred_at, with the total count for pagination. Read path only;
	// read-committed is sufficient.
	Query(ctx context.Context, warehouseID string, filter entity.MovementFilter, limit, offset int) ([]*entity.MovementRecord, int, error)
}
