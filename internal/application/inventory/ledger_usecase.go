package inventory

import (
	"context"

	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
	"github.com/mgudino/stock-ledger-api/internal/domain/repository"
)

// LedgerUseCase is the read path over the movement ledger. No atomicity
// obligations beyond reading committed records.
type LedgerUseCase struct {
	warehouseRepo repository.WarehouseRepository
	movRepo       repository.MovementRepository
}

// NewLedgerUseCase builds the use case.
func NewLedgerUseCase(warehouseRepo repository.WarehouseRepository, movRepo repository.MovementRepository) *LedgerUseCase {
	return &LedgerUseCase{warehouseRepo: warehouseRepo, movRepo: movRepo}
}

// Query lists movement records for a warehouse, filtered and paginated,
// newest first.
func (uc *LedgerUseCase) Query(ctx context.Context, tenantID, warehouseID string, in dto.MovementQueryRequest) (*dto.MovementListResponse, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID, tenantID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	in.DefaultPage()
	records, total, err := uc.movRepo.Query(ctx, warehouseID, entity.MovementFilter{
		StockLineID: in.StockLineID,
		VariantID:   in.VariantID,
		ActorID:     in.ActorID,
		From:        in.From,
		To:          in.To,
	}, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(records))
	for _, m := range records {
		items = append(items, toMovementResponse(*m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page: dto.PageResponse{
			Limit:   in.Limit,
			Offset:  in.Offset,
			Total:   total,
			HasMore: in.Offset+len(items) < total,
		},
	}, nil
}

// GetByID reads one movement record, warehouse-scoped.
func (uc *LedgerUseCase) GetByID(ctx context.Context, tenantID, warehouseID, movementID string) (*dto.MovementResponse, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID, tenantID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	m, err := uc.movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.WarehouseID != warehouseID {
		return nil, domain.ErrNotFound
	}
	resp := toMovementResponse(*m)
	return &resp, nil
}
