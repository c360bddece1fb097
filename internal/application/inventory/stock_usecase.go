package inventory

import (
	"context"
	"time"

	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
	domaininventory "github.com/mgudino/stock-ledger-api/internal/domain/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/repository"
)

// StockUseCase drives the three stock mutations through the warehouse
// aggregate and commits each line change together with its movement record
// in one transaction. Events are published only after the commit succeeds.
type StockUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	lineRepo      repository.StockLineRepository
	publisher     EventPublisher
}

// NewStockUseCase builds the use case.
func NewStockUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	lineRepo repository.StockLineRepository,
	publisher EventPublisher,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		lineRepo:      lineRepo,
		publisher:     publisher,
	}
}

// AddStock creates a stock line in the warehouse plus the movement record
// documenting the initial quantity.
func (uc *StockUseCase) AddStock(ctx context.Context, tenantID, warehouseID, actorID string, in dto.AddStockRequest) (*dto.StockChangeResponse, error) {
	agg, err := uc.loadAggregate(ctx, warehouseID, tenantID)
	if err != nil {
		return nil, err
	}

	change, err := agg.AddStock(entity.StockLineBase{
		VariantID:                  in.VariantID,
		QtyAvailable:               in.QtyAvailable,
		QtyReserved:                in.QtyReserved,
		ProductLocation:            in.ProductLocation,
		LotNumber:                  in.LotNumber,
		SerialNumbers:              in.SerialNumbers,
		EstimatedReplenishmentDate: in.EstimatedReplenishmentDate,
	}, in.Reason, actorID, time.Now())
	if err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(lineRepo repository.StockLineRepository, movRepo repository.MovementRepository) error {
		if err := lineRepo.Insert(ctx, &change.Line); err != nil {
			return err
		}
		return movRepo.Create(ctx, change.Movement)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, change.Events...)
	return toStockChangeResponse(change), nil
}

// UpdateStock applies a partial update to a stock line. The row is locked
// for the duration of the transaction and the write is version-checked, so
// two concurrent updates against the same line cannot both commit from a
// stale base.
func (uc *StockUseCase) UpdateStock(ctx context.Context, tenantID, warehouseID, lineID, actorID string, in dto.UpdateStockRequest) (*dto.StockChangeResponse, error) {
	agg, err := uc.loadAggregate(ctx, warehouseID, tenantID)
	if err != nil {
		return nil, err
	}

	var change domaininventory.StockChange
	err = uc.txRunner.Run(ctx, func(lineRepo repository.StockLineRepository, movRepo repository.MovementRepository) error {
		line, err := lineRepo.GetForUpdate(ctx, lineID, warehouseID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		change, err = agg.UpdateStock(*line, entity.StockLinePatch{
			QtyAvailable:               in.QtyAvailable,
			QtyReserved:                in.QtyReserved,
			ProductLocation:            in.ProductLocation,
			LotNumber:                  in.LotNumber,
			SerialNumbers:              in.SerialNumbers,
			EstimatedReplenishmentDate: in.EstimatedReplenishmentDate,
		}, in.Reason, actorID, time.Now())
		if err != nil {
			return err
		}
		if err := lineRepo.Update(ctx, &change.Line, line.Version); err != nil {
			return err
		}
		if change.Movement != nil {
			return movRepo.Create(ctx, change.Movement)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, change.Events...)
	return toStockChangeResponse(change), nil
}

// RemoveStock tombstones a stock line: the quantity goes to zero and the
// row is retained so the ledger stays attributable. Always records exactly
// one movement, even for a line already at zero.
func (uc *StockUseCase) RemoveStock(ctx context.Context, tenantID, warehouseID, lineID, actorID, reason string) (*dto.StockChangeResponse, error) {
	agg, err := uc.loadAggregate(ctx, warehouseID, tenantID)
	if err != nil {
		return nil, err
	}

	var change domaininventory.StockChange
	err = uc.txRunner.Run(ctx, func(lineRepo repository.StockLineRepository, movRepo repository.MovementRepository) error {
		line, err := lineRepo.GetForUpdate(ctx, lineID, warehouseID)
		if err != nil {
			return err
		}
		if line == nil {
			return domain.ErrNotFound
		}
		change, err = agg.RemoveStock(*line, reason, actorID, time.Now())
		if err != nil {
			return err
		}
		if err := lineRepo.Update(ctx, &change.Line, line.Version); err != nil {
			return err
		}
		return movRepo.Create(ctx, change.Movement)
	})
	if err != nil {
		return nil, err
	}

	uc.publisher.Publish(ctx, change.Events...)
	return toStockChangeResponse(change), nil
}

// GetStockLine reads one line, tenant- and warehouse-scoped.
func (uc *StockUseCase) GetStockLine(ctx context.Context, tenantID, warehouseID, lineID string) (*dto.StockLineResponse, error) {
	if _, err := uc.loadWarehouse(ctx, warehouseID, tenantID); err != nil {
		return nil, err
	}
	line, err := uc.lineRepo.Get(ctx, lineID, warehouseID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStockLineResponse(*line)
	return &resp, nil
}

// ListStock lists the stock lines of a warehouse.
func (uc *StockUseCase) ListStock(ctx context.Context, tenantID, warehouseID string, page dto.PageRequest) (*dto.StockLineListResponse, error) {
	if _, err := uc.loadWarehouse(ctx, warehouseID, tenantID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	lines, err := uc.lineRepo.ListByWarehouse(ctx, warehouseID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, toStockLineResponse(*l))
	}
	return &dto.StockLineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *StockUseCase) loadWarehouse(ctx context.Context, warehouseID, tenantID string) (*entity.Warehouse, error) {
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID, tenantID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return wh, nil
}

// loadAggregate hydrates the warehouse aggregate with its stock line
// summary index only; full line detail is locked and loaded inside the
// mutation transaction.
func (uc *StockUseCase) loadAggregate(ctx context.Context, warehouseID, tenantID string) (domaininventory.Warehouse, error) {
	wh, err := uc.loadWarehouse(ctx, warehouseID, tenantID)
	if err != nil {
		return domaininventory.Warehouse{}, err
	}
	refs, err := uc.warehouseRepo.ListLineRefs(ctx, warehouseID)
	if err != nil {
		return domaininventory.Warehouse{}, err
	}
	return domaininventory.Warehouse{Warehouse: *wh, Lines: refs}, nil
}

func toStockChangeResponse(change domaininventory.StockChange) *dto.StockChangeResponse {
	resp := &dto.StockChangeResponse{Line: toStockLineResponse(change.Line)}
	if change.Movement != nil {
		m := toMovementResponse(*change.Movement)
		resp.Movement = &m
	}
	return resp
}

func toStockLineResponse(l entity.StockLine) dto.StockLineResponse {
	return dto.StockLineResponse{
		ID:                         l.ID,
		VariantID:                  l.VariantID,
		WarehouseID:                l.WarehouseID,
		QtyAvailable:               l.GetQtyAvailable(),
		QtyReserved:                l.GetQtyReserved(),
		ProductLocation:            l.ProductLocation,
		LotNumber:                  l.LotNumber,
		SerialNumbers:              l.SerialNumbers,
		EstimatedReplenishmentDate: l.EstimatedReplenishmentDate,
		Version:                    l.Version,
		CreatedAt:                  l.CreatedAt,
		UpdatedAt:                  l.UpdatedAt,
	}
}

func toMovementResponse(m entity.MovementRecord) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		WarehouseID: m.WarehouseID,
		StockLineID: m.StockLineID,
		DeltaQty:    m.DeltaQty,
		Reason:      m.Reason,
		CreatedByID: m.CreatedByID,
		OccurredAt:  m.OccurredAt,
		CreatedAt:   m.CreatedAt,
	}
}
