package usecase

import (
	"context"
	"time"

	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	appinventory "github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
	domaininventory "github.com/mgudino/stock-ledger-api/internal/domain/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/repository"
)

// WarehouseUseCase covers the warehouse lifecycle: create, rename,
// list, delete. Stock mutations never flow through here.
type WarehouseUseCase struct {
	repo      repository.WarehouseRepository
	publisher appinventory.EventPublisher
}

// NewWarehouseUseCase builds the use case.
func NewWarehouseUseCase(repo repository.WarehouseRepository, publisher appinventory.EventPublisher) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, publisher: publisher}
}

// Create creates a warehouse scoped to the tenant.
func (uc *WarehouseUseCase) Create(ctx context.Context, tenantID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	agg, events, err := domaininventory.New(in.Name, in.AddressID, tenantID, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, &agg.Warehouse); err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, events...)
	return toWarehouseResponse(&agg.Warehouse, 0), nil
}

// GetByID returns a warehouse with its stock line count.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id, tenantID string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	refs, err := uc.repo.ListLineRefs(ctx, wh.ID)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh, len(refs)), nil
}

// Update renames or re-addresses a warehouse.
func (uc *WarehouseUseCase) Update(ctx context.Context, id, tenantID string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	agg := domaininventory.Warehouse{Warehouse: *wh}
	next, events, err := agg.Update(entity.WarehousePatch{Name: in.Name, AddressID: in.AddressID}, time.Now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, &next.Warehouse); err != nil {
		return nil, err
	}
	uc.publisher.Publish(ctx, events...)
	return toWarehouseResponse(&next.Warehouse, 0), nil
}

// List lists warehouses for a tenant, newest first.
func (uc *WarehouseUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w, 0))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete removes a warehouse and cascades to its stock lines. Movement
// records are retained for audit.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id, tenantID string) error {
	wh, err := uc.repo.GetByID(ctx, id, tenantID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id, tenantID); err != nil {
		return err
	}
	uc.publisher.Publish(ctx, domaininventory.WarehouseDeleted{
		WarehouseID: wh.ID,
		TenantID:    wh.TenantID,
		OccurredAt:  time.Now(),
	})
	return nil
}

func toWarehouseResponse(w *entity.Warehouse, lineCount int) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:         w.ID,
		TenantID:   w.TenantID,
		Name:       w.Name,
		AddressID:  w.AddressID,
		StockLines: lineCount,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}
