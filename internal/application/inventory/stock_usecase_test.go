package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgudino/stock-ledger-api/internal/application/dto"
	appinventory "github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain"
	"github.com/mgudino/stock-ledger-api/internal/domain/entity"
	domaininventory "github.com/mgudino/stock-ledger-api/internal/domain/inventory"
	"github.com/mgudino/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	warehouses map[string]*entity.Warehouse
	lines      map[string]*entity.StockLine
	movements  []*entity.MovementRecord

	// onLocked runs after GetForUpdate, simulating a concurrent commit that
	// lands between the caller's read and write.
	onLocked func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		warehouses: map[string]*entity.Warehouse{},
		lines:      map[string]*entity.StockLine{},
	}
}

type fakeWarehouseRepo struct{ s *fakeStore }

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id, tenantID string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok || w.TenantID != tenantID {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.TenantID == tenantID {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id, _ string) error {
	delete(r.s.warehouses, id)
	for lineID, l := range r.s.lines {
		if l.WarehouseID == id {
			delete(r.s.lines, lineID)
		}
	}
	return nil
}

func (r *fakeWarehouseRepo) ListLineRefs(_ context.Context, warehouseID string) ([]entity.StockLineRef, error) {
	var refs []entity.StockLineRef
	for _, l := range r.s.lines {
		if l.WarehouseID == warehouseID {
			refs = append(refs, entity.StockLineRef{ID: l.ID, VariantID: l.VariantID})
		}
	}
	return refs, nil
}

type fakeLineRepo struct{ s *fakeStore }

var _ repository.StockLineRepository = (*fakeLineRepo)(nil)

func (r *fakeLineRepo) Get(_ context.Context, id, warehouseID string) (*entity.StockLine, error) {
	l, ok := r.s.lines[id]
	if !ok || l.WarehouseID != warehouseID {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *fakeLineRepo) GetForUpdate(ctx context.Context, id, warehouseID string) (*entity.StockLine, error) {
	l, err := r.Get(ctx, id, warehouseID)
	if r.s.onLocked != nil {
		r.s.onLocked()
	}
	return l, err
}

func (r *fakeLineRepo) Insert(_ context.Context, line *entity.StockLine) error {
	cp := *line
	r.s.lines[line.ID] = &cp
	return nil
}

func (r *fakeLineRepo) Update(_ context.Context, line *entity.StockLine, expectedVersion int64) error {
	stored, ok := r.s.lines[line.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != expectedVersion {
		return fmt.Errorf("%w: stock line %s version %d is stale", domain.ErrConflict, line.ID, expectedVersion)
	}
	cp := *line
	cp.Version = expectedVersion + 1
	r.s.lines[line.ID] = &cp
	line.Version = cp.Version
	return nil
}

func (r *fakeLineRepo) ListByWarehouse(_ context.Context, warehouseID string, _, _ int) ([]*entity.StockLine, error) {
	var out []*entity.StockLine
	for _, l := range r.s.lines {
		if l.WarehouseID == warehouseID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *fakeStore }

var _ repository.MovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.MovementRecord) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.MovementRecord, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) Query(_ context.Context, warehouseID string, filter entity.MovementFilter, limit, offset int) ([]*entity.MovementRecord, int, error) {
	var matched []*entity.MovementRecord
	for _, m := range r.s.movements {
		if m.WarehouseID != warehouseID {
			continue
		}
		if filter.StockLineID != "" && m.StockLineID != filter.StockLineID {
			continue
		}
		if filter.ActorID != "" && m.CreatedByID != filter.ActorID {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// fakeTxRunner runs the callback against the shared store, restoring the
// pre-transaction state when the callback fails (rollback semantics).
type fakeTxRunner struct{ s *fakeStore }

var _ appinventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockLineRepository, repository.MovementRepository) error) error {
	linesBackup := make(map[string]*entity.StockLine, len(r.s.lines))
	for k, v := range r.s.lines {
		cp := *v
		linesBackup[k] = &cp
	}
	movementsBackup := append([]*entity.MovementRecord(nil), r.s.movements...)

	if err := fn(&fakeLineRepo{s: r.s}, &fakeMovementRepo{s: r.s}); err != nil {
		r.s.lines = linesBackup
		r.s.movements = movementsBackup
		return err
	}
	return nil
}

type capturePublisher struct {
	events []domaininventory.Event
}

var _ appinventory.EventPublisher = (*capturePublisher)(nil)

func (p *capturePublisher) Publish(_ context.Context, events ...domaininventory.Event) {
	p.events = append(p.events, events...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testTenantID = "tenant-1"
	testActorID  = "actor-1"
)

type fixture struct {
	store     *fakeStore
	publisher *capturePublisher
	uc        *appinventory.StockUseCase
	warehouse entity.Warehouse
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newFakeStore()
	publisher := &capturePublisher{}
	uc := appinventory.NewStockUseCase(
		&fakeTxRunner{s: store},
		&fakeWarehouseRepo{s: store},
		&fakeLineRepo{s: store},
		publisher,
	)
	wh := entity.Warehouse{
		ID:        "warehouse-1",
		TenantID:  testTenantID,
		Name:      "Central",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.warehouses[wh.ID] = &wh
	return &fixture{store: store, publisher: publisher, uc: uc, warehouse: wh}
}

func (f *fixture) addLine(t *testing.T, qty int64) dto.StockLineResponse {
	t.Helper()
	out, err := f.uc.AddStock(context.Background(), testTenantID, f.warehouse.ID, testActorID, dto.AddStockRequest{
		VariantID:    "variant-1",
		QtyAvailable: qty,
		Reason:       "initial intake",
	})
	require.NoError(t, err)
	return out.Line
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock mutations
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_PersistsLineAndMovementTogether(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.AddStock(context.Background(), testTenantID, f.warehouse.ID, testActorID, dto.AddStockRequest{
		VariantID:    "variant-1",
		QtyAvailable: 100,
		Reason:       "initial intake",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100), out.Line.QtyAvailable)
	require.NotNil(t, out.Movement)
	assert.Equal(t, int64(100), out.Movement.DeltaQty)

	require.Len(t, f.store.lines, 1)
	require.Len(t, f.store.movements, 1)
	assert.Equal(t, out.Line.ID, f.store.movements[0].StockLineID)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "stock.added", f.publisher.events[0].EventName())
}

func TestAddStock_ValidationFailureLeavesNoTrace(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.AddStock(context.Background(), testTenantID, f.warehouse.ID, testActorID, dto.AddStockRequest{
		VariantID:    "variant-1",
		QtyAvailable: -10,
		Reason:       "bad input",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.store.lines)
	assert.Empty(t, f.store.movements)
	assert.Empty(t, f.publisher.events)
}

func TestAddStock_UnknownWarehouse(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddStock(context.Background(), testTenantID, "missing", testActorID, dto.AddStockRequest{
		VariantID: "variant-1", QtyAvailable: 1, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddStock_WrongTenantSeesNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddStock(context.Background(), "other-tenant", f.warehouse.ID, testActorID, dto.AddStockRequest{
		VariantID: "variant-1", QtyAvailable: 1, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStock_RecordsDelta(t *testing.T) {
	f := newFixture(t)
	line := f.addLine(t, 100)
	f.publisher.events = nil

	newQty := int64(80)
	out, err := f.uc.UpdateStock(context.Background(), testTenantID, f.warehouse.ID, line.ID, testActorID, dto.UpdateStockRequest{
		QtyAvailable: &newQty,
		Reason:       "damaged units removed",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(80), out.Line.QtyAvailable)
	require.NotNil(t, out.Movement)
	assert.Equal(t, int64(-20), out.Movement.DeltaQty)

	// Version moved on so the next stale write is rejected.
	assert.Equal(t, int64(2), out.Line.Version)
	assert.Equal(t, int64(2), f.store.lines[line.ID].Version)

	require.Len(t, f.store.movements, 2)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "stock.updated", f.publisher.events[0].EventName())
}

func TestUpdateStock_MetadataOnlyCreatesNoMovement(t *testing.T) {
	f := newFixture(t)
	line := f.addLine(t, 80)

	lot := "LOT-42"
	out, err := f.uc.UpdateStock(context.Background(), testTenantID, f.warehouse.ID, line.ID, testActorID, dto.UpdateStockRequest{
		LotNumber: &lot,
		Reason:    "relocated lot",
	})
	require.NoError(t, err)

	assert.Nil(t, out.Movement)
	require.Len(t, f.store.movements, 1, "only the addStock movement exists")
	require.NotNil(t, f.store.lines[line.ID].LotNumber)
	assert.Equal(t, "LOT-42", *f.store.lines[line.ID].LotNumber)
}

func TestUpdateStock_ConcurrentCommitYieldsConflict(t *testing.T) {
	f := newFixture(t)
	line := f.addLine(t, 100)
	f.publisher.events = nil

	// A concurrent writer commits between this caller's read and write.
	f.store.onLocked = func() {
		f.store.onLocked = nil
		stored := f.store.lines[line.ID]
		stored.Version++
	}

	newQty := int64(80)
	_, err := f.uc.UpdateStock(context.Background(), testTenantID, f.warehouse.ID, line.ID, testActorID, dto.UpdateStockRequest{
		QtyAvailable: &newQty,
		Reason:       "stale write",
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Rollback: no movement was kept, no event published, quantity intact.
	require.Len(t, f.store.movements, 1)
	assert.Empty(t, f.publisher.events)
	assert.Equal(t, int64(100), f.store.lines[line.ID].GetQtyAvailable())
}

func TestUpdateStock_UnknownLine(t *testing.T) {
	f := newFixture(t)
	qty := int64(5)
	_, err := f.uc.UpdateStock(context.Background(), testTenantID, f.warehouse.ID, "missing", testActorID, dto.UpdateStockRequest{
		QtyAvailable: &qty, Reason: "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveStock_TombstonesAndRecords(t *testing.T) {
	f := newFixture(t)
	line := f.addLine(t, 80)
	f.publisher.events = nil

	out, err := f.uc.RemoveStock(context.Background(), testTenantID, f.warehouse.ID, line.ID, testActorID, "discontinued")
	require.NoError(t, err)

	assert.Zero(t, out.Line.QtyAvailable)
	require.NotNil(t, out.Movement)
	assert.Equal(t, int64(-80), out.Movement.DeltaQty)

	// The line row survives as a tombstone.
	require.Contains(t, f.store.lines, line.ID)
	assert.Zero(t, f.store.lines[line.ID].GetQtyAvailable())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "stock.removed", f.publisher.events[0].EventName())
}

func TestLedgerQuery_FiltersAndPaginates(t *testing.T) {
	f := newFixture(t)
	line := f.addLine(t, 100)
	for _, qty := range []int64{90, 70, 120} {
		q := qty
		_, err := f.uc.UpdateStock(context.Background(), testTenantID, f.warehouse.ID, line.ID, testActorID, dto.UpdateStockRequest{
			QtyAvailable: &q,
			Reason:       "cycle count",
		})
		require.NoError(t, err)
	}

	ledger := appinventory.NewLedgerUseCase(&fakeWarehouseRepo{s: f.store}, &fakeMovementRepo{s: f.store})

	out, err := ledger.Query(context.Background(), testTenantID, f.warehouse.ID, dto.MovementQueryRequest{
		StockLineID: line.ID,
		PageRequest: dto.PageRequest{Limit: 2},
	})
	require.NoError(t, err)

	assert.Len(t, out.Items, 2)
	assert.Equal(t, 4, out.Page.Total)
	assert.True(t, out.Page.HasMore)

	// Sum over the full ledger equals the current quantity.
	all, err := ledger.Query(context.Background(), testTenantID, f.warehouse.ID, dto.MovementQueryRequest{
		StockLineID: line.ID,
		PageRequest: dto.PageRequest{Limit: 100},
	})
	require.NoError(t, err)
	var sum int64
	for _, m := range all.Items {
		sum += m.DeltaQty
	}
	assert.Equal(t, f.store.lines[line.ID].GetQtyAvailable(), sum)
}

func TestLedgerQuery_UnknownWarehouse(t *testing.T) {
	f := newFixture(t)
	ledger := appinventory.NewLedgerUseCase(&fakeWarehouseRepo{s: f.store}, &fakeMovementRepo{s: f.store})
	_, err := ledger.Query(context.Background(), testTenantID, "missing", dto.MovementQueryRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
