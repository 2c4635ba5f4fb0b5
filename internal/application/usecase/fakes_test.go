package usecase_test

import (
	"context"
	"sort"
	"time"

	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Fakes mínimos del catálogo: mapas en memoria, sin concurrencia (estos casos
// de uso no compiten entre goroutines en los tests).

type memItemRepo struct {
	items map[string]*entity.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[string]*entity.Item)}
}

func (r *memItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]*entity.Item, int, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, it := range r.items {
		if filter.Active != nil && it.Active != *filter.Active {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *memItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type memWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newMemWarehouseRepo() *memWarehouseRepo {
	return &memWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
}

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	for _, existing := range r.warehouses {
		if existing.Code == w.Code {
			return domain.ErrDuplicateCode
		}
	}
	r.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	for _, existing := range r.warehouses {
		if existing.ID != w.ID && existing.Code == w.Code {
			return domain.ErrDuplicateCode
		}
	}
	r.warehouses[w.ID] = w
	return nil
}

func (r *memWarehouseRepo) List(_ context.Context, _ repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	out := make([]*entity.Warehouse, 0, len(r.warehouses))
	for _, w := range r.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, len(out), nil
}

func (r *memWarehouseRepo) ListActiveExcept(_ context.Context, excludeID string) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0)
	for _, w := range r.warehouses {
		if w.ID == excludeID || !w.Active {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *memWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.warehouses, id)
	return nil
}

// memMovementRepo solo implementa lo que el catálogo necesita: conteo por
// item y reasignación por bodega. El resto no se invoca desde estos tests.
type memMovementRepo struct {
	movements []entity.StockMovement
}

func (r *memMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memMovementRepo) ListForPair(_ context.Context, itemID, warehouseID string) ([]entity.StockMovement, error) {
	out := make([]entity.StockMovement, 0)
	for _, m := range r.movements {
		if m.ItemID == itemID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListForItem(_ context.Context, itemID string) ([]entity.StockMovement, error) {
	out := make([]entity.StockMovement, 0)
	for _, m := range r.movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) List(_ context.Context, _ repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	return nil, 0, nil
}

func (r *memMovementRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	n := 0
	for _, m := range r.movements {
		if m.ItemID == itemID {
			n++
		}
	}
	return n, nil
}

func (r *memMovementRepo) LockPair(_ context.Context, _, _ string) error { return nil }

func (r *memMovementRepo) ReassignWarehouse(_ context.Context, fromID, toID string) (int64, error) {
	var n int64
	for i := range r.movements {
		if r.movements[i].WarehouseID == fromID {
			r.movements[i].WarehouseID = toID
			n++
		}
	}
	return n, nil
}

// memTxRunner pasa los repos compartidos sin semántica de rollback: suficiente
// para probar la lógica de resolución de la purga.
type memTxRunner struct {
	movRepo *memMovementRepo
	whRepo  *memWarehouseRepo
}

func (tx *memTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.WarehouseRepository) error) error {
	return fn(tx.movRepo, tx.whRepo)
}

// memStockCache registra los vaciados para verificar la invalidación tras la purga.
type memStockCache struct {
	entries map[string]decimal.Decimal
	flushes int
}

func newMemStockCache() *memStockCache {
	return &memStockCache{entries: make(map[string]decimal.Decimal)}
}

func (c *memStockCache) Get(_ context.Context, itemID, warehouseID string) (decimal.Decimal, bool) {
	v, ok := c.entries[itemID+":"+warehouseID]
	return v, ok
}

func (c *memStockCache) Set(_ context.Context, itemID, warehouseID string, stock decimal.Decimal) {
	c.entries[itemID+":"+warehouseID] = stock
}

func (c *memStockCache) Invalidate(_ context.Context, itemID string, warehouseIDs ...string) {
	for _, wh := range warehouseIDs {
		delete(c.entries, itemID+":"+wh)
	}
	delete(c.entries, itemID+":")
}

func (c *memStockCache) InvalidateAll(_ context.Context) {
	c.entries = make(map[string]decimal.Decimal)
	c.flushes++
}
