package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido hace de base de datos, y el
// fakeTxRunner emula la semántica transaccional real (escrituras staged que
// se comprometen o descartan juntas, escritores serializados).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu         sync.Mutex
	txMu       sync.Mutex // serializa transacciones, como el advisory lock
	items      map[string]*entity.Item
	warehouses map[string]*entity.Warehouse
	movements  []entity.StockMovement
	nextSeq    int64
}

func newMemStore() *memStore {
	return &memStore{
		items:      make(map[string]*entity.Item),
		warehouses: make(map[string]*entity.Warehouse),
		nextSeq:    1,
	}
}

func (s *memStore) addItem(id, name string, minStock decimal.Decimal) *entity.Item {
	it := &entity.Item{ID: id, Name: name, MinStock: minStock, Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.mu.Lock()
	s.items[id] = it
	s.mu.Unlock()
	return it
}

func (s *memStore) addWarehouse(id, code, name string) *entity.Warehouse {
	w := &entity.Warehouse{ID: id, Code: code, Name: name, Active: true, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.mu.Lock()
	s.warehouses[id] = w
	s.mu.Unlock()
	return w
}

func (s *memStore) movementsOf(itemID, warehouseID string) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, 0)
	for _, m := range s.movements {
		if (itemID == "" || m.ItemID == itemID) && (warehouseID == "" || m.WarehouseID == warehouseID) {
			out = append(out, m)
		}
	}
	return out
}

// fakeItemRepo lecturas del catálogo de items.
type fakeItemRepo struct{ store *memStore }

func (r *fakeItemRepo) Create(_ context.Context, item *entity.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.Item) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) List(_ context.Context, filter repository.ItemFilter) ([]*entity.Item, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Item, 0)
	for _, it := range r.store.items {
		if filter.Active != nil && it.Active != *filter.Active {
			continue
		}
		if filter.Category != "" && it.Category != filter.Category {
			continue
		}
		if filter.Q != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(filter.Q)) {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	// Orden y paginación como el adaptador real (ORDER BY name, id LIMIT/OFFSET).
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	total := len(out)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			out = out[:0]
		} else {
			out = out[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.items, id)
	return nil
}

// fakeWarehouseRepo lecturas del catálogo de bodegas.
type fakeWarehouseRepo struct{ store *memStore }

func (r *fakeWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.warehouses {
		if existing.Code == w.Code {
			return domain.ErrDuplicateCode
		}
	}
	r.store.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.warehouses {
		if existing.ID != w.ID && existing.Code == w.Code {
			return domain.ErrDuplicateCode
		}
	}
	r.store.warehouses[w.ID] = w
	return nil
}

func (r *fakeWarehouseRepo) List(_ context.Context, _ repository.WarehouseFilter) ([]*entity.Warehouse, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Warehouse, 0, len(r.store.warehouses))
	for _, w := range r.store.warehouses {
		cp := *w
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *fakeWarehouseRepo) ListActiveExcept(_ context.Context, excludeID string) ([]*entity.Warehouse, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]*entity.Warehouse, 0)
	for _, w := range r.store.warehouses {
		if w.ID == excludeID || !w.Active {
			continue
		}
		cp := *w
		out = append(out, &cp)
	}
	// orden (code, name) como el repositorio real
	sort.Slice(out, func(i, j int) bool {
		if out[i].Code != out[j].Code {
			return out[i].Code < out[j].Code
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.warehouses, id)
	return nil
}

// fakeMovementRepo vista del kardex; staged acumula escrituras de la
// transacción en curso (nil fuera de transacción = lecturas directas).
type fakeMovementRepo struct {
	store  *memStore
	staged *[]entity.StockMovement
}

func (r *fakeMovementRepo) visible(itemID, warehouseID string) []entity.StockMovement {
	out := r.store.movementsOf(itemID, warehouseID)
	if r.staged != nil {
		for _, m := range *r.staged {
			if (itemID == "" || m.ItemID == itemID) && (warehouseID == "" || m.WarehouseID == warehouseID) {
				out = append(out, m)
			}
		}
	}
	return out
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if m.IdempotencyKey != "" {
		r.store.mu.Lock()
		for _, existing := range r.store.movements {
			if existing.IdempotencyKey == m.IdempotencyKey {
				r.store.mu.Unlock()
				return domain.ErrDuplicateRequest
			}
		}
		r.store.mu.Unlock()
		if r.staged != nil {
			for _, existing := range *r.staged {
				if existing.IdempotencyKey == m.IdempotencyKey {
					return domain.ErrDuplicateRequest
				}
			}
		}
	}
	if m.CreatedAt.IsZero() {
		// como el DEFAULT now() de la columna: el timestamp lo pone la persistencia
		m.CreatedAt = time.Now()
	}
	if r.staged == nil {
		r.store.mu.Lock()
		m.Seq = r.store.nextSeq
		r.store.nextSeq++
		r.store.movements = append(r.store.movements, *m)
		r.store.mu.Unlock()
		return nil
	}
	*r.staged = append(*r.staged, *m)
	return nil
}

func (r *fakeMovementRepo) ListForPair(_ context.Context, itemID, warehouseID string) ([]entity.StockMovement, error) {
	return r.visible(itemID, warehouseID), nil
}

func (r *fakeMovementRepo) ListForItem(_ context.Context, itemID string) ([]entity.StockMovement, error) {
	return r.visible(itemID, ""), nil
}

func (r *fakeMovementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	all := r.visible(filter.ItemID, filter.WarehouseID)
	out := make([]*entity.StockMovement, 0, len(all))
	for i := range all {
		m := all[i]
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.TransferID != "" && m.TransferID != filter.TransferID {
			continue
		}
		out = append(out, &m)
	}
	return out, len(out), nil
}

func (r *fakeMovementRepo) CountByItem(_ context.Context, itemID string) (int, error) {
	return len(r.visible(itemID, "")), nil
}

func (r *fakeMovementRepo) LockPair(_ context.Context, _, _ string) error {
	// La serialización la impone el fakeTxRunner con txMu.
	return nil
}

func (r *fakeMovementRepo) ReassignWarehouse(_ context.Context, fromID, toID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for i := range r.store.movements {
		if r.store.movements[i].WarehouseID == fromID {
			r.store.movements[i].WarehouseID = toID
			n++
		}
	}
	return n, nil
}

// fakeTxRunner emula BEGIN/COMMIT/ROLLBACK: las escrituras van a un buffer y
// se comprometen solo si fn devuelve nil. txMu serializa transacciones igual
// que el advisory lock por par serializa escritores reales.
type fakeTxRunner struct{ store *memStore }

func (tx *fakeTxRunner) Run(_ context.Context, fn func(repository.MovementRepository, repository.WarehouseRepository) error) error {
	tx.store.txMu.Lock()
	defer tx.store.txMu.Unlock()

	staged := make([]entity.StockMovement, 0, 2)
	movRepo := &fakeMovementRepo{store: tx.store, staged: &staged}
	whRepo := &fakeWarehouseRepo{store: tx.store}
	if err := fn(movRepo, whRepo); err != nil {
		return err // rollback: staged se descarta
	}
	tx.store.mu.Lock()
	for _, m := range staged {
		m.Seq = tx.store.nextSeq
		tx.store.nextSeq++
		tx.store.movements = append(tx.store.movements, m)
	}
	tx.store.mu.Unlock()
	return nil
}

// newTestMovement movimiento mínimo para sembrar el kardex en tests.
func newTestMovement(itemID, warehouseID, typ string, qty decimal.Decimal) *entity.StockMovement {
	return &entity.StockMovement{
		ID:          itemID + "-" + warehouseID + "-" + typ + "-" + qty.String(),
		ItemID:      itemID,
		WarehouseID: warehouseID,
		Type:        typ,
		Qty:         qty,
		CreatedAt:   time.Now(),
	}
}

// fakeCache registra invalidaciones para verificar el flujo de cache.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]decimal.Decimal
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]decimal.Decimal)}
}

func (c *fakeCache) Get(_ context.Context, itemID, warehouseID string) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[itemID+":"+warehouseID]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, itemID, warehouseID string, stock decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[itemID+":"+warehouseID] = stock
}

func (c *fakeCache) Invalidate(_ context.Context, itemID string, warehouseIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, wh := range warehouseIDs {
		delete(c.entries, itemID+":"+wh)
		c.invalidated = append(c.invalidated, itemID+":"+wh)
	}
	delete(c.entries, itemID+":")
}

func (c *fakeCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]decimal.Decimal)
	c.invalidated = append(c.invalidated, "*")
}
