package inventory

import (
	"context"

	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockUseCase rutas de lectura del kardex: stock puntual, resumen por item e
// histórico de movimientos. No toma locks: una lectura puede quedar obsoleta
// frente a escritores concurrentes, la consistencia se impone al escribir.
type StockUseCase struct {
	movRepo  repository.MovementRepository
	itemRepo repository.ItemRepository
	cache    StockCache
}

// NewStockUseCase construye el caso de uso de lecturas.
func NewStockUseCase(movRepo repository.MovementRepository, itemRepo repository.ItemRepository, cache StockCache) *StockUseCase {
	return &StockUseCase{movRepo: movRepo, itemRepo: itemRepo, cache: cache}
}

// StockOf devuelve el stock actual de un item, por bodega si warehouseID no es
// vacío o agregado sobre todas las bodegas si lo es.
func (uc *StockUseCase) StockOf(ctx context.Context, itemID, warehouseID string) (decimal.Decimal, error) {
	if itemID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return decimal.Zero, err
	}
	if item == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return uc.stockCached(ctx, itemID, warehouseID)
}

// ItemStock par (item, stock) para resúmenes y alertas.
type ItemStock struct {
	Item  *entity.Item
	Stock decimal.Decimal
}

// SummaryFilter filtros del resumen de stock.
type SummaryFilter struct {
	Q           string
	Category    string
	Active      *bool
	WarehouseID string
}

// Summary devuelve el stock actual de cada item que cumpla el filtro,
// ordenado por nombre (orden estable del listado de items). Recorre el
// catálogo completo: el resumen no corta en una página.
func (uc *StockUseCase) Summary(ctx context.Context, filter SummaryFilter) ([]ItemStock, error) {
	items, err := listAllItems(ctx, uc.itemRepo, repository.ItemFilter{
		Q:        filter.Q,
		Category: filter.Category,
		Active:   filter.Active,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ItemStock, 0, len(items))
	for _, it := range items {
		stock, err := uc.stockCached(ctx, it.ID, filter.WarehouseID)
		if err != nil {
			return nil, err
		}
		out = append(out, ItemStock{Item: it, Stock: stock})
	}
	return out, nil
}

// ListMovements histórico del kardex con filtros y paginación.
func (uc *StockUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, 0, domain.ErrInvalidInput
	}
	return uc.movRepo.List(ctx, filter)
}

// stockCached intenta la cache y cae al replay. El valor cacheado es
// consultivo: las escrituras lo invalidan tras cada commit.
func (uc *StockUseCase) stockCached(ctx context.Context, itemID, warehouseID string) (decimal.Decimal, error) {
	if uc.cache != nil {
		if v, ok := uc.cache.Get(ctx, itemID, warehouseID); ok {
			return v, nil
		}
	}
	var stock decimal.Decimal
	var err error
	if warehouseID != "" {
		stock, err = stockForPair(ctx, uc.movRepo, itemID, warehouseID)
	} else {
		stock, err = stockAggregated(ctx, uc.movRepo, itemID)
	}
	if err != nil {
		return decimal.Zero, err
	}
	if uc.cache != nil {
		uc.cache.Set(ctx, itemID, warehouseID, stock)
	}
	return stock, nil
}
