package inventory

import (
	"context"
	"sort"

	"github.com/jforero/kardex-api/internal/domain/repository"
)

// LowStockUseCase barrido de solo-lectura: items activos cuyo stock está en o
// bajo su umbral mínimo. Reporte consultivo, tolera lecturas obsoletas frente
// a escritores concurrentes.
type LowStockUseCase struct {
	stock    *StockUseCase
	itemRepo repository.ItemRepository
}

// NewLowStockUseCase construye el scanner.
func NewLowStockUseCase(stock *StockUseCase, itemRepo repository.ItemRepository) *LowStockUseCase {
	return &LowStockUseCase{stock: stock, itemRepo: itemRepo}
}

// ScanFilter filtros del barrido de stock bajo.
type ScanFilter struct {
	Q           string
	Category    string
	WarehouseID string // vacío = stock agregado sobre todas las bodegas
}

// Scan devuelve los items activos con stock <= minStock, ordenados por stock
// ascendente y luego nombre. Recorre el catálogo completo: una alerta no puede
// perderse por paginación.
func (uc *LowStockUseCase) Scan(ctx context.Context, filter ScanFilter) ([]ItemStock, error) {
	active := true
	items, err := listAllItems(ctx, uc.itemRepo, repository.ItemFilter{
		Q:        filter.Q,
		Category: filter.Category,
		Active:   &active,
	})
	if err != nil {
		return nil, err
	}

	alerts := make([]ItemStock, 0)
	for _, it := range items {
		stock, err := uc.stock.stockCached(ctx, it.ID, filter.WarehouseID)
		if err != nil {
			return nil, err
		}
		if stock.LessThanOrEqual(it.MinStock) {
			alerts = append(alerts, ItemStock{Item: it, Stock: stock})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if !alerts[i].Stock.Equal(alerts[j].Stock) {
			return alerts[i].Stock.LessThan(alerts[j].Stock)
		}
		return alerts[i].Item.Name < alerts[j].Item.Name
	})
	return alerts, nil
}
