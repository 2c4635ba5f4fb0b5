package inventory

import (
	"context"
	"fmt"

	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/ledger"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// itemPageSize tamaño de página para recorrer el catálogo completo.
const itemPageSize = 200

// listAllItems agota el listado paginado del catálogo. Resúmenes y alertas
// cubren todos los items que cumplen el filtro, no una sola página.
func listAllItems(ctx context.Context, itemRepo repository.ItemRepository, filter repository.ItemFilter) ([]*entity.Item, error) {
	filter.Limit = itemPageSize
	filter.Offset = 0
	all := make([]*entity.Item, 0)
	for {
		batch, _, err := itemRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < itemPageSize {
			return all, nil
		}
		filter.Offset += itemPageSize
	}
}

// stockForPair calcula el stock actual de un (item, bodega) por replay.
// Una falla de lectura se reporta como ErrStockUnavailable, nunca como 0.
func stockForPair(ctx context.Context, movRepo repository.MovementRepository, itemID, warehouseID string) (decimal.Decimal, error) {
	moves, err := movRepo.ListForPair(ctx, itemID, warehouseID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrStockUnavailable, err)
	}
	return ledger.Replay(moves), nil
}

// stockAggregated calcula el stock total de un item sumando el replay de cada
// bodega por separado. El replay es por par: un ADJUST solo fija el valor de
// su propia bodega, por eso no se puede replay-ear la mezcla.
func stockAggregated(ctx context.Context, movRepo repository.MovementRepository, itemID string) (decimal.Decimal, error) {
	moves, err := movRepo.ListForItem(ctx, itemID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrStockUnavailable, err)
	}
	byWarehouse := make(map[string][]entity.StockMovement)
	for _, m := range moves {
		byWarehouse[m.WarehouseID] = append(byWarehouse[m.WarehouseID], m)
	}
	total := decimal.Zero
	for _, seq := range byWarehouse {
		total = total.Add(ledger.Replay(seq))
	}
	return total, nil
}
