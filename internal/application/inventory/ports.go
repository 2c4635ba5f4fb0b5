package inventory

import (
	"context"

	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la lectura de stock y el append
// del movimiento sean atómicos (commit o rollback completos).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}

// StockCache cache de solo-lectura para resúmenes y alertas. El replay del
// kardex sigue siendo la fuente de verdad: la cache nunca participa en la
// validación de escrituras y se invalida tras cada commit.
type StockCache interface {
	Get(ctx context.Context, itemID, warehouseID string) (decimal.Decimal, bool)
	Set(ctx context.Context, itemID, warehouseID string, stock decimal.Decimal)
	// Invalidate borra las entradas del item para las bodegas indicadas y su agregado.
	Invalidate(ctx context.Context, itemID string, warehouseIDs ...string)
	// InvalidateAll vacía la cache completa de stock. Se usa cuando una mutación
	// cruza muchos pares (item, bodega) a la vez, como la reasignación de la purga.
	InvalidateAll(ctx context.Context)
}
