package repository

import (
	"context"
	"time"

	"github.com/jforero/kardex-api/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	ItemID      string
	WarehouseID string
	TransferID  string
	Type        string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia del kardex.
// Los movimientos son append-only: no hay Update ni Delete individuales.
// Create devuelve domain.ErrDuplicateRequest si la idempotency key ya existe.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListForPair devuelve el kardex completo de un (item, bodega) en orden
	// de creación (created_at, seq). Es la entrada del replay.
	ListForPair(ctx context.Context, itemID, warehouseID string) ([]entity.StockMovement, error)
	// ListForItem devuelve todos los movimientos de un item (todas las bodegas)
	// en orden de creación, para stock agregado.
	ListForItem(ctx context.Context, itemID string) ([]entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
	// LockPair serializa escritores del mismo (item, bodega) dentro de la
	// transacción en curso (pg_advisory_xact_lock). Fuera de una tx no tiene efecto útil.
	LockPair(ctx context.Context, itemID, warehouseID string) error
	// ReassignWarehouse reasigna el histórico de una bodega a otra preservando
	// timestamps y seq. Única mutación sancionada de filas del kardex;
	// solo se usa dentro de la transacción de purga.
	ReassignWarehouse(ctx context.Context, fromWarehouseID, toWarehouseID string) (int64, error)
}
