package repository

import (
	"context"

	"github.com/jforero/kardex-api/internal/domain/entity"
)

// WarehouseFilter filtros de listado de bodegas.
type WarehouseFilter struct {
	Q      string // busca en name, code y description
	Active *bool
	Limit  int
	Offset int
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// Create y Update devuelven domain.ErrDuplicateCode ante colisión de code.
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	List(ctx context.Context, filter WarehouseFilter) ([]*entity.Warehouse, int, error)
	// ListActiveExcept lista bodegas activas distintas de excludeID,
	// ordenadas por (code, name) para una resolución de destino determinista.
	ListActiveExcept(ctx context.Context, excludeID string) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id string) error
}
