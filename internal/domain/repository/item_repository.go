package repository

import (
	"context"

	"github.com/jforero/kardex-api/internal/domain/entity"
)

// ItemFilter filtros de listado de items.
type ItemFilter struct {
	Q        string // busca en name y category (case-insensitive)
	Category string
	Active   *bool
	Limit    int
	Offset   int
}

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, int, error)
	Delete(ctx context.Context, id string) error
}
