package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ItemUseCase CRUD de items de inventario. El borrado por defecto es lógico
// (active=false); el borrado físico solo procede con kardex vacío.
type ItemUseCase struct {
	repo    repository.ItemRepository
	movRepo repository.MovementRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, movRepo repository.MovementRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, movRepo: movRepo}
}

// Create crea un item. name es obligatorio y minStock >= 0.
func (uc *ItemUseCase) Create(ctx context.Context, actor string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	minStock := decimal.Zero
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		minStock = *in.MinStock
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}

	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Unit:      strings.TrimSpace(in.Unit),
		MinStock:  minStock,
		Active:    active,
		CreatedBy: actor,
		UpdatedBy: actor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un item por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza los campos presentes del item.
func (uc *ItemUseCase) Update(ctx context.Context, id, actor string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		item.Name = name
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	item.UpdatedBy = actor
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Deactivate baja lógica del item (active=false).
func (uc *ItemUseCase) Deactivate(ctx context.Context, id, actor string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	item.Active = false
	item.UpdatedBy = actor
	item.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, item)
}

// Purge borra físicamente un item solo si no tiene movimientos en ninguna bodega.
func (uc *ItemUseCase) Purge(ctx context.Context, id string) error {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	n, err := uc.movRepo.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrItemHasMoves
	}
	return uc.repo.Delete(ctx, id)
}

// List lista items con filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter) (*dto.ItemListResponse, error) {
	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Unit:      it.Unit,
		MinStock:  it.MinStock,
		Active:    it.Active,
		CreatedBy: it.CreatedBy,
		UpdatedBy: it.UpdatedBy,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}
