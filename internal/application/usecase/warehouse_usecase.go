package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/application/inventory"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

// WarehouseUseCase CRUD de bodegas más la purga (retiro) con reasignación
// atómica del kardex histórico a una bodega sobreviviente.
type WarehouseUseCase struct {
	repo     repository.WarehouseRepository
	txRunner inventory.TxRunner
	cache    inventory.StockCache // opcional (nil = sin cache)
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, txRunner inventory.TxRunner, cache inventory.StockCache) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, txRunner: txRunner, cache: cache}
}

// Create crea una bodega. code se normaliza a mayúsculas y debe ser único.
func (uc *WarehouseUseCase) Create(ctx context.Context, actor string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := entity.NormalizeCode(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	isPrimary := false
	if in.IsPrimary != nil {
		isPrimary = *in.IsPrimary
	}

	now := time.Now()
	wh := &entity.Warehouse{
		ID:          uuid.New().String(),
		Code:        code,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Active:      active,
		IsPrimary:   isPrimary,
		CreatedBy:   actor,
		UpdatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, id string) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(wh), nil
}

// Update actualiza los campos presentes. Un cambio de code no puede colisionar
// con otra bodega (el repo devuelve ErrDuplicateCode).
func (uc *WarehouseUseCase) Update(ctx context.Context, id, actor string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	wh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		wh.Name = name
	}
	if in.Code != nil {
		code := entity.NormalizeCode(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		wh.Code = code
	}
	if in.Description != nil {
		wh.Description = strings.TrimSpace(*in.Description)
	}
	if in.IsPrimary != nil {
		wh.IsPrimary = *in.IsPrimary
	}
	if in.Active != nil {
		wh.Active = *in.Active
	}
	wh.UpdatedBy = actor
	wh.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, wh); err != nil {
		return nil, err
	}
	return toWarehouseResponse(wh), nil
}

// Deactivate baja lógica de la bodega. No toca sus movimientos.
func (uc *WarehouseUseCase) Deactivate(ctx context.Context, id, actor string) error {
	wh, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	wh.Active = false
	wh.UpdatedBy = actor
	wh.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, wh)
}

// List lista bodegas con filtros y paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, filter repository.WarehouseFilter) (*dto.WarehouseListResponse, error) {
	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}, nil
}

// Purge elimina físicamente una bodega reasignando antes todo su kardex a una
// bodega destino, dentro de una sola transacción. Los timestamps y seq de los
// movimientos se preservan para que el replay de la línea fundida reproduzca
// el efecto neto de ambas historias.
//
// Resolución de destino: (1) target explícito (debe existir, estar activo y
// ser distinto), (2) bodega activa marcada primaria o con code convencional de
// principal, (3) cualquier otra activa ordenada por (code, name),
// (4) ErrNoTargetWarehouse.
func (uc *WarehouseUseCase) Purge(ctx context.Context, id, explicitTargetID string) (*dto.PurgeWarehouseResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrInvalidInput
	}
	if explicitTargetID != "" && explicitTargetID == id {
		return nil, domain.ErrInvalidInput
	}

	var result *dto.PurgeWarehouseResponse
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, whRepo repository.WarehouseRepository) error {
		toDelete, err := whRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if toDelete == nil {
			return domain.ErrNotFound
		}

		target, err := resolvePurgeTarget(ctx, whRepo, id, explicitTargetID)
		if err != nil {
			return err
		}

		reassigned, err := movRepo.ReassignWarehouse(ctx, id, target.ID)
		if err != nil {
			return err
		}
		if err := whRepo.Delete(ctx, id); err != nil {
			return err
		}
		result = &dto.PurgeWarehouseResponse{
			RemovedID:  id,
			TargetID:   target.ID,
			Reassigned: reassigned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// La reasignación cambia de bodega todo el histórico de muchos items a la
	// vez: se vacía la cache de stock completa tras el commit.
	if uc.cache != nil {
		uc.cache.InvalidateAll(ctx)
	}
	return result, nil
}

func resolvePurgeTarget(ctx context.Context, whRepo repository.WarehouseRepository, removeID, explicitTargetID string) (*entity.Warehouse, error) {
	if explicitTargetID != "" {
		target, err := whRepo.GetByID(ctx, explicitTargetID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, domain.ErrNotFound
		}
		if !target.Active {
			// destino apagado: entrada inválida, la bodega sí existe
			return nil, domain.ErrInvalidInput
		}
		return target, nil
	}

	candidates, err := whRepo.ListActiveExcept(ctx, removeID)
	if err != nil {
		return nil, err
	}
	// Primero la bodega principal (flag o code convencional); candidates ya
	// viene ordenado por (code, name).
	for _, w := range candidates {
		if w.IsPrimary || w.HasPrimaryCode() {
			return w, nil
		}
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return nil, domain.ErrNoTargetWarehouse
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:          w.ID,
		Code:        w.Code,
		Name:        w.Name,
		Description: w.Description,
		Active:      w.Active,
		IsPrimary:   w.IsPrimary,
		CreatedBy:   w.CreatedBy,
		UpdatedBy:   w.UpdatedBy,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}
