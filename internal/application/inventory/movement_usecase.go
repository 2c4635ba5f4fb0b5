package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MovementUseCase registra movimientos del kardex (IN, OUT, ADJUST) de forma
// transaccional. Es el único escritor del kardex: lee el stock por replay y
// hace el append dentro de la misma transacción, serializada por (item, bodega)
// con un advisory lock para que dos OUT concurrentes no validen contra un
// stock obsoleto.
type MovementUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	cache         StockCache // opcional (nil = sin cache)
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	cache StockCache,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

// MovementInput entrada para registrar un movimiento.
// Qty aplica a IN/OUT (> 0). Target aplica a ADJUST (>= 0, valor absoluto).
type MovementInput struct {
	ItemID         string
	WarehouseID    string
	Qty            decimal.Decimal
	Target         decimal.Decimal
	Note           string
	IdempotencyKey string
	Actor          string
}

// RecordIn registra una entrada. No requiere chequeo de factibilidad.
func (uc *MovementUseCase) RecordIn(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := uc.validatePair(ctx, in.ItemID, in.WarehouseID); err != nil {
		return nil, err
	}
	if !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	mov := newMovement(in, entity.MovementTypeIN, in.Qty, nil)
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.WarehouseRepository) error {
		if err := movRepo.LockPair(ctx, in.ItemID, in.WarehouseID); err != nil {
			return err
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, in.ItemID, in.WarehouseID)
	return mov, nil
}

// RecordOut registra una salida. Lee el stock actual dentro de la transacción
// y rechaza con ErrStockNegative si el kardex quedaría bajo cero.
func (uc *MovementUseCase) RecordOut(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := uc.validatePair(ctx, in.ItemID, in.WarehouseID); err != nil {
		return nil, err
	}
	if !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	mov := newMovement(in, entity.MovementTypeOUT, in.Qty, nil)
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.WarehouseRepository) error {
		if err := movRepo.LockPair(ctx, in.ItemID, in.WarehouseID); err != nil {
			return err
		}
		current, err := stockForPair(ctx, movRepo, in.ItemID, in.WarehouseID)
		if err != nil {
			return err
		}
		if current.Sub(in.Qty).IsNegative() {
			return domain.ErrStockNegative
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, in.ItemID, in.WarehouseID)
	return mov, nil
}

// RecordAdjust registra un ajuste absoluto (set). Guarda el delta contra el
// stock al momento de escribir (auditoría) y el target al que queda el kardex.
func (uc *MovementUseCase) RecordAdjust(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := uc.validatePair(ctx, in.ItemID, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.Target.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.WarehouseRepository) error {
		if err := movRepo.LockPair(ctx, in.ItemID, in.WarehouseID); err != nil {
			return err
		}
		current, err := stockForPair(ctx, movRepo, in.ItemID, in.WarehouseID)
		if err != nil {
			return err
		}
		delta := in.Target.Sub(current)
		target := in.Target
		mov = newMovement(in, entity.MovementTypeADJUST, delta, &target)
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx, in.ItemID, in.WarehouseID)
	return mov, nil
}

// validatePair valida ids y existencia de item y bodega antes de abrir transacción.
func (uc *MovementUseCase) validatePair(ctx context.Context, itemID, warehouseID string) error {
	if strings.TrimSpace(itemID) == "" || strings.TrimSpace(warehouseID) == "" {
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if wh == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (uc *MovementUseCase) invalidate(ctx context.Context, itemID string, warehouseIDs ...string) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, itemID, warehouseIDs...)
	}
}

// newMovement arma el movimiento a insertar. seq y created_at los estampa la
// persistencia al hacer el append.
func newMovement(in MovementInput, typ string, qty decimal.Decimal, target *decimal.Decimal) *entity.StockMovement {
	return &entity.StockMovement{
		ID:             uuid.New().String(),
		ItemID:         in.ItemID,
		WarehouseID:    in.WarehouseID,
		Type:           typ,
		Qty:            qty,
		ToStock:        target,
		Note:           strings.TrimSpace(in.Note),
		IdempotencyKey: strings.TrimSpace(in.IdempotencyKey),
		CreatedBy:      in.Actor,
	}
}
