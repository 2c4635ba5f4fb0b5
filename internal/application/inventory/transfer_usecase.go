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

// TransferUseCase compone dos appends del kardex (OUT en origen + IN en
// destino) en una sola unidad atómica. Nunca puede observarse una
// transferencia a medias: ambos movimientos se comprometen o ninguno.
type TransferUseCase struct {
	txRunner      TxRunner
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
	cache         StockCache
}

// NewTransferUseCase construye el coordinador de transferencias.
func NewTransferUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
	cache StockCache,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
		cache:         cache,
	}
}

// TransferInput entrada para transferir stock entre bodegas.
type TransferInput struct {
	ItemID          string
	FromWarehouseID string
	ToWarehouseID   string
	Qty             decimal.Decimal
	Note            string
	IdempotencyKey  string
	Actor           string
}

// TransferResult correlación y par de movimientos creados.
type TransferResult struct {
	TransferID string
	OutMove    *entity.StockMovement
	InMove     *entity.StockMovement
}

// Transfer valida, toma los locks de ambos pares (item, bodega) en orden
// determinista, verifica factibilidad en el origen y hace el doble append
// etiquetado con un transfer id fresco.
func (uc *TransferUseCase) Transfer(ctx context.Context, in TransferInput) (*TransferResult, error) {
	if strings.TrimSpace(in.ItemID) == "" ||
		strings.TrimSpace(in.FromWarehouseID) == "" ||
		strings.TrimSpace(in.ToWarehouseID) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.ErrSameWarehouse
	}
	if !in.Qty.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	fromWh, err := uc.warehouseRepo.GetByID(ctx, in.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toWh, err := uc.warehouseRepo.GetByID(ctx, in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if fromWh == nil || toWh == nil {
		return nil, domain.ErrNotFound
	}

	transferID := uuid.New().String()
	note := strings.TrimSpace(in.Note)
	idemKey := strings.TrimSpace(in.IdempotencyKey)

	outMov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ItemID:      in.ItemID,
		WarehouseID: in.FromWarehouseID,
		Type:        entity.MovementTypeOUT,
		Qty:         in.Qty,
		Note:        note,
		TransferID:  transferID,
		// La key solo va en el OUT: el par entero aborta si el insert choca.
		IdempotencyKey: idemKey,
		CreatedBy:      in.Actor,
	}
	inMov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ItemID:      in.ItemID,
		WarehouseID: in.ToWarehouseID,
		Type:        entity.MovementTypeIN,
		Qty:         in.Qty,
		Note:        note,
		TransferID:  transferID,
		CreatedBy:   in.Actor,
	}

	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, _ repository.WarehouseRepository) error {
		// Ambos locks en orden determinista para evitar deadlocks entre
		// transferencias cruzadas A→B y B→A.
		first, second := in.FromWarehouseID, in.ToWarehouseID
		if second < first {
			first, second = second, first
		}
		if err := movRepo.LockPair(ctx, in.ItemID, first); err != nil {
			return err
		}
		if err := movRepo.LockPair(ctx, in.ItemID, second); err != nil {
			return err
		}

		current, err := stockForPair(ctx, movRepo, in.ItemID, in.FromWarehouseID)
		if err != nil {
			return err
		}
		if current.Sub(in.Qty).IsNegative() {
			return domain.ErrStockNegative
		}
		if err := movRepo.Create(ctx, outMov); err != nil {
			return err
		}
		return movRepo.Create(ctx, inMov)
	})
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.ItemID, in.FromWarehouseID, in.ToWarehouseID)
	}
	return &TransferResult{TransferID: transferID, OutMove: outMov, InMove: inMov}, nil
}
