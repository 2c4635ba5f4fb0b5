package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/inventory/moves.
// qty aplica a IN/OUT (delta > 0); to aplica a ADJUST (valor absoluto >= 0).
type CreateMovementRequest struct {
	ItemID         string           `json:"itemId"`
	WarehouseID    string           `json:"warehouseId"`
	Type           string           `json:"type"`
	Qty            *decimal.Decimal `json:"qty"`
	To             *decimal.Decimal `json:"to"`
	Note           string           `json:"note"`
	IdempotencyKey string           `json:"idempotencyKey"`
}

// CreateTransferRequest body para POST /api/inventory/transfers.
type CreateTransferRequest struct {
	ItemID          string           `json:"itemId"`
	FromWarehouseID string           `json:"fromWarehouseId"`
	ToWarehouseID   string           `json:"toWarehouseId"`
	Qty             *decimal.Decimal `json:"qty"`
	Note            string           `json:"note"`
	IdempotencyKey  string           `json:"idempotencyKey"`
}

// MovementResponse salida de un movimiento del kardex.
type MovementResponse struct {
	ID          string           `json:"id"`
	ItemID      string           `json:"itemId"`
	WarehouseID string           `json:"warehouseId"`
	Type        string           `json:"type"`
	Qty         decimal.Decimal  `json:"qty"`
	To          *decimal.Decimal `json:"to,omitempty"`
	Note        string           `json:"note,omitempty"`
	TransferID  string           `json:"transferId,omitempty"`
	CreatedBy   string           `json:"createdBy,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// TransferResponse resultado de una transferencia atómica entre bodegas.
type TransferResponse struct {
	TransferID string           `json:"transferId"`
	OutMove    MovementResponse `json:"outMove"`
	InMove     MovementResponse `json:"inMove"`
}

// StockResponse stock actual de un item (opcionalmente por bodega).
type StockResponse struct {
	ItemID      string          `json:"itemId"`
	WarehouseID string          `json:"warehouseId,omitempty"`
	Stock       decimal.Decimal `json:"stock"`
}

// StockSummaryResponse resumen de stock por item.
type StockSummaryResponse struct {
	Items []ItemStockResponse `json:"items"`
}

// LowStockResponse items en o bajo su umbral mínimo.
type LowStockResponse struct {
	Items []ItemStockResponse `json:"items"`
}
