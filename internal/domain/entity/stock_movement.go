package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeIN     = "IN"     // entrada
	MovementTypeOUT    = "OUT"    // salida
	MovementTypeADJUST = "ADJUST" // ajuste absoluto (set)
)

// ValidMovementType indica si el tipo es uno de los soportados.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT || t == MovementTypeADJUST
}

// StockMovement es una entrada inmutable del kardex de un (item, bodega).
// Nunca se actualiza ni se borra; la única mutación sancionada es la
// reasignación de WarehouseID durante la purga de una bodega, dentro de la
// misma transacción que elimina la bodega.
//
// Qty: para IN/OUT es un delta positivo; para ADJUST es el delta con signo
// calculado contra el stock al momento de escribir (auditoría). ToStock
// solo aplica a ADJUST y es el valor absoluto al que queda el stock.
type StockMovement struct {
	ID             string
	Seq            int64 // desempate monotónico dentro de un mismo timestamp
	ItemID         string
	WarehouseID    string
	Type           string
	Qty            decimal.Decimal
	ToStock        *decimal.Decimal // solo ADJUST
	Note           string
	TransferID     string // correlaciona el par OUT+IN de una transferencia
	IdempotencyKey string // opcional, rechaza reintentos duplicados
	CreatedBy      string
	CreatedAt      time.Time
}
