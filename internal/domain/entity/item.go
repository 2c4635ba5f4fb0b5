package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo rastreable en inventario. El stock no vive aquí:
// se deriva siempre del kardex de movimientos.
type Item struct {
	ID        string
	Name      string
	Category  string // opcional
	Unit      string // opcional (unidad de medida)
	MinStock  decimal.Decimal
	Active    bool
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
