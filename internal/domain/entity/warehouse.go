package entity

import (
	"strings"
	"time"
)

// Códigos convencionales que identifican la bodega principal al resolver
// el destino de una purga sin target explícito.
var PrimaryWarehouseCodes = []string{"PRINCIPAL", "BODEGA_PRINCIPAL", "BODEGA_1"}

// Warehouse representa una bodega donde se separa stock y movimientos.
type Warehouse struct {
	ID          string
	Code        string // único, normalizado a mayúsculas
	Name        string
	Description string
	Active      bool
	IsPrimary   bool // pista de destino por defecto en purgas
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeCode normaliza un code de bodega: trim + mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// HasPrimaryCode indica si el code de la bodega es uno de los convencionales
// de bodega principal.
func (w *Warehouse) HasPrimaryCode() bool {
	for _, c := range PrimaryWarehouseCodes {
		if w.Code == c {
			return true
		}
	}
	return false
}
