// Package ledger implementa el cálculo de stock por replay del kardex.
// El stock actual de un (item, bodega) no se guarda: se deriva recorriendo
// sus movimientos en orden de creación.
package ledger

import (
	"sort"

	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Replay recorre movimientos en orden de creación y devuelve el stock
// resultante. Parte de 0; IN suma Qty, OUT resta Qty y ADJUST fija el valor
// en ToStock (set absoluto, no delta). El caller debe pasar los movimientos
// ya ordenados por (CreatedAt, Seq); SortMovements ayuda cuando no lo están.
func Replay(moves []entity.StockMovement) decimal.Decimal {
	stock := decimal.Zero
	for i := range moves {
		stock = apply(stock, &moves[i])
	}
	return stock
}

// ReplayPrefixes devuelve el stock después de cada prefijo de la secuencia.
// Útil para verificar la invariante de no-negatividad sobre historia comprometida.
func ReplayPrefixes(moves []entity.StockMovement) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(moves))
	stock := decimal.Zero
	for i := range moves {
		stock = apply(stock, &moves[i])
		out = append(out, stock)
	}
	return out
}

func apply(stock decimal.Decimal, m *entity.StockMovement) decimal.Decimal {
	switch m.Type {
	case entity.MovementTypeIN:
		return stock.Add(m.Qty)
	case entity.MovementTypeOUT:
		return stock.Sub(m.Qty)
	case entity.MovementTypeADJUST:
		if m.ToStock != nil {
			return *m.ToStock
		}
		// ADJUST sin target no debería existir; el delta auditado es el fallback.
		return stock.Add(m.Qty)
	}
	return stock
}

// SortMovements ordena in-place por (CreatedAt, Seq), el orden total del kardex.
func SortMovements(moves []entity.StockMovement) {
	sort.SliceStable(moves, func(i, j int) bool {
		if moves[i].CreatedAt.Equal(moves[j].CreatedAt) {
			return moves[i].Seq < moves[j].Seq
		}
		return moves[i].CreatedAt.Before(moves[j].CreatedAt)
	})
}
