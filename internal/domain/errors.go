package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce
// a códigos estables de la API.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrStockNegative     = errors.New("la operación dejaría el stock en negativo")
	ErrSameWarehouse     = errors.New("la bodega origen y destino no pueden ser iguales")
	ErrDuplicateCode     = errors.New("ya existe una bodega con ese code")
	ErrItemHasMoves      = errors.New("el item tiene movimientos registrados")
	ErrNoTargetWarehouse = errors.New("no hay bodega destino disponible para reasignar movimientos")
	ErrStockUnavailable  = errors.New("no fue posible calcular el stock actual")
	ErrDuplicateRequest  = errors.New("operación duplicada: idempotency key ya usada")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
)
