package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// ok responde el sobre estándar de éxito {ok:true, data}.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(dto.Envelope{OK: true, Data: data})
}

// fail responde {ok:false, error, message} con el código indicado.
func fail(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{OK: false, Code: code, Message: message})
}

// mapError traduce errores de dominio a códigos estables de la API.
// Cualquier error no anticipado se responde como INTERNAL_ERROR sin filtrar
// detalle de la capa de almacenamiento.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "datos inválidos")
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	case errors.Is(err, domain.ErrStockNegative):
		return fail(c, fiber.StatusConflict, "STOCK_NEGATIVE_NOT_ALLOWED", "la operación dejaría el stock en negativo")
	case errors.Is(err, domain.ErrSameWarehouse):
		return fail(c, fiber.StatusBadRequest, "SAME_WAREHOUSE_NOT_ALLOWED", "la bodega origen y destino no pueden ser iguales")
	case errors.Is(err, domain.ErrDuplicateCode):
		return fail(c, fiber.StatusConflict, "DUPLICATE_CODE", "ya existe una bodega con ese code")
	case errors.Is(err, domain.ErrItemHasMoves):
		return fail(c, fiber.StatusConflict, "ITEM_HAS_MOVES", "el item tiene movimientos registrados")
	case errors.Is(err, domain.ErrNoTargetWarehouse):
		return fail(c, fiber.StatusConflict, "NO_TARGET_WAREHOUSE", "no hay bodega destino disponible para reasignar movimientos")
	case errors.Is(err, domain.ErrDuplicateRequest):
		return fail(c, fiber.StatusConflict, "DUPLICATE_REQUEST", "idempotency key ya usada")
	case errors.Is(err, domain.ErrStockUnavailable):
		return fail(c, fiber.StatusServiceUnavailable, "STOCK_UNAVAILABLE", "no fue posible calcular el stock actual")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado")
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado")
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return fail(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "error interno del servidor")
	}
}
