package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/application/usecase"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

// WarehouseHandler maneja las peticiones HTTP para Warehouse (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.Envelope{data=dto.WarehouseResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusCreated, out)
}

// GetByID godoc
// @Summary      Obtener bodega por ID
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.Envelope{data=dto.WarehouseResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar bodega (campos opcionales)
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la bodega"
// @Param        body  body  dto.UpdateWarehouseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.WarehouseResponse}
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Deactivate godoc
// @Summary      Desactivar bodega (borrado lógico)
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la bodega"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id} [delete]
func (h *WarehouseHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": c.Params("id"), "active": false})
}

// List godoc
// @Summary      Listar bodegas
// @Tags         warehouses
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Busca en name, code y description"
// @Param        active  query  bool    false  "Filtrar por estado"
// @Param        limit   query  int     false  "Límite"  default(50)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Envelope{data=dto.WarehouseListResponse}
// @Router       /api/warehouses [get]
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.List(c.Context(), repository.WarehouseFilter{
		Q:      c.Query("q"),
		Active: queryBool(c, "active"),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Purge godoc
// @Summary      Retirar bodega reasignando su kardex a otra bodega
// @Description  Reasigna todos los movimientos de la bodega a la destino
// @Description  (explícita o resuelta automáticamente) y la elimina, en una
// @Description  sola transacción.
// @Tags         warehouses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true   "ID de la bodega a retirar"
// @Param        body  body  dto.PurgeWarehouseRequest  false  "Bodega destino opcional"
// @Success      200   {object}  dto.Envelope{data=dto.PurgeWarehouseResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouses/{id}/purge [delete]
func (h *WarehouseHandler) Purge(c *fiber.Ctx) error {
	var in dto.PurgeWarehouseRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cuerpo inválido")
		}
	}
	targetID := in.TargetWarehouseID
	if targetID == "" {
		targetID = c.Query("targetWarehouseId")
	}
	out, err := h.uc.Purge(c.Context(), c.Params("id"), targetID)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}
