package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/application/inventory"
	"github.com/jforero/kardex-api/internal/application/usecase"
	"github.com/jforero/kardex-api/internal/domain/repository"
)

// ItemHandler maneja las peticiones HTTP del catálogo de items (protegido).
type ItemHandler struct {
	uc    *usecase.ItemUseCase
	stock *inventory.StockUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(uc *usecase.ItemUseCase, stock *inventory.StockUseCase) *ItemHandler {
	return &ItemHandler{uc: uc, stock: stock}
}

// Create godoc
// @Summary      Crear item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Datos del item"
// @Success      201   {object}  dto.Envelope{data=dto.ItemResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
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
// @Summary      Obtener item por ID
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.Envelope{data=dto.ItemResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// Update godoc
// @Summary      Actualizar item (campos opcionales)
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del item"
// @Param        body  body  dto.UpdateItemRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.Envelope{data=dto.ItemResponse}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
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
// @Summary      Desactivar item (borrado lógico)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id} [delete]
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": c.Params("id"), "active": false})
}

// Purge godoc
// @Summary      Eliminar item definitivamente (solo sin movimientos)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del item"
// @Success      200  {object}  dto.Envelope
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/purge [delete]
func (h *ItemHandler) Purge(c *fiber.Ctx) error {
	if err := h.uc.Purge(c.Context(), c.Params("id")); err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": c.Params("id"), "deleted": true})
}

// List godoc
// @Summary      Listar items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        q         query  string  false  "Busca en name y category"
// @Param        category  query  string  false  "Categoría exacta"
// @Param        active    query  bool    false  "Filtrar por estado"
// @Param        limit     query  int     false  "Límite"  default(50)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Envelope{data=dto.ItemListResponse}
// @Router       /api/inventory/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.ItemFilter{
		Q:        c.Query("q"),
		Category: c.Query("category"),
		Active:   queryBool(c, "active"),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	out, err := h.uc.List(c.Context(), filter)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, out)
}

// GetStock godoc
// @Summary      Stock actual del item (por bodega o agregado)
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id           path   string  true   "ID del item"
// @Param        warehouseId  query  string  false  "Bodega; vacío = todas"
// @Success      200  {object}  dto.Envelope{data=dto.StockResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/stock [get]
func (h *ItemHandler) GetStock(c *fiber.Ctx) error {
	itemID := c.Params("id")
	warehouseID := c.Query("warehouseId")
	stock, err := h.stock.StockOf(c.Context(), itemID, warehouseID)
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, dto.StockResponse{ItemID: itemID, WarehouseID: warehouseID, Stock: stock})
}

// queryBool lee un query param booleano opcional ("true"/"false").
func queryBool(c *fiber.Ctx, key string) *bool {
	switch c.Query(key) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	default:
		return nil
	}
}
