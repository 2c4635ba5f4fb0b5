package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jforero/kardex-api/internal/application/dto"
	"github.com/jforero/kardex-api/internal/application/inventory"
	"github.com/jforero/kardex-api/internal/domain"
	"github.com/jforero/kardex-api/internal/domain/entity"
	"github.com/jforero/kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InventoryHandler maneja el kardex: movimientos, transferencias, stock y
// alertas de stock bajo (protegido).
type InventoryHandler struct {
	movements *inventory.MovementUseCase
	transfers *inventory.TransferUseCase
	stock     *inventory.StockUseCase
	lowStock  *inventory.LowStockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	movements *inventory.MovementUseCase,
	transfers *inventory.TransferUseCase,
	stock *inventory.StockUseCase,
	lowStock *inventory.LowStockUseCase,
) *InventoryHandler {
	return &InventoryHandler{movements: movements, transfers: transfers, stock: stock, lowStock: lowStock}
}

// CreateMove godoc
// @Summary      Registrar movimiento de kardex (IN, OUT o ADJUST)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.Envelope{data=dto.MovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/moves [post]
func (h *InventoryHandler) CreateMove(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cuerpo inválido")
	}
	input := inventory.MovementInput{
		ItemID:         in.ItemID,
		WarehouseID:    in.WarehouseID,
		Note:           in.Note,
		IdempotencyKey: in.IdempotencyKey,
		Actor:          GetUserID(c),
	}

	var (
		mov *entity.StockMovement
		err error
	)
	switch in.Type {
	case entity.MovementTypeIN:
		if in.Qty == nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "qty es requerido para IN")
		}
		input.Qty = *in.Qty
		mov, err = h.movements.RecordIn(c.Context(), input)
	case entity.MovementTypeOUT:
		if in.Qty == nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "qty es requerido para OUT")
		}
		input.Qty = *in.Qty
		mov, err = h.movements.RecordOut(c.Context(), input)
	case entity.MovementTypeADJUST:
		if in.To == nil {
			return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "to es requerido para ADJUST")
		}
		input.Target = *in.To
		mov, err = h.movements.RecordAdjust(c.Context(), input)
	default:
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "type debe ser IN, OUT o ADJUST")
	}
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusCreated, toMovementResponse(mov))
}

// ListMoves godoc
// @Summary      Histórico de movimientos (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        itemId       query  string  false  "Filtrar por item"
// @Param        warehouseId  query  string  false  "Filtrar por bodega"
// @Param        transferId   query  string  false  "Filtrar por transferencia"
// @Param        type         query  string  false  "IN | OUT | ADJUST"
// @Param        from         query  string  false  "Desde (RFC3339)"
// @Param        to           query  string  false  "Hasta (RFC3339)"
// @Param        limit        query  int     false  "Límite"  default(50)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.Envelope{data=dto.MovementListResponse}
// @Router       /api/inventory/moves [get]
func (h *InventoryHandler) ListMoves(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ItemID:      c.Query("itemId"),
		WarehouseID: c.Query("warehouseId"),
		TransferID:  c.Query("transferId"),
		Type:        c.Query("type"),
		Limit:       page.Limit,
		Offset:      page.Offset,
	}
	var err error
	if filter.From, err = queryTime(c, "from"); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "from debe ser RFC3339")
	}
	if filter.To, err = queryTime(c, "to"); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "to debe ser RFC3339")
	}

	moves, total, err := h.stock.ListMovements(c.Context(), filter)
	if err != nil {
		return mapError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(moves))
	for _, m := range moves {
		items = append(items, toMovementResponse(m))
	}
	return ok(c, fiber.StatusOK, dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	})
}

// CreateTransfer godoc
// @Summary      Transferir stock entre bodegas (atómico)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "Transferencia"
// @Success      201   {object}  dto.Envelope{data=dto.TransferResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfers [post]
func (h *InventoryHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "cuerpo inválido")
	}
	if in.Qty == nil {
		return fail(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "qty es requerido")
	}
	res, err := h.transfers.Transfer(c.Context(), inventory.TransferInput{
		ItemID:          in.ItemID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Qty:             *in.Qty,
		Note:            in.Note,
		IdempotencyKey:  in.IdempotencyKey,
		Actor:           GetUserID(c),
	})
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusCreated, dto.TransferResponse{
		TransferID: res.TransferID,
		OutMove:    toMovementResponse(res.OutMove),
		InMove:     toMovementResponse(res.InMove),
	})
}

// StockSummary godoc
// @Summary      Resumen de stock por item
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "Busca en name y category"
// @Param        category     query  string  false  "Categoría exacta"
// @Param        active       query  bool    false  "Filtrar por estado"
// @Param        warehouseId  query  string  false  "Bodega; vacío = todas"
// @Success      200  {object}  dto.Envelope{data=dto.StockSummaryResponse}
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) StockSummary(c *fiber.Ctx) error {
	rows, err := h.stock.Summary(c.Context(), inventory.SummaryFilter{
		Q:           c.Query("q"),
		Category:    c.Query("category"),
		Active:      queryBool(c, "active"),
		WarehouseID: c.Query("warehouseId"),
	})
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, dto.StockSummaryResponse{Items: toItemStockResponses(rows)})
}

// LowStockAlerts godoc
// @Summary      Items activos en o bajo su stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        q            query  string  false  "Busca en name y category"
// @Param        category     query  string  false  "Categoría exacta"
// @Param        warehouseId  query  string  false  "Bodega; vacío = agregado"
// @Success      200  {object}  dto.Envelope{data=dto.LowStockResponse}
// @Router       /api/inventory/alerts/low-stock [get]
func (h *InventoryHandler) LowStockAlerts(c *fiber.Ctx) error {
	rows, err := h.lowStock.Scan(c.Context(), inventory.ScanFilter{
		Q:           c.Query("q"),
		Category:    c.Query("category"),
		WarehouseID: c.Query("warehouseId"),
	})
	if err != nil {
		return mapError(c, err)
	}
	return ok(c, fiber.StatusOK, dto.LowStockResponse{Items: toItemStockResponses(rows)})
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	var to *decimal.Decimal
	if m.ToStock != nil {
		v := *m.ToStock
		to = &v
	}
	return dto.MovementResponse{
		ID:          m.ID,
		ItemID:      m.ItemID,
		WarehouseID: m.WarehouseID,
		Type:        m.Type,
		Qty:         m.Qty,
		To:          to,
		Note:        m.Note,
		TransferID:  m.TransferID,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

func toItemStockResponses(rows []inventory.ItemStock) []dto.ItemStockResponse {
	out := make([]dto.ItemStockResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ItemStockResponse{
			Item: dto.ItemResponse{
				ID:        r.Item.ID,
				Name:      r.Item.Name,
				Category:  r.Item.Category,
				Unit:      r.Item.Unit,
				MinStock:  r.Item.MinStock,
				Active:    r.Item.Active,
				CreatedBy: r.Item.CreatedBy,
				UpdatedBy: r.Item.UpdatedBy,
				CreatedAt: r.Item.CreatedAt,
				UpdatedAt: r.Item.UpdatedAt,
			},
			Stock: r.Stock,
		})
	}
	return out
}

// queryTime parsea un query param de fecha opcional en RFC3339.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}
