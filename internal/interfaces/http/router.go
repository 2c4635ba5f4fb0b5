package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jforero/kardex-api/internal/application/inventory"
	"github.com/jforero/kardex-api/internal/application/usecase"
	"github.com/jforero/kardex-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	WarehouseUC *usecase.WarehouseUseCase
	MovementUC  *inventory.MovementUseCase
	TransferUC  *inventory.TransferUseCase
	StockUC     *inventory.StockUseCase
	LowStockUC  *inventory.LowStockUseCase
	JWTSecret   string
}

// Router registra las rutas de la API. Todo cuelga de /api con Bearer Token;
// las mutaciones requieren además rol ADMIN.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	// Warehouses (protegido)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", admin, warehouseHandler.Create)
	warehouses.Put("/:id", admin, warehouseHandler.Update)
	warehouses.Delete("/:id/purge", admin, warehouseHandler.Purge)
	warehouses.Delete("/:id", admin, warehouseHandler.Deactivate)

	// Inventory (protegido)
	inv := api.Group("/inventory")

	// Items
	items := inv.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.StockUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id/stock", itemHandler.GetStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", admin, itemHandler.Create)
	items.Put("/:id", admin, itemHandler.Update)
	items.Delete("/:id/purge", admin, itemHandler.Purge)
	items.Delete("/:id", admin, itemHandler.Deactivate)

	// Kardex: movimientos, transferencias, stock y alertas
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.TransferUC, deps.StockUC, deps.LowStockUC)
	inv.Get("/moves", inventoryHandler.ListMoves)
	inv.Post("/moves", admin, inventoryHandler.CreateMove)
	inv.Post("/transfers", admin, inventoryHandler.CreateTransfer)
	inv.Get("/stock", inventoryHandler.StockSummary)
	inv.Get("/alerts/low-stock", inventoryHandler.LowStockAlerts)
}
