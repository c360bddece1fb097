package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/application/usecase"
)

// RouterDeps carries the router dependencies.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	StockUC     *inventory.StockUseCase
	LedgerUC    *inventory.LedgerUseCase
	JWTSecret   string
}

// Router registers the API routes. Everything under /api requires a Bearer
// token carrying the tenant context.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	stockHandler := NewStockHandler(deps.StockUC)
	warehouses.Post("/:id/stock", stockHandler.Add)
	warehouses.Get("/:id/stock", stockHandler.List)
	warehouses.Get("/:id/stock/:lineId", stockHandler.GetLine)
	warehouses.Put("/:id/stock/:lineId", stockHandler.Update)
	warehouses.Delete("/:id/stock/:lineId", stockHandler.Remove)

	movementHandler := NewMovementHandler(deps.LedgerUC)
	warehouses.Get("/:id/movements", movementHandler.Query)
	warehouses.Get("/:id/movements/:movementId", movementHandler.GetByID)
}
