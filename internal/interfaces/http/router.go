package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/internal/application/usecase"
	"github.com/jhoicas/inventory-sync-api/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	StockUC    *inventory.StockUseCase
	LogQueryUC *inventory.LogQueryUseCase
	ExportUC   *inventory.ExportUseCase
	Validator  validator.Validator
	JWTSecret  string
}

// Router registra las rutas de la API. Las lecturas son públicas; las
// mutaciones exigen Bearer Token cuando hay secret configurado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	productHandler := NewProductHandler(deps.ProductUC, deps.StockUC, deps.Validator)
	stockHandler := NewStockHandler(deps.StockUC, deps.Validator)
	logHandler := NewInventoryLogHandler(deps.LogQueryUC, deps.ExportUC, deps.Validator)

	auth := AuthMiddleware(deps.JWTSecret)

	// Products
	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Post("/bulk-update-stock", auth, stockHandler.BulkUpdateStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", auth, productHandler.Create)
	products.Put("/:id", auth, productHandler.Update)
	products.Patch("/:id", auth, productHandler.Update)
	products.Delete("/:id", auth, productHandler.Delete)

	// Stock (contrato de plugins)
	products.Patch("/:id/stock", auth, stockHandler.UpdateStock)
	products.Get("/:id/inventory-logs", logHandler.ByProduct)

	// Inventory logs
	logs := api.Group("/inventory-logs")
	logs.Get("/", logHandler.Index)
	logs.Get("/statistics", logHandler.Statistics)
	logs.Get("/export", logHandler.Export)
}
