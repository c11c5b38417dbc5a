package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/catalog"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngredientUC *catalog.IngredientUseCase
	Ledger       *stock.BatchLedgerUseCase
	Engine       *stock.ConsumptionEngine
	Waste        *stock.WasteRecorderUseCase
	Adjust       *stock.AdjustStockUseCase
	Transfer     *stock.TransferUseCase
	Levels       *stock.StockLevelUseCase
	Movements    *stock.MovementLogUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de ingredientes
	ingredients := api.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Delete("/:id", ingredientHandler.Deactivate)

	// Libro de stock: mutaciones
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Engine, deps.Waste, deps.Adjust, deps.Transfer)
	stockGroup.Post("/batches", stockHandler.ReceiveBatch)
	stockGroup.Get("/batches", stockHandler.ListBatches)
	stockGroup.Post("/consume", stockHandler.Consume)
	stockGroup.Post("/waste", stockHandler.RecordWaste)
	stockGroup.Post("/adjustments", stockHandler.Adjust)
	stockGroup.Post("/transfers", stockHandler.Transfer)

	// Libro de stock: lecturas
	queryHandler := NewStockQueryHandler(deps.Levels, deps.Movements)
	stockGroup.Get("/levels", queryHandler.GetLevel)
	stockGroup.Get("/levels/low", queryHandler.ListLowStock)
	stockGroup.Get("/expiring", queryHandler.ListExpiring)
	stockGroup.Get("/movements", queryHandler.ListMovements)
}
