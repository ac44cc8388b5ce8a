package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductService
	FormulaUC    *usecase.FormulaService
	ProductionUC *usecase.ProductionService
	StatisticsUC *usecase.StatisticsService
	InventoryUC  *inventory.Service
	PDFGenerator StockReportPDFGenerator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.InventoryUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/update-cost", productHandler.UpdateCost)

	// Formulas
	formulas := api.Group("/formulas")
	formulaHandler := NewFormulaHandler(deps.FormulaUC)
	formulas.Post("/", formulaHandler.Create)
	formulas.Get("/", formulaHandler.List)
	formulas.Get("/:id", formulaHandler.GetByID)
	formulas.Put("/:id", formulaHandler.Update)
	formulas.Delete("/:id", formulaHandler.Delete)

	// Production orders
	production := api.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	production.Post("/", productionHandler.Create)
	production.Get("/", productionHandler.List)
	production.Get("/:id", productionHandler.GetByID)
	production.Put("/:id", productionHandler.Update)
	production.Patch("/:id/status", productionHandler.UpdateStatus)
	production.Delete("/:id", productionHandler.Delete)

	// Inventory: lotes, movimientos, stock y ajustes
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	invGroup.Post("/lots", inventoryHandler.CreateLot)
	invGroup.Get("/lots", inventoryHandler.ListLots)
	invGroup.Get("/lots/:id", inventoryHandler.GetLot)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/stock/:productId", inventoryHandler.GetStock)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)
	invGroup.Get("/adjustments", inventoryHandler.AdjustmentHistory)

	// Reportes (proyecciones de solo lectura). Las rutas las fija el
	// dashboard: el historial de movimientos vive bajo /reports.
	reportHandler := NewReportHandler(deps.InventoryUC, deps.PDFGenerator)
	invGroup.Get("/reports/stock", reportHandler.StockReport)
	invGroup.Get("/reports/stock/pdf", reportHandler.StockReportPDF)
	invGroup.Get("/reports/stock-count", reportHandler.StockCountReport)
	invGroup.Get("/reports/movements", inventoryHandler.ListMovements)
	invGroup.Get("/reports/low-stock", reportHandler.LowStockReport)
	invGroup.Get("/reports/expiration", reportHandler.ExpirationReport)

	// Statistics (dashboard)
	stats := api.Group("/statistics")
	statisticsHandler := NewStatisticsHandler(deps.StatisticsUC)
	stats.Get("/kpis", statisticsHandler.KPIs)
	stats.Get("/production-by-month", statisticsHandler.ProductionByMonth)
	stats.Get("/stock-trend", statisticsHandler.StockTrend)
}
