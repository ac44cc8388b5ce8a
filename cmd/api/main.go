package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appinventory "github.com/jhoicas/producao-api/internal/application/inventory"
	"github.com/jhoicas/producao-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/producao-api/internal/infrastructure/pdf"
	"github.com/jhoicas/producao-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/producao-api/internal/interfaces/http"
	"github.com/jhoicas/producao-api/pkg/config"
	"github.com/jhoicas/producao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := appinventory.NewService(txRunner, productRepo, lotRepo, movementRepo, log)
	productUC := usecase.NewProductService(productRepo, log)
	formulaUC := usecase.NewFormulaService(txRunner, formulaRepo, productRepo, log)
	productionUC := usecase.NewProductionService(txRunner, orderRepo, formulaRepo, productRepo, log)
	statisticsUC := usecase.NewStatisticsService(orderRepo, formulaRepo, productRepo, movementRepo, inventoryUC, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Producao API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		FormulaUC:    formulaUC,
		ProductionUC: productionUC,
		StatisticsUC: statisticsUC,
		InventoryUC:  inventoryUC,
		PDFGenerator: pdfGenerator,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
