package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/catalog"
	appstock "github.com/dave-hillier/darkvelocity-pos-sub009/internal/application/stock"
	"github.com/dave-hillier/darkvelocity-pos-sub009/internal/infrastructure/postgres"
	httpRouter "github.com/dave-hillier/darkvelocity-pos-sub009/internal/interfaces/http"
	"github.com/dave-hillier/darkvelocity-pos-sub009/pkg/config"
	"github.com/dave-hillier/darkvelocity-pos-sub009/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	// Repositorios atados al pool (lecturas y validación); las mutaciones
	// reciben repos atados a una tx vía TxRunner.
	ingredientRepo := postgres.NewIngredientRepository(pool)
	batchRepo := postgres.NewStockBatchRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	levelRepo := postgres.NewStockLevelRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ingredientUC := catalog.NewIngredientUseCase(ingredientRepo)
	engine := appstock.NewConsumptionEngine(txRunner, ingredientRepo)
	ledgerUC := appstock.NewBatchLedgerUseCase(txRunner, ingredientRepo, batchRepo)
	wasteUC := appstock.NewWasteRecorderUseCase(engine)
	adjustUC := appstock.NewAdjustStockUseCase(engine)
	transferUC := appstock.NewTransferUseCase(engine)
	levelsUC := appstock.NewStockLevelUseCase(levelRepo, batchRepo)
	movementsUC := appstock.NewMovementLogUseCase(movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngredientUC: ingredientUC,
		Ledger:       ledgerUC,
		Engine:       engine,
		Waste:        wasteUC,
		Adjust:       adjustUC,
		Transfer:     transferUC,
		Levels:       levelsUC,
		Movements:    movementsUC,
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
