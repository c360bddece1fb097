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
	appinventory "github.com/mgudino/stock-ledger-api/internal/application/inventory"
	"github.com/mgudino/stock-ledger-api/internal/application/usecase"
	infraevents "github.com/mgudino/stock-ledger-api/internal/infrastructure/events"
	"github.com/mgudino/stock-ledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/mgudino/stock-ledger-api/internal/interfaces/http"
	"github.com/mgudino/stock-ledger-api/pkg/config"
	"github.com/mgudino/stock-ledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	warehouseRepo := postgres.NewWarehouseRepository(pool)
	lineRepo := postgres.NewStockLineRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	if cfg.App.Env == "development" {
		if err := txRunner.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("schema setup")
		}
	}

	var publisher appinventory.EventPublisher = infraevents.NewLogPublisher(log)
	if len(cfg.Events.KafkaBrokers) > 0 {
		kafkaPub := infraevents.NewKafkaPublisher(cfg.Events.KafkaBrokers, cfg.Events.KafkaTopic, log)
		defer func() { _ = kafkaPub.Close() }()
		publisher = kafkaPub
		log.Info().Strs("brokers", cfg.Events.KafkaBrokers).Str("topic", cfg.Events.KafkaTopic).Msg("kafka event publishing enabled")
	}

	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, publisher)
	stockUC := appinventory.NewStockUseCase(txRunner, warehouseRepo, lineRepo, publisher)
	ledgerUC := appinventory.NewLedgerUseCase(warehouseRepo, movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI at /docs when the generated spec is present.
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: warehouseUC,
		StockUC:     stockUC,
		LedgerUC:    ledgerUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
