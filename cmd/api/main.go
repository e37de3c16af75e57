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

	"github.com/jhoicas/inventory-sync-api/internal/application/inventory"
	"github.com/jhoicas/inventory-sync-api/internal/application/usecase"
	"github.com/jhoicas/inventory-sync-api/internal/infrastructure/export"
	"github.com/jhoicas/inventory-sync-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-sync-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-sync-api/pkg/config"
	"github.com/jhoicas/inventory-sync-api/pkg/logger"
	"github.com/jhoicas/inventory-sync-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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
	logRepo := postgres.NewInventoryLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	v := validator.New()

	stockUC := inventory.NewStockUseCase(txRunner)
	productUC := usecase.NewProductUseCase(
		productRepo,
		cfg.API.DefaultPerPage,
		cfg.API.MaxPerPage,
		cfg.API.LowStockThreshold,
	)
	logQueryUC := inventory.NewLogQueryUseCase(logRepo, productRepo, inventory.QueryConfig{
		DefaultPerPage: cfg.API.LogsPerPage,
		MaxPerPage:     cfg.API.MaxPerPage,
		ExportLimit:    cfg.API.ExportLimit,
	})
	exportUC := inventory.NewExportUseCase(
		logRepo,
		export.NewMarotoPDFGenerator(),
		export.NewXMLBuilder(),
		cfg.API.ExportLimit,
	)

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
		Title:    "Inventory Sync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"message":   "API funcionando correctamente",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		StockUC:    stockUC,
		LogQueryUC: logQueryUC,
		ExportUC:   exportUC,
		Validator:  v,
		JWTSecret:  cfg.Auth.Secret,
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
