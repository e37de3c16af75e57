package main

import (
	"context"

	"github.com/jhoicas/inventory-sync-api/internal/infrastructure/postgres"
	"github.com/jhoicas/inventory-sync-api/pkg/config"
	"github.com/jhoicas/inventory-sync-api/pkg/logger"
)

// Aplica las migraciones pendientes y termina. Pensado para pipelines de
// despliegue; la API no migra sola al arrancar.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar migraciones")
	}
	log.Info().Msg("migraciones aplicadas")
}
