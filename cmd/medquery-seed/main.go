// Command medquery-seed creates the PATIENT table in the configured database.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/observability"
	"github.com/medquery/medquery/internal/store"
	"github.com/rs/zerolog/log"
)

func main() {
	demo := flag.Bool("demo", false, "insert sample patients when the table is empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.SetupLogger(cfg.LogLevel, cfg.Environment)

	if err := cfg.ValidateDatabase(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	executor, err := store.NewExecutor(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure database")
	}
	db, err := executor.Open()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := store.Seed(ctx, db, *demo)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().
		Str("driver", cfg.Database.Driver).
		Str("path", cfg.Database.Path).
		Int("inserted", n).
		Msg("PATIENT table ready")
}
