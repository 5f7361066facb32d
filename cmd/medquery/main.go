package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/observability"
	"github.com/medquery/medquery/internal/server"
	"github.com/medquery/medquery/internal/store"
	"github.com/medquery/medquery/internal/translator"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.SetupLogger(cfg.LogLevel, cfg.Environment)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	gen, err := translator.NewGenerator(cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise model")
	}
	tr := translator.New(gen)

	executor, err := store.NewExecutor(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// the database is opened per request; a failed ping here is only a warning
	if err := executor.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("path", cfg.Database.Path).Msg("database not reachable at startup")
	}

	srv := server.New(cfg, tr, executor)
	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}
