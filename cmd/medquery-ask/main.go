// Command medquery-ask translates one question into SQL and prints it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/observability"
	"github.com/medquery/medquery/internal/store"
	"github.com/medquery/medquery/internal/translator"
	"github.com/rs/zerolog/log"
)

const defaultQuestion = "Get the names and ages of all patients older than 60"

func main() {
	question := flag.String("question", defaultQuestion, "natural-language question about the PATIENT table")
	execute := flag.Bool("execute", false, "run the generated SQL and print the rows as JSON")
	listModels := flag.Bool("list-models", true, "print the models the credential can use before translating")
	flag.Parse()

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *listModels {
		printModels(ctx, gen, cfg.LLM.APIKeyVar())
	}

	sql, err := translator.New(gen).Translate(ctx, *question)
	if err != nil {
		log.Fatal().Err(err).Msg("translation failed")
	}
	fmt.Printf("Generated SQL Query: %s\n", sql)

	if !*execute {
		return
	}
	executor, err := store.NewExecutor(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure database")
	}
	rows, err := executor.Execute(ctx, sql)
	if err != nil {
		log.Fatal().Err(err).Msg("query failed")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		log.Fatal().Err(err).Msg("encode results")
	}
}

// printModels lists the provider's models. A failure usually means a bad credential, so
// it is reported and translation still goes ahead.
func printModels(ctx context.Context, gen translator.Generator, keyVar string) {
	ids, err := gen.ListModels(ctx)
	if err != nil {
		fmt.Printf("Could not list models, ensure your %s is working: %v\n", keyVar, err)
		return
	}
	fmt.Println("Available Models:")
	for _, id := range ids {
		fmt.Printf("- %s\n", id)
	}
}
