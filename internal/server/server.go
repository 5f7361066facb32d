package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/medquery/medquery/internal/config"
	"github.com/medquery/medquery/internal/handler"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Database executes generated SQL and answers health checks.
type Database interface {
	handler.QueryExecutor
	handler.Pinger
}

type Server struct {
	cfg  *config.Config
	http *http.Server
}

func New(cfg *config.Config, tr handler.SQLTranslator, db Database) *Server {
	s := &Server{cfg: cfg}
	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.routes(tr, db),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  120 * time.Second,
	}
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.http.Addr).Msg("server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("graceful shutdown initiated")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
