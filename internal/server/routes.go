package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/medquery/medquery/internal/handler"
	"github.com/medquery/medquery/internal/middleware"
	"github.com/medquery/medquery/internal/observability"
	"github.com/medquery/medquery/internal/security"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func (s *Server) routes(tr handler.SQLTranslator, db Database) http.Handler {
	cfg := s.cfg

	log.Info().
		Str("model", tr.Model()).
		Str("database_driver", cfg.Database.Driver).
		Str("database_path", cfg.Database.Path).
		Bool("audit_logging", cfg.EnableAuditLogging).
		Bool("enforce_read_only", cfg.EnforceReadOnly).
		Int("rate_limit_per_minute", cfg.RateLimitPerMinute).
		Msg("service configuration")

	// ─── Security ───────────────────────────────────────────────────────────────
	sqlVal := security.NewSQLValidator()
	auditLogger := security.NewAuditLogger(cfg.EnableAuditLogging)

	// ─── Handlers ────────────────────────────────────────────────────────────────
	healthH := handler.NewHealthHandler(db)
	queryH := handler.NewQueryHandler(tr, db, sqlVal, auditLogger, cfg.EnforceReadOnly)

	// ─── Router ──────────────────────────────────────────────────────────────────
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(observability.MetricsMiddleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.CORSOrigins)))
	r.Use(chiMiddleware.RealIP)

	r.Get("/health", healthH.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
		r.Post("/post/query", queryH.Query)
	})

	return r
}
