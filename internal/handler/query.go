package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/medquery/medquery/internal/middleware"
	"github.com/medquery/medquery/internal/models"
	"github.com/medquery/medquery/internal/observability"
	"github.com/medquery/medquery/internal/security"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// ErrRejectedSQL is returned when read-only enforcement refuses a generated statement.
var ErrRejectedSQL = errors.New("generated SQL rejected")

// SQLTranslator turns a question into SQL.
type SQLTranslator interface {
	Translate(ctx context.Context, question string) (string, error)
	Model() string
}

// QueryExecutor runs SQL against a fresh database connection.
type QueryExecutor interface {
	Execute(ctx context.Context, query string) ([][]any, error)
}

// QueryHandler answers natural-language questions about the PATIENT table.
type QueryHandler struct {
	translator      SQLTranslator
	executor        QueryExecutor
	sqlVal          *security.SQLValidator
	auditLogger     *security.AuditLogger
	enforceReadOnly bool
}

func NewQueryHandler(
	tr SQLTranslator,
	ex QueryExecutor,
	sqlVal *security.SQLValidator,
	auditLogger *security.AuditLogger,
	enforceReadOnly bool,
) *QueryHandler {
	return &QueryHandler{
		translator:      tr,
		executor:        ex,
		sqlVal:          sqlVal,
		auditLogger:     auditLogger,
		enforceReadOnly: enforceReadOnly,
	}
}

// Query handles POST /post/query
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			models.WriteError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		models.WriteError(w, http.StatusBadRequest, models.ErrNoInput.Error())
		return
	}
	req, err := models.DecodeQueryRequest(body)
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	audit := security.QueryAudit{
		RequestID: middleware.GetRequestID(ctx),
		Question:  req.Question,
		Model:     h.translator.Model(),
	}
	start := time.Now()

	results, err := h.answer(ctx, req.Question, &audit)
	audit.ExecutionTimeMs = time.Since(start).Milliseconds()
	audit.Err = err
	h.auditLogger.LogQuery(audit)

	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", audit.RequestID).
			Msg("query failed")
		models.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	models.WriteJSON(w, http.StatusOK, models.QueryResponse{
		Query:   audit.GeneratedSQL,
		Results: results,
	})
}

// answer translates the question and executes the resulting SQL, filling audit as it goes.
func (h *QueryHandler) answer(ctx context.Context, question string, audit *security.QueryAudit) ([][]any, error) {
	sql, err := h.translator.Translate(ctx, question)
	if err != nil {
		return nil, err
	}
	audit.GeneratedSQL = sql

	if reason := h.sqlVal.CheckReadOnly(sql); reason != "" {
		observability.IncrementFlaggedSQL()
		log.Warn().
			Str("request_id", audit.RequestID).
			Str("reason", reason).
			Bool("enforced", h.enforceReadOnly).
			Msg("generated SQL is not read-only")
		if h.enforceReadOnly {
			return nil, fmt.Errorf("%w: %s", ErrRejectedSQL, reason)
		}
	} else {
		audit.ReadOnly = true
	}

	results, err := h.executor.Execute(ctx, sql)
	observability.ObserveExecution(len(results), err)
	if err != nil {
		return nil, err
	}
	audit.RowCount = len(results)
	return results, nil
}
