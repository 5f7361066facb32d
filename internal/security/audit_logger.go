package security

import (
	"crypto/sha256"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AuditLogger logs each question/SQL exchange with hashed text, so patient details in
// questions never reach the log stream.
type AuditLogger struct {
	enabled bool
}

func NewAuditLogger(enabled bool) *AuditLogger {
	return &AuditLogger{enabled: enabled}
}

// QueryAudit describes one handled question.
type QueryAudit struct {
	RequestID       string
	Question        string
	GeneratedSQL    string
	Model           string
	ReadOnly        bool
	RowCount        int
	ExecutionTimeMs int64
	Err             error
}

func (a *AuditLogger) LogQuery(e QueryAudit) {
	if !a.enabled {
		return
	}
	sqlHash := ""
	if e.GeneratedSQL != "" {
		sqlHash = hashStr(e.GeneratedSQL)[:16]
	}

	evt := log.Info().
		Str("event", "query_audit").
		Str("request_id", e.RequestID).
		Str("question_hash", hashStr(e.Question)[:16]).
		Str("sql_hash", sqlHash).
		Str("model", e.Model).
		Bool("read_only", e.ReadOnly).
		Int("row_count", e.RowCount).
		Int64("execution_time_ms", e.ExecutionTimeMs).
		Bool("success", e.Err == nil)

	if e.Err != nil {
		evt = evt.Str("error", e.Err.Error())
	}
	evt.Msg("audit")
}

func hashStr(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h)
}
