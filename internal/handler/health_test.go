package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medquery/medquery/internal/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func getHealth(h *handler.HealthHandler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rr
}

func TestHealthOK(t *testing.T) {
	rr := getHealth(handler.NewHealthHandler(stubPinger{}))

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, map[string]any{"server": "ok", "database": "ok"}, body["checks"])
}

func TestHealthDegraded(t *testing.T) {
	rr := getHealth(handler.NewHealthHandler(stubPinger{err: errors.New("unable to open database file")}))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "degraded", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Contains(t, checks["database"], "unable to open database file")
}

func TestHealthWithoutDatabase(t *testing.T) {
	rr := getHealth(handler.NewHealthHandler(nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "disabled", decode(t, rr)["checks"].(map[string]any)["database"])
}
