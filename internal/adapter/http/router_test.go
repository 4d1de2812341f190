package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRouter_Healthz(t *testing.T) {
	lastRun := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	handler := NewRouter(RouterConfig{
		Health: func() Status {
			return Status{Status: "degraded", LastRun: lastRun, LastError: "boom"}
		},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "degraded", status.Status)
	require.Equal(t, "boom", status.LastError)
	require.True(t, status.LastRun.Equal(lastRun))
}

func TestRouter_HealthzWithoutCallback(t *testing.T) {
	handler := NewRouter(RouterConfig{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "ok", status.Status)
}

func TestRouter_Metrics(t *testing.T) {
	handler := NewRouter(RouterConfig{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.String())
}
