package observability

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogConfig{Level: "debug", Format: "json", ServiceName: "portal", Environment: "test"}, &buf)
	logger.Debug("hello", slog.String("k", "v"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"hello"`)
	assert.Contains(t, out, `"service":"portal"`)
	assert.Contains(t, out, `"env":"test"`)
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LogConfig{Level: "warn"}, &buf)
	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestMetrics(t *testing.T) {
	m, err := NewMetrics("portal")
	require.NoError(t, err)

	ctx := context.Background()
	m.Gateway.RecordRequest(ctx, "admin.ListTasks", 200, 10*time.Millisecond)
	m.Gateway.RecordRequest(ctx, "admin.ListTasks", 200, 20*time.Millisecond)
	m.Store.RecordAction(ctx, "resources", "FetchTasks", "failure")

	gw := m.Gateway.(*promGatewayMetrics)
	assert.Equal(t, 2.0, testutil.ToFloat64(gw.requests.WithLabelValues("admin.ListTasks", "200")))
	st := m.Store.(*promStoreMetrics)
	assert.Equal(t, 1.0, testutil.ToFloat64(st.actions.WithLabelValues("resources", "FetchTasks", "failure")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "portal_gateway_requests_total"))
}
