package telemetry

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/airwatch/internal/dashboard"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMetricsRecordsEvents(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveFetch("status", 20*time.Millisecond, nil)
	m.ObserveFetch("status", 30*time.Millisecond, errors.New("boom"))
	m.StaleResponse(dashboard.CategoryPolicy)
	m.StaleResponse(dashboard.CategoryPolicy)
	m.SkippedRefresh(dashboard.CategoryRegistry)
	m.HistorySize(12)

	assert.Equal(t, 2, testutil.CollectAndCount(m.FetchDuration))
	assert.InDelta(t, 2, testutil.ToFloat64(m.StaleResponses.WithLabelValues("policy")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.SkippedRefreshes.WithLabelValues("registry")), 0.001)
	assert.InDelta(t, 12, testutil.ToFloat64(m.HistoryEntries), 0.001)
}

func TestNilMetricsIsSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveFetch("sectors", time.Second, nil)
		m.StaleResponse(dashboard.CategoryStatus)
		m.SkippedRefresh(dashboard.CategoryStatus)
		m.HistorySize(3)
	})
}

func TestSeparateRegistriesDoNotCollide(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}

func TestRouter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New(reg)
	m.HistorySize(7)

	server := httptest.NewServer(NewRouter(reg, discardLogger()))
	server.Config.SetKeepAlivesEnabled(false)
	defer server.Close()

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{name: "metrics", path: "/metrics", wantCode: http.StatusOK, wantBody: "airwatch_history_entries 7"},
		{name: "healthz", path: "/healthz", wantCode: http.StatusOK, wantBody: "ok"},
		{name: "unknown", path: "/nope", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			if tt.wantBody != "" {
				assert.True(t, strings.Contains(string(body), tt.wantBody), "body %q lacks %q", body, tt.wantBody)
			}
		})
	}
}
