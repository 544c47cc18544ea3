package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jask/airwatch/internal/dashboard"
)

// Metrics provides observability for the dashboard's fetch loop.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FetchDuration    *prometheus.HistogramVec
	StaleResponses   *prometheus.CounterVec
	SkippedRefreshes *prometheus.CounterVec
	HistoryEntries   prometheus.Gauge
}

// New creates a Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "airwatch_fetch_duration_seconds",
			Help:    "Duration of calls to the air-quality service",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint", "outcome"}),
		StaleResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "airwatch_stale_responses_total",
			Help: "Responses dropped because a newer selection or registry fetch superseded them",
		}, []string{"category"}),
		SkippedRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "airwatch_skipped_refreshes_total",
			Help: "Background refreshes skipped because the previous one was still in flight",
		}, []string{"category"}),
		HistoryEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "airwatch_history_entries",
			Help: "Readings currently held for the trend chart",
		}),
	}
}

// ObserveFetch records one service call.
func (m *Metrics) ObserveFetch(endpoint string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.FetchDuration.WithLabelValues(endpoint, outcome).Observe(d.Seconds())
}

func (m *Metrics) StaleResponse(c dashboard.Category) {
	if m == nil {
		return
	}
	m.StaleResponses.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) SkippedRefresh(c dashboard.Category) {
	if m == nil {
		return
	}
	m.SkippedRefreshes.WithLabelValues(string(c)).Inc()
}

func (m *Metrics) HistorySize(n int) {
	if m == nil {
		return
	}
	m.HistoryEntries.Set(float64(n))
}

var _ dashboard.Recorder = (*Metrics)(nil)
