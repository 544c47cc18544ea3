package fakeapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/atlas"
)

func newServer(t *testing.T) (*httptest.Server, *airquality.HTTPClient) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(Router(NewStore(atlas.Default(), 42), logger))
	server.Config.SetKeepAlivesEnabled(false)
	t.Cleanup(server.Close)

	client, err := airquality.NewHTTPClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	return server, client
}

func TestSeverityFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pm25 float64
		want airquality.Severity
	}{
		{pm25: 40, want: airquality.SeverityModerate},
		{pm25: 100, want: airquality.SeverityModerate},
		{pm25: 120, want: airquality.SeverityUnhealthyForSensitive},
		{pm25: 180, want: airquality.SeverityUnhealthy},
		{pm25: 220, want: airquality.SeverityVeryUnhealthy},
		{pm25: 300, want: airquality.SeverityHazardous},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.pm25), "pm25=%v", tt.pm25)
	}
}

func TestStoreIsDeterministic(t *testing.T) {
	t.Parallel()

	a := NewStore(atlas.Default(), 7)
	b := NewStore(atlas.Default(), 7)
	for i := 0; i < 5; i++ {
		a.Step()
		b.Step()
	}
	assert.Equal(t, a.Sectors(), b.Sectors())
}

func TestStepKeepsReadingsInBounds(t *testing.T) {
	t.Parallel()

	s := NewStore(atlas.Default(), 1)
	for i := 0; i < 500; i++ {
		s.Step()
	}
	for _, sec := range s.Sectors() {
		assert.GreaterOrEqual(t, sec.PM25, 5.0)
		assert.GreaterOrEqual(t, sec.TrafficIndex, 0.0)
		assert.LessOrEqual(t, sec.TrafficIndex, 1.0)
		assert.GreaterOrEqual(t, sec.WindSpeed, 0.3)
		assert.LessOrEqual(t, sec.WindSpeed, 8.0)
	}
}

func TestStatusAndPolicyFromBaseline(t *testing.T) {
	t.Parallel()

	s := NewStore(atlas.Default(), 42)

	status, err := s.Status(1)
	require.NoError(t, err)
	assert.Equal(t, "Delhi - Connaught Place", status.SectorName)
	assert.Equal(t, airquality.SeverityHazardous, status.Severity)
	assert.Equal(t, "Heavy traffic combined with stagnant air", status.PollutionCause)
	assert.Positive(t, status.Readings.NO2)

	policy, err := s.Policy(1)
	require.NoError(t, err)
	require.True(t, policy.Actionable())
	assert.Equal(t, "Odd-Even Vehicle Rationing", policy.Policy.Name)
	assert.Equal(t, airquality.PriorityCritical, policy.Policy.Priority)

	calm, err := s.Policy(7)
	require.NoError(t, err)
	assert.False(t, calm.HasPolicy)
	assert.NotEmpty(t, calm.Message)

	_, err = s.Status(99)
	assert.ErrorIs(t, err, ErrUnknownSector)
}

func TestSimulateScalesByWind(t *testing.T) {
	t.Parallel()

	s := NewStore(atlas.Default(), 42)

	stagnant, err := s.Simulate(1, "Odd-Even Vehicle Rationing")
	require.NoError(t, err)
	require.NotNil(t, stagnant.MetAdjustmentFactor)
	assert.InDelta(t, 0.74, *stagnant.MetAdjustmentFactor, 0.001)
	assert.Equal(t, airquality.ConfidenceLow, stagnant.Confidence)
	assert.InDelta(t, 13.3, stagnant.ReductionPercentage, 0.001)
	assert.Less(t, stagnant.SimulatedPM25After, stagnant.CurrentPM25)
	require.NotNil(t, stagnant.PM25Range)
	assert.LessOrEqual(t, stagnant.PM25Range.BestCase, stagnant.PM25Range.Expected)
	assert.LessOrEqual(t, stagnant.PM25Range.Expected, stagnant.PM25Range.WorstCase)

	windy, err := s.Simulate(7, "Odd-Even Vehicle Rationing")
	require.NoError(t, err)
	assert.InDelta(t, 1.1, *windy.MetAdjustmentFactor, 0.001)
	assert.Equal(t, airquality.ConfidenceHigh, windy.Confidence)

	_, err = s.Simulate(1, "Cloud Seeding")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	_, err = s.Simulate(99, "Odd-Even Vehicle Rationing")
	assert.ErrorIs(t, err, ErrUnknownSector)
}

func TestRouterServesClient(t *testing.T) {
	t.Parallel()

	_, client := newServer(t)
	ctx := context.Background()

	sectors, err := client.Sectors(ctx)
	require.NoError(t, err)
	assert.Len(t, sectors, 8)

	status, err := client.Status(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, status.SectorID)
	assert.Equal(t, "Gurgaon", status.SectorName)

	policy, err := client.Policy(ctx, 3)
	require.NoError(t, err)
	if policy.Actionable() {
		result, err := client.Simulate(ctx, 3, policy.Policy.Name)
		require.NoError(t, err)
		assert.Equal(t, policy.Policy.Name, result.PolicyName)
	}
}

func TestRouterErrors(t *testing.T) {
	t.Parallel()

	server, client := newServer(t)
	ctx := context.Background()

	_, err := client.Status(ctx, 99)
	assert.Equal(t, http.StatusNotFound, airquality.StatusCode(err))

	_, err = client.Simulate(ctx, 1, "Cloud Seeding")
	assert.Equal(t, http.StatusBadRequest, airquality.StatusCode(err))

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "non-numeric id", method: http.MethodGet, path: "/sector/abc/status", wantCode: http.StatusBadRequest},
		{name: "missing sector_id", method: http.MethodPost, path: "/simulate?policy_name=x", wantCode: http.StatusBadRequest},
		{name: "missing policy_name", method: http.MethodPost, path: "/simulate?sector_id=1", wantCode: http.StatusBadRequest},
		{name: "wrong method", method: http.MethodGet, path: "/simulate", wantCode: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}
