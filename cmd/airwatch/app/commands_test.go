package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/atlas"
	"github.com/jask/airwatch/internal/fakeapi"
)

type stubClient struct {
	mu        sync.Mutex
	failFor   int
	statusHit map[int]int
}

func (c *stubClient) Sectors(context.Context) ([]airquality.Sector, error) {
	return []airquality.Sector{
		{ID: 1, Name: "Riverside", PM25: 270, PM10: 400, TrafficIndex: 0.8, WindSpeed: 1.1},
		{ID: 2, Name: "Hilltop", PM25: 60, PM10: 90, TrafficIndex: 0.2, WindSpeed: 4},
	}, nil
}

func (c *stubClient) Status(_ context.Context, id int) (airquality.SectorStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.statusHit == nil {
		c.statusHit = make(map[int]int)
	}
	c.statusHit[id]++
	if id == c.failFor {
		return airquality.SectorStatus{}, errors.New("boom")
	}
	sev := airquality.SeverityModerate
	if id == 1 {
		sev = airquality.SeverityHazardous
	}
	return airquality.SectorStatus{SectorID: id, Severity: sev, PollutionCause: "Vehicular emissions"}, nil
}

func (c *stubClient) Policy(_ context.Context, id int) (airquality.Policy, error) {
	if id == 1 {
		return airquality.Policy{HasPolicy: true, Policy: &airquality.PolicyDetail{Name: "Truck Ban", Priority: airquality.PriorityCritical}}, nil
	}
	return airquality.Policy{HasPolicy: false, Message: "ok"}, nil
}

func (c *stubClient) Simulate(context.Context, int, string) (airquality.SimulationResult, error) {
	return airquality.SimulationResult{}, nil
}

func TestListSectorsTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, listSectors(context.Background(), &buf, &stubClient{}, false))
	out := buf.String()
	assert.Contains(t, out, "Riverside")
	assert.Contains(t, out, "Hilltop")
	assert.Contains(t, out, "Hazardous")
	assert.NotContains(t, out, "Truck Ban")
}

func TestListSectorsDetail(t *testing.T) {
	t.Parallel()

	client := &stubClient{}
	var buf bytes.Buffer
	require.NoError(t, listSectors(context.Background(), &buf, client, true))
	out := buf.String()
	assert.Contains(t, out, "Truck Ban")
	assert.Contains(t, out, "critical")
	assert.Contains(t, out, "Vehicular emissions")
	assert.Equal(t, map[int]int{1: 1, 2: 1}, client.statusHit)
}

func TestListSectorsDetailFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := listSectors(context.Background(), &buf, &stubClient{failFor: 2}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sector 2")
	assert.Empty(t, buf.String())
}

func TestSectorsCommandAgainstFakeAPI(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AIRWATCH_CONFIG", "")
	t.Setenv("AIRWATCH_API_BASE_URL", "")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httptest.NewServer(fakeapi.Router(fakeapi.NewStore(atlas.Default(), 3), logger))
	server.Config.SetKeepAlivesEnabled(false)
	defer server.Close()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"sectors", "--api-url", server.URL})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Bangalore")
	assert.Contains(t, out.String(), "Kolkata")
}

func TestSectorsCommandRejectsBadURL(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AIRWATCH_CONFIG", "")

	cmd := NewRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"sectors", "--api-url", "localhost:5000"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestVersionJSON(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--format", "json"})
	require.NoError(t, cmd.Execute())

	var info VersionInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.NotEmpty(t, info.Platform)
}
