package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/airwatch/internal/airquality"
)

// Request describes one fetch the view layer must run.
type Request struct {
	ID         string
	Category   Category
	SectorID   int
	PolicyName string
	// Generation is the selection generation at issue time. Registry
	// requests are not selection scoped and use Seq instead.
	Generation uint64
	Seq        uint64
	Token      SimulationToken
	// Foreground requests come from user intents and drive the loading
	// indicator.
	Foreground bool

	ticket uint64
}

// Result is a resolved Request. Exactly one payload is set when Err is nil.
type Result struct {
	Request    Request
	At         time.Time
	Sectors    []airquality.Sector
	Status     *airquality.SectorStatus
	Policy     *airquality.Policy
	Simulation *airquality.SimulationResult
	Err        error
}

// Execute runs req against client. It blocks and is meant to be called from
// a goroutine owned by the view layer; the outcome goes back through Apply.
func Execute(ctx context.Context, client airquality.Client, req Request, now func() time.Time) Result {
	if now == nil {
		now = time.Now
	}
	ctx = airquality.WithRequestID(ctx, req.ID)
	res := Result{Request: req}
	switch req.Category {
	case CategoryRegistry:
		res.Sectors, res.Err = client.Sectors(ctx)
	case CategoryStatus:
		var s airquality.SectorStatus
		if s, res.Err = client.Status(ctx, req.SectorID); res.Err == nil {
			res.Status = &s
		}
	case CategoryPolicy:
		var p airquality.Policy
		if p, res.Err = client.Policy(ctx, req.SectorID); res.Err == nil {
			res.Policy = &p
		}
	case CategorySimulation:
		var sim airquality.SimulationResult
		if sim, res.Err = client.Simulate(ctx, req.SectorID, req.PolicyName); res.Err == nil {
			res.Simulation = &sim
		}
	default:
		res.Err = fmt.Errorf("unknown fetch category %q", req.Category)
	}
	res.At = now()
	return res
}
