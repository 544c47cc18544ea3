package dashboard

import (
	"time"

	"github.com/jask/airwatch/internal/airquality"
)

// Snapshot is a read-only projection of the orchestrator state. It shares
// no memory with the orchestrator.
type Snapshot struct {
	Sectors       []airquality.Sector
	SectorsLoaded bool

	SelectedID   int
	HasSelection bool
	Generation   uint64

	Status *airquality.SectorStatus
	Policy *airquality.Policy
	// PolicyCurrent is false while the policy shown still belongs to a
	// previous selection.
	PolicyCurrent bool

	Simulation      *airquality.SimulationResult
	SimulationState SimulationState

	History []HistoryEntry

	Loading       bool
	Error         string
	ErrorCategory Category
	LastUpdate    time.Time
	Interval      time.Duration
}

// Selected returns the registry row of the current selection.
func (s Snapshot) Selected() (airquality.Sector, bool) {
	if !s.HasSelection {
		return airquality.Sector{}, false
	}
	for _, sec := range s.Sectors {
		if sec.ID == s.SelectedID {
			return sec, true
		}
	}
	return airquality.Sector{}, false
}

// CanSimulate reports whether requestSimulation would be accepted.
func (s Snapshot) CanSimulate() bool {
	return s.HasSelection && s.PolicyCurrent && s.Policy.Actionable() && s.SimulationState != SimulationRunning
}

func copyStatus(s *airquality.SectorStatus) *airquality.SectorStatus {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func copyPolicy(p *airquality.Policy) *airquality.Policy {
	if p == nil {
		return nil
	}
	out := *p
	if p.Policy != nil {
		detail := *p.Policy
		out.Policy = &detail
	}
	return &out
}

func copySimulation(r *airquality.SimulationResult) *airquality.SimulationResult {
	if r == nil {
		return nil
	}
	out := *r
	if r.ReductionRange != nil {
		rr := *r.ReductionRange
		out.ReductionRange = &rr
	}
	if r.PM25Range != nil {
		pr := *r.PM25Range
		out.PM25Range = &pr
	}
	if r.MetAdjustmentFactor != nil {
		f := *r.MetAdjustmentFactor
		out.MetAdjustmentFactor = &f
	}
	return &out
}
