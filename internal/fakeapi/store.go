// Package fakeapi is a local stand-in for the air-quality service. It
// serves the same four endpoints with synthetic readings that drift a
// little every time the sector list is fetched.
package fakeapi

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/atlas"
)

var (
	ErrUnknownSector = errors.New("sector not found")
	ErrUnknownPolicy = errors.New("unknown policy")
)

// intervention is one entry of the policy catalog.
type intervention struct {
	name      string
	reduction float64
	hours     float64
	reason    string
}

var catalog = []intervention{
	{name: "Odd-Even Vehicle Rationing", reduction: 18, hours: 24, reason: "Traffic index %.2f indicates vehicular emissions dominate"},
	{name: "Construction Activity Ban", reduction: 12, hours: 48, reason: "Wind %.1f m/s is trapping dust near ground level"},
	{name: "Industrial Emission Curbs", reduction: 15, hours: 72, reason: "PM2.5 of %.0f µg/m³ persists without a dominant local source"},
}

func lookupIntervention(name string) (intervention, bool) {
	for _, iv := range catalog {
		if iv.name == name {
			return iv, true
		}
	}
	return intervention{}, false
}

type sectorState struct {
	place    atlas.Place
	readings airquality.Readings
	ratio    float64
}

// Store holds the drifting state of every sector.
type Store struct {
	mu      sync.Mutex
	rng     *rand.Rand
	sectors []*sectorState
	byID    map[int]*sectorState
}

// NewStore seeds one sector per atlas place. The same seed always yields
// the same sequence of readings.
func NewStore(a *atlas.Atlas, seed uint64) *Store {
	s := &Store{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		byID: make(map[int]*sectorState),
	}
	for _, p := range a.Places() {
		st := &sectorState{place: p, ratio: 1.5 + s.rng.Float64()}
		st.readings = airquality.Readings{
			PM25:         p.BasePM25,
			TrafficIndex: p.TrafficIndex,
			WindSpeed:    p.WindSpeed,
		}
		st.derive(s.rng)
		s.sectors = append(s.sectors, st)
		s.byID[p.ID] = st
	}
	return s
}

// derive recomputes the secondary pollutants from PM2.5 and traffic.
func (st *sectorState) derive(rng *rand.Rand) {
	r := &st.readings
	r.PM10 = round1(r.PM25 * st.ratio)
	r.NO2 = round1(20 + r.TrafficIndex*60 + rng.NormFloat64()*3)
	r.CO = round1(0.4 + r.TrafficIndex*2.2 + rng.NormFloat64()*0.1)
}

// Step advances every sector by one random-walk step, pulling PM2.5 back
// toward the sector's baseline.
func (s *Store) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, st := range s.sectors {
		r := &st.readings
		base := st.place.BasePM25
		r.PM25 = round1(math.Max(5, r.PM25+0.2*(base-r.PM25)+s.rng.NormFloat64()*6))
		r.TrafficIndex = round2(clamp(r.TrafficIndex+s.rng.NormFloat64()*0.03, 0, 1))
		r.WindSpeed = round1(clamp(r.WindSpeed+s.rng.NormFloat64()*0.2, 0.3, 8))
		st.derive(s.rng)
	}
}

// Sectors returns the registry rows.
func (s *Store) Sectors() []airquality.Sector {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]airquality.Sector, 0, len(s.sectors))
	for _, st := range s.sectors {
		out = append(out, airquality.Sector{
			ID:           st.place.ID,
			Name:         st.place.Name,
			PM25:         st.readings.PM25,
			PM10:         st.readings.PM10,
			TrafficIndex: st.readings.TrafficIndex,
			WindSpeed:    st.readings.WindSpeed,
		})
	}
	return out
}

func (s *Store) Status(id int) (airquality.SectorStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[id]
	if !ok {
		return airquality.SectorStatus{}, ErrUnknownSector
	}
	return airquality.SectorStatus{
		SectorID:       st.place.ID,
		SectorName:     st.place.Name,
		Severity:       SeverityFor(st.readings.PM25),
		Readings:       st.readings,
		PollutionCause: cause(st.readings),
	}, nil
}

func (s *Store) Policy(id int) (airquality.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[id]
	if !ok {
		return airquality.Policy{}, ErrUnknownSector
	}
	return recommend(st.readings), nil
}

// Simulate projects the effect of applying the named policy to a sector.
func (s *Store) Simulate(id int, policyName string) (airquality.SimulationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.byID[id]
	if !ok {
		return airquality.SimulationResult{}, ErrUnknownSector
	}
	iv, ok := lookupIntervention(policyName)
	if !ok {
		return airquality.SimulationResult{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, policyName)
	}
	return project(st.readings, iv), nil
}

// SeverityFor mirrors the service's five-band severity classification.
func SeverityFor(pm25 float64) airquality.Severity {
	switch {
	case pm25 > 250:
		return airquality.SeverityHazardous
	case pm25 > 200:
		return airquality.SeverityVeryUnhealthy
	case pm25 > 150:
		return airquality.SeverityUnhealthy
	case pm25 > 100:
		return airquality.SeverityUnhealthyForSensitive
	default:
		return airquality.SeverityModerate
	}
}

func cause(r airquality.Readings) string {
	switch {
	case r.TrafficIndex > 0.7 && r.WindSpeed < 2:
		return "Heavy traffic combined with stagnant air"
	case r.TrafficIndex > 0.7:
		return "Vehicular emissions"
	case r.WindSpeed < 2:
		return "Low wind speed limiting dispersion"
	case r.PM25 > 0 && r.PM10/r.PM25 > 2:
		return "Construction and road dust"
	default:
		return "Mixed urban sources"
	}
}

func recommend(r airquality.Readings) airquality.Policy {
	if r.PM25 <= 150 {
		return airquality.Policy{
			HasPolicy: false,
			Message:   "Air quality is within acceptable limits. No intervention required.",
		}
	}

	var iv intervention
	var reason string
	switch {
	case r.TrafficIndex > 0.7:
		iv = catalog[0]
		reason = fmt.Sprintf(iv.reason, r.TrafficIndex)
	case r.WindSpeed < 2:
		iv = catalog[1]
		reason = fmt.Sprintf(iv.reason, r.WindSpeed)
	default:
		iv = catalog[2]
		reason = fmt.Sprintf(iv.reason, r.PM25)
	}

	priority := airquality.PriorityMedium
	switch {
	case r.PM25 > 250:
		priority = airquality.PriorityCritical
	case r.PM25 > 200:
		priority = airquality.PriorityHigh
	}

	return airquality.Policy{
		HasPolicy: true,
		Policy: &airquality.PolicyDetail{
			Name:                            iv.name,
			Priority:                        priority,
			Reason:                          reason,
			ExpectedPM25ReductionPercentage: iv.reduction,
			EstimatedTimeHours:              iv.hours,
		},
	}
}

// project applies an intervention scaled by how well the wind disperses
// pollutants. Calm air lowers the factor.
func project(r airquality.Readings, iv intervention) airquality.SimulationResult {
	met := round2(clamp(0.5+r.WindSpeed/5, 0.6, 1.1))
	expected := iv.reduction * met
	lo, hi := expected*0.7, expected*1.25

	confidence := airquality.ConfidenceLow
	switch {
	case met >= 0.9:
		confidence = airquality.ConfidenceHigh
	case met >= 0.75:
		confidence = airquality.ConfidenceMedium
	}

	after := r.PM25 * (1 - expected/100)
	return airquality.SimulationResult{
		PolicyName:          iv.name,
		CurrentPM25:         r.PM25,
		SimulatedPM25After:  round1(after),
		ReductionPercentage: round1(expected),
		ReductionRange:      &airquality.ReductionRange{Min: round1(lo), Max: round1(hi)},
		PM25Range: &airquality.PM25Range{
			BestCase:  round1(r.PM25 * (1 - hi/100)),
			Expected:  round1(after),
			WorstCase: round1(r.PM25 * (1 - lo/100)),
		},
		Confidence:          confidence,
		MetAdjustmentFactor: &met,
		Explanation: fmt.Sprintf("%s is expected to cut PM2.5 from %.1f to %.1f µg/m³ within %.0f hours.",
			iv.name, r.PM25, after, iv.hours),
		Methodology: "Empirical reduction factor scaled by a wind-based dispersion adjustment",
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
