package airquality

// Sector is one summary row of the registry.
type Sector struct {
	ID           int     `json:"sector_id"`
	Name         string  `json:"sector_name"`
	PM25         float64 `json:"pm25"`
	PM10         float64 `json:"pm10"`
	TrafficIndex float64 `json:"traffic_index"`
	WindSpeed    float64 `json:"wind_speed"`
}

// Severity is the service's classification of a sector status.
type Severity string

const (
	SeverityModerate              Severity = "moderate"
	SeverityUnhealthyForSensitive Severity = "unhealthy_for_sensitive"
	SeverityUnhealthy             Severity = "unhealthy"
	SeverityVeryUnhealthy         Severity = "very_unhealthy"
	SeverityHazardous             Severity = "hazardous"
)

// Readings is a snapshot of pollutant and environmental measurements.
// NO2 and CO are optional on the wire and decode as zero when absent.
type Readings struct {
	PM25         float64 `json:"pm25"`
	PM10         float64 `json:"pm10"`
	NO2          float64 `json:"no2,omitempty"`
	CO           float64 `json:"co,omitempty"`
	TrafficIndex float64 `json:"traffic_index"`
	WindSpeed    float64 `json:"wind_speed"`
}

// SectorStatus is the detail for exactly one sector.
type SectorStatus struct {
	SectorID       int      `json:"sector_id"`
	SectorName     string   `json:"sector_name"`
	Severity       Severity `json:"severity"`
	Readings       Readings `json:"readings"`
	PollutionCause string   `json:"pollution_cause"`
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// PolicyDetail is the body of a recommendation.
type PolicyDetail struct {
	Name                            string   `json:"name"`
	Priority                        Priority `json:"priority"`
	Reason                          string   `json:"reason"`
	ExpectedPM25ReductionPercentage float64  `json:"expected_pm25_reduction_percentage"`
	EstimatedTimeHours              float64  `json:"estimated_time_hours"`
}

// Policy is the recommendation for one sector. When HasPolicy is false
// Message explains why no action is needed.
type Policy struct {
	HasPolicy bool          `json:"has_policy"`
	Policy    *PolicyDetail `json:"policy,omitempty"`
	Message   string        `json:"message,omitempty"`
}

// Actionable reports whether a simulation can be requested for p.
func (p *Policy) Actionable() bool {
	return p != nil && p.HasPolicy && p.Policy != nil && p.Policy.Name != ""
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

type ReductionRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type PM25Range struct {
	BestCase  float64 `json:"best_case"`
	Expected  float64 `json:"expected"`
	WorstCase float64 `json:"worst_case"`
}

// SimulationResult is the projected outcome of applying a named policy.
type SimulationResult struct {
	PolicyName          string          `json:"policy_name"`
	CurrentPM25         float64         `json:"current_pm25"`
	SimulatedPM25After  float64         `json:"simulated_pm25_after"`
	ReductionPercentage float64         `json:"reduction_percentage"`
	ReductionRange      *ReductionRange `json:"reduction_range,omitempty"`
	PM25Range           *PM25Range      `json:"pm25_range,omitempty"`
	Confidence          Confidence      `json:"confidence,omitempty"`
	MetAdjustmentFactor *float64        `json:"met_adjustment_factor,omitempty"`
	Explanation         string          `json:"explanation"`
	Methodology         string          `json:"methodology,omitempty"`
}
