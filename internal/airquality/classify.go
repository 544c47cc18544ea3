package airquality

import "fmt"

// Tier is the three-step colouring used for headline readings.
type Tier string

const (
	TierSafe   Tier = "safe"
	TierWarn   Tier = "warn"
	TierDanger Tier = "danger"
)

const (
	dangerThreshold = 250
	warnThreshold   = 150
)

// TierFor classifies a PM2.5 concentration.
func TierFor(pm25 float64) Tier {
	switch {
	case pm25 > dangerThreshold:
		return TierDanger
	case pm25 > warnThreshold:
		return TierWarn
	default:
		return TierSafe
	}
}

// PM10Tier evaluates PM10 against the PM2.5 thresholds on half its value.
func PM10Tier(pm10 float64) Tier {
	return TierFor(pm10 / 2)
}

// Level is the five-band classification used for the sector list and map.
type Level int

const (
	LevelModerate Level = iota
	LevelSensitive
	LevelUnhealthy
	LevelVeryUnhealthy
	LevelHazardous
)

// LevelFor classifies a PM2.5 concentration into five bands.
func LevelFor(pm25 float64) Level {
	switch {
	case pm25 > 250:
		return LevelHazardous
	case pm25 > 200:
		return LevelVeryUnhealthy
	case pm25 > 150:
		return LevelUnhealthy
	case pm25 > 100:
		return LevelSensitive
	default:
		return LevelModerate
	}
}

func (l Level) String() string {
	switch l {
	case LevelHazardous:
		return "Hazardous"
	case LevelVeryUnhealthy:
		return "Very Unhealthy"
	case LevelUnhealthy:
		return "Unhealthy"
	case LevelSensitive:
		return "Unhealthy for Sensitive"
	default:
		return "Moderate"
	}
}

// Label returns the human-readable name of a status severity. Unknown
// values are returned verbatim.
func (s Severity) Label() string {
	switch s {
	case SeverityModerate:
		return "Moderate"
	case SeverityUnhealthyForSensitive:
		return "Unhealthy for Sensitive Groups"
	case SeverityUnhealthy:
		return "Unhealthy"
	case SeverityVeryUnhealthy:
		return "Very Unhealthy"
	case SeverityHazardous:
		return "Hazardous"
	default:
		return string(s)
	}
}

// Safe reports whether the severity needs no intervention.
func (s Severity) Safe() bool {
	return s == SeverityModerate
}

// ReductionMagnitude is the visual width, in percent, of a reduction bar.
func ReductionMagnitude(pct float64) float64 {
	switch {
	case pct > 100:
		return 100
	case pct < 0:
		return 0
	default:
		return pct
	}
}

// TrafficBand describes congestion from a 0..1 traffic index.
func TrafficBand(index float64) string {
	switch {
	case index > 0.7:
		return "Heavy traffic"
	case index > 0.4:
		return "Moderate traffic"
	default:
		return "Light traffic"
	}
}

// TrafficImpact is the status-summary wording for a traffic index.
func TrafficImpact(index float64) string {
	switch {
	case index > 0.7:
		return "High - Traffic control measures may help"
	case index > 0.4:
		return "Moderate - Traffic is a contributing factor"
	default:
		return "Low - Traffic is not a primary concern"
	}
}

// WindDispersal describes how well wind clears pollutants (m/s).
func WindDispersal(speed float64) string {
	switch {
	case speed < 2:
		return "Poor dispersal"
	case speed < 3:
		return "Moderate dispersal"
	default:
		return "Good dispersal"
	}
}

// WindConditions is the status-summary wording for a wind speed.
func WindConditions(speed float64) string {
	if speed < 2 {
		return "Poor - Pollution will accumulate"
	}
	return "Good - Natural dispersal occurring"
}

// PM25Summary is the status-summary wording for a PM2.5 reading.
func PM25Summary(pm25 float64) string {
	switch {
	case pm25 > 250:
		return "Critical - Immediate action recommended"
	case pm25 > 200:
		return "Severe - Action needed"
	case pm25 > 150:
		return "High - Monitor closely"
	default:
		return "Within acceptable range"
	}
}

// ParticulateRatio returns pm10/pm25 and the source it suggests. ok is
// false when pm25 is not positive.
func ParticulateRatio(r Readings) (ratio float64, insight string, ok bool) {
	if r.PM25 <= 0 {
		return 0, "", false
	}
	ratio = r.PM10 / r.PM25
	if ratio > 2 {
		return ratio, "High ratio suggests dust/construction as primary source", true
	}
	return ratio, "Balanced ratio suggests traffic-related particulates", true
}

// MetAdjustment describes a meteorological adjustment factor.
func MetAdjustment(factor float64) string {
	pct := factor * 100
	if factor < 0.8 {
		return fmt.Sprintf("Reduced effectiveness (%.0f%%) due to poor dispersion", pct)
	}
	return fmt.Sprintf("Good conditions (%.0f%% efficiency)", pct)
}
