package airquality

import (
	"strings"
	"testing"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		pm25 float64
		want Tier
	}{
		{260, TierDanger},
		{250.1, TierDanger},
		{250, TierWarn},
		{200, TierWarn},
		{150, TierSafe},
		{100, TierSafe},
		{0, TierSafe},
	}
	for _, c := range cases {
		if got := TierFor(c.pm25); got != c.want {
			t.Errorf("TierFor(%v) = %q, want %q", c.pm25, got, c.want)
		}
	}
}

func TestPM10TierUsesHalfValue(t *testing.T) {
	cases := []struct {
		pm10 float64
		want Tier
	}{
		{520, TierDanger},
		{400, TierWarn},
		{300, TierSafe},
		{150, TierSafe},
	}
	for _, c := range cases {
		if got := PM10Tier(c.pm10); got != c.want {
			t.Errorf("PM10Tier(%v) = %q, want %q", c.pm10, got, c.want)
		}
	}
}

func TestLevelFor(t *testing.T) {
	cases := []struct {
		pm25  float64
		want  Level
		label string
	}{
		{300, LevelHazardous, "Hazardous"},
		{210, LevelVeryUnhealthy, "Very Unhealthy"},
		{160, LevelUnhealthy, "Unhealthy"},
		{101, LevelSensitive, "Unhealthy for Sensitive"},
		{100, LevelModerate, "Moderate"},
	}
	for _, c := range cases {
		got := LevelFor(c.pm25)
		if got != c.want {
			t.Errorf("LevelFor(%v) = %v, want %v", c.pm25, got, c.want)
		}
		if got.String() != c.label {
			t.Errorf("LevelFor(%v).String() = %q, want %q", c.pm25, got.String(), c.label)
		}
	}
}

func TestReductionMagnitudeClamps(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{45.3, 45.3},
		{130, 100},
		{100, 100},
		{-5, 0},
	}
	for _, c := range cases {
		if got := ReductionMagnitude(c.in); got != c.want {
			t.Errorf("ReductionMagnitude(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSeverityLabel(t *testing.T) {
	if got := SeverityUnhealthyForSensitive.Label(); got != "Unhealthy for Sensitive Groups" {
		t.Fatalf("label = %q", got)
	}
	if got := Severity("smoky").Label(); got != "smoky" {
		t.Fatalf("unknown severity label = %q, want verbatim", got)
	}
	if !SeverityModerate.Safe() || SeverityHazardous.Safe() {
		t.Fatal("only moderate is safe")
	}
}

func TestParticulateRatio(t *testing.T) {
	ratio, insight, ok := ParticulateRatio(Readings{PM25: 100, PM10: 250})
	if !ok || ratio != 2.5 || !strings.Contains(insight, "dust") {
		t.Fatalf("got (%v, %q, %v)", ratio, insight, ok)
	}
	_, insight, ok = ParticulateRatio(Readings{PM25: 100, PM10: 150})
	if !ok || !strings.Contains(insight, "traffic") {
		t.Fatalf("balanced ratio insight = %q", insight)
	}
	if _, _, ok := ParticulateRatio(Readings{PM10: 40}); ok {
		t.Fatal("zero pm25 must not yield a ratio")
	}
}

func TestBandsAndSummaries(t *testing.T) {
	if got := TrafficBand(0.8); got != "Heavy traffic" {
		t.Errorf("TrafficBand(0.8) = %q", got)
	}
	if got := TrafficBand(0.5); got != "Moderate traffic" {
		t.Errorf("TrafficBand(0.5) = %q", got)
	}
	if got := TrafficBand(0.4); got != "Light traffic" {
		t.Errorf("TrafficBand(0.4) = %q", got)
	}
	if got := WindDispersal(1.0); got != "Poor dispersal" {
		t.Errorf("WindDispersal(1.0) = %q", got)
	}
	if got := WindDispersal(2.5); got != "Moderate dispersal" {
		t.Errorf("WindDispersal(2.5) = %q", got)
	}
	if got := WindDispersal(3); got != "Good dispersal" {
		t.Errorf("WindDispersal(3) = %q", got)
	}
	if got := PM25Summary(201); !strings.HasPrefix(got, "Severe") {
		t.Errorf("PM25Summary(201) = %q", got)
	}
	if got := MetAdjustment(0.65); got != "Reduced effectiveness (65%) due to poor dispersion" {
		t.Errorf("MetAdjustment(0.65) = %q", got)
	}
	if got := MetAdjustment(0.9); got != "Good conditions (90% efficiency)" {
		t.Errorf("MetAdjustment(0.9) = %q", got)
	}
}
