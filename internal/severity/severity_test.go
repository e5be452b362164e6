package severity

import (
	"math"
	"testing"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		aqi   float64
		level int
		label string
	}{
		{0, 1, "Good"},
		{50, 1, "Good"},
		{51, 2, "Moderate"},
		{100, 2, "Moderate"},
		{101, 3, "Unhealthy for Sensitive Groups"},
		{150, 3, "Unhealthy for Sensitive Groups"},
		{151, 4, "Unhealthy"},
		{200, 4, "Unhealthy"},
		{201, 5, "Very Unhealthy"},
		{300, 5, "Very Unhealthy"},
		{301, 6, "Hazardous"},
		{1000, 6, "Hazardous"},
	}
	for _, tt := range tests {
		b := Classify(tt.aqi)
		if b.Level != tt.level || b.Label != tt.label {
			t.Errorf("Classify(%v) = level %d %q, want level %d %q",
				tt.aqi, b.Level, b.Label, tt.level, tt.label)
		}
		if b.Advice == "" || b.Emoji == "" || b.Color == "" {
			t.Errorf("Classify(%v) returned incomplete band: %+v", tt.aqi, b)
		}
	}
}

func TestClassifyClampsMalformedInput(t *testing.T) {
	for _, aqi := range []float64{-1, -500, math.NaN()} {
		if b := Classify(aqi); b.Level != 1 {
			t.Errorf("Classify(%v) = level %d, want clamped to 1", aqi, b.Level)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	prev := 0
	for aqi := 0.0; aqi <= 500; aqi += 0.5 {
		level := Classify(aqi).Level
		if level < prev {
			t.Fatalf("severity decreased at aqi=%v: %d -> %d", aqi, prev, level)
		}
		prev = level
	}
}

func TestPrecautionTiers(t *testing.T) {
	tests := []struct {
		aqi  float64
		want string
	}{
		{40, precautionsSafe},
		{100, precautionsSafe},
		{101, precautionsModerate},
		{150, precautionsModerate},
		{151, precautionsUnhealthy},
		{200, precautionsUnhealthy},
		{250, precautionsVeryUnhealthy},
		{300, precautionsVeryUnhealthy},
		{301, precautionsHazardous},
	}
	for _, tt := range tests {
		if got := Precautions(tt.aqi); got != tt.want {
			t.Errorf("Precautions(%v) picked wrong tier", tt.aqi)
		}
	}
}
