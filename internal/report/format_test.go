package report

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name         string
		count, total int
		want         float64
	}{
		{"zero denominator", 0, 0, 0},
		{"zero denominator with count", 3, 0, 0},
		{"full", 4, 4, 100},
		{"half", 1, 2, 50},
		{"third", 1, 3, 100.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(tt.count, tt.total)
			if !almostEqual(got, tt.want) {
				t.Errorf("Percent(%d, %d) = %v, want %v", tt.count, tt.total, got, tt.want)
			}
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Errorf("Percent(%d, %d) produced %v", tt.count, tt.total, got)
			}
		})
	}
}

func TestRounding(t *testing.T) {
	if got := Round2(100.0 / 3.0); !almostEqual(got, 33.33) {
		t.Errorf("Round2(33.333...) = %v, want 33.33", got)
	}
	if got := Round2(66.666666); !almostEqual(got, 66.67) {
		t.Errorf("Round2(66.666666) = %v, want 66.67", got)
	}
	if got := Round1(94.96); !almostEqual(got, 95.0) {
		t.Errorf("Round1(94.96) = %v, want 95.0", got)
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want Band
	}{
		{100, BandHigh},
		{95, BandHigh},
		{94.99, BandMedium},
		{85, BandMedium},
		{84.99, BandLow},
		{0, BandLow},
	}

	for _, tt := range tests {
		if got := BandFor(tt.pct); got != tt.want {
			t.Errorf("BandFor(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestDisplayPct(t *testing.T) {
	if got := DisplayPct(97.46); got != "97.5%" {
		t.Errorf("DisplayPct(97.46) = %q, want %q", got, "97.5%")
	}
	if got := DisplayPct(0); got != "0.0%" {
		t.Errorf("DisplayPct(0) = %q, want %q", got, "0.0%")
	}
}
