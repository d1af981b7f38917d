package report

import (
	"fmt"
	"math"
)

// Percent returns count/total as a percentage, defined as 0 when total is 0.
// Metric output never carries NaN or Inf.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// Round2 rounds to the storage/export precision of two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to the display precision of one decimal.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Band is the three-tier severity classification of a percentage value,
// consumed by presenters for color coding. Never applied to counts.
type Band string

const (
	BandHigh   Band = "high"   // >= 95
	BandMedium Band = "medium" // >= 85 and < 95
	BandLow    Band = "low"    // < 85
)

// BandFor maps a percentage to its severity band.
func BandFor(pct float64) Band {
	switch {
	case pct >= 95:
		return BandHigh
	case pct >= 85:
		return BandMedium
	default:
		return BandLow
	}
}

// DisplayPct renders a percentage at display precision, e.g. "97.5%".
func DisplayPct(v float64) string {
	return fmt.Sprintf("%.1f%%", Round1(v))
}
