// internal/views/metrics.go
package views

import "github.com/shopspring/decimal"

// Band classifies a metric for colouring.
type Band string

const (
	BandGood     Band = "good"
	BandWarning  Band = "warning"
	BandCritical Band = "critical"
)

// AvailabilityBand: >= 95 good, >= 85 warning, else critical.
func AvailabilityBand(pct float64) Band {
	return band(pct, 95, 85)
}

// SuccessRateBand: >= 90 good, >= 70 warning, else critical.
func SuccessRateBand(pct float64) Band {
	return band(pct, 90, 70)
}

func band(v, good, warn float64) Band {
	switch {
	case v >= good:
		return BandGood
	case v >= warn:
		return BandWarning
	default:
		return BandCritical
	}
}

// InterventionBand flags an average repair longer than a day.
func InterventionBand(hours float64) Band {
	if hours > 24 {
		return BandCritical
	}
	return BandGood
}

// Fixed renders v rounded half away from zero to places decimals.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Frequency renders a breakdown frequency, or "N/A" for devices that never
// failed.
func Frequency(v float64) string {
	if v <= 0 {
		return "N/A"
	}
	return Fixed(v, 2)
}

// Percent is Fixed with a trailing "%".
func Percent(v float64, places int32) string {
	return Fixed(v, places) + "%"
}
