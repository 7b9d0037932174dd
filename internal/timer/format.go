// Package timer renders repair durations and drives the live elapsed display.
package timer

import (
	"fmt"
	"math"
	"time"
)

// Format renders d as MM:SS from the floored total seconds. Minutes are not
// rolled into hours, so 3661s renders as "61:01". Negative input renders "00:00".
func Format(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// FormatHours renders a fractional hour count (as stored in repair_duration)
// in the same MM:SS form. Zero or negative renders "00:00".
func FormatHours(hours float64) string {
	if hours <= 0 || math.IsNaN(hours) {
		return "00:00"
	}
	return Format(time.Duration(math.Floor(hours*3600)) * time.Second)
}

// Elapsed is end-start when end is set, now-start when only start is set,
// and zero when start is unset.
func Elapsed(start, end, now time.Time) time.Duration {
	switch {
	case start.IsZero():
		return 0
	case !end.IsZero():
		return end.Sub(start)
	default:
		return now.Sub(start)
	}
}
