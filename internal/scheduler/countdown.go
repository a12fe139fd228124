package scheduler

import (
	"fmt"
	"time"
)

// FormatCountdown renders the distance from now to the instant as whole hours
// and remaining minutes, e.g. "in 1h 30m". A non-positive distance reports
// that the slot is already underway.
func FormatCountdown(instant, now time.Time) string {
	diff := instant.Sub(now)
	if diff <= 0 {
		return "happening now"
	}
	hours := int(diff / time.Hour)
	minutes := int(diff%time.Hour) / int(time.Minute)
	return fmt.Sprintf("in %dh %dm", hours, minutes)
}
