package monitor

import "time"

// Polling tiers. The interval for the next tick is derived from the current
// tick's countdown, so a boundary crossing takes effect one tick late.
const (
	intervalEndgame = 1 * time.Second // five minutes or less
	intervalClose   = 2 * time.Second // under fifteen minutes
	intervalNear    = 3 * time.Second // up to an hour
	intervalFar     = 5 * time.Second // more than an hour
)

// IntervalFor maps the remaining auction time to a polling interval. known
// is false when the countdown could not be observed, which falls back to the
// provided default.
func IntervalFor(remaining time.Duration, known bool, fallback time.Duration) time.Duration {
	if !known {
		return fallback
	}
	switch {
	case remaining <= 5*time.Minute:
		return intervalEndgame
	case remaining < 15*time.Minute:
		return intervalClose
	case remaining <= 60*time.Minute:
		return intervalNear
	default:
		return intervalFar
	}
}
