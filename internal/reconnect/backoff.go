package reconnect

import "time"

// Backoff maps a zero-indexed attempt count to a reconnect delay:
// min(initial * 2^attempt, max). It is deterministic (no jitter),
// monotonically non-decreasing, and clamps at max once the exponential
// term passes it.
func Backoff(attempt int, initial, max time.Duration) time.Duration {
	if initial <= 0 {
		return 0
	}
	d := initial
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	if d > max {
		return max
	}
	return d
}
