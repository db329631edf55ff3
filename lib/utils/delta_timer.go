package utils

import "time"

// DeltaTimer measures the time between successive frames.
type DeltaTimer struct {
	last time.Time

	// Elapsed is the sum of all deltas returned so far.
	Elapsed time.Duration
}

func (d *DeltaTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := time.Now()

	if d.last.IsZero() {
		d.last = now
		return 0
	}
	dt := now.Sub(d.last)
	d.last = now
	d.Elapsed += dt
	return dt
}
