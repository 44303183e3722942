package utils

import (
	"context"
	"time"
)

// Throttle enforces a minimum interval between successive actions.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewThrottle creates a Throttle. The first Wait never blocks.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval, now: time.Now}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned, or until ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if !t.last.IsZero() {
		if remaining := t.interval - t.now().Sub(t.last); remaining > 0 {
			timer := time.NewTimer(remaining)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	t.last = t.now()
	return nil
}
