package store

import (
	"context"
	"time"
)

// Delay simulates identity-provider latency for the mock auth flow.
// The pending state change is tied to ctx: if ctx ends before the pause is
// over, the change is dropped instead of being applied later.
type Delay struct {
	d time.Duration
}

// NewDelay returns a Delay of d; zero or negative means no pause
func NewDelay(d time.Duration) Delay {
	return Delay{d: d}
}

// Duration returns the configured pause
func (d Delay) Duration() time.Duration {
	return d.d
}

// Do waits out the pause and runs fn, unless ctx is done first, in which case
// fn is not run and ctx.Err() is returned.
func (d Delay) Do(ctx context.Context, fn func()) error {
	if d.d > 0 {
		t := time.NewTimer(d.d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}
