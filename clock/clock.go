// Package clock provides the simulated time the host evaluates each tick.
package clock

import (
	"context"
	"sync"
	"time"
)

// DefaultThreshold is the drift Sync tolerates before snapping to wall time.
const DefaultThreshold = 500 * time.Millisecond

// Clock is simulation time advanced from wall time by a multiplier.
// A multiplier of 1 follows the wall clock; 0 pauses.
type Clock struct {
	mu         sync.RWMutex
	current    time.Time
	lastWall   time.Time
	multiplier float64

	// Threshold overrides DefaultThreshold when positive.
	Threshold time.Duration
}

// New starts the clock at start. The first Advance measures from the wall
// time of its own call.
func New(start time.Time, multiplier float64) *Clock {
	return &Clock{current: start, multiplier: multiplier}
}

// Now returns the current simulation time.
func (c *Clock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Multiplier returns the simulation speed.
func (c *Clock) Multiplier() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.multiplier
}

// SetTime jumps to t.
func (c *Clock) SetTime(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}

// SetMultiplier changes the speed from the next Advance on.
func (c *Clock) SetMultiplier(m float64) {
	c.mu.Lock()
	c.multiplier = m
	c.mu.Unlock()
}

// Advance moves simulation time by the wall time elapsed since the previous
// call, scaled by the multiplier, and returns the new instant.
func (c *Clock) Advance(wall time.Time) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.lastWall.IsZero() {
		elapsed := wall.Sub(c.lastWall)
		c.current = c.current.Add(time.Duration(float64(elapsed) * c.multiplier))
	}
	c.lastWall = wall
	return c.current
}

// Sync snaps simulation time to wall when they differ by more than the
// threshold and reports whether it did. Drift at or below the threshold is
// left alone.
func (c *Clock) Sync(wall time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	limit := c.Threshold
	if limit <= 0 {
		limit = DefaultThreshold
	}
	drift := c.current.Sub(wall)
	if drift < 0 {
		drift = -drift
	}
	if drift <= limit {
		return false
	}
	c.current = wall
	return true
}

// Run calls fn with the wall time on every tick of interval until ctx is
// done.
func Run(ctx context.Context, interval time.Duration, fn func(wall time.Time)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case wall := <-ticker.C:
			fn(wall)
		}
	}
}
