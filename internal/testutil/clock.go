// Package testutil provides deterministic fixture builders shared by tests.
package testutil

import (
	"sync"
	"time"
)

// CaptureClock hands out evenly spaced capture timestamps for fixtures.
//
// Unlike time.Now based fixtures, a CaptureClock makes asset and event
// series reproducible: the same clock produces the same timestamps on every
// run, so golden files never drift. Reset allows reuse across subtests.
//
// Safe for concurrent use.
type CaptureClock struct {
	mu    sync.Mutex
	start time.Time
	step  time.Duration
	n     int
}

// NewCaptureClock creates a clock ticking from start in fixed steps.
func NewCaptureClock(start time.Time, step time.Duration) *CaptureClock {
	return &CaptureClock{start: start, step: step}
}

// Next returns the next timestamp in the series. The first call returns the
// start time itself.
func (c *CaptureClock) Next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.n) * c.step)
	c.n++
	return t
}

// Reset rewinds the clock so the next call returns the start time again.
func (c *CaptureClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n = 0
}
