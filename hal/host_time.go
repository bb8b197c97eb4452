//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type hostClock struct {
	mu      sync.Mutex
	virtual bool
	now     time.Time
}

func newRealClock() *hostClock { return &hostClock{} }

// newVirtualClock starts at start and only moves on step.
func newVirtualClock(start time.Time) *hostClock {
	return &hostClock{virtual: true, now: start}
}

func (c *hostClock) Now() time.Time {
	if !c.virtual {
		return time.Now()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *hostClock) step(d time.Duration) {
	if !c.virtual {
		return
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
