// Package chain supplies the logical clock the engine consumes. The clock is
// advanced by the surrounding environment, never by engine logic; entities
// record snapshots of it at commit time.
package chain

import "sync"

// Clock yields a monotonically non-decreasing logical height.
type Clock interface {
	Height() uint64
}

// WallClock maps wall time (unix seconds) onto the logical clock. It never
// goes backwards even if the system clock does.
type WallClock struct {
	mu   sync.Mutex
	last uint64
	now  func() uint64
}

func NewWallClock(now func() uint64) *WallClock {
	return &WallClock{now: now}
}

func (c *WallClock) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if h := c.now(); h > c.last {
		c.last = h
	}
	return c.last
}

// ManualClock is a hand-advanced clock for tests and replay harnesses.
type ManualClock struct {
	mu sync.Mutex
	h  uint64
}

func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{h: start}
}

func (c *ManualClock) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.h
}

func (c *ManualClock) Advance(by uint64) {
	c.mu.Lock()
	c.h += by
	c.mu.Unlock()
}

func (c *ManualClock) Set(h uint64) {
	c.mu.Lock()
	if h > c.h {
		c.h = h
	}
	c.mu.Unlock()
}
