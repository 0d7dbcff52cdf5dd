package irrigation

import (
	"sync"
	"time"
)

// Clock is a free running millisecond counter that wraps at 2^32.
type Clock interface {
	Millis() uint32
}

type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Millis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// ManualClock only moves when told to.
type ManualClock struct {
	mutex sync.Mutex
	now   uint32
}

func NewManualClock(now uint32) *ManualClock {
	return &ManualClock{now: now}
}

func (c *ManualClock) Millis() uint32 {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.now
}

func (c *ManualClock) Advance(ms uint32) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now += ms
}
