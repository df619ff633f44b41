package game

import (
	"time"
)

// clock is a stoppable timer that can be rearmed from the referee loop.
type clock struct {
	timer *time.Timer
	armed bool
}

func newClock() *clock {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &clock{timer: t}
}

func (c *clock) arm(d time.Duration) {
	c.stop()
	if d < 0 {
		d = 0
	}
	c.timer.Reset(d)
	c.armed = true
}

func (c *clock) stop() {
	if !c.timer.Stop() && c.armed {
		select {
		case <-c.timer.C:
		default:
		}
	}
	c.armed = false
}

// fired must be called after a value was received from C.
func (c *clock) fired() {
	c.armed = false
}

func (c *clock) C() <-chan time.Time {
	return c.timer.C
}
