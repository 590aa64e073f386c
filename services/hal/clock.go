package hal

import "sync/atomic"

// TickHz is the millisecond interrupt rate.
const TickHz = 1000

// Clock is the interrupt-driven millisecond counter. Tick runs in interrupt
// context; Millis is safe from the foreground loop. The counter rolls over
// after ~49.7 days, so compare times with x/timex.
type Clock struct {
	ms atomic.Uint32
}

func (c *Clock) Tick() { c.ms.Add(1) }

func (c *Clock) Millis() uint32 { return c.ms.Load() }
