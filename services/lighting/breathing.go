package lighting

import "blinkytree-go/x/timex"

const (
	breathFloor  = 50
	breathSpan   = 205
	breathStep   = 10
	breathStepMs = 100
)

// Breathing ramps all rings between 50 and 255 and back.
type Breathing struct {
	level   uint8
	falling bool
	last    uint32
}

// Step returns the brightness for now, moving one step every 100 ms.
func (b *Breathing) Step(now uint32) uint8 {
	if timex.Due(now, b.last, breathStepMs) {
		b.last = now
		if !b.falling {
			b.level += breathStep
			if b.level >= breathSpan {
				b.level = breathSpan
				b.falling = true
			}
		} else if b.level >= breathStep {
			b.level -= breathStep
		} else {
			b.level = 0
			b.falling = false
		}
	}
	return breathFloor + b.level
}
