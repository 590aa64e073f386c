package lighting

import (
	"blinkytree-go/services/hal"
	"blinkytree-go/types"
	"blinkytree-go/x/timex"
)

const (
	StartupBrightness = 85 // a third of full
	StartupLeadMs     = 50
	StartupStepMs     = 150
	StartupDarkMs     = 80
)

var startupOrder = [...]types.Channel{
	types.ChannelBase, types.ChannelMiddle, types.ChannelUpper, types.ChannelTip,
}

// StartupAnimation builds the tree up ring by ring from the base, then goes
// dark briefly. It blocks for about 0.8 s while keeping the PWM running.
func (e *Engine) StartupAnimation() {
	e.hw.LEDAllOff()
	e.hold(StartupLeadMs)
	for _, ch := range startupOrder {
		e.set(ch, StartupBrightness)
		e.hold(StartupStepMs)
	}
	e.hw.LEDAllOff()
	e.states = types.Brightness{}
	e.hold(StartupDarkMs)
}

func (e *Engine) hold(ms uint32) {
	start := e.hw.Millis()
	for !timex.Due(e.hw.Millis(), start, ms) {
		e.hw.Update()
		e.hw.DelayUs(hal.LoopDelayUs)
	}
}
