// Package lighting runs the LED effects: the breath-reactive candle, a few
// simpler patterns and the note-driven light show used during songs.
package lighting

import (
	"tinygo.org/x/drivers"

	"blinkytree-go/types"
	"blinkytree-go/x/timex"
)

// Hardware is the slice of the hal driver lighting needs.
type Hardware interface {
	Millis() uint32
	Update()
	LEDSet(ch types.Channel, b uint8)
	LEDAllOff()
	DelayUs(us uint32)

	IndicatorClaimShared()
	IndicatorWrite(ch types.Channel, on bool)
	IndicatorAllOff()
}

// Microphone feeds the ADC test effect.
type Microphone interface {
	drivers.Sensor
	Raw() uint16
}

// Playback reports whether a song owns the LEDs.
type Playback interface {
	IsSongPlaying() bool
}

// MaxBoost bounds the breath boost.
const MaxBoost = 100

// Engine holds the current effect and its animation phase.
type Engine struct {
	hw       Hardware
	mic      Microphone
	playback Playback

	effect  types.Effect
	counter uint16
	boost   uint8
	states  types.Brightness

	candle     Candle
	candleLast uint32
	breathing  Breathing
}

// New returns an engine with no effect selected. mic may be nil when the
// microphone is disabled.
func New(hw Hardware, mic Microphone) *Engine {
	return &Engine{hw: hw, mic: mic, candle: NewCandle()}
}

// SetPlayback connects the song player; while it plays Update does nothing.
func (e *Engine) SetPlayback(p Playback) { e.playback = p }

// Init clears all state and selects effect.
func (e *Engine) Init(effect types.Effect) {
	e.boost = 0
	e.states = types.Brightness{}
	e.candle = NewCandle()
	e.candleLast = 0
	e.breathing = Breathing{}
	e.SetEffect(effect)
}

// SetEffect switches effect and restarts its phase counter.
func (e *Engine) SetEffect(effect types.Effect) {
	if effect >= types.EffectCount {
		return
	}
	e.effect = effect
	e.counter = 0
}

func (e *Engine) Effect() types.Effect { return e.effect }

func (e *Engine) Counter() uint16 { return e.counter }

// SetBoost sets the candle breath boost, clamped to MaxBoost.
func (e *Engine) SetBoost(pct uint8) {
	if pct > MaxBoost {
		pct = MaxBoost
	}
	e.boost = pct
}

func (e *Engine) Boost() uint8 { return e.boost }

// States returns the last brightness requested per ring.
func (e *Engine) States() types.Brightness { return e.states }

// Update runs one tick of the active effect. It never blocks.
func (e *Engine) Update() {
	if e.playback != nil && e.playback.IsSongPlaying() {
		return
	}
	if e.effect == types.EffectNone {
		return
	}
	now := e.hw.Millis()
	e.counter++

	switch e.effect {
	case types.EffectStatic:
		e.setAll(DefaultBrightness)
	case types.EffectBreathing:
		e.setAll(e.breathing.Step(now))
	case types.EffectCandle:
		if timex.Due(now, e.candleLast, CandleIntervalMs) {
			e.candleLast = now
			e.apply(e.candle.Next(e.counter, e.boost))
		}
	case types.EffectADCTest:
		if e.mic == nil {
			return
		}
		_ = e.mic.Update(drivers.Voltage)
		e.apply(ADCBars(e.mic.Raw()))
	}
}

func (e *Engine) set(ch types.Channel, b uint8) {
	e.states[ch] = b
	e.hw.LEDSet(ch, b)
}

func (e *Engine) setAll(b uint8) {
	for ch := types.ChannelTip; ch <= types.ChannelBase; ch++ {
		e.set(ch, b)
	}
}

func (e *Engine) apply(frame types.Brightness) {
	for ch, b := range frame {
		e.set(types.Channel(ch), b)
	}
}
