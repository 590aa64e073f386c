//go:build !avr

package sim

import (
	"blinkytree-go/services/hal/platform"
	"blinkytree-go/types"
)

// Recorder captures buzzer edges and accumulates LED on-time from pin
// transitions.
type Recorder struct {
	host    *platform.Host
	startUs uint64

	buzzer []platform.Edge

	ledPin   [types.LEDCount]int
	ledOnUs  [types.LEDCount]uint64
	ledSince [types.LEDCount]uint64
	ledHigh  [types.LEDCount]bool
}

// NewRecorder attaches to the buzzer and LED pins of h.
func NewRecorder(h *platform.Host) *Recorder {
	r := &Recorder{host: h, startUs: h.Clock.NowUs()}
	h.Pin(h.Layout.BuzzerPin).OnChange(func(e platform.Edge) {
		r.buzzer = append(r.buzzer, e)
	})
	for ch, pin := range h.Layout.LEDPins {
		ch := ch
		r.ledPin[ch] = pin
		h.Pin(pin).OnChange(func(e platform.Edge) { r.led(ch, e) })
	}
	return r
}

func (r *Recorder) led(ch int, e platform.Edge) {
	if e.Driven == r.ledHigh[ch] {
		return
	}
	if e.Driven {
		r.ledSince[ch] = e.AtUs
	} else {
		r.ledOnUs[ch] += e.AtUs - r.ledSince[ch]
	}
	r.ledHigh[ch] = e.Driven
}

// BuzzerEdges returns the recorded buzzer transitions in time order.
func (r *Recorder) BuzzerEdges() []platform.Edge { return r.buzzer }

func (r *Recorder) StartUs() uint64 { return r.startUs }

// Duty returns the mean brightness per channel since the recorder started,
// on the 0..255 scale of the PWM driver.
func (r *Recorder) Duty() types.Brightness {
	now := r.host.Clock.NowUs()
	span := now - r.startUs
	var out types.Brightness
	if span == 0 {
		return out
	}
	for ch := range out {
		on := r.ledOnUs[ch]
		if r.ledHigh[ch] {
			on += now - r.ledSince[ch]
		}
		out[ch] = uint8(on * 255 / span)
	}
	return out
}
