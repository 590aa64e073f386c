package hal

import "blinkytree-go/types"

// ---- buzzer ----

func (d *Driver) BuzzerInit() { _ = d.buzzer.ConfigureOutput(false) }

func (d *Driver) BuzzerSet(on bool) { d.buzzer.Set(on) }

func (d *Driver) BuzzerStop() { d.buzzer.Set(false) }

// ---- busy-wait delays ----

func (d *Driver) DelayUs(us uint32) { d.board.Delay.DelayUs(us) }

func (d *Driver) DelayMs(ms uint32) { d.board.Delay.DelayMs(ms) }

// ---- playback indicators ----

// IndicatorClaimShared takes the shared pin as a plain output for the length
// of a song. MicrophoneInit hands it back.
func (d *Driver) IndicatorClaimShared() {
	if d.shared < 0 {
		return
	}
	_ = d.leds[d.shared].ConfigureOutput(false)
	d.role = RoleAudioOutput
	d.micReady = false
}

// IndicatorWrite drives ring ch fully on or off, bypassing the PWM.
func (d *Driver) IndicatorWrite(ch types.Channel, on bool) {
	if !ch.Valid() {
		return
	}
	if int(ch) == d.shared && d.role != RoleAudioOutput {
		return
	}
	d.leds[ch].Set(on)
}

func (d *Driver) IndicatorAllOff() {
	for ch := range d.leds {
		d.IndicatorWrite(types.Channel(ch), false)
	}
}
