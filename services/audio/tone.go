package audio

import "blinkytree-go/x/timex"

// playTone bit-bangs a square wave on the buzzer for freq*durMs/1000 full
// periods. The cycle count comes from integer division, so long notes drift
// by up to one period. freq 0 waits durMs in silence.
func (p *Player) playTone(freq, durMs uint16, dutyPct uint8) {
	if freq == 0 {
		p.hw.DelayMs(uint32(durMs))
		return
	}
	period := timex.PeriodUs(freq)
	high := period * uint32(dutyPct) / 100
	low := period - high
	cycles := uint32(freq) * uint32(durMs) / 1000

	for i := uint32(0); i < cycles; i++ {
		p.hw.BuzzerSet(true)
		p.hw.DelayUs(high)
		p.hw.BuzzerSet(false)
		p.hw.DelayUs(low)
	}
	p.hw.BuzzerSet(false)
}
