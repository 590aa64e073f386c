package lighting

import (
	"blinkytree-go/types"
	"blinkytree-go/x/mathx"
)

const (
	DefaultBrightness = 30
	MinBrightness     = 10

	CandleIntervalMs = 130
	CandleStartSeed  = 42
	// FlickerScale is the flicker amplitude in percent of full strength.
	FlickerScale = 25
)

// flame holds the per-ring constants of the candle model. Every variation
// term has the form (value - mid) * gain * FlickerScale / 100.
type flame struct {
	basePct int

	seedOff  uint8
	fastMul  int
	fastMask int
	fastMid  int
	fastGain int

	waveDiv   uint16
	wavePhase uint16
	waveMask  uint16
	waveMid   int
	waveGain  int

	globalDiv int
	gust      int
	boostNum  int
	boostDen  int
	max       int
}

// Tip flickers hardest and reacts most to breath; the base barely moves.
var flames = [types.LEDCount]flame{
	types.ChannelTip: {
		basePct: 140,
		seedOff: 7, fastMul: 5, fastMask: 0x3F, fastMid: 31, fastGain: 1,
		waveDiv: 1, wavePhase: 3, waveMask: 0x1F, waveMid: 7, waveGain: 3,
		globalDiv: 200, gust: 30, boostNum: 4, boostDen: 5, max: 180,
	},
	types.ChannelUpper: {
		basePct: 75,
		seedOff: 13, fastMul: 3, fastMask: 0x1F, fastMid: 15, fastGain: 1,
		waveDiv: 2, wavePhase: 7, waveMask: 0x1F, waveMid: 7, waveGain: 2,
		globalDiv: 300, gust: 25, boostNum: 7, boostDen: 10, max: 140,
	},
	types.ChannelMiddle: {
		basePct: 50,
		seedOff: 19, fastMul: 2, fastMask: 0x0F, fastMid: 7, fastGain: 1,
		waveDiv: 3, wavePhase: 11, waveMask: 0x0F, waveMid: 3, waveGain: 2,
		globalDiv: 400, gust: 20, boostNum: 3, boostDen: 5, max: 100,
	},
	types.ChannelBase: {
		basePct: 40,
		seedOff: 23, fastMul: 1, fastMask: 0x07, fastMid: 3, fastGain: 2,
		waveDiv: 6, wavePhase: 0, waveMask: 0x07, waveMid: 1, waveGain: 2,
		globalDiv: 600, gust: 12, boostNum: 2, boostDen: 5, max: 70,
	},
}

// Candle is the flame generator. Its output depends only on the seed, the
// effect counter and the boost, so equal inputs replay identical frames.
type Candle struct {
	Seed uint8
}

func NewCandle() Candle { return Candle{Seed: CandleStartSeed} }

// Next advances the seed and computes one frame.
func (c *Candle) Next(counter uint16, boost uint8) types.Brightness {
	c.Seed = c.Seed*13 + 37

	global := int(mathx.Fold(counter/8, 0x7F))
	gust := c.Seed&0x1F == 0x1F

	var out types.Brightness
	for ch := range flames {
		f := &flames[ch]
		fast := int(c.Seed+f.seedOff) * f.fastMul & f.fastMask
		wave := int(mathx.Fold(counter/f.waveDiv+f.wavePhase, f.waveMask))

		b := DefaultBrightness * f.basePct / 100
		b += (fast - f.fastMid) * f.fastGain * FlickerScale / 100
		b += (wave - f.waveMid) * f.waveGain * FlickerScale / 100
		b += (global - 31) * FlickerScale / f.globalDiv
		if gust {
			b -= f.gust * FlickerScale / 100
		}
		b += int(boost) * f.boostNum / f.boostDen
		out[ch] = mathx.ClampU8(b, MinBrightness, uint8(f.max))
	}
	return out
}
