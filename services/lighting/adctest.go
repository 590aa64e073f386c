package lighting

import "blinkytree-go/types"

// ADC test bar graph: each ring lights above its threshold and scales to
// full brightness at adcFullScale (~600 mV against the 1.1 V reference).
const adcFullScale = 560

var adcBars = [types.LEDCount]uint16{
	types.ChannelBase:   50,
	types.ChannelMiddle: 150,
	types.ChannelUpper:  250,
	types.ChannelTip:    400,
}

// ADCBars maps a raw microphone reading to a bottom-up bar graph.
func ADCBars(raw uint16) types.Brightness {
	var out types.Brightness
	scaled := raw
	if scaled > adcFullScale {
		scaled = adcFullScale
	}
	for ch, th := range adcBars {
		if raw > th {
			out[ch] = uint8(5 + uint32(scaled-th)*250/uint32(adcFullScale-th))
		}
	}
	return out
}
