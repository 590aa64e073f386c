package types

// Effect selects the per-tick lighting routine.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectStatic
	EffectBreathing
	EffectCandle
	EffectADCTest // diagnostic: bar graph of the raw microphone reading
	EffectCount
)

var effectNames = [EffectCount]string{"none", "static", "breathing", "candle", "adc_test"}

func (e Effect) String() string {
	if e < EffectCount {
		return effectNames[e]
	}
	return "invalid"
}

// ParseEffect resolves a configuration name to an Effect.
func ParseEffect(name string) (Effect, bool) {
	for i, n := range effectNames {
		if n == name {
			return Effect(i), true
		}
	}
	return EffectNone, false
}
