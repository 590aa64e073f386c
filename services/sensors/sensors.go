// Package sensors turns microphone samples into breath events. A light
// breath brightens the candle; a strong one starts the next song.
package sensors

import (
	"blinkytree-go/x/mathx"
	"blinkytree-go/x/timex"
)

// Hardware is the slice of the hal driver the sensor samples through.
type Hardware interface {
	Millis() uint32
	MicrophoneInit()
	MicrophoneRead() uint16
	SampleWindowOpen() bool
}

// Booster receives the candle intensity boost (0..100).
type Booster interface {
	SetBoost(pct uint8)
}

const (
	DefaultBaseline        = 200
	DefaultLightThreshold  = 1
	DefaultStrongThreshold = 50
	DefaultIntervalMs      = 40

	// MaxLightBoost caps the boost a light breath can produce.
	MaxLightBoost = 50

	// Breath response curve bounds for BreathIntensity.
	MinBreathBoost = 40
	MaxBreathBoost = 200
)

// Config holds detection tuning. Thresholds are offsets above Baseline.
type Config struct {
	Baseline        uint16
	LightThreshold  uint16
	StrongThreshold uint16
	IntervalMs      uint32
}

func DefaultConfig() Config {
	return Config{
		Baseline:        DefaultBaseline,
		LightThreshold:  DefaultLightThreshold,
		StrongThreshold: DefaultStrongThreshold,
		IntervalMs:      DefaultIntervalMs,
	}
}

// Sensor is the breath detector. It is driven from the foreground loop.
type Sensor struct {
	hw       Hardware
	cfg      Config
	boost    Booster
	onStrong func()

	initialised bool
	baseline    uint16
	lastPoll    uint32
	raw         uint16
	intensity   uint16 // distance above baseline while in the light band
}

// New wires a sensor. onStrong runs synchronously on a strong breath.
func New(hw Hardware, cfg Config, boost Booster, onStrong func()) *Sensor {
	return &Sensor{hw: hw, cfg: cfg, boost: boost, onStrong: onStrong}
}

// Init brings up the microphone, starts the poll timer and sets the baseline.
func (s *Sensor) Init() {
	s.hw.MicrophoneInit()
	s.raw = 0
	s.intensity = 0
	s.lastPoll = s.hw.Millis()
	s.initialised = true
	s.Calibrate(false)
}

// Update polls the microphone once the poll interval has elapsed and the
// hardware reports a safe sample window. A closed window defers the poll to
// a later call without restarting the interval.
func (s *Sensor) Update() {
	if !s.initialised {
		return
	}
	now := s.hw.Millis()
	if !timex.Due(now, s.lastPoll, s.cfg.IntervalMs) {
		return
	}
	if !s.hw.SampleWindowOpen() {
		return
	}
	s.lastPoll = now

	raw := s.hw.MicrophoneRead()
	s.raw = raw

	light := s.baseline + s.cfg.LightThreshold
	strong := s.baseline + s.cfg.StrongThreshold
	switch {
	case raw > strong:
		s.intensity = 0
		if s.onStrong != nil {
			s.onStrong()
		}
		return
	case raw >= light:
		s.intensity = raw - s.baseline
		s.setBoost(lightBoost(raw-light, s.cfg.LightThreshold))
	default:
		s.intensity = 0
		s.setBoost(0)
	}
}

// lightBoost scales the distance into the light band onto [1, MaxLightBoost].
func lightBoost(above, light uint16) uint8 {
	if light == 0 {
		return MaxLightBoost
	}
	// The +1 counts the threshold sample itself as one step, so light=1
	// reaches the cap on the first sample in the band.
	b := mathx.MulDiv(uint32(above)+1, MaxLightBoost, uint32(light))
	return uint8(mathx.Min(b, MaxLightBoost))
}

func (s *Sensor) setBoost(pct uint8) {
	if s.boost != nil {
		s.boost.SetBoost(pct)
	}
}

// Shutdown stops polling until the next Init.
func (s *Sensor) Shutdown() { s.initialised = false }

// Calibrate fixes the baseline. The baseline does not track ambient level.
func (s *Sensor) Calibrate(forceImmediate bool) {
	_ = forceImmediate
	s.baseline = s.cfg.Baseline
}

// ForceRecalibration runs after playback to discard charge left on the
// shared pin.
func (s *Sensor) ForceRecalibration() { s.Calibrate(true) }

func (s *Sensor) Raw() uint16 { return s.raw }

// MeanValue is the last sample; no history is kept.
func (s *Sensor) MeanValue() uint16 { return s.raw }

func (s *Sensor) Baseline() uint16 { return s.baseline }

func (s *Sensor) IsBreathDetected() bool { return s.intensity > 0 }

// BreathIntensity maps the current breath onto [MinBreathBoost,
// MaxBreathBoost] with a squared response, or 0 without a breath.
func (s *Sensor) BreathIntensity() uint8 {
	if s.intensity == 0 {
		return 0
	}
	if s.cfg.StrongThreshold <= s.cfg.LightThreshold {
		return MaxBreathBoost
	}
	span := uint32(s.cfg.StrongThreshold - s.cfg.LightThreshold)
	var above uint32
	if s.intensity > s.cfg.LightThreshold {
		above = uint32(s.intensity - s.cfg.LightThreshold)
	}
	norm := mathx.Map(above, 0, span, 0, 255)
	curved := norm * norm / 255
	return uint8(mathx.Map(curved, 0, 255, MinBreathBoost, MaxBreathBoost))
}
