// Package config resolves the feature set once at startup: board wiring,
// lighting effect, microphone and audio toggles, rotation mode and breath
// detection tuning.
package config

import (
	"fmt"

	"blinkytree-go/errcode"
	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/services/sensors"
	"blinkytree-go/types"
)

const (
	RotationSequential = "sequential"
	RotationRandom     = "random"
)

// Sensor is breath detection tuning.
type Sensor struct {
	Baseline        uint16 `mapstructure:"baseline" yaml:"baseline"`
	LightThreshold  uint16 `mapstructure:"light_threshold" yaml:"light_threshold"`
	StrongThreshold uint16 `mapstructure:"strong_threshold" yaml:"strong_threshold"`
	IntervalMs      uint32 `mapstructure:"interval_ms" yaml:"interval_ms"`
}

// Config is the device configuration. Names are the ones used in config
// files.
type Config struct {
	Board            string `mapstructure:"board" yaml:"board"`
	Effect           string `mapstructure:"effect" yaml:"effect"`
	Microphone       bool   `mapstructure:"microphone" yaml:"microphone"`
	Audio            bool   `mapstructure:"audio" yaml:"audio"`
	Rotation         string `mapstructure:"rotation" yaml:"rotation"`
	StartupMelody    bool   `mapstructure:"startup_melody" yaml:"startup_melody"`
	StartupAnimation bool   `mapstructure:"startup_animation" yaml:"startup_animation"`
	MicSampleEvery   uint8  `mapstructure:"mic_sample_every" yaml:"mic_sample_every"`
	Sensor           Sensor `mapstructure:"sensor" yaml:"sensor"`
	// SongsFile optionally points at a song file (host builds only).
	SongsFile string `mapstructure:"songs_file" yaml:"songs_file,omitempty"`
}

// Default is the shipped debug-board configuration: candle effect,
// microphone and audio on, sequential rotation, no startup melody.
func Default() Config {
	s := sensors.DefaultConfig()
	return Config{
		Board:          halcore.RevisionDebug.String(),
		Effect:         types.EffectCandle.String(),
		Microphone:     true,
		Audio:          true,
		Rotation:       RotationSequential,
		MicSampleEvery: 8,
		Sensor: Sensor{
			Baseline:        s.Baseline,
			LightThreshold:  s.LightThreshold,
			StrongThreshold: s.StrongThreshold,
			IntervalMs:      s.IntervalMs,
		},
	}
}

// EmbeddedLookup resolves a named preset. Overridable for tests.
var EmbeddedLookup = func(name string) (Config, bool) {
	c := Default()
	switch name {
	case "debug":
	case "production":
		c.Board = halcore.RevisionProduction.String()
	case "production-old":
		c.Board = halcore.RevisionProductionOld.String()
	case "quiet":
		c.Audio = false
		c.Microphone = false
	case "showcase":
		c.StartupAnimation = true
		c.StartupMelody = true
	default:
		return Config{}, false
	}
	return c, true
}

// Validate checks every field and reports the first problem.
func (c Config) Validate() error {
	const op = "config.validate"
	if _, ok := halcore.ParseRevision(c.Board); !ok {
		return errcode.New(errcode.UnknownBoard, op, c.Board)
	}
	if _, ok := types.ParseEffect(c.Effect); !ok {
		return errcode.New(errcode.UnknownEffect, op, c.Effect)
	}
	if c.Rotation != RotationSequential && c.Rotation != RotationRandom {
		return errcode.New(errcode.InvalidConfig, op, "rotation must be sequential or random, got "+c.Rotation)
	}
	if c.MicSampleEvery == 0 {
		return errcode.New(errcode.InvalidConfig, op, "mic_sample_every must be at least 1")
	}
	if c.Sensor.LightThreshold == 0 {
		return errcode.New(errcode.InvalidConfig, op, "sensor.light_threshold must be at least 1")
	}
	if c.Sensor.StrongThreshold <= c.Sensor.LightThreshold {
		return errcode.New(errcode.InvalidConfig, op,
			fmt.Sprintf("sensor.strong_threshold %d must exceed light_threshold %d", c.Sensor.StrongThreshold, c.Sensor.LightThreshold))
	}
	if int(c.Sensor.Baseline)+int(c.Sensor.StrongThreshold) > 1023 {
		return errcode.New(errcode.InvalidConfig, op, "sensor.baseline + strong_threshold exceeds the 10-bit ADC range")
	}
	if c.Sensor.IntervalMs == 0 {
		return errcode.New(errcode.InvalidConfig, op, "sensor.interval_ms must be at least 1")
	}
	return nil
}

// Revision returns the board revision, debug when unset or unknown.
func (c Config) Revision() halcore.Revision {
	r, _ := halcore.ParseRevision(c.Board)
	return r
}

// EffectID returns the lighting effect, none when unknown.
func (c Config) EffectID() types.Effect {
	e, _ := types.ParseEffect(c.Effect)
	return e
}

func (c Config) SequentialRotation() bool { return c.Rotation != RotationRandom }

// SensorConfig converts the tuning for the sensors package.
func (c Config) SensorConfig() sensors.Config {
	return sensors.Config{
		Baseline:        c.Sensor.Baseline,
		LightThreshold:  c.Sensor.LightThreshold,
		StrongThreshold: c.Sensor.StrongThreshold,
		IntervalMs:      c.Sensor.IntervalMs,
	}
}
