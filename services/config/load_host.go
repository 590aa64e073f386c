//go:build !avr

package config

import (
	"io"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"blinkytree-go/errcode"
)

// EnvPrefix prefixes environment overrides, e.g. BLINKYTREE_SENSOR_BASELINE.
const EnvPrefix = "BLINKYTREE"

// Load starts from preset (Default when empty), applies the file at path
// when given, then environment overrides, and validates the result.
func Load(path, preset string) (Config, error) {
	const op = "config.load"
	base := Default()
	if preset != "" {
		c, ok := EmbeddedLookup(preset)
		if !ok {
			return Config{}, errcode.New(errcode.InvalidConfig, op, "unknown preset "+preset)
		}
		base = c
	}

	v := viper.New()
	setDefaults(v, base)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errcode.Wrap(errcode.IO, op, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errcode.Wrap(errcode.InvalidConfig, op, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// setDefaults registers every key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("board", c.Board)
	v.SetDefault("effect", c.Effect)
	v.SetDefault("microphone", c.Microphone)
	v.SetDefault("audio", c.Audio)
	v.SetDefault("rotation", c.Rotation)
	v.SetDefault("startup_melody", c.StartupMelody)
	v.SetDefault("startup_animation", c.StartupAnimation)
	v.SetDefault("mic_sample_every", c.MicSampleEvery)
	v.SetDefault("sensor.baseline", c.Sensor.Baseline)
	v.SetDefault("sensor.light_threshold", c.Sensor.LightThreshold)
	v.SetDefault("sensor.strong_threshold", c.Sensor.StrongThreshold)
	v.SetDefault("sensor.interval_ms", c.Sensor.IntervalMs)
	v.SetDefault("songs_file", c.SongsFile)
}

// Write renders c as a YAML config file.
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errcode.Wrap(errcode.IO, "config.write", err)
	}
	return errcode.Wrap(errcode.IO, "config.write", enc.Close())
}
