package config

import (
	"testing"

	"blinkytree-go/errcode"
	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/types"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.Revision() != halcore.RevisionDebug || c.EffectID() != types.EffectCandle {
		t.Fatalf("unexpected defaults: %+v", c)
	}
	if !c.Microphone || !c.Audio || c.StartupMelody || !c.SequentialRotation() {
		t.Fatalf("unexpected feature toggles: %+v", c)
	}
	s := c.SensorConfig()
	if s.Baseline != 200 || s.LightThreshold != 1 || s.StrongThreshold != 50 || s.IntervalMs != 40 {
		t.Fatalf("sensor defaults = %+v", s)
	}
}

func TestEmbeddedLookup(t *testing.T) {
	c, ok := EmbeddedLookup("production")
	if !ok || c.Revision() != halcore.RevisionProduction {
		t.Fatalf("production preset = %+v, %v", c, ok)
	}
	q, ok := EmbeddedLookup("quiet")
	if !ok || q.Audio || q.Microphone {
		t.Fatalf("quiet preset = %+v", q)
	}
	if _, ok := EmbeddedLookup("nope"); ok {
		t.Fatal("unknown preset resolved")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		code errcode.Code
	}{
		{"board", func(c *Config) { c.Board = "rev9" }, errcode.UnknownBoard},
		{"effect", func(c *Config) { c.Effect = "disco" }, errcode.UnknownEffect},
		{"rotation", func(c *Config) { c.Rotation = "shuffle" }, errcode.InvalidConfig},
		{"sample cadence", func(c *Config) { c.MicSampleEvery = 0 }, errcode.InvalidConfig},
		{"light zero", func(c *Config) { c.Sensor.LightThreshold = 0 }, errcode.InvalidConfig},
		{"strong below light", func(c *Config) { c.Sensor.StrongThreshold = 1 }, errcode.InvalidConfig},
		{"adc range", func(c *Config) { c.Sensor.Baseline = 1000 }, errcode.InvalidConfig},
		{"interval", func(c *Config) { c.Sensor.IntervalMs = 0 }, errcode.InvalidConfig},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.mut(&c)
			if got := errcode.Of(c.Validate()); got != tc.code {
				t.Fatalf("code = %q, want %q", got, tc.code)
			}
		})
	}
}

func TestRandomRotation(t *testing.T) {
	c := Default()
	c.Rotation = RotationRandom
	if c.SequentialRotation() {
		t.Fatal("random rotation reported as sequential")
	}
}
