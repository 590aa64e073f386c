// Package device owns one tree: it wires the hardware driver, lighting,
// breath sensor and melody player together and runs the foreground loop.
package device

import (
	"context"

	"blinkytree-go/services/audio"
	"blinkytree-go/services/config"
	"blinkytree-go/services/hal"
	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/services/lighting"
	"blinkytree-go/services/sensors"
	"blinkytree-go/services/songs"
)

// Device is the single owner of all component state.
type Device struct {
	cfg config.Config

	hal    *hal.Driver
	lights *lighting.Engine
	sensor *sensors.Sensor
	player *audio.Player

	steps uint32
}

// New wires a device for board. lib may be nil for the built-in songs.
func New(board halcore.Board, cfg config.Config, lib *songs.Table) *Device {
	if lib == nil {
		lib = songs.Builtin()
	}
	d := &Device{cfg: cfg}

	d.hal = hal.New(board, hal.Options{
		MicEnabled:     cfg.Microphone,
		MicSampleEvery: cfg.MicSampleEvery,
	})

	var mic lighting.Microphone
	if cfg.Microphone {
		mic = d.hal.Microphone()
	}
	d.lights = lighting.New(d.hal, mic)

	if cfg.Audio {
		rot := audio.RotationSequential
		if !cfg.SequentialRotation() {
			rot = audio.RotationRandom
		}
		d.player = audio.New(d.hal, lib, d.lights, nil, audio.Options{
			Rotation:   rot,
			MicEnabled: cfg.Microphone,
		})
		d.lights.SetPlayback(d.player)
	}

	if cfg.Microphone {
		var onStrong func()
		if d.player != nil {
			onStrong = d.onStrongBreath
		}
		d.sensor = sensors.New(d.hal, cfg.SensorConfig(), d.lights, onStrong)
		if d.player != nil {
			d.player.SetRecalibrator(d.sensor)
		}
	}
	return d
}

func (d *Device) onStrongBreath() {
	println("[device] strong breath, next song")
	d.player.PlayNextMelody()
	println("[device] song done, index", d.player.RotationIndex())
}

// Init brings every component up in order and optionally runs the startup
// animation and melody.
func (d *Device) Init() {
	println("[device] init board", d.cfg.Board, "effect", d.cfg.Effect)
	d.hal.Init()
	d.lights.Init(d.cfg.EffectID())
	if d.cfg.StartupAnimation {
		d.lights.StartupAnimation()
	}
	if d.sensor != nil {
		d.sensor.Init()
	}
	if d.player != nil {
		d.player.Init()
		if d.cfg.StartupMelody {
			println("[device] startup melody")
			d.player.PlayNextMelody()
		}
	}
	println("[device] ready")
}

// Step is one foreground iteration: PWM, effect, then the breath sensor
// unless a song is playing or cooling down.
func (d *Device) Step() {
	d.hal.Update()
	d.lights.Update()
	if d.sensor != nil && d.sensorAllowed() {
		d.sensor.Update()
	}
	d.hal.DelayUs(hal.LoopDelayUs)
	d.steps++
}

func (d *Device) sensorAllowed() bool {
	if d.player == nil {
		return true
	}
	return !d.player.IsSongPlaying() && d.player.IsCooldownExpired()
}

// Run steps until ctx is cancelled.
func (d *Device) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			println("[device] stopping")
			return ctx.Err()
		default:
		}
		d.Step()
	}
}

func (d *Device) Config() config.Config { return d.cfg }

func (d *Device) HAL() *hal.Driver { return d.hal }

func (d *Device) Lighting() *lighting.Engine { return d.lights }

// Sensor is nil when the microphone is disabled.
func (d *Device) Sensor() *sensors.Sensor { return d.sensor }

// Player is nil when audio is disabled.
func (d *Device) Player() *audio.Player { return d.player }

// Steps counts completed loop iterations.
func (d *Device) Steps() uint32 { return d.steps }
