//go:build !avr

// Package sim runs a tree on simulated hardware in virtual time, driven by
// a microphone stimulus script.
package sim

import (
	"io"

	"github.com/gopxl/beep"
	"tinygo.org/x/drivers"

	"blinkytree-go/services/config"
	"blinkytree-go/services/device"
	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/services/hal/platform"
	"blinkytree-go/services/songs"
	"blinkytree-go/types"
	"blinkytree-go/x/timex"
)

// Stimulus levels relative to the sensor baseline.
const (
	quietBelow  = 50
	lightAbove  = 5
	strongAbove = 100
)

// SongEvent is one completed playback.
type SongEvent struct {
	Song  types.MelodyID
	EndMs uint32
}

// Report summarises a run.
type Report struct {
	DurationMs    uint32
	Steps         uint32
	Songs         []SongEvent
	BuzzerEdges   int
	LEDDuty       types.Brightness
	Conversions   int
	HotReads      int
	Boost         uint8
	RotationIndex uint8
}

// Sim is a device on a simulated board.
type Sim struct {
	cfg  config.Config
	lib  *songs.Table
	host *platform.Host
	dev  *device.Device
	rec  *Recorder

	level   uint16
	lastEnd uint32
	songs   []SongEvent
}

// New builds and initialises a simulated device. lib may be nil.
func New(cfg config.Config, lib *songs.Table) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lib == nil {
		lib = songs.Builtin()
	}
	s := &Sim{cfg: cfg, lib: lib}
	s.host = platform.NewHost(halcore.LayoutFor(cfg.Revision()))
	s.host.ADC.Source = func(uint64) uint16 { return s.level }
	s.level = s.breathLevel(BreathQuiet)
	s.rec = NewRecorder(s.host)
	s.dev = device.New(s.host.Board(), cfg, lib)
	s.dev.Init()
	s.checkSong()
	return s, nil
}

func (s *Sim) Device() *device.Device { return s.dev }

func (s *Sim) Host() *platform.Host { return s.host }

func (s *Sim) Recorder() *Recorder { return s.rec }

func (s *Sim) breathLevel(b uint8) uint16 {
	base := int(s.cfg.Sensor.Baseline)
	var v int
	switch b {
	case BreathLight:
		v = base + int(s.cfg.Sensor.LightThreshold) + lightAbove
		// Stay below the strong band for wide light bands.
		if strong := base + int(s.cfg.Sensor.StrongThreshold); v > strong {
			v = strong
		}
	case BreathStrong:
		v = base + int(s.cfg.Sensor.StrongThreshold) + strongAbove
	default:
		v = base - quietBelow
	}
	return uint16(min(max(v, 0), 1023))
}

// Run executes script and returns a report for the whole session so far.
func (s *Sim) Run(script Script) Report {
	for _, a := range script {
		s.apply(a)
	}
	return s.Report()
}

func (s *Sim) apply(a Action) {
	switch a.Op {
	case OpLevel:
		s.level = a.Level
	case OpBreath:
		s.level = s.breathLevel(a.Breath)
	case OpEffect:
		s.dev.Lighting().SetEffect(a.Effect)
	case OpPlay:
		if p := s.dev.Player(); p != nil {
			p.PlaySong(a.Song)
			s.recordSong(a.Song)
		}
	case OpNext:
		if p := s.dev.Player(); p != nil {
			p.PlayNextMelody()
			s.checkSong()
		}
	}
	s.RunFor(a.Ms)
}

// RunFor steps the foreground loop for at least ms of virtual time.
func (s *Sim) RunFor(ms uint32) {
	start := s.dev.HAL().Millis()
	for timex.Elapsed(s.dev.HAL().Millis(), start) < ms {
		s.dev.Step()
		s.checkSong()
	}
}

// checkSong records playbacks started by the device itself.
func (s *Sim) checkSong() {
	p := s.dev.Player()
	if p == nil || p.SongEnd() == s.lastEnd {
		return
	}
	var id types.MelodyID
	if en := s.lib.Enabled(); int(p.RotationIndex()) < len(en) {
		id = en[p.RotationIndex()]
	}
	s.recordSong(id)
}

func (s *Sim) recordSong(id types.MelodyID) {
	p := s.dev.Player()
	if p.SongEnd() == s.lastEnd {
		return
	}
	s.lastEnd = p.SongEnd()
	s.songs = append(s.songs, SongEvent{Song: id, EndMs: s.lastEnd})
}

// Report snapshots counters without disturbing the run.
func (s *Sim) Report() Report {
	r := Report{
		DurationMs:  s.dev.HAL().Millis(),
		Steps:       s.dev.Steps(),
		Songs:       append([]SongEvent(nil), s.songs...),
		BuzzerEdges: len(s.rec.BuzzerEdges()),
		LEDDuty:     s.rec.Duty(),
		Conversions: s.host.ADC.Conversions(),
		HotReads:    s.host.ADC.HotReads(),
		Boost:       s.dev.Lighting().Boost(),
	}
	if p := s.dev.Player(); p != nil {
		r.RotationIndex = p.RotationIndex()
	}
	return r
}

// ProbeMicrophone takes one reading through the sensor interface and
// returns it in microvolts. It costs one ADC conversion.
func (s *Sim) ProbeMicrophone() (int32, error) {
	if !s.cfg.Microphone {
		return 0, nil
	}
	m := s.dev.HAL().Microphone()
	if err := m.Update(drivers.Voltage); err != nil {
		return 0, err
	}
	return m.Voltage(), nil
}

// WriteWAV renders every buzzer edge recorded so far.
func (s *Sim) WriteWAV(w io.WriteSeeker, rate beep.SampleRate) error {
	return RenderWAV(w, s.rec.BuzzerEdges(), s.rec.StartUs(), s.host.Clock.NowUs(), rate)
}
