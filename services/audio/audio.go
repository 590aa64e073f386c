// Package audio plays melodies on the piezo buzzer. Playback blocks the
// foreground loop for the whole song; only the millisecond interrupt keeps
// running.
package audio

import (
	"blinkytree-go/types"
	"blinkytree-go/x/mathx"
	"blinkytree-go/x/timex"
)

// Hardware is the slice of the hal driver the player drives.
type Hardware interface {
	Millis() uint32
	BuzzerInit()
	BuzzerSet(on bool)
	DelayUs(us uint32)
	DelayMs(ms uint32)
	MicrophoneInit()
	EEPROMReadByte(addr uint16) byte
	EEPROMWriteByte(addr uint16, v byte)
}

// Indicator is the playback light show.
type Indicator interface {
	AudioReactiveNote(freq uint16)
	AudioReactiveOff()
}

// Library supplies melodies, their tuning and the rotation.
type Library interface {
	Lookup(id types.MelodyID) (types.Melody, bool)
	Config(id types.MelodyID) types.SongConfig
	Enabled() []types.MelodyID
}

// Recalibrator is told to reset breath detection after a song.
type Recalibrator interface {
	ForceRecalibration()
}

const (
	MinDutyPct   = 10
	MaxDutyPct   = 100
	MinSpeedPct  = 25
	MaxSpeedPct  = 10000
	MaxTranspose = 12

	NoteGapMs  = 50
	CooldownMs = 3000

	// RotationAddr is the EEPROM cell holding the rotation index.
	RotationAddr = 0x00
)

// RotationMode picks how PlayNextMelody chooses a song.
type RotationMode uint8

const (
	RotationRandom RotationMode = iota
	RotationSequential
)

func (m RotationMode) String() string {
	if m == RotationRandom {
		return "random"
	}
	return "sequential"
}

// Options configure the player.
type Options struct {
	Rotation   RotationMode
	MicEnabled bool
}

// Player is the melody player.
type Player struct {
	hw     Hardware
	lib    Library
	lights Indicator
	sensor Recalibrator
	opts   Options

	initialised bool
	index       uint8
	playing     bool
	played      bool
	songEnd     uint32
}

// New wires a player. lights and sensor may be nil.
func New(hw Hardware, lib Library, lights Indicator, sensor Recalibrator, opts Options) *Player {
	return &Player{hw: hw, lib: lib, lights: lights, sensor: sensor, opts: opts}
}

// SetRecalibrator connects breath detection after construction.
func (p *Player) SetRecalibrator(r Recalibrator) { p.sensor = r }

// Init loads the rotation index. An out-of-range stored value is reset to
// 0 and written back.
func (p *Player) Init() {
	p.playing = false
	p.played = false
	p.songEnd = 0
	p.index = p.hw.EEPROMReadByte(RotationAddr)
	if n := len(p.lib.Enabled()); n > 0 && int(p.index) >= n {
		p.index = 0
		p.hw.EEPROMWriteByte(RotationAddr, 0)
	}
	p.initialised = true
}

// PlayMelody plays id to completion. Parameters are clamped to their valid
// ranges; unknown or empty melodies do nothing.
func (p *Player) PlayMelody(id types.MelodyID, dutyPct uint8, speedPct uint16, transpose int8) {
	m, ok := p.lib.Lookup(id)
	if !ok || len(m.Notes) == 0 {
		return
	}
	p.playing = true

	dutyPct = mathx.Clamp(dutyPct, MinDutyPct, MaxDutyPct)
	speedPct = mathx.Clamp(speedPct, MinSpeedPct, MaxSpeedPct)
	transpose = mathx.Clamp(transpose, -MaxTranspose, MaxTranspose)

	p.hw.BuzzerInit()

	last := len(m.Notes) - 1
	for i, n := range m.Notes {
		freq := TransposeFrequency(n.Freq, transpose)
		dur := scaleDuration(n.DurMs, speedPct)

		// The light show follows the written pitch.
		p.indicate(n.Freq)
		p.playTone(freq, dur, dutyPct)

		if i < last {
			p.indicateOff()
			p.playTone(0, scaleDuration(NoteGapMs, speedPct), dutyPct)
		}
	}

	p.indicateOff()
	if p.opts.MicEnabled {
		p.hw.MicrophoneInit()
	}

	now := p.hw.Millis()
	p.playing = false
	p.played = true
	p.songEnd = now

	if p.opts.MicEnabled && p.sensor != nil {
		p.sensor.ForceRecalibration()
	}
}

func scaleDuration(durMs, speedPct uint16) uint16 {
	return uint16(uint32(durMs) * 100 / uint32(speedPct))
}

func (p *Player) indicate(freq uint16) {
	if p.lights != nil {
		p.lights.AudioReactiveNote(freq)
	}
}

func (p *Player) indicateOff() {
	if p.lights != nil {
		p.lights.AudioReactiveOff()
	}
}

// PlaySong plays id with its registered tuning.
func (p *Player) PlaySong(id types.MelodyID) {
	c := p.lib.Config(id)
	p.PlayMelody(id, c.DutyCyclePct, c.SpeedPct, c.TransposeSemitones)
}

// PlayNextMelody advances the rotation, persists the new index and plays
// the selected song.
func (p *Player) PlayNextMelody() {
	enabled := p.lib.Enabled()
	n := len(enabled)
	if n == 0 {
		return
	}
	switch p.opts.Rotation {
	case RotationRandom:
		p.index = uint8(p.hw.Millis() % uint32(n))
	default:
		p.index = uint8((int(p.index) + 1) % n)
	}
	p.hw.EEPROMWriteByte(RotationAddr, p.index)
	p.PlaySong(enabled[p.index])
}

// PlayCurrentMelody replays the song at the current rotation index.
func (p *Player) PlayCurrentMelody() {
	enabled := p.lib.Enabled()
	if len(enabled) == 0 {
		return
	}
	if int(p.index) >= len(enabled) {
		p.index = 0
	}
	p.PlaySong(enabled[p.index])
}

// SongConfig returns the tuning used for id.
func (p *Player) SongConfig(id types.MelodyID) types.SongConfig { return p.lib.Config(id) }

func (p *Player) IsSongPlaying() bool { return p.playing }

// IsCooldownExpired reports whether breath triggers may start a song again.
func (p *Player) IsCooldownExpired() bool {
	return !p.played || timex.Due(p.hw.Millis(), p.songEnd, CooldownMs)
}

// RotationIndex is the in-memory rotation position.
func (p *Player) RotationIndex() uint8 { return p.index }

func (p *Player) SongEnd() uint32 { return p.songEnd }

func (p *Player) Initialised() bool { return p.initialised }
