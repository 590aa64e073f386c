// Package songs is the static melody library: note data, per-song playback
// tuning and the list of songs in rotation.
package songs

import "blinkytree-go/types"

var (
	// DefaultConfig applies to ids without their own tuning.
	DefaultConfig = types.SongConfig{DutyCyclePct: 50, SpeedPct: 100}
	// TestToneConfig is fixed regardless of any song file.
	TestToneConfig = types.SongConfig{DutyCyclePct: 80, SpeedPct: 100}
)

// Table is an immutable melody library.
type Table struct {
	melodies [types.MelodyCount]types.Melody
	configs  [types.MelodyCount]types.SongConfig
	enabled  []types.MelodyID
}

// Builtin returns the compiled-in library with every carol enabled.
func Builtin() *Table {
	return &Table{
		melodies: builtinMelodies,
		configs:  builtinConfigs,
		enabled:  builtinRotation,
	}
}

// Lookup returns the notes for id. Unknown or empty melodies are not found.
func (t *Table) Lookup(id types.MelodyID) (types.Melody, bool) {
	if id == types.MelodyNone || id >= types.MelodyCount {
		return types.Melody{}, false
	}
	m := t.melodies[id]
	if len(m.Notes) == 0 {
		return types.Melody{}, false
	}
	return m, true
}

// Config returns the tuning for id, DefaultConfig when it has none.
func (t *Table) Config(id types.MelodyID) types.SongConfig {
	if id >= types.MelodyCount {
		return DefaultConfig
	}
	c := t.configs[id]
	if c == (types.SongConfig{}) {
		return DefaultConfig
	}
	return c
}

// Enabled lists the rotation in play order.
func (t *Table) Enabled() []types.MelodyID { return t.enabled }

// WithRotation returns a copy of t with a new rotation and tuning. ids not
// in configs keep their current tuning.
func (t *Table) WithRotation(enabled []types.MelodyID, configs map[types.MelodyID]types.SongConfig) *Table {
	c := *t
	c.enabled = append([]types.MelodyID(nil), enabled...)
	for id, cfg := range configs {
		if id == types.MelodyTestTone || id >= types.MelodyCount {
			continue
		}
		c.configs[id] = cfg
	}
	return &c
}
