//go:build !avr

package songs

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"blinkytree-go/errcode"
	"blinkytree-go/types"
)

// Defaults for keys a song entry leaves out.
const (
	fileDefaultDuty  = 75
	fileDefaultSpeed = 100
)

// Entry is one song in a song file.
type Entry struct {
	Enabled   bool `yaml:"enabled"`
	DutyCycle *int `yaml:"duty_cycle,omitempty"`
	Speed     *int `yaml:"speed,omitempty"`
	Transpose *int `yaml:"transpose,omitempty"`
}

// Config resolves the entry's tuning with file defaults applied.
func (e Entry) Config() types.SongConfig {
	duty, speed, tr := fileDefaultDuty, fileDefaultSpeed, 0
	if e.DutyCycle != nil {
		duty = *e.DutyCycle
	}
	if e.Speed != nil {
		speed = *e.Speed
	}
	if e.Transpose != nil {
		tr = *e.Transpose
	}
	return types.SongConfig{DutyCyclePct: uint8(duty), SpeedPct: uint16(speed), TransposeSemitones: int8(tr)}
}

func (e Entry) validate(name string) error {
	const op = "songs.config"
	if e.DutyCycle != nil && (*e.DutyCycle < 10 || *e.DutyCycle > 100) {
		return errcode.New(errcode.InvalidConfig, op, fmt.Sprintf("%s: duty_cycle %d outside 10..100", name, *e.DutyCycle))
	}
	if e.Speed != nil && (*e.Speed < 25 || *e.Speed > 10000) {
		return errcode.New(errcode.InvalidConfig, op, fmt.Sprintf("%s: speed %d outside 25..10000", name, *e.Speed))
	}
	if e.Transpose != nil && (*e.Transpose < -12 || *e.Transpose > 12) {
		return errcode.New(errcode.InvalidConfig, op, fmt.Sprintf("%s: transpose %d outside -12..12", name, *e.Transpose))
	}
	return nil
}

// NamedEntry keeps file order, which is the rotation order.
type NamedEntry struct {
	Name  string
	ID    types.MelodyID
	Entry Entry
}

// ParseConfig reads a song file of the form
//
//	songs:
//	  silent_night: {enabled: true, duty_cycle: 50, speed: 120, transpose: 0}
func ParseConfig(r io.Reader) ([]NamedEntry, error) {
	const op = "songs.config"
	var doc struct {
		Songs yaml.Node `yaml:"songs"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errcode.Wrap(errcode.InvalidConfig, op, err)
	}
	if doc.Songs.Kind == 0 {
		return nil, nil
	}
	if doc.Songs.Kind != yaml.MappingNode {
		return nil, errcode.New(errcode.InvalidConfig, op, "songs must be a mapping")
	}
	out := make([]NamedEntry, 0, len(doc.Songs.Content)/2)
	for i := 0; i+1 < len(doc.Songs.Content); i += 2 {
		name := doc.Songs.Content[i].Value
		id, ok := types.ParseMelody(name)
		if !ok || id == types.MelodyTestTone {
			return nil, errcode.New(errcode.UnknownMelody, op, name)
		}
		var e Entry
		if err := doc.Songs.Content[i+1].Decode(&e); err != nil {
			return nil, errcode.Wrap(errcode.InvalidConfig, op, fmt.Errorf("%s: %w", name, err))
		}
		if err := e.validate(name); err != nil {
			return nil, err
		}
		out = append(out, NamedEntry{Name: name, ID: id, Entry: e})
	}
	return out, nil
}

// LoadConfig applies a song file to base: the enabled songs become the
// rotation in file order and every listed song takes the file's tuning.
func LoadConfig(r io.Reader, base *Table) (*Table, error) {
	entries, err := ParseConfig(r)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		return base, nil
	}
	var enabled []types.MelodyID
	configs := make(map[types.MelodyID]types.SongConfig, len(entries))
	for _, ne := range entries {
		configs[ne.ID] = ne.Entry.Config()
		if ne.Entry.Enabled {
			enabled = append(enabled, ne.ID)
		}
	}
	return base.WithRotation(enabled, configs), nil
}

// MarshalConfig renders t in song-file form.
func MarshalConfig(w io.Writer, t *Table) error {
	on := make(map[types.MelodyID]bool)
	order := append([]types.MelodyID(nil), t.Enabled()...)
	for _, id := range order {
		on[id] = true
	}
	for id := types.MelodyOhChristmasTree; id < types.MelodyTestTone; id++ {
		if !on[id] {
			order = append(order, id)
		}
	}
	songs := &yaml.Node{Kind: yaml.MappingNode}
	for _, id := range order {
		c := t.Config(id)
		duty, speed, tr := int(c.DutyCyclePct), int(c.SpeedPct), int(c.TransposeSemitones)
		var v yaml.Node
		if err := v.Encode(Entry{Enabled: on[id], DutyCycle: &duty, Speed: &speed, Transpose: &tr}); err != nil {
			return errcode.Wrap(errcode.Error, "songs.marshal", err)
		}
		songs.Content = append(songs.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: id.String()}, &v)
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "songs"}, songs,
	}}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return errcode.Wrap(errcode.IO, "songs.marshal", err)
	}
	return errcode.Wrap(errcode.IO, "songs.marshal", enc.Close())
}
