package lighting

import (
	"blinkytree-go/services/songs"
	"blinkytree-go/types"
)

// Note bands for the playback light show. Higher notes light rings nearer
// the tip. Frequencies between bands light nothing.
const (
	tipMin    = songs.NoteC5
	upperMin  = songs.NoteA4
	upperMax  = songs.NoteB4
	middleMin = songs.NoteF4
	middleMax = songs.NoteG4
	baseMax   = songs.NoteE4
)

// BandFor returns the ring that shows freq.
func BandFor(freq uint16) (types.Channel, bool) {
	switch {
	case freq == 0:
		return 0, false
	case freq >= tipMin:
		return types.ChannelTip, true
	case freq >= upperMin && freq <= upperMax:
		return types.ChannelUpper, true
	case freq >= middleMin && freq <= middleMax:
		return types.ChannelMiddle, true
	case freq <= baseMax:
		return types.ChannelBase, true
	}
	return 0, false
}

// AudioReactiveNote lights the ring for freq fully on and every other ring
// off, writing pins directly. It takes the shared pin as an output first,
// also for a rest (freq 0), which leaves every ring off.
func (e *Engine) AudioReactiveNote(freq uint16) {
	e.hw.IndicatorClaimShared()
	e.AudioReactiveOff()
	if freq == 0 {
		return
	}
	if ch, ok := BandFor(freq); ok {
		e.hw.IndicatorWrite(ch, true)
	}
}

func (e *Engine) AudioReactiveOff() { e.hw.IndicatorAllOff() }
