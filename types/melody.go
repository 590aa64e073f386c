package types

// MelodyID keys the static melody table.
type MelodyID uint8

const (
	MelodyNone MelodyID = iota
	MelodyOhChristmasTree
	MelodySilentNight
	MelodyJingleBells
	MelodyNoel
	MelodyKlingGloeckchen
	MelodyTestTone
	MelodyCount
)

var melodyNames = [MelodyCount]string{
	"none",
	"oh_christmas_tree",
	"silent_night",
	"jingle_bells",
	"noel",
	"kling_gloeckchen",
	"test_tone",
}

func (id MelodyID) String() string {
	if id < MelodyCount {
		return melodyNames[id]
	}
	return "invalid"
}

// ParseMelody resolves a song name (as used in song config files) to its id.
func ParseMelody(name string) (MelodyID, bool) {
	for i, n := range melodyNames {
		if i != int(MelodyNone) && n == name {
			return MelodyID(i), true
		}
	}
	return MelodyNone, false
}

// Note is one step of a melody. Freq 0 is a rest.
type Note struct {
	Freq  uint16 // Hz
	DurMs uint16
}

// Melody is a read-only note sequence.
type Melody struct {
	Notes []Note
	Loop  bool
}

// SongConfig tunes playback of one melody.
type SongConfig struct {
	DutyCyclePct       uint8  // 10..100
	SpeedPct           uint16 // 25..10000, 100 = as written
	TransposeSemitones int8   // -12..+12
}
