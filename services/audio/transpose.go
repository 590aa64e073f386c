package audio

import (
	"blinkytree-go/services/songs"
	"blinkytree-go/x/mathx"
)

// TransposeFrequency moves freq by semitones along the tuned chromatic
// table. freq is first snapped to the nearest table entry, so nearby
// frequencies can land on the same result; the shifted index is clamped to
// the table. Rests and a zero shift pass through unchanged.
func TransposeFrequency(freq uint16, semitones int8) uint16 {
	if semitones == 0 || freq == 0 {
		return freq
	}
	idx := nearestNote(freq)
	shifted := mathx.Clamp(idx+int(semitones), 0, len(songs.Chromatic)-1)
	return songs.Chromatic[shifted]
}

// nearestNote returns the table index closest to freq; ties go to the lower
// note.
func nearestNote(freq uint16) int {
	best, bestDiff := 0, uint16(0xFFFF)
	for i, f := range songs.Chromatic {
		if d := mathx.AbsDiff(freq, f); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}
