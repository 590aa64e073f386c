package audio

import (
	"testing"

	"blinkytree-go/services/songs"
)

func TestTransposeZeroIsIdentity(t *testing.T) {
	for _, f := range songs.Chromatic {
		if got := TransposeFrequency(f, 0); got != f {
			t.Fatalf("%d -> %d", f, got)
		}
	}
	if TransposeFrequency(441, 0) != 441 {
		t.Fatalf("zero shift must not snap")
	}
	if TransposeFrequency(0, 5) != 0 {
		t.Fatalf("rest transposed")
	}
}

func TestTransposeOctaveRoundTrip(t *testing.T) {
	for i := 0; i+12 < len(songs.Chromatic); i++ {
		f := songs.Chromatic[i]
		up := TransposeFrequency(f, 12)
		if up != songs.Chromatic[i+12] {
			t.Fatalf("%d up an octave = %d", f, up)
		}
		if back := TransposeFrequency(up, -12); back != f {
			t.Fatalf("%d round-tripped to %d", f, back)
		}
	}
}

func TestTransposeSnapsAndClamps(t *testing.T) {
	cases := []struct {
		f    uint16
		s    int8
		want uint16
	}{
		{440, 1, songs.NoteF5},  // snaps to E5 (433)
		{132, 1, songs.NoteGS3}, // tie goes low
		{50, -3, songs.NoteG3},  // below the table
		{songs.NoteD6, 5, songs.NoteE6},
		{2000, 1, songs.NoteE6},
		{songs.NoteA3, -12, songs.NoteG3},
	}
	for _, tc := range cases {
		if got := TransposeFrequency(tc.f, tc.s); got != tc.want {
			t.Fatalf("%d%+d = %d want %d", tc.f, tc.s, got, tc.want)
		}
	}
}
