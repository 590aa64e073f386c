package songs

// Note frequencies in Hz, tuned to the piezo's response rather than to
// concert pitch. The buzzer resonance pulls the perceived pitch up, so each
// value sits roughly a fifth below the equal-tempered frequency it sounds as.
const (
	Rest = 0

	NoteG3  = 128
	NoteGS3 = 136
	NoteA3  = 144
	NoteAS3 = 153
	NoteB3  = 162

	NoteC4  = 172
	NoteCS4 = 182
	NoteD4  = 192
	NoteDS4 = 204
	NoteE4  = 216
	NoteF4  = 229
	NoteFS4 = 243
	NoteG4  = 257
	NoteGS4 = 273
	NoteA4  = 290
	NoteAS4 = 307
	NoteB4  = 326

	NoteC5  = 344
	NoteCS5 = 365
	NoteD5  = 386
	NoteDS5 = 408
	NoteE5  = 433
	NoteF5  = 459
	NoteFS5 = 486
	NoteG5  = 515
	NoteGS5 = 546
	NoteA5  = 580
	NoteAS5 = 614
	NoteB5  = 652

	NoteC6  = 690
	NoteCS6 = 730
	NoteD6  = 773
	NoteDS6 = 818
	NoteE6  = 866
	NoteF6  = 918
	NoteFS6 = 972
	NoteG6  = 1030
	NoteGS6 = 1092
	NoteA6  = 1160
	NoteAS6 = 1228
)

// Durations in milliseconds at 100 % speed.
const (
	Sixteenth = 125
	Eighth    = 250
	Quarter   = 500
	Half      = 1000
	Whole     = 2000

	DottedEighth  = Eighth + Sixteenth
	DottedQuarter = Quarter + Eighth
	DottedHalf    = Half + Quarter
)

// Chromatic is the transposition table, G3 to E6 in semitone steps.
var Chromatic = [...]uint16{
	NoteG3, NoteGS3, NoteA3, NoteAS3, NoteB3,
	NoteC4, NoteCS4, NoteD4, NoteDS4, NoteE4, NoteF4, NoteFS4,
	NoteG4, NoteGS4, NoteA4, NoteAS4, NoteB4,
	NoteC5, NoteCS5, NoteD5, NoteDS5, NoteE5, NoteF5, NoteFS5,
	NoteG5, NoteGS5, NoteA5, NoteAS5, NoteB5,
	NoteC6, NoteCS6, NoteD6, NoteDS6, NoteE6,
}

// TestToneHz is a true A4, used to check the buzzer rather than to sound
// like one.
const TestToneHz = 440
