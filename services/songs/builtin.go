package songs

import "blinkytree-go/types"

type n = types.Note

var ohChristmasTree = []n{
	{NoteD4, Quarter},
	{NoteG4, DottedEighth}, {NoteG4, Sixteenth}, {NoteG4, DottedQuarter},
	{NoteA4, Eighth},
	{NoteB4, DottedEighth}, {NoteB4, Sixteenth}, {NoteB4, DottedQuarter},
	{NoteB4, Eighth},
	{NoteA4, Eighth}, {NoteB4, Eighth}, {NoteC5, Quarter},
	{NoteFS4, Quarter}, {NoteA4, Quarter}, {NoteG4, Half},
}

var silentNight = []n{
	{NoteG4, DottedQuarter}, {NoteA4, Eighth}, {NoteG4, Quarter}, {NoteE4, DottedHalf},
	{NoteG4, DottedQuarter}, {NoteA4, Eighth}, {NoteG4, Quarter}, {NoteE4, DottedHalf},
	{NoteD5, Half}, {NoteD5, Quarter}, {NoteB4, DottedHalf},
	{NoteC5, Half}, {NoteC5, Quarter}, {NoteG4, DottedHalf},
}

var jingleBells = []n{
	{NoteE4, Quarter}, {NoteE4, Quarter}, {NoteE4, Half},
	{NoteE4, Quarter}, {NoteE4, Quarter}, {NoteE4, Half},
	{NoteE4, Quarter}, {NoteG4, Quarter}, {NoteC4, DottedQuarter}, {NoteD4, Eighth},
	{NoteE4, Whole},
	{NoteF4, Quarter}, {NoteF4, Quarter}, {NoteF4, DottedQuarter}, {NoteF4, Eighth},
	{NoteF4, Quarter}, {NoteE4, Quarter}, {NoteE4, Quarter}, {NoteE4, Eighth}, {NoteE4, Eighth},
	{NoteG4, Quarter}, {NoteG4, Quarter}, {NoteF4, Quarter}, {NoteD4, Quarter},
	{NoteC4, Whole},
}

var noel = []n{
	{NoteFS4, Eighth}, {NoteE4, Eighth},
	{NoteD4, DottedQuarter}, {NoteE4, Eighth}, {NoteFS4, Eighth}, {NoteG4, Eighth},
	{NoteA4, Half}, {NoteB4, Eighth}, {NoteCS5, Eighth},
	{NoteD5, Quarter}, {NoteCS5, Quarter}, {NoteB4, Quarter},
	{NoteA4, Half}, {Rest, Quarter},
	{NoteB4, Eighth}, {NoteCS5, Eighth}, {NoteD5, Quarter}, {NoteCS5, Quarter}, {NoteB4, Quarter},
	{NoteA4, Quarter}, {NoteB4, Quarter}, {NoteCS5, Quarter},
	{NoteD5, Quarter}, {NoteA4, Quarter}, {NoteG4, Quarter},
	{NoteFS4, Half},
}

var klingGloeckchen = []n{
	{NoteG4, Eighth}, {NoteA4, Eighth}, {NoteG4, Eighth}, {NoteE4, Eighth}, {NoteG4, Half},
	{NoteG4, Eighth}, {NoteA4, Eighth}, {NoteG4, Eighth}, {NoteE4, Eighth}, {NoteG4, Half},
	{NoteC5, Quarter}, {NoteB4, Eighth}, {NoteA4, Eighth}, {NoteG4, Quarter}, {NoteF4, Quarter},
	{NoteE4, Quarter}, {NoteD4, Quarter}, {NoteC4, Half},
}

var testTone = []n{
	{TestToneHz, 5000},
}

var builtinMelodies = [types.MelodyCount]types.Melody{
	types.MelodyOhChristmasTree: {Notes: ohChristmasTree},
	types.MelodySilentNight:     {Notes: silentNight},
	types.MelodyJingleBells:     {Notes: jingleBells},
	types.MelodyNoel:            {Notes: noel},
	types.MelodyKlingGloeckchen: {Notes: klingGloeckchen},
	types.MelodyTestTone:        {Notes: testTone},
}

var builtinConfigs = [types.MelodyCount]types.SongConfig{
	types.MelodyNone:            DefaultConfig,
	types.MelodyOhChristmasTree: {DutyCyclePct: 50, SpeedPct: 100},
	types.MelodySilentNight:     {DutyCyclePct: 50, SpeedPct: 120},
	types.MelodyJingleBells:     {DutyCyclePct: 40, SpeedPct: 150},
	types.MelodyNoel:            {DutyCyclePct: 50, SpeedPct: 130},
	types.MelodyKlingGloeckchen: {DutyCyclePct: 50, SpeedPct: 140},
	types.MelodyTestTone:        TestToneConfig,
}

var builtinRotation = []types.MelodyID{
	types.MelodyOhChristmasTree,
	types.MelodySilentNight,
	types.MelodyJingleBells,
	types.MelodyNoel,
	types.MelodyKlingGloeckchen,
}
