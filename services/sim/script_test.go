//go:build !avr

package sim

import (
	"strings"
	"testing"

	"blinkytree-go/errcode"
	"blinkytree-go/types"
)

func TestParseScript(t *testing.T) {
	src := `
# warm up
quiet 500
level 230 100   # raw
breath light 300
breath "strong"
wait 3000
effect adc_test
play silent_night
next
`
	s, err := ParseScript(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := []Action{
		{Op: OpBreath, Breath: BreathQuiet, Ms: 500, Line: 3},
		{Op: OpLevel, Level: 230, Ms: 100, Line: 4},
		{Op: OpBreath, Breath: BreathLight, Ms: 300, Line: 5},
		{Op: OpBreath, Breath: BreathStrong, Line: 6},
		{Op: OpWait, Ms: 3000, Line: 7},
		{Op: OpEffect, Effect: types.EffectADCTest, Line: 8},
		{Op: OpPlay, Song: types.MelodySilentNight, Line: 9},
		{Op: OpNext, Line: 10},
	}
	if len(s) != len(want) {
		t.Fatalf("got %d actions, want %d: %+v", len(s), len(want), s)
	}
	for i := range want {
		if s[i] != want[i] {
			t.Errorf("action %d = %+v, want %+v", i, s[i], want[i])
		}
	}
}

func TestParseScriptErrors(t *testing.T) {
	cases := []string{
		"jump 10",
		"level",
		"level 2000",
		"level 10 soon",
		"breath gentle",
		"wait",
		"effect disco",
		"play nope",
		"next now",
		`level "10`,
	}
	for _, src := range cases {
		_, err := ParseScript(strings.NewReader("quiet\n" + src))
		if errcode.Of(err) != errcode.InvalidScript {
			t.Errorf("%q: err = %v", src, err)
			continue
		}
		if !strings.Contains(err.Error(), "line 2") {
			t.Errorf("%q: error lacks line number: %v", src, err)
		}
	}
}
