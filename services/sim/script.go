//go:build !avr

package sim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/google/shlex"

	"blinkytree-go/errcode"
	"blinkytree-go/types"
)

// Op is one stimulus command.
type Op uint8

const (
	OpLevel  Op = iota // hold a raw microphone level
	OpBreath           // hold a level relative to the sensor baseline
	OpWait             // keep the current level
	OpEffect           // switch lighting effect
	OpPlay             // play a song directly
	OpNext             // advance the rotation and play
)

// Breath strengths for OpBreath.
const (
	BreathQuiet uint8 = iota
	BreathLight
	BreathStrong
)

// Action is one parsed script line.
type Action struct {
	Op     Op
	Level  uint16 // OpLevel
	Breath uint8  // OpBreath
	Ms     uint32
	Effect types.Effect
	Song   types.MelodyID
	Line   int
}

// Script is a parsed stimulus file.
type Script []Action

// ParseScript reads one shell-quoted command per line:
//
//	level <raw> [ms]
//	quiet [ms]
//	breath light|strong [ms]
//	wait <ms>
//	effect <none|static|breathing|candle|adc_test>
//	play <song>
//	next
//
// Blank lines and # comments are ignored.
func ParseScript(r io.Reader) (Script, error) {
	var out Script
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		words, err := shlex.Split(sc.Text())
		if err != nil {
			return nil, scriptErr(line, err.Error())
		}
		if len(words) == 0 {
			continue
		}
		a, err := parseAction(words)
		if err != nil {
			return nil, scriptErr(line, err.Error())
		}
		a.Line = line
		out = append(out, a)
	}
	if err := sc.Err(); err != nil {
		return nil, errcode.Wrap(errcode.IO, "sim.script", err)
	}
	return out, nil
}

func scriptErr(line int, msg string) error {
	return errcode.New(errcode.InvalidScript, "sim.script", fmt.Sprintf("line %d: %s", line, msg))
}

func parseAction(w []string) (Action, error) {
	cmd, args := w[0], w[1:]
	switch cmd {
	case "level":
		if len(args) < 1 || len(args) > 2 {
			return Action{}, fmt.Errorf("usage: level <raw> [ms]")
		}
		v, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil || v > 1023 {
			return Action{}, fmt.Errorf("level %q is not in 0..1023", args[0])
		}
		ms, err := optMs(args[1:])
		return Action{Op: OpLevel, Level: uint16(v), Ms: ms}, err
	case "quiet":
		if len(args) > 1 {
			return Action{}, fmt.Errorf("usage: quiet [ms]")
		}
		ms, err := optMs(args)
		return Action{Op: OpBreath, Breath: BreathQuiet, Ms: ms}, err
	case "breath":
		if len(args) < 1 || len(args) > 2 {
			return Action{}, fmt.Errorf("usage: breath light|strong [ms]")
		}
		var b uint8
		switch args[0] {
		case "light":
			b = BreathLight
		case "strong":
			b = BreathStrong
		default:
			return Action{}, fmt.Errorf("unknown breath %q", args[0])
		}
		ms, err := optMs(args[1:])
		return Action{Op: OpBreath, Breath: b, Ms: ms}, err
	case "wait":
		if len(args) != 1 {
			return Action{}, fmt.Errorf("usage: wait <ms>")
		}
		ms, err := optMs(args)
		return Action{Op: OpWait, Ms: ms}, err
	case "effect":
		if len(args) != 1 {
			return Action{}, fmt.Errorf("usage: effect <name>")
		}
		e, ok := types.ParseEffect(args[0])
		if !ok {
			return Action{}, fmt.Errorf("unknown effect %q", args[0])
		}
		return Action{Op: OpEffect, Effect: e}, nil
	case "play":
		if len(args) != 1 {
			return Action{}, fmt.Errorf("usage: play <song>")
		}
		id, ok := types.ParseMelody(args[0])
		if !ok {
			return Action{}, fmt.Errorf("unknown song %q", args[0])
		}
		return Action{Op: OpPlay, Song: id}, nil
	case "next":
		if len(args) != 0 {
			return Action{}, fmt.Errorf("usage: next")
		}
		return Action{Op: OpNext}, nil
	}
	return Action{}, fmt.Errorf("unknown command %q", cmd)
}

func optMs(args []string) (uint32, error) {
	if len(args) == 0 {
		return 0, nil
	}
	v, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("bad duration %q", args[0])
	}
	return uint32(v), nil
}
