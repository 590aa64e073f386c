//go:build !avr

package sim

import (
	"io"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"blinkytree-go/errcode"
	"blinkytree-go/services/hal/platform"
)

// DefaultSampleRate for rendered buzzer audio.
const DefaultSampleRate = beep.SampleRate(44100)

// buzzAmplitude is the sample value while the piezo is driven.
const buzzAmplitude = 0.5

// edgeStreamer replays buzzer edges as a two-level signal.
type edgeStreamer struct {
	edges  []platform.Edge
	fromUs uint64
	rate   beep.SampleRate
	total  int
	pos    int
	next   int
	high   bool
}

func (s *edgeStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := s.fromUs + uint64(s.pos)*1_000_000/uint64(s.rate)
		for s.next < len(s.edges) && s.edges[s.next].AtUs <= t {
			s.high = s.edges[s.next].Driven
			s.next++
		}
		v := 0.0
		if s.high {
			v = buzzAmplitude
		}
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *edgeStreamer) Err() error { return nil }

// RenderWAV writes the buzzer signal between fromUs and toUs as a mono
// 16-bit WAV file.
func RenderWAV(w io.WriteSeeker, edges []platform.Edge, fromUs, toUs uint64, rate beep.SampleRate) error {
	const op = "sim.wav"
	if toUs <= fromUs {
		return errcode.New(errcode.InvalidParams, op, "empty time range")
	}
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	s := &edgeStreamer{
		edges:  edges,
		fromUs: fromUs,
		rate:   rate,
		total:  int((toUs - fromUs) * uint64(rate) / 1_000_000),
	}
	// Skip edges before the window, keeping the level they leave behind.
	for s.next < len(edges) && edges[s.next].AtUs < fromUs {
		s.high = edges[s.next].Driven
		s.next++
	}
	if s.total == 0 {
		return errcode.New(errcode.InvalidParams, op, "time range shorter than one sample")
	}
	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	if err := wav.Encode(w, s, format); err != nil {
		return errcode.Wrap(errcode.IO, op, err)
	}
	return nil
}
