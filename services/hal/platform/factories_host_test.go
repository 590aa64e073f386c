//go:build !avr

package platform

import (
	"testing"

	"blinkytree-go/services/hal/halcore"
)

func TestSimClockFiresTicksInsideDelays(t *testing.T) {
	var c SimClock
	ticks := 0
	c.Start(1000, func() { ticks++ })
	c.DelayUs(2500)
	if ticks != 2 || c.NowUs() != 2500 {
		t.Fatalf("ticks=%d now=%d", ticks, c.NowUs())
	}
	c.DelayMs(3)
	if ticks != 5 {
		t.Fatalf("ticks=%d want 5", ticks)
	}
}

func TestFakePinRecordsDrivenEdges(t *testing.T) {
	h := NewHost(halcore.LayoutFor(halcore.RevisionDebug))
	var edges []Edge
	p := h.Pin(4)
	p.OnChange(func(e Edge) { edges = append(edges, e) })

	_ = p.ConfigureOutput(false)
	h.Clock.Advance(10)
	p.Set(true)
	p.Set(true)
	h.Clock.Advance(5)
	p.Set(false)
	_ = p.ConfigureInput(halcore.PullUp)

	if len(edges) != 2 {
		t.Fatalf("edges=%v", edges)
	}
	if !edges[0].Driven || edges[0].AtUs != 10 || edges[1].Driven || edges[1].AtUs != 15 {
		t.Fatalf("unexpected edges %v", edges)
	}
	if p.Driven() || !p.Get() {
		t.Fatalf("pulled-up input must read high without driving")
	}
}

func TestFakeADCFlagsConversionsOnDrivenMicPin(t *testing.T) {
	h := NewHost(halcore.LayoutFor(halcore.RevisionDebug))
	h.ADC.Source = func(uint64) uint16 { return 0xFFFF }
	mic := h.Pin(h.Layout.MicPin)

	_ = mic.ConfigureInput(halcore.PullNone)
	if v := h.ADC.Convert(); v != 0x3FF {
		t.Fatalf("result not masked to 10 bits: %#x", v)
	}
	_ = mic.ConfigureOutput(true)
	h.ADC.Convert()
	if h.ADC.Conversions() != 2 || h.ADC.HotReads() != 1 {
		t.Fatalf("conversions=%d hot=%d", h.ADC.Conversions(), h.ADC.HotReads())
	}
	if h.Clock.NowUs() != 2*conversionUs {
		t.Fatalf("conversion time not charged: %d", h.Clock.NowUs())
	}
}

func TestMemEEPROMStartsErased(t *testing.T) {
	e := NewMemEEPROM()
	if e.ReadByte(0) != 0xFF || e.ReadByte(EEPROMSize-1) != 0xFF {
		t.Fatalf("not erased")
	}
	e.WriteByte(EEPROMSize+2, 7)
	if e.ReadByte(2) != 7 || e.Writes() != 1 {
		t.Fatalf("address did not wrap")
	}
}

func TestHostPinFactoryBounds(t *testing.T) {
	h := NewHost(halcore.LayoutFor(halcore.RevisionProduction))
	if _, ok := h.Pins.ByNumber(6); ok {
		t.Fatalf("PB6 does not exist")
	}
	a, _ := h.Pins.ByNumber(2)
	if a != halcore.GPIOPin(h.Pin(2)) {
		t.Fatalf("factory must return stable pins")
	}
}
