package hal

import (
	"testing"

	"tinygo.org/x/drivers"

	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/services/hal/platform"
	"blinkytree-go/types"
)

func newTestDriver(t *testing.T, rev halcore.Revision, mic bool) (*Driver, *platform.Host) {
	t.Helper()
	h := platform.NewHost(halcore.LayoutFor(rev))
	d := New(h.Board(), Options{MicEnabled: mic})
	d.Init()
	return d, h
}

// runToBoundary ticks until the PWM counter wraps to zero.
func runToBoundary(d *Driver) {
	for {
		d.Update()
		if d.Counter() == 0 {
			return
		}
	}
}

func TestInitConfiguresBoard(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionDebug, true)
	if !h.CPU.IsFullSpeed() {
		t.Fatalf("cpu prescaler not removed")
	}
	for ch, n := range h.Layout.LEDPins {
		if ch == h.Layout.SharedLED {
			continue
		}
		p := h.Pin(n)
		if !p.Output() || p.Get() {
			t.Fatalf("led pin %d not output-low after Init", n)
		}
	}
	cfg := h.ADC.Config()
	if cfg.Reference != halcore.RefInternal1V1 || cfg.Channel != 3 || cfg.Prescaler != 128 {
		t.Fatalf("unexpected adc config %+v", cfg)
	}
	mic := h.Pin(h.Layout.MicPin)
	if mic.Output() || mic.Pull() != halcore.PullNone {
		t.Fatalf("mic pin must be a floating input")
	}
	if d.SharedPinRole() != RoleMicInput {
		t.Fatalf("role=%v want mic", d.SharedPinRole())
	}
}

func TestMillisFollowsTimer(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProduction, false)
	start := d.Millis()
	h.Clock.Advance(5_000)
	if got := d.Millis() - start; got != 5 {
		t.Fatalf("millis advanced %d, want 5", got)
	}
	h.Clock.Advance(999)
	if got := d.Millis() - start; got != 5 {
		t.Fatalf("partial period ticked: %d", got)
	}
	h.Clock.Advance(1)
	if got := d.Millis() - start; got != 6 {
		t.Fatalf("millis=%d want 6", got)
	}
}

func TestPWMDutyAllLevels(t *testing.T) {
	for _, rev := range []halcore.Revision{halcore.RevisionDebug, halcore.RevisionProduction} {
		d, h := newTestDriver(t, rev, true)
		for ch := types.ChannelTip; ch <= types.ChannelBase; ch++ {
			pin := h.Pin(h.Layout.LEDPins[ch])
			for b := 0; b <= 255; b++ {
				d.LEDSet(ch, uint8(b))
				runToBoundary(d)
				high := 0
				for i := 0; i < 256; i++ {
					if pin.Driven() {
						high++
					}
					d.Update()
				}
				if high != b {
					t.Fatalf("%v %v b=%d: high %d ticks", rev, ch, b, high)
				}
			}
			d.LEDSet(ch, 0)
		}
	}
}

func TestLEDSetAppliesAtBoundary(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProduction, false)
	pin := h.Pin(h.Layout.LEDPins[types.ChannelMiddle])

	d.LEDSet(types.ChannelMiddle, 100)
	runToBoundary(d)
	for d.Counter() != 50 {
		d.Update()
	}
	d.LEDSet(types.ChannelMiddle, 0)
	if d.Active(types.ChannelMiddle) != 100 || d.Pending(types.ChannelMiddle) != 0 {
		t.Fatalf("active must not change mid-cycle")
	}
	// Remainder of the cycle still follows the old value.
	for d.Counter() != 255 {
		d.Update()
		want := d.Counter() < 100
		if pin.Driven() != want {
			t.Fatalf("tick %d: driven=%v want %v", d.Counter(), pin.Driven(), want)
		}
	}
	d.Update()
	if d.Counter() != 0 || d.Active(types.ChannelMiddle) != 0 || pin.Driven() {
		t.Fatalf("new value not applied at boundary")
	}
	if d.SwapPending() {
		t.Fatalf("swap flag not cleared")
	}
}

func TestLEDSetIgnoresInvalidChannel(t *testing.T) {
	d, _ := newTestDriver(t, halcore.RevisionProduction, false)
	d.LEDSet(types.Channel(9), 200)
	if d.SwapPending() {
		t.Fatalf("invalid channel queued a swap")
	}
}

func TestLEDAllOffBypassesBuffer(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProduction, false)
	for ch := types.ChannelTip; ch <= types.ChannelBase; ch++ {
		d.LEDSet(ch, 255)
	}
	runToBoundary(d)
	d.LEDSet(types.ChannelTip, 7)
	d.LEDAllOff()
	for ch, n := range h.Layout.LEDPins {
		if h.Pin(n).Driven() {
			t.Fatalf("pin %d still high", n)
		}
		if d.Active(types.Channel(ch)) != 0 || d.Pending(types.Channel(ch)) != 0 {
			t.Fatalf("buffers not cleared")
		}
	}
	if d.SwapPending() {
		t.Fatalf("pending swap survived all-off")
	}
}

func TestSharedPinExclusive(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionDebug, true)
	pin := h.Pin(h.Layout.MicPin)
	levels := []uint8{0, 1, 64, 128, 254, 255}
	reads := 0
	for i := 0; i < len(levels)*512; i++ {
		if i%256 == 0 {
			d.LEDSet(types.ChannelUpper, levels[(i/256)%len(levels)])
		}
		d.Update()
		switch d.SharedPinRole() {
		case RoleLEDOutput:
			if !pin.Output() {
				t.Fatalf("tick %d: led role on an input pin", i)
			}
		case RoleMicInput:
			if pin.Output() || pin.Pull() != halcore.PullNone {
				t.Fatalf("tick %d: mic role but pin driven or pulled", i)
			}
		default:
			t.Fatalf("tick %d: unexpected role %v", i, d.SharedPinRole())
		}
		if d.SampleWindowOpen() {
			if pin.Driven() {
				t.Fatalf("tick %d: window open while pin drives high", i)
			}
			d.MicrophoneRead()
			reads++
		}
	}
	if reads == 0 {
		t.Fatalf("no sample window ever opened")
	}
	if h.ADC.HotReads() != 0 {
		t.Fatalf("%d conversions while the LED drove the pin", h.ADC.HotReads())
	}
}

func TestSampleFlagCadence(t *testing.T) {
	d, _ := newTestDriver(t, halcore.RevisionDebug, true)
	d.LEDSet(types.ChannelUpper, 100)
	runToBoundary(d)
	for d.Counter() != 99 {
		d.Update()
		if d.SampleWindowOpen() {
			t.Fatalf("window open at %d during on-phase", d.Counter())
		}
	}
	opened := -1
	for d.Counter() != 255 {
		d.Update()
		if d.SampleWindowOpen() {
			opened = int(d.Counter())
			break
		}
	}
	if opened != 104 {
		t.Fatalf("first window at %d, want 104", opened)
	}
}

func TestMicrophoneReadConsumesFlag(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionDebug, true)
	h.ADC.Source = func(uint64) uint16 { return 321 }
	runToBoundary(d) // LED dark: every 8th tick opens a window
	for !d.SampleWindowOpen() {
		d.Update()
	}
	t0 := h.Clock.NowUs()
	if v := d.MicrophoneRead(); v != 321 {
		t.Fatalf("read %d", v)
	}
	fast := h.Clock.NowUs() - t0
	if d.SampleWindowOpen() {
		t.Fatalf("flag not consumed")
	}
	t1 := h.Clock.NowUs()
	if v := d.MicrophoneRead(); v != 321 {
		t.Fatalf("timed-out read must still convert, got %d", v)
	}
	slow := h.Clock.NowUs() - t1
	if slow-fast != micWaitPolls*micWaitStepUs {
		t.Fatalf("timeout path took %d µs extra", slow-fast)
	}
}

func TestMicrophoneReadSettlesOnEveryBoard(t *testing.T) {
	const convUs = 208
	d, h := newTestDriver(t, halcore.RevisionProduction, true)
	t0 := h.Clock.NowUs()
	d.MicrophoneRead()
	if el := h.Clock.NowUs() - t0; el != micPreReadUs+convUs {
		t.Fatalf("dedicated pin read took %d µs, want %d", el, micPreReadUs+convUs)
	}

	d, h = newTestDriver(t, halcore.RevisionDebug, true)
	runToBoundary(d)
	for !d.SampleWindowOpen() {
		d.Update()
	}
	t0 = h.Clock.NowUs()
	d.MicrophoneRead()
	if el := h.Clock.NowUs() - t0; el != micPreReadUs+convUs {
		t.Fatalf("shared pin read took %d µs, want %d", el, micPreReadUs+convUs)
	}
}

func TestMicrophoneReadFiltered(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProduction, true)
	vals := []uint16{100, 200, 300, 400, 500, 600, 700, 800}
	i := 0
	h.ADC.Source = func(uint64) uint16 { v := vals[i%len(vals)]; i++; return v }
	before := h.ADC.Conversions()
	if got := d.MicrophoneReadFiltered(); got != 450 {
		t.Fatalf("mean=%d want 450", got)
	}
	if n := h.ADC.Conversions() - before; n != FilterSamples {
		t.Fatalf("%d conversions", n)
	}
}

func TestMicrophoneDisabled(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionDebug, false)
	h.ADC.Source = func(uint64) uint16 { return 999 }
	if d.MicrophoneRead() != 0 || d.SampleWindowOpen() || d.Shared() {
		t.Fatalf("disabled microphone must stay idle")
	}
	if h.ADC.Conversions() != 0 {
		t.Fatalf("adc used while disabled")
	}
}

func TestMicrophoneSensorVoltage(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProduction, true)
	h.ADC.Source = func(uint64) uint16 { return 1023 }
	m := d.Microphone()
	if err := m.Update(0); err != nil || m.Raw() != 0 {
		t.Fatalf("update without voltage must not sample")
	}
	if err := m.Update(drivers.Voltage); err != nil {
		t.Fatal(err)
	}
	if m.Raw() != 1023 || m.Voltage() != 1_100_000 {
		t.Fatalf("raw=%d µV=%d", m.Raw(), m.Voltage())
	}
}

func TestEEPROMWriteIfChanged(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProduction, false)
	if d.EEPROMReadByte(0) != 0xFF {
		t.Fatalf("blank cell not erased")
	}
	d.EEPROMWriteByte(0, 0xFF)
	d.EEPROMWriteByte(0, 3)
	d.EEPROMWriteByte(0, 3)
	if h.EEPROM.Writes() != 1 {
		t.Fatalf("writes=%d want 1", h.EEPROM.Writes())
	}
	if d.EEPROMReadByte(0) != 3 {
		t.Fatalf("value not stored")
	}
}

func TestIndicatorOwnsSharedPin(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionDebug, true)
	pin := h.Pin(h.Layout.MicPin)
	d.IndicatorClaimShared()
	if d.SharedPinRole() != RoleAudioOutput || !pin.Output() {
		t.Fatalf("claim did not force output")
	}
	d.IndicatorWrite(types.ChannelUpper, true)
	d.Update()
	if !pin.Driven() {
		t.Fatalf("PWM update overrode the indicator")
	}
	d.IndicatorAllOff()
	if pin.Driven() {
		t.Fatalf("indicator still on")
	}
	d.MicrophoneInit()
	if d.SharedPinRole() != RoleMicInput || pin.Output() {
		t.Fatalf("microphone did not take the pin back")
	}
}

func TestBuzzer(t *testing.T) {
	d, h := newTestDriver(t, halcore.RevisionProductionOld, false)
	bz := h.Pin(5)
	d.BuzzerInit()
	if !bz.Output() || bz.Get() {
		t.Fatalf("buzzer not output-low")
	}
	d.BuzzerSet(true)
	if !bz.Driven() {
		t.Fatalf("buzzer not driven")
	}
	d.BuzzerStop()
	if bz.Driven() {
		t.Fatalf("buzzer still driven")
	}
}
