// Package hal owns every pin on the board. It runs the double-buffered
// software PWM for the four LED rings and time-shares one pin between an LED
// ring and the microphone input on boards that wire them together.
package hal

import (
	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/types"
)

// LoopDelayUs is the pause at the end of every foreground loop pass.
const LoopDelayUs = 10

// DefaultMicSampleEvery raises the sample flag every 8th PWM tick of an
// LED off-phase.
const DefaultMicSampleEvery = 8

// Options select runtime features of the driver.
type Options struct {
	MicEnabled     bool
	MicSampleEvery uint8 // 0 selects DefaultMicSampleEvery
}

// PinRole is the current owner of the shared LED/microphone pin.
type PinRole uint8

const (
	RoleLEDOutput PinRole = iota
	RoleMicInput
	RoleAudioOutput
)

func (r PinRole) String() string {
	switch r {
	case RoleLEDOutput:
		return "led"
	case RoleMicInput:
		return "mic"
	case RoleAudioOutput:
		return "audio"
	default:
		return "invalid"
	}
}

// Driver is the hardware layer. All methods except Millis must be called
// from the foreground loop only.
type Driver struct {
	board halcore.Board
	opts  Options
	clock Clock

	leds   [types.LEDCount]halcore.GPIOPin
	buzzer halcore.GPIOPin
	mic    halcore.GPIOPin
	shared int // LED channel on the microphone pin, -1 when not time-shared

	active      types.Brightness
	pending     types.Brightness
	swapPending bool
	counter     uint8

	role     PinRole
	micReady bool
}

// New binds a driver to board. Pins missing from the board's factory are
// replaced by inert stand-ins.
func New(board halcore.Board, opts Options) *Driver {
	if opts.MicSampleEvery == 0 {
		opts.MicSampleEvery = DefaultMicSampleEvery
	}
	d := &Driver{board: board, opts: opts, shared: -1}
	for ch, n := range board.Layout.LEDPins {
		d.leds[ch] = pinOrNop(board.Pins, n)
	}
	d.buzzer = pinOrNop(board.Pins, board.Layout.BuzzerPin)
	d.mic = pinOrNop(board.Pins, board.Layout.MicPin)
	if opts.MicEnabled && board.Layout.Shared() {
		d.shared = board.Layout.SharedLED
	}
	return d
}

// Init switches the CPU to full speed, drives every LED pin low, starts the
// millisecond timer and brings up the microphone when enabled.
func (d *Driver) Init() {
	d.board.CPU.FullSpeed()
	for _, p := range d.leds {
		_ = p.ConfigureOutput(false)
	}
	d.role = RoleLEDOutput
	d.board.Timer.Start(TickHz, d.clock.Tick)
	if d.opts.MicEnabled {
		d.MicrophoneInit()
	}
}

// Update advances the PWM by one tick. It never blocks.
func (d *Driver) Update() {
	d.counter++
	if d.counter == 0 && d.swapPending {
		d.active = d.pending
		d.swapPending = false
	}
	for ch, p := range d.leds {
		on := d.active[ch] > d.counter
		if ch == d.shared {
			d.updateShared(p, on)
			continue
		}
		p.Set(on)
	}
}

func (d *Driver) updateShared(p halcore.GPIOPin, on bool) {
	if d.role == RoleAudioOutput {
		return
	}
	if on {
		d.micReady = false
		if d.role != RoleLEDOutput {
			_ = p.ConfigureOutput(true)
			d.role = RoleLEDOutput
			return
		}
		p.Set(true)
		return
	}
	if d.role != RoleMicInput {
		_ = p.ConfigureInput(halcore.PullNone)
		d.role = RoleMicInput
	}
	if d.counter%d.opts.MicSampleEvery == 0 || d.counter == 255 {
		d.micReady = true
	}
}

// LEDSet queues brightness for ch; it takes effect at the next cycle
// boundary. Invalid channels are ignored.
func (d *Driver) LEDSet(ch types.Channel, b uint8) {
	if !ch.Valid() {
		return
	}
	d.pending[ch] = b
	d.swapPending = true
}

// LEDAllOff blanks every ring immediately, bypassing the double buffer.
func (d *Driver) LEDAllOff() {
	d.active = types.Brightness{}
	d.pending = types.Brightness{}
	d.swapPending = false
	for _, p := range d.leds {
		p.Set(false)
	}
}

// Millis returns the millisecond clock.
func (d *Driver) Millis() uint32 { return d.clock.Millis() }

// Active returns the brightness currently driving ch.
func (d *Driver) Active(ch types.Channel) uint8 {
	if !ch.Valid() {
		return 0
	}
	return d.active[ch]
}

// Pending returns the queued brightness for ch.
func (d *Driver) Pending(ch types.Channel) uint8 {
	if !ch.Valid() {
		return 0
	}
	return d.pending[ch]
}

func (d *Driver) SwapPending() bool { return d.swapPending }

func (d *Driver) Counter() uint8 { return d.counter }

// SharedPinRole reports who owns the microphone pin.
func (d *Driver) SharedPinRole() PinRole { return d.role }

// Shared reports whether an LED ring time-shares the microphone pin.
func (d *Driver) Shared() bool { return d.shared >= 0 }

// SampleWindowOpen reports whether a microphone read would land in a safe
// window. Boards with a dedicated microphone pin are always open.
func (d *Driver) SampleWindowOpen() bool {
	if !d.opts.MicEnabled {
		return false
	}
	if d.shared < 0 {
		return true
	}
	return d.role == RoleMicInput && d.micReady
}

func (d *Driver) MicEnabled() bool { return d.opts.MicEnabled }

func (d *Driver) Layout() halcore.Layout { return d.board.Layout }

// ---- pins ----

func pinOrNop(f halcore.PinFactory, n int) halcore.GPIOPin {
	if f != nil {
		if p, ok := f.ByNumber(n); ok {
			return p
		}
	}
	return nopPin(n)
}

type nopPin int

func (nopPin) ConfigureInput(halcore.Pull) error { return nil }
func (nopPin) ConfigureOutput(bool) error        { return nil }
func (nopPin) Set(bool)                          {}
func (nopPin) Get() bool                         { return false }
func (p nopPin) Number() int                     { return int(p) }
