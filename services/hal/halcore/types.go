// Package halcore holds the hardware abstractions the driver is written
// against. Platform packages supply ATtiny85 register implementations on
// device builds and deterministic fakes on the host.
package halcore

// ---- GPIO ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
)

// GPIOPin is one port bit. Set writes the output latch; on an input pin the
// latch selects the pull-up, so Set(false) leaves the pin floating.
type GPIOPin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Number() int
}

// PinFactory supplies GPIO pins by port bit number (PB0..PB5 => 0..5).
type PinFactory interface {
	ByNumber(n int) (GPIOPin, bool)
}

// ---- ADC ----

// Reference selects the converter voltage reference.
type Reference uint8

const (
	RefVCC Reference = iota
	RefInternal1V1
)

// ADCConfig is applied once by MicrophoneInit.
type ADCConfig struct {
	Reference Reference
	Channel   uint8 // ADCn multiplexer input
	Prescaler uint8 // converter clock divider (2..128)
}

// ADC performs blocking single conversions.
type ADC interface {
	Configure(cfg ADCConfig)
	// Convert starts one conversion, waits for it and returns the 10-bit result.
	Convert() uint16
}

// ---- Persistent storage ----

type EEPROM interface {
	ReadByte(addr uint16) byte
	WriteByte(addr uint16, v byte)
}

// ---- Time ----

// Delayer busy-waits. Nothing else runs on the foreground loop meanwhile;
// only the timer interrupt may fire.
type Delayer interface {
	DelayUs(us uint32)
	DelayMs(ms uint32)
}

// Timer starts the periodic compare interrupt that drives the millisecond
// clock. tick runs in interrupt context.
type Timer interface {
	Start(hz uint32, tick func())
}

// CPU controls the core clock.
type CPU interface {
	// FullSpeed removes the system clock prescaler.
	FullSpeed()
}

// ---- Board ----

// Revision names a board wiring.
type Revision uint8

const (
	// RevisionDebug keeps the reset pin for ISP; LED ring 3 and the
	// microphone share PB3.
	RevisionDebug Revision = iota
	// RevisionProduction reuses the reset pin as LED ring 3; the microphone
	// has PB3 to itself.
	RevisionProduction
	// RevisionProductionOld reuses the reset pin as the buzzer and moves LED
	// ring 3 to PB4.
	RevisionProductionOld
)

func (r Revision) String() string {
	switch r {
	case RevisionDebug:
		return "debug"
	case RevisionProduction:
		return "production"
	case RevisionProductionOld:
		return "production-old"
	default:
		return "invalid"
	}
}

// ParseRevision resolves a configuration name.
func ParseRevision(s string) (Revision, bool) {
	for r := RevisionDebug; r <= RevisionProductionOld; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return RevisionDebug, false
}

// Layout is the pin map of one board revision.
type Layout struct {
	Revision   Revision
	LEDPins    [4]int // tip, upper, middle, base
	BuzzerPin  int
	MicPin     int
	MicChannel uint8 // ADC multiplexer input of MicPin
	// SharedLED is the LED channel whose pin doubles as the microphone
	// input, or -1 when the microphone pin is dedicated.
	SharedLED int
}

// Shared reports whether one LED channel time-shares the microphone pin.
func (l Layout) Shared() bool { return l.SharedLED >= 0 }

// LayoutFor returns the pin map for r.
func LayoutFor(r Revision) Layout {
	switch r {
	case RevisionProduction:
		return Layout{Revision: r, LEDPins: [4]int{2, 5, 0, 1}, BuzzerPin: 4, MicPin: 3, MicChannel: 3, SharedLED: -1}
	case RevisionProductionOld:
		return Layout{Revision: r, LEDPins: [4]int{2, 4, 0, 1}, BuzzerPin: 5, MicPin: 3, MicChannel: 3, SharedLED: -1}
	default:
		return Layout{Revision: RevisionDebug, LEDPins: [4]int{2, 3, 0, 1}, BuzzerPin: 4, MicPin: 3, MicChannel: 3, SharedLED: 1}
	}
}

// Board bundles everything the driver needs from a platform.
type Board struct {
	Layout Layout
	Pins   PinFactory
	ADC    ADC
	EEPROM EEPROM
	Delay  Delayer
	Timer  Timer
	CPU    CPU
}
