// services/hal/platform/factories_avr.go
//go:build avr

package platform

import (
	"device/avr"
	"machine"
	"runtime/interrupt"

	"blinkytree-go/services/hal/halcore"
)

// Default returns the ATtiny85 running at 8 MHz on the internal oscillator.
func Default(rev halcore.Revision) halcore.Board {
	return halcore.Board{
		Layout: halcore.LayoutFor(rev),
		Pins:   avrPinFactory{},
		ADC:    avrADC{},
		EEPROM: avrEEPROM{},
		Delay:  avrDelay{},
		Timer:  avrTimer{},
		CPU:    avrCPU{},
	}
}

// ---- GPIO ----

type avrPinFactory struct{}

func (avrPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if n < 0 || n > 5 {
		return nil, false
	}
	return avrPin{p: machine.Pin(n)}, true
}

type avrPin struct{ p machine.Pin }

func (a avrPin) ConfigureInput(pull halcore.Pull) error {
	mode := machine.PinInput
	if pull == halcore.PullUp {
		mode = machine.PinInputPullup
	}
	a.p.Configure(machine.PinConfig{Mode: mode})
	if pull == halcore.PullNone {
		// Clear the latch so the pull-up stays off.
		a.p.Low()
	}
	return nil
}

func (a avrPin) ConfigureOutput(initial bool) error {
	a.p.Set(initial)
	a.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	a.p.Set(initial)
	return nil
}

func (a avrPin) Set(level bool) { a.p.Set(level) }
func (a avrPin) Get() bool      { return a.p.Get() }
func (a avrPin) Number() int    { return int(a.p) }

// ---- ADC ----

type avrADC struct{}

func (avrADC) Configure(cfg halcore.ADCConfig) {
	var mux uint8 = cfg.Channel & 0x0F
	if cfg.Reference == halcore.RefInternal1V1 {
		mux |= avr.ADMUX_REFS1
	}
	avr.ADMUX.Set(mux)

	var ps uint8
	switch {
	case cfg.Prescaler >= 128:
		ps = avr.ADCSRA_ADPS2 | avr.ADCSRA_ADPS1 | avr.ADCSRA_ADPS0
	case cfg.Prescaler >= 64:
		ps = avr.ADCSRA_ADPS2 | avr.ADCSRA_ADPS1
	default:
		ps = avr.ADCSRA_ADPS2 | avr.ADCSRA_ADPS0
	}
	avr.ADCSRA.Set(avr.ADCSRA_ADEN | ps)
}

func (avrADC) Convert() uint16 {
	avr.ADCSRA.SetBits(avr.ADCSRA_ADSC)
	for avr.ADCSRA.HasBits(avr.ADCSRA_ADSC) {
	}
	lo := uint16(avr.ADCL.Get())
	hi := uint16(avr.ADCH.Get())
	return hi<<8 | lo
}

// ---- EEPROM ----

type avrEEPROM struct{}

func eepromWait() {
	for avr.EECR.HasBits(avr.EECR_EEPE) {
	}
}

func (avrEEPROM) ReadByte(addr uint16) byte {
	eepromWait()
	avr.EEARH.Set(uint8(addr >> 8))
	avr.EEARL.Set(uint8(addr))
	avr.EECR.SetBits(avr.EECR_EERE)
	return avr.EEDR.Get()
}

func (avrEEPROM) WriteByte(addr uint16, v byte) {
	eepromWait()
	avr.EECR.Set(0) // atomic erase+write
	avr.EEARH.Set(uint8(addr >> 8))
	avr.EEARL.Set(uint8(addr))
	avr.EEDR.Set(v)
	state := interrupt.Disable()
	avr.EECR.SetBits(avr.EECR_EEMPE)
	avr.EECR.SetBits(avr.EECR_EEPE)
	interrupt.Restore(state)
}

// ---- Delays ----

// Busy-wait calibrated for 8 MHz: one loop pass is ~4 cycles plus 4 nops.
type avrDelay struct{}

func (avrDelay) DelayUs(us uint32) {
	for ; us > 0; us-- {
		avr.Asm("nop")
		avr.Asm("nop")
		avr.Asm("nop")
		avr.Asm("nop")
	}
}

func (d avrDelay) DelayMs(ms uint32) {
	for ; ms > 0; ms-- {
		d.DelayUs(1000)
	}
}

// ---- Timer0 compare-match tick ----

var timerTick func()

type avrTimer struct{}

// Start configures Timer0 in CTC mode. Only 1 kHz is supported:
// 8 MHz / 64 / (124+1).
func (avrTimer) Start(hz uint32, tick func()) {
	timerTick = tick
	state := interrupt.Disable()
	avr.TCCR0A.Set(avr.TCCR0A_WGM01)
	avr.TCCR0B.Set(avr.TCCR0B_CS01 | avr.TCCR0B_CS00)
	avr.OCR0A.Set(124)
	avr.TIMSK.SetBits(avr.TIMSK_OCIE0A)
	intr := interrupt.New(avr.IRQ_TIMER0_COMPA, onTimer0)
	intr.Enable()
	interrupt.Restore(state)
}

func onTimer0(interrupt.Interrupt) {
	if timerTick != nil {
		timerTick()
	}
}

// ---- CPU ----

type avrCPU struct{}

// FullSpeed removes the CKDIV8 fuse's /8 prescaler.
func (avrCPU) FullSpeed() {
	state := interrupt.Disable()
	avr.CLKPR.Set(avr.CLKPR_CLKPCE)
	avr.CLKPR.Set(0)
	interrupt.Restore(state)
}
