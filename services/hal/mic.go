package hal

import (
	"tinygo.org/x/drivers"

	"blinkytree-go/services/hal/halcore"
	"blinkytree-go/x/mathx"
)

const (
	micPrescaler   = 128
	micSettleMs    = 10
	micWaitPolls   = 50
	micWaitStepUs  = 2
	micPreReadUs   = 5
	FilterSamples  = 8
	filterSampleUs = 50
)

// MicrophoneInit hands the microphone pin to the analog front end: input,
// no pull-up, internal 1.1 V reference and the slowest converter clock.
func (d *Driver) MicrophoneInit() {
	if !d.opts.MicEnabled {
		return
	}
	_ = d.mic.ConfigureInput(halcore.PullNone)
	d.role = RoleMicInput
	d.micReady = false
	d.board.ADC.Configure(halcore.ADCConfig{
		Reference: halcore.RefInternal1V1,
		Channel:   d.board.Layout.MicChannel,
		Prescaler: micPrescaler,
	})
	d.board.Delay.DelayMs(micSettleMs)
}

// MicrophoneRead returns one 10-bit sample. On a shared pin it first waits
// up to 100 µs for the sample flag and consumes it; on timeout it converts
// anyway.
func (d *Driver) MicrophoneRead() uint16 {
	if !d.opts.MicEnabled {
		return 0
	}
	if d.shared >= 0 {
		for i := 0; i < micWaitPolls && !d.micReady; i++ {
			d.board.Delay.DelayUs(micWaitStepUs)
		}
		d.micReady = false
	}
	d.board.Delay.DelayUs(micPreReadUs)
	return d.board.ADC.Convert() & 0x3FF
}

// MicrophoneReadFiltered averages FilterSamples reads.
func (d *Driver) MicrophoneReadFiltered() uint16 {
	var sum uint32
	for i := 0; i < FilterSamples; i++ {
		if i > 0 {
			d.board.Delay.DelayUs(filterSampleUs)
		}
		sum += uint32(d.MicrophoneRead())
	}
	return mathx.Mean(sum, FilterSamples)
}

// ---- tinygo sensor adapter ----

// Microphone exposes the analog front end as a drivers.Sensor.
type Microphone struct {
	d   *Driver
	raw uint16
}

var _ drivers.Sensor = (*Microphone)(nil)

// Microphone returns a sensor view of the driver's microphone.
func (d *Driver) Microphone() *Microphone { return &Microphone{d: d} }

// Update takes a fresh sample when voltage is requested.
func (m *Microphone) Update(which drivers.Measurement) error {
	if which&drivers.Voltage == 0 {
		return nil
	}
	m.raw = m.d.MicrophoneRead()
	return nil
}

// Raw returns the last 10-bit sample.
func (m *Microphone) Raw() uint16 { return m.raw }

// Voltage returns the last sample in microvolts against the 1.1 V reference.
func (m *Microphone) Voltage() int32 {
	return int32(mathx.MulDiv(uint32(m.raw), 1_100_000, 1023))
}
