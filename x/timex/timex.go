// Package timex holds helpers for the free-running 32-bit millisecond clock.
// All comparisons subtract, so they stay correct across the ~49.7 day rollover.
package timex

// Elapsed returns now-start on the wrapping clock.
func Elapsed(now, start uint32) uint32 { return now - start }

// Due reports whether at least d ms have passed since start.
func Due(now, start, d uint32) bool { return now-start >= d }

// PeriodUs returns the period in microseconds for freqHz.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodUs(freqHz uint16) uint32 {
	if freqHz == 0 {
		freqHz = 1
	}
	return 1_000_000 / uint32(freqHz)
}
