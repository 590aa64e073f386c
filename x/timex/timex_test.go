package timex

import "testing"

func TestDueAcrossRollover(t *testing.T) {
	start := uint32(0xFFFF_FFF0)
	if Due(start+10, start, 40) {
		t.Fatal("10 ms elapsed reported due for 40 ms interval")
	}
	// now has wrapped past zero.
	now := start + 40
	if now > start {
		t.Fatal("test precondition: expected wrap")
	}
	if !Due(now, start, 40) || Elapsed(now, start) != 40 {
		t.Fatal("wrapped elapsed time not computed by subtraction")
	}
}

func TestPeriodUs(t *testing.T) {
	if PeriodUs(440) != 2272 {
		t.Fatalf("PeriodUs(440)=%d", PeriodUs(440))
	}
	if PeriodUs(0) != 1_000_000 {
		t.Fatal("zero frequency not coerced")
	}
}
