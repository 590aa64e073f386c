package mathx

// MulDiv returns v*mul/div with a 32-bit intermediate, truncating like the
// integer maths it replaces. div==0 yields 0.
func MulDiv(v, mul, div uint32) uint32 {
	if div == 0 {
		return 0
	}
	return v * mul / div
}

// Mean returns sum/n for an accumulated sample run; n==0 yields 0.
func Mean(sum uint32, n uint8) uint16 {
	if n == 0 {
		return 0
	}
	return uint16(sum / uint32(n))
}
