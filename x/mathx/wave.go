package mathx

// Fold masks v to [0..mask] and reflects the upper half back down, giving a
// triangle wave of period mask+1 and peak mask>>1. mask must be 2^n-1.
func Fold[T ~uint8 | ~uint16](v, mask T) T {
	v &= mask
	if v > mask>>1 {
		v = mask - v
	}
	return v
}
