package mathx

import "golang.org/x/exp/constraints"

// Map maps x in [inMin,inMax] to [outMin,outMax] with 32-bit intermediates.
// Inputs outside the range saturate to the matching output bound.
func Map[T constraints.Unsigned](x, inMin, inMax, outMin, outMax T) T {
	if inMax <= inMin {
		return outMin
	}
	if x <= inMin {
		return outMin
	}
	if x >= inMax {
		return outMax
	}
	num := uint32(x-inMin) * uint32(outMax-outMin)
	return outMin + T(num/uint32(inMax-inMin))
}
