package numeric

import "math"

func float32bits(f float32) uint32 { return math.Float32bits(f) }

func float64bits(f float64) uint64 { return math.Float64bits(f) }

// isInfOrOverflow32/64 flag the case where a finite-looking decimal
// literal rounded to an infinity — the fp32/fp64 "exponent" overflow
// spec §6 and §7 name, as distinct from a mantissa-only rounding.
func isInfOrOverflow32(text string, f float32) bool {
	return math.IsInf(float64(f), 0)
}

func isInfOrOverflow64(text string, f float64) bool {
	return math.IsInf(f, 0)
}
