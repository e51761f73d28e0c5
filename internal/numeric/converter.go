// Package numeric is the reference implementation of the literal
// converter spec §6 names as an external collaborator
// ("string_to_binary(text, kind, bits) → (bits_64, overflow_flags)").
// Converter is the interface; Default is the concrete implementation.
// No other package in this module imports this one: internal/cfgbuild
// keeps literals as interned lexemes without folding them, and
// cmd/javacomp does not call it.
//
// Integer parsing goes through math/big for arbitrary-precision
// decimal→binary; float parsing's final round-to-nearest-even step
// goes through github.com/mewmew/float, the exact decimal↔IEEE-754
// conversion library llir/llvm itself depends on for bit-exact float
// constant folding — the same problem this component has.
package numeric

import (
	"math/big"

	mfloat32 "github.com/mewmew/float/float32"
	mfloat64 "github.com/mewmew/float/float64"
	"golang.org/x/exp/constraints"
)

type Kind int

const (
	KindInt Kind = iota
	KindFloat
)

// Flags is the overflow bitmask spec §6 describes: one bit per
// signed/unsigned integer width plus fp32/fp64 exponent and mantissa.
type Flags uint32

const (
	OverflowInt8 Flags = 1 << iota
	OverflowInt16
	OverflowInt32
	OverflowInt64
	OverflowUint8
	OverflowUint16
	OverflowUint32
	OverflowUint64
	OverflowFP32Exponent
	OverflowFP32Mantissa
	OverflowFP64Exponent
	OverflowFP64Mantissa
)

// Converter is the external collaborator interface; Default implements
// it.
type Converter interface {
	StringToBinary(text string, kind Kind, bits int) (bits64 uint64, flags Flags, err error)
}

// Default is the reference Converter.
type Default struct{}

func (Default) StringToBinary(text string, kind Kind, bits int) (uint64, Flags, error) {
	if kind == KindFloat {
		return convertFloat(text, bits)
	}
	return convertInt(text, bits)
}

func convertInt(text string, bits int) (uint64, Flags, error) {
	v, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return 0, 0, &ConversionError{Text: text}
	}
	var flags Flags
	switch bits {
	case 8:
		if !fits[int8](v) {
			flags |= OverflowInt8
		}
	case 16:
		if !fits[int16](v) {
			flags |= OverflowInt16
		}
	case 32:
		if !fits[int32](v) {
			flags |= OverflowInt32
		}
	case 64:
		if !fits[int64](v) {
			flags |= OverflowInt64
		}
	}
	// Truncate to the low `bits` bits, two's-complement style, the way a
	// narrowing primitive conversion behaves regardless of overflow.
	width := uint(64)
	if bits > 0 && bits < 64 {
		width = uint(bits)
	}
	mask := new(big.Int).Lsh(big.NewInt(1), width)
	mask.Sub(mask, big.NewInt(1))
	truncated := new(big.Int).And(v, mask)
	return truncated.Uint64(), flags, nil
}

// fits reports whether v's value is representable in T without a
// narrowing overflow; used purely to set the diagnostic flag bit, the
// truncated encoding itself is always produced regardless.
func fits[T constraints.Signed](v *big.Int) bool {
	lo, hi := bounds[T]()
	return v.Cmp(lo) >= 0 && v.Cmp(hi) <= 0
}

func bounds[T constraints.Signed]() (*big.Int, *big.Int) {
	var zero T
	bits := 0
	switch any(zero).(type) {
	case int8:
		bits = 8
	case int16:
		bits = 16
	case int32:
		bits = 32
	case int64:
		bits = 64
	}
	hi := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	lo := new(big.Int).Neg(hi)
	hi.Sub(hi, big.NewInt(1))
	return lo, hi
}

func convertFloat(text string, bits int) (uint64, Flags, error) {
	switch bits {
	case 32:
		f, err := mfloat32.Parse(text)
		if err != nil {
			return 0, 0, &ConversionError{Text: text, Err: err}
		}
		var flags Flags
		if isInfOrOverflow32(text, f) {
			flags |= OverflowFP32Exponent
		}
		bits32 := float32bits(f)
		return uint64(bits32), flags, nil
	default:
		f, err := mfloat64.Parse(text)
		if err != nil {
			return 0, 0, &ConversionError{Text: text, Err: err}
		}
		var flags Flags
		if isInfOrOverflow64(text, f) {
			flags |= OverflowFP64Exponent
		}
		return float64bits(f), flags, nil
	}
}

// ConversionError reports that text could not be parsed as a literal of
// the requested kind.
type ConversionError struct {
	Text string
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return "numeric: cannot convert " + e.Text + ": " + e.Err.Error()
	}
	return "numeric: cannot convert " + e.Text
}

func (e *ConversionError) Unwrap() error { return e.Err }
