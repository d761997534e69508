// Package half implements Half, an IEEE 754 binary16 floating-point
// number stored as its 16-bit pattern. The bit pattern is the only
// state: every property of a Half is a pure function of it, values
// are immutable, and all operations are safe for concurrent use.
package half

import (
	"math"
	"math/bits"

	"github.com/chewxy/math32"
)

// A Half is an IEEE 754 binary16 value: 1 sign bit, 5 exponent bits
// (bias 15), 10 significand bits.
type Half uint16

const (
	signMask = 0x8000
	expShift = 10
	expMask  = 0x1f // exponent field, after shifting
	expBias  = 15
	fracMask = 0x3ff
	quietBit = 0x200 // set: quiet NaN, clear (and frac != 0): signaling

	uvnan    = 0x7e00 // canonical quiet NaN
	uvinf    = 0x7c00
	uvneginf = 0xfc00
)

const (
	// GreatestFiniteMagnitude is the largest finite Half, 65504.
	GreatestFiniteMagnitude Half = 0x7bff

	// LeastNormalMagnitude is the smallest positive normal Half, 0x1p-14.
	LeastNormalMagnitude Half = 0x0400

	// LeastNonzeroMagnitude is the smallest positive subnormal Half, 0x1p-24.
	LeastNonzeroMagnitude Half = 0x0001

	// UlpOfOne is the gap between 1 and the next representable Half, 0x1p-10.
	UlpOfOne Half = 0x1400

	// Pi is the Half closest to the circle constant, 3.140625.
	Pi Half = 0x4248
)

// flushSubnormals models targets whose floating-point units flush
// subnormal values to zero. It is consulted by IsCanonical, Binade,
// and NextUp only, and must be configured before any of those are
// called.
var flushSubnormals = false

// SetFlushSubnormals configures flush-to-zero classification.
func SetFlushSubnormals(on bool) { flushSubnormals = on }

// FromBits returns the Half with the IEEE 754 binary representation b.
// Non-canonical encodings are preserved verbatim.
func FromBits(b uint16) Half { return Half(b) }

// Bits returns the IEEE 754 binary representation of x.
func (x Half) Bits() uint16 { return uint16(x) }

// NaN returns the canonical quiet NaN.
func NaN() Half { return uvnan }

// Inf returns positive infinity if sign >= 0, negative infinity
// otherwise.
func Inf(sign int) Half {
	if sign >= 0 {
		return uvinf
	}
	return uvneginf
}

// IsNaN reports whether x is any NaN, quiet or signaling.
func (x Half) IsNaN() bool { return x&^signMask > uvinf }

// IsSignalingNaN reports whether x is a NaN with the quiet bit clear.
func (x Half) IsSignalingNaN() bool { return x.IsNaN() && x&quietBit == 0 }

// IsInf reports whether x is an infinity, according to sign.
// If sign > 0, IsInf reports whether x is positive infinity.
// If sign < 0, IsInf reports whether x is negative infinity.
// If sign == 0, IsInf reports whether x is either infinity.
func (x Half) IsInf(sign int) bool {
	return sign >= 0 && x == uvinf || sign <= 0 && x == uvneginf
}

// IsZero reports whether x is +0 or -0.
func (x Half) IsZero() bool { return x&^signMask == 0 }

// IsSubnormal reports whether x is nonzero with a zero exponent field.
func (x Half) IsSubnormal() bool {
	return x>>expShift&expMask == 0 && x&fracMask != 0
}

// IsNormal reports whether x is finite, nonzero, and not subnormal.
func (x Half) IsNormal() bool {
	e := x >> expShift & expMask
	return e != 0 && e != expMask
}

// IsFinite reports whether x is neither infinite nor NaN.
func (x Half) IsFinite() bool { return x&^signMask < uvinf }

// Signbit reports whether x is negative or negative zero.
func (x Half) Signbit() bool { return x&signMask != 0 }

// IsCanonical reports whether the encoding of x is canonical. Every
// pattern is canonical unless flush-to-zero mode is on, in which case
// subnormal encodings denote zero non-canonically.
func (x Half) IsCanonical() bool {
	return !(flushSubnormals && x.IsSubnormal())
}

// Parts decomposes x into its raw fields: the sign bit, the 5-bit
// biased exponent, and the 10-bit significand.
func (x Half) Parts() (neg bool, exp, frac uint16) {
	return x&signMask != 0, uint16(x>>expShift) & expMask, uint16(x) & fracMask
}

// FromParts composes a Half from raw fields, masking exp and frac to
// their field widths. It is the inverse of Parts and the funnel for
// every higher-level constructor.
func FromParts(neg bool, exp, frac uint16) Half {
	b := exp&expMask<<expShift | frac&fracMask
	if neg {
		b |= signMask
	}
	return Half(b)
}

// split returns the sign bit, unbiased exponent, and significand of a
// nonzero finite x, with subnormals renormalized to an implicit
// leading bit.
func (x Half) split() (sign uint16, exp int, frac uint16) {
	sign = uint16(x) & signMask
	exp = int(x>>expShift) & expMask
	frac = uint16(x) & fracMask
	if exp == 0 {
		// subnormal
		l := bits.Len16(frac)
		frac = frac << (expShift - l + 1) & fracMask
		exp = l - (expBias + expShift)
	} else {
		exp -= expBias
	}
	return
}

// propagateNaN returns a quieted copy of one of the NaN operands.
func propagateNaN(a, b Half) Half {
	if a.IsNaN() {
		return a | quietBit
	}
	return b | quietBit
}

// Float32 returns the float32 representation of x. The conversion is
// exact: every Half is representable as a float32.
func (x Half) Float32() float32 {
	sign := uint32(x&signMask) << 16
	exp := uint32(x>>expShift) & expMask
	frac := uint32(x & fracMask)

	if exp == 0 {
		// subnormal number
		if frac == 0 {
			exp = 0
		} else {
			l := bits.Len32(frac)
			frac = frac << (expShift - l + 1) & fracMask
			exp = 127 - (expBias + expShift) + uint32(l)
		}
	} else if exp == expMask {
		// infinity or NaN
		exp = 255
	} else {
		// normal number
		exp += 127 - expBias
	}
	return math.Float32frombits(sign | exp<<23 | frac<<(23-expShift))
}

// Float64 returns the float64 representation of x. The conversion is
// exact.
func (x Half) Float64() float64 {
	sign := uint64(x&signMask) << 48
	exp := uint64(x>>expShift) & expMask
	frac := uint64(x & fracMask)

	if exp == 0 {
		// subnormal number
		l := bits.Len64(frac)
		if l == 0 {
			exp = 0
		} else {
			frac = frac << (expShift - l + 1) & fracMask
			exp = 1023 - (expBias + expShift) + uint64(l)
		}
	} else if exp == expMask {
		// infinity or NaN
		exp = 2047
	} else {
		// normal number
		exp += 1023 - expBias
	}
	return math.Float64frombits(sign | exp<<52 | frac<<(52-expShift))
}

// FromFloat32 returns the Half nearest to f, rounding ties to even.
// Infinities keep their sign; any NaN becomes the canonical quiet NaN.
func FromFloat32(f float32) Half {
	b := math.Float32bits(f)
	sign := uint16(b>>16) & signMask
	switch {
	case math32.IsNaN(f):
		return uvnan
	case math32.IsInf(f, 0):
		return Half(sign | uvinf)
	}
	exp := int(b>>23&0xff) - 127 + expBias
	frac := b & (1<<23 - 1)

	if exp >= expMask {
		// overflow
		return Half(sign | uvinf)
	}
	if exp <= 0 {
		// the result is subnormal or zero
		if exp < -expShift {
			return Half(sign)
		}
		frac |= 1 << 23
		shift := uint(23 - expShift + 1 - exp)
		frac += 1<<(shift-1) - 1 + (frac >> shift & 1) // round to nearest even
		return Half(sign | uint16(frac>>shift))
	}
	frac += 1<<(23-expShift-1) - 1 + (frac >> (23 - expShift) & 1) // round to nearest even
	// the rounding carry, if any, propagates into the exponent
	return Half(sign | uint16(uint32(exp)<<expShift+frac>>(23-expShift)))
}

// FromFloat64 returns the Half nearest to f, rounding ties to even.
// Infinities keep their sign; any NaN becomes the canonical quiet NaN.
func FromFloat64(f float64) Half {
	b := math.Float64bits(f)
	sign := uint16(b>>48) & signMask
	switch {
	case math.IsNaN(f):
		return uvnan
	case math.IsInf(f, 0):
		return Half(sign | uvinf)
	}
	exp := int(b>>52&0x7ff) - 1023 + expBias
	frac := b & (1<<52 - 1)

	if exp >= expMask {
		// overflow
		return Half(sign | uvinf)
	}
	if exp <= 0 {
		// the result is subnormal or zero
		if exp < -expShift {
			return Half(sign)
		}
		frac |= 1 << 52
		shift := uint(52 - expShift + 1 - exp)
		frac += 1<<(shift-1) - 1 + (frac >> shift & 1) // round to nearest even
		return Half(sign | uint16(frac>>shift))
	}
	frac += 1<<(52-expShift-1) - 1 + (frac >> (52 - expShift) & 1) // round to nearest even
	return Half(sign | uint16(uint64(exp)<<expShift+frac>>(52-expShift)))
}
