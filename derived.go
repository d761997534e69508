package half

import (
	"math"
	"math/bits"
)

// Exponent returns the unbiased exponent of x. Infinity and NaN
// return math.MaxInt; zero returns math.MinInt. Subnormals report
// the exponent of their normalized form, so Exponent(0x0001) == -24.
func (x Half) Exponent() int {
	switch {
	case !x.IsFinite():
		return math.MaxInt
	case x.IsZero():
		return math.MinInt
	}
	_, exp, _ := x.split()
	return exp
}

// Significand returns the significand of x scaled into [1, 2): the
// value such that x == ±Significand() * 2^Exponent(). NaN returns
// itself, infinities return +Inf, zeros return +0, and subnormals are
// normalized first.
func (x Half) Significand() Half {
	e := uint16(x>>expShift) & expMask
	f := uint16(x) & fracMask
	switch {
	case x.IsNaN():
		return x
	case e == expMask: // infinity
		return uvinf
	case e == 0 && f == 0: // zero
		return 0
	case e == 0: // subnormal
		l := bits.Len16(f)
		f = f << (expShift - l + 1) & fracMask
	}
	return FromParts(false, expBias, f)
}

// ULP returns the gap between x and the next representable value of
// the same exponent. Infinity and NaN return NaN; zeros and
// subnormals return the least nonzero magnitude.
func (x Half) ULP() Half {
	if !x.IsFinite() {
		return NaN()
	}
	if x.IsNormal() {
		return (x & uvinf).Mul(UlpOfOne)
	}
	return LeastNormalMagnitude.Mul(UlpOfOne)
}

// NextUp returns the least representable value greater than x.
// NaN and positive infinity return themselves; the greatest finite
// magnitude steps to positive infinity. In flush-to-zero mode the
// subnormal range does not exist: subnormal operands behave as zeros
// of the same sign and zeros step to the least normal magnitude.
func (x Half) NextUp() Half {
	if x.IsNaN() || x == uvinf {
		return x
	}
	if flushSubnormals {
		if x.IsSubnormal() {
			x &= signMask
		}
		if x&^signMask == 0 {
			return LeastNormalMagnitude
		}
		if x == LeastNormalMagnitude|signMask {
			return Half(signMask) // -0
		}
	}
	if x&^signMask == 0 { // ±0
		return LeastNonzeroMagnitude
	}
	// adjacent bit patterns are adjacent values within a sign
	if x&signMask != 0 {
		return x - 1
	}
	return x + 1
}

// NextDown returns the greatest representable value less than x.
func (x Half) NextDown() Half {
	return x.Neg().NextUp().Neg()
}

// Binade returns the value whose exponent matches x and whose
// significand bits are zero: the representative of all values sharing
// x's sign and exponent. Infinity and NaN return NaN. Subnormal
// binades keep only the leading significand bit; in flush-to-zero
// mode a subnormal is a zero, and so is its binade.
func (x Half) Binade() Half {
	if !x.IsFinite() {
		return NaN()
	}
	if x.IsSubnormal() {
		if flushSubnormals {
			return x & signMask
		}
		f := uint16(x) & fracMask
		return x&signMask | Half(1)<<(bits.Len16(f)-1)
	}
	return x &^ fracMask
}

// SignificandWidth returns the number of fractional bits needed to
// represent the significand of x exactly, or -1 for zero, infinity,
// and NaN. Powers of two report 0.
func (x Half) SignificandWidth() int {
	if !x.IsFinite() || x.IsZero() {
		return -1
	}
	f := uint16(x) & fracMask
	if x.IsNormal() {
		if f == 0 {
			return 0
		}
		return expShift - bits.TrailingZeros16(f)
	}
	// subnormal: leading bit is explicit
	return bits.Len16(f) - 1 - bits.TrailingZeros16(f)
}
