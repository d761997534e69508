package half

import "math/bits"

// Sqrt returns the square root of x, correctly rounded.
//
// Special cases are:
//
//	Sqrt(+Inf) = +Inf
//	Sqrt(±0) = ±0
//	Sqrt(x < 0) = NaN
//	Sqrt(NaN) = NaN
func (x Half) Sqrt() Half {
	// special cases
	switch {
	case x&^signMask == 0 || x.IsNaN() || x.IsInf(1):
		return x
	case x&signMask != 0:
		return uvnan
	}

	// normalize x
	exp := int(x>>expShift) & expMask
	frac := uint16(x & fracMask)
	if exp == 0 {
		// subnormal number
		l := bits.Len32(uint32(frac))
		frac <<= expShift - l + 1
		exp = -(expBias + expShift) + l
	} else {
		// normal number
		frac |= 1 << expShift
		exp -= expBias
	}

	if exp%2 != 0 { // odd exp, double x to make it even
		frac <<= 1
	}
	// exponent of square root
	exp >>= 1

	// generate sqrt(frac) bit by bit
	frac <<= 1
	var q, s uint16 // q = sqrt(frac)
	r := uint16(1 << (expShift + 1))
	for r != 0 {
		t := s + r
		if t <= frac {
			s = t + r
			frac -= t
			q += r
		}
		frac <<= 1
		r >>= 1
	}

	// final rounding
	if frac != 0 {
		q += q & 1
	}
	return Half((exp-1+expBias)<<expShift) + Half(q>>1)
}
