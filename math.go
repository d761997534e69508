package half

import (
	"math/bits"

	"github.com/shogo82148/int128"
)

// Neg returns x with its sign flipped. Neg(NaN) flips the NaN's sign
// bit; Neg(±0) is ∓0.
func (x Half) Neg() Half { return x ^ signMask }

// Abs returns x with its sign bit cleared.
func (x Half) Abs() Half { return x &^ signMask }

// Mul returns the product of a and b, correctly rounded to nearest
// with ties to even.
func (a Half) Mul(b Half) Half {
	if a.IsNaN() || b.IsNaN() {
		// anything * NaN = NaN
		// NaN * anything = NaN
		return propagateNaN(a, b)
	}

	signA := a & signMask
	expA := int(a>>expShift&expMask) - expBias
	signB := b & signMask
	expB := int(b>>expShift&expMask) - expBias

	if expA == expMask-expBias {
		// NaN check is done above; a is ±Inf
		if expB == -expBias && b&fracMask == 0 {
			// b is zero, the result is NaN
			return Half(uvnan)
		}
		// otherwise the result is infinity
		return a ^ signB
	}

	if expB == expMask-expBias {
		// NaN check is done above; b is ±Inf
		if expA == -expBias && a&fracMask == 0 {
			// a is zero, the result is NaN
			return Half(uvnan)
		}
		// a is neither zero nor NaN, the result is infinity
		return b ^ signA
	}

	sign := signA ^ signB

	var fracA uint32
	if expA == -expBias {
		// a is subnormal
		fracA = uint32(a & fracMask)
		l := bits.Len32(fracA)
		fracA <<= expShift - l + 1
		expA = -(expBias + expShift) + l
	} else {
		// a is normal
		fracA = uint32(a&fracMask) | 1<<expShift
	}

	var fracB uint32
	if expB == -expBias {
		// b is subnormal
		fracB = uint32(b & fracMask)
		l := bits.Len32(fracB)
		fracB <<= expShift - l + 1
		expB = -(expBias + expShift) + l
	} else {
		// b is normal
		fracB = uint32(b&fracMask) | 1<<expShift
	}

	exp := expA + expB
	frac := fracA * fracB
	shift := bits.Len32(frac) - (expShift + 1)
	exp += shift - expShift

	if exp < -(expBias + expShift) {
		// underflow
		return sign
	} else if exp <= -expBias {
		// the result is subnormal
		shift := expShift - (expA + expB + expBias) + 1
		frac += (1<<(shift-1) - 1) + frac>>shift&1 // round to nearest even
		frac >>= shift
		return sign | Half(frac)
	}

	exp = expA + expB + expBias
	frac += (1<<(shift-1) - 1) + frac>>shift&1 // round to nearest even
	shift = bits.Len32(frac) - (expShift + 1)
	exp += shift - expShift
	if exp >= expMask {
		// overflow
		return sign | expMask<<expShift
	}
	frac >>= shift
	frac &= fracMask
	return sign | Half(exp<<expShift) | Half(frac)
}

// Quo returns the quotient of a and b, correctly rounded to nearest
// with ties to even.
func (a Half) Quo(b Half) Half {
	if a.IsNaN() || b.IsNaN() {
		// anything / NaN = NaN
		// NaN / anything = NaN
		return propagateNaN(a, b)
	}

	signA := a & signMask
	expA := int(a>>expShift&expMask) - expBias
	signB := b & signMask
	expB := int(b>>expShift&expMask) - expBias
	sign := signA ^ signB

	if b&^signMask == 0 {
		// division by zero
		if a&^signMask == 0 {
			// ±0 / ±0 = NaN
			return Half(uvnan)
		}
		// +x / ±0 = ±Inf
		// -x / ±0 = ∓Inf
		return sign | expMask<<expShift
	}
	if expA == expMask-expBias {
		// NaN check is done above; a is ±Inf
		if expB == expMask-expBias {
			// ±Inf / ±Inf = NaN
			return Half(uvnan)
		}
		// otherwise the result is infinity
		return a ^ signB
	}

	if expB == expMask-expBias {
		// NaN check is done above; b is ±Inf
		// +x / ±Inf = ±0
		// -x / ±Inf = ∓0
		return sign
	}

	var fracA uint32
	if expA == -expBias {
		// a is subnormal
		fracA = uint32(a & fracMask)
		l := bits.Len32(fracA)
		fracA <<= expShift - l + 1
		expA = -(expBias + expShift) + l
	} else {
		// a is normal
		fracA = uint32(a&fracMask) | 1<<expShift
	}
	if fracA == 0 {
		// a is zero
		return sign
	}

	var fracB uint32
	if expB == -expBias {
		// b is subnormal
		fracB = uint32(b & fracMask)
		l := bits.Len32(fracB)
		fracB <<= expShift - l + 1
		expB = -(expBias + expShift) + l
	} else {
		// b is normal
		fracB = uint32(b&fracMask) | 1<<expShift
	}

	exp := expA - expB + expBias
	if fracA < fracB {
		exp--
		fracA <<= 1
	}
	if exp >= expMask {
		// overflow
		return sign | expMask<<expShift
	}
	shift := expShift + 3 // 1 for the implicit bit, 1 for the rounding bit, 1 for the guard bit
	fracA = fracA << shift
	frac := uint16(fracA / fracB)
	mod := uint16(fracA % fracB)
	frac |= squash(mod)
	if exp <= 0 {
		// the result is subnormal
		shift := -exp + 3 + 1
		frac += (1<<(shift-1) - 1) + frac>>shift&1 // round to nearest even
		frac >>= shift
		return sign | Half(frac)
	}

	frac += 0b11 + frac>>3&1 // round to nearest even
	frac >>= 3
	return sign | Half(exp<<expShift) | Half(frac&fracMask)
}

// squash collapses x to 1 if any bit is set, 0 otherwise.
func squash(x uint16) uint16 {
	x |= x >> 8
	x |= x >> 4
	x |= x >> 2
	x |= x >> 1
	return x & 1
}

// Add returns the sum of a and b, correctly rounded to nearest with
// ties to even. The sum is formed exactly in a fixed-point
// intermediate and rounded once.
func (a Half) Add(b Half) Half {
	if a.IsNaN() || b.IsNaN() {
		// anything + NaN = NaN
		// NaN + anything = NaN
		return propagateNaN(a, b)
	}
	if a^signMask == 0 { // a is -0
		return b
	}

	if a>>expShift&expMask == expMask {
		// NaN is already handled; a is ±Inf
		if a&fracMask == 0 {
			if b == a^signMask {
				// ±Inf + ∓Inf = NaN
				return NaN()
			}
			return a // ±Inf + anything = ±Inf
		}
	}

	fixA := a.fix24()
	fixB := b.fix24()
	return (fixA + fixB).Half()
}

// Sub returns the difference of a and b, correctly rounded to nearest
// with ties to even.
func (a Half) Sub(b Half) Half {
	return a.Add(b ^ signMask)
}

// fix24 is a fixed-point number with 24 bits of fraction; every
// finite Half converts exactly.
type fix24 int64

const fix24inf = fix24(1 << 61)

func (x Half) fix24() fix24 {
	var ret fix24
	exp := uint32(x>>expShift) & expMask
	frac := uint32(x & fracMask)
	if exp == 0 {
		// subnormal number
		ret = fix24(frac)
	} else if exp == expMask {
		// infinity or NaN
		ret = fix24inf
	} else {
		// normal number
		ret = fix24(frac|1<<expShift) << (exp - 1)
	}
	if x&signMask != 0 {
		ret = -ret
	}
	return ret
}

func (f fix24) Half() Half {
	if f == 0 {
		return 0
	}

	var sign uint16
	if f < 0 {
		sign = signMask
		f = -f
	}
	l := bits.Len64(uint64(f))
	if l <= expShift {
		// subnormal number
		return Half(sign | uint16(f))
	}
	shift := l - expShift - 1
	if shift > 0 {
		f += (1<<(shift-1) - 1) + f>>shift&1 // round to nearest even
		l = bits.Len64(uint64(f))
	}

	exp := uint16(l) - expShift
	if exp >= expMask {
		// overflow
		return Half(sign | expMask<<expShift)
	}
	frac := uint16(f>>(exp-1)) & fracMask
	return Half(sign | exp<<expShift | frac)
}

// fixed decomposes a finite x into an integer significand m and a
// binary exponent e with |x| = m * 2^e.
func (x Half) fixed() (m uint16, e int) {
	exp := int(x>>expShift) & expMask
	frac := uint16(x) & fracMask
	if exp == 0 {
		return frac, -(expBias + expShift - 1)
	}
	return frac | 1<<expShift, exp - expBias - expShift
}

// FMA returns x*y + z, computed with a single rounding: the product
// and the addend are accumulated exactly in 128-bit fixed point at
// scale 2^-48, then rounded once to nearest, ties to even.
func (x Half) FMA(y, z Half) Half {
	if x.IsNaN() || y.IsNaN() {
		return propagateNaN(x, y)
	}
	if z.IsNaN() {
		return z | quietBit
	}

	psign := (x ^ y) & signMask
	if x&^signMask == uvinf || y&^signMask == uvinf {
		if x&^signMask == 0 || y&^signMask == 0 {
			// ±Inf * ±0 = NaN
			return NaN()
		}
		if z&^signMask == uvinf && z&signMask != psign {
			// ±Inf + ∓Inf = NaN
			return NaN()
		}
		return psign | uvinf
	}
	if z&^signMask == uvinf {
		return z
	}

	mx, ex := x.fixed()
	my, ey := y.fixed()
	mz, ez := z.fixed()
	p := int128.Uint128{L: uint64(mx) * uint64(my)}.Lsh(uint(ex + ey + 48))
	q := int128.Uint128{L: uint64(mz)}.Lsh(uint(ez + 48))

	zsign := z & signMask
	var sum int128.Uint128
	var neg bool
	if psign == zsign {
		sum = p.Add(q)
		neg = psign != 0
	} else {
		switch p.Cmp(q) {
		case 0:
			// exact cancellation rounds to +0
			return 0
		case 1:
			sum = p.Sub(q)
			neg = psign != 0
		default:
			sum = q.Sub(p)
			neg = zsign != 0
		}
	}

	// reduce to a 64-bit mantissa with a sticky bit, then round once
	exp := -48
	var sticky bool
	for sum.H != 0 {
		sticky = sticky || sum.L&1 != 0
		sum = sum.Rsh(1)
		exp++
	}
	h, _ := roundBits(sum.L, exp, neg, sticky)
	return h
}
