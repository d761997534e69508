package half

import (
	"math"

	"github.com/chewxy/math32"
)

// NaNWithPayload returns a NaN carrying payload in its significand.
// The payload must stay below the quiet bit (0x200): a payload that
// collides with the quiet/signaling discriminator would silently
// denote a different NaN, so NaNWithPayload panics instead of masking.
// A signaling NaN needs a nonzero payload; payload 0 with signaling
// set composes the infinity pattern.
func NaNWithPayload(payload uint16, signaling bool) Half {
	if payload >= quietBit {
		panic("half: NaN payload collides with the quiet bit")
	}
	frac := payload
	if !signaling {
		frac |= quietBit
	}
	return Half(uvinf | frac)
}

// roundBits rounds mantissa * 2^exp to the nearest Half, ties to
// even. If sticky is set, the value is treated as strictly greater
// in magnitude than mantissa * 2^exp by less than one unit of the
// mantissa's lowest bit. overflow reports saturation to infinity.
func roundBits(mantissa uint64, exp int, neg, sticky bool) (h Half, overflow bool) {
	maxExp := expMask - expBias - 1
	minExp := -expBias + 1
	exp += expShift // mantissa now implicitly divided by 2^expShift

	// Normalize to a leading 1-bit followed by expShift other bits,
	// plus two rounding bits at the bottom. The lowest bit absorbs
	// any shifted-out nonzero bits.
	for mantissa != 0 && mantissa>>(expShift+2) == 0 {
		mantissa <<= 1
		exp--
	}
	if sticky {
		mantissa |= 1
	}
	for mantissa>>(1+expShift+2) != 0 {
		mantissa = mantissa>>1 | mantissa&1
		exp++
	}

	// If the exponent is too small, denormalize.
	for mantissa > 1 && exp < minExp-2 {
		mantissa = mantissa>>1 | mantissa&1
		exp++
	}

	// Round using the two bottom bits.
	round := mantissa & 3
	mantissa >>= 2
	round |= mantissa & 1 // round to even
	exp += 2
	if round == 3 {
		mantissa++
		if mantissa == 1<<(1+expShift) {
			mantissa >>= 1
			exp++
		}
	}

	if mantissa>>expShift == 0 { // subnormal or zero
		exp = -expBias
	}
	if exp > maxExp {
		mantissa = 0
		exp = expMask - expBias
		overflow = true
	}

	b := mantissa & fracMask
	b |= uint64(exp+expBias) & expMask << expShift
	if neg {
		b |= signMask
	}
	return Half(b), overflow
}

// FromInt returns the Half nearest to n, rounding ties to even and
// saturating to infinity.
func FromInt(n int) Half { return FromInt64(int64(n)) }

// FromInt64 returns the Half nearest to n, rounding ties to even and
// saturating to infinity.
func FromInt64(n int64) Half {
	neg := n < 0
	m := uint64(n)
	if neg {
		m = -m
	}
	h, _ := roundBits(m, 0, neg, false)
	return h
}

// FromUint64 returns the Half nearest to n, rounding ties to even and
// saturating to infinity.
func FromUint64(n uint64) Half {
	h, _ := roundBits(n, 0, false, false)
	return h
}

// Int64 returns x truncated toward zero. NaN maps to 0 and the
// infinities saturate to the int64 range.
func (x Half) Int64() int64 {
	switch {
	case x.IsNaN():
		return 0
	case x == uvinf:
		return math.MaxInt64
	case x == uvneginf:
		return math.MinInt64
	}
	return int64(x.fix24()) / (1 << 24)
}

// ExactFromFloat32 converts f and reports whether the conversion was
// exact: the result must convert back to f by value (signed zeros
// compare equal), an infinity must keep its sign, and a NaN source
// must keep its signaling-ness. Conversion always quiets NaNs, so a
// signaling source never succeeds.
func ExactFromFloat32(f float32) (Half, bool) {
	x := FromFloat32(f)
	if math32.IsNaN(f) {
		return x, !signalingNaN32(f)
	}
	return x, x.Float32() == f
}

// ExactFromFloat64 is ExactFromFloat32 for a float64 source.
func ExactFromFloat64(f float64) (Half, bool) {
	x := FromFloat64(f)
	if math.IsNaN(f) {
		return x, !signalingNaN64(f)
	}
	return x, x.Float64() == f
}

// ExactFromInt64 converts n and reports whether the conversion was
// exact. Unlike the float sources, a non-finite result always fails:
// no integer is infinity.
func ExactFromInt64(n int64) (Half, bool) {
	x := FromInt64(n)
	return x, x.IsFinite() && x.Int64() == n
}

// ExactFromUint64 is ExactFromInt64 for an unsigned source.
func ExactFromUint64(n uint64) (Half, bool) {
	x := FromUint64(n)
	if !x.IsFinite() {
		return x, false
	}
	m := x.Int64()
	return x, m >= 0 && uint64(m) == n
}

func signalingNaN32(f float32) bool {
	return math32.IsNaN(f) && math.Float32bits(f)&(1<<22) == 0
}

func signalingNaN64(f float64) bool {
	return math.IsNaN(f) && math.Float64bits(f)&(1<<51) == 0
}
