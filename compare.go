package half

import (
	"encoding/binary"
	"hash/maphash"
)

// orderKey maps a bit pattern to a two's-complement integer that
// orders the same way the values do. Both zero encodings map to 0;
// every other pattern maps injectively.
func orderKey(x Half) int16 {
	k := int16(x) ^ int16(x)>>15&0x7fff
	return k + int16(x>>15)
}

// Eq reports whether x == y under IEEE 754 semantics: NaN compares
// unequal to everything including itself, and +0 equals -0.
func (x Half) Eq(y Half) bool {
	if x.IsNaN() || y.IsNaN() {
		return false
	}
	return orderKey(x) == orderKey(y)
}

// Ne reports whether x != y. Any comparison involving NaN is unequal.
func (x Half) Ne(y Half) bool { return !x.Eq(y) }

// Lt reports whether x < y. NaN is unordered: Lt is false whenever
// either operand is NaN.
func (x Half) Lt(y Half) bool {
	if x.IsNaN() || y.IsNaN() {
		return false
	}
	return orderKey(x) < orderKey(y)
}

// Le reports whether x <= y, with NaN unordered.
func (x Half) Le(y Half) bool {
	if x.IsNaN() || y.IsNaN() {
		return false
	}
	return orderKey(x) <= orderKey(y)
}

// Gt reports whether x > y, with NaN unordered.
func (x Half) Gt(y Half) bool { return y.Lt(x) }

// Ge reports whether x >= y, with NaN unordered.
func (x Half) Ge(y Half) bool { return y.Le(x) }

// Compare imposes a total order for sorting and returns:
//
//	-1 if x <  y
//	 0 if x == y (incl. -0 == 0, -Inf == -Inf, and +Inf == +Inf)
//	+1 if x >  y
//
// A NaN is ordered below any non-NaN, and two NaNs compare equal.
func (x Half) Compare(y Half) int {
	xNaN := x.IsNaN()
	yNaN := y.IsNaN()
	if xNaN && yNaN {
		return 0
	}
	if xNaN {
		return -1
	}
	if yNaN {
		return 1
	}
	kx, ky := orderKey(x), orderKey(y)
	switch {
	case kx < ky:
		return -1
	case kx > ky:
		return 1
	}
	return 0
}

// Hash returns a seed-keyed hash of x, consistent with Eq: since +0
// and -0 compare equal, both zero encodings canonicalize to a single
// representative before hashing. Distinct NaN payloads may hash
// differently; they never compare equal to anything, so consistency
// holds vacuously.
func (x Half) Hash(seed maphash.Seed) uint64 {
	if x.IsZero() {
		x = 0
	}
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(x))
	return maphash.Bytes(seed, b[:])
}
