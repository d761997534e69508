package half

import (
	"hash/maphash"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEq(t *testing.T) {
	a := assert.New(t)

	a.True(Half(0x3c00).Eq(0x3c00))
	a.True(Half(0x0000).Eq(0x8000)) // +0 == -0
	a.True(Half(0x8000).Eq(0x0000))
	a.True(Inf(1).Eq(Inf(1)))
	a.False(Inf(1).Eq(Inf(-1)))
	a.False(Half(0x3c00).Eq(0x3c01))

	// NaN is unequal to everything, itself included
	a.False(NaN().Eq(NaN()))
	a.False(NaN().Eq(0x3c00))
	a.False(Half(0x3c00).Eq(NaN()))
	a.True(NaN().Ne(NaN()))
	a.True(NaN().Ne(0x0000))
}

func TestOrdering(t *testing.T) {
	a := assert.New(t)

	a.True(Half(0xbc00).Lt(0x3c00)) // -1 < 1
	a.True(Inf(-1).Lt(0x0001))
	a.True(Half(0x0001).Lt(0x0400))
	a.True(Half(0x7bff).Lt(Inf(1)))
	a.False(Half(0x3c00).Lt(0x3c00))
	a.True(Half(0x3c00).Le(0x3c00))
	a.True(Half(0x8000).Le(0x0000)) // -0 <= +0 and +0 <= -0
	a.True(Half(0x0000).Le(0x8000))
	a.False(Half(0x8000).Lt(0x0000))

	a.True(Half(0x3c00).Gt(0xbc00))
	a.True(Half(0x3c00).Ge(0x3c00))

	// NaN is unordered against everything
	for _, y := range []Half{0x0000, 0x3c00, Inf(1), Inf(-1), NaN()} {
		a.False(NaN().Lt(y))
		a.False(NaN().Le(y))
		a.False(NaN().Gt(y))
		a.False(NaN().Ge(y))
		a.False(y.Lt(NaN()))
		a.False(y.Le(NaN()))
	}
}

// the comparisons agree with the widened float64 forms
func TestOrdering_All(t *testing.T) {
	r := newXorshift32()
	for i := 0; i < 1e6; i++ {
		x, y := r.HalfPair()
		fx, fy := x.Float64(), y.Float64()
		if x.Eq(y) != (fx == fy) {
			t.Fatalf("%04x == %04x: expected %v", x.Bits(), y.Bits(), fx == fy)
		}
		if x.Lt(y) != (fx < fy) {
			t.Fatalf("%04x < %04x: expected %v", x.Bits(), y.Bits(), fx < fy)
		}
		if x.Le(y) != (fx <= fy) {
			t.Fatalf("%04x <= %04x: expected %v", x.Bits(), y.Bits(), fx <= fy)
		}
	}
}

func TestCompare(t *testing.T) {
	a := assert.New(t)

	a.Equal(0, Half(0x3c00).Compare(0x3c00))
	a.Equal(0, Half(0x0000).Compare(0x8000))
	a.Equal(-1, Half(0xbc00).Compare(0x3c00))
	a.Equal(1, Half(0x3c00).Compare(0xbc00))
	a.Equal(-1, Inf(-1).Compare(0xfbff))
	a.Equal(1, Inf(1).Compare(0x7bff))

	// total order: NaN sorts below everything, NaNs are equal
	a.Equal(0, NaN().Compare(NaN()))
	a.Equal(0, NaN().Compare(Half(0x7c01)))
	a.Equal(-1, NaN().Compare(Inf(-1)))
	a.Equal(1, Inf(-1).Compare(NaN()))
}

func TestCompare_Sort(t *testing.T) {
	a := assert.New(t)

	xs := []Half{0x3c00, NaN(), Inf(1), 0x8000, 0xbc00, Inf(-1), 0x0001}
	sort.Slice(xs, func(i, j int) bool { return xs[i].Compare(xs[j]) < 0 })

	a.True(xs[0].IsNaN())
	a.Equal(Inf(-1), xs[1])
	a.Equal(Half(0xbc00), xs[2])
	a.Equal(Half(0x8000), xs[3])
	a.Equal(Half(0x0001), xs[4])
	a.Equal(Half(0x3c00), xs[5])
	a.Equal(Inf(1), xs[6])
}

func TestHash(t *testing.T) {
	a := assert.New(t)
	seed := maphash.MakeSeed()

	// consistent with Eq: the two zeros hash alike
	a.Equal(Half(0x0000).Hash(seed), Half(0x8000).Hash(seed))
	a.Equal(Half(0x3c00).Hash(seed), Half(0x3c00).Hash(seed))

	// distinct values should disagree under at least one seed;
	// with a 64-bit hash a collision here is effectively impossible
	a.NotEqual(Half(0x3c00).Hash(seed), Half(0xbc00).Hash(seed))
	a.NotEqual(Half(0x0001).Hash(seed), Half(0x0002).Hash(seed))
}
