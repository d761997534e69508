package half

import (
	"math"
	"runtime"
	"testing"
)

var negZero = math.Float64frombits(1 << 63)

func TestIsNaN(t *testing.T) {
	if !NaN().IsNaN() {
		t.Errorf("expected NaN")
	}
	if NaN().IsSignalingNaN() {
		t.Errorf("the canonical NaN must be quiet")
	}
	if Inf(1).IsNaN() || Half(0x3c00).IsNaN() {
		t.Errorf("expected not NaN")
	}
	if !Half(0x7c01).IsSignalingNaN() {
		t.Errorf("expected a signaling NaN")
	}
}

func TestIsInf(t *testing.T) {
	tests := []struct {
		f    Half
		sign int
		inf  bool
	}{
		{Inf(1), 1, true},
		{Inf(-1), 1, false},
		{Inf(1), -1, false},
		{Inf(-1), -1, true},
		{Inf(1), 0, true},
		{Inf(-1), 0, true},
		{NaN(), 0, false},
		{GreatestFiniteMagnitude, 0, false},
	}
	for _, tt := range tests {
		if tt.f.IsInf(tt.sign) != tt.inf {
			t.Errorf("%x: expected %v", tt.f, tt.sign)
		}
	}
}

// every bit pattern belongs to exactly one class
func TestClassify_All(t *testing.T) {
	for bits := 0; bits < 1<<16; bits++ {
		f := FromBits(uint16(bits))
		n := 0
		if f.IsZero() {
			n++
		}
		if f.IsSubnormal() {
			n++
		}
		if f.IsNormal() {
			n++
		}
		if f.IsInf(0) {
			n++
		}
		if f.IsNaN() {
			n++
		}
		if n != 1 {
			t.Errorf("%04x: classified %d times", bits, n)
		}
		if f.IsFinite() != (f.IsZero() || f.IsSubnormal() || f.IsNormal()) {
			t.Errorf("%04x: IsFinite disagrees with the classes", bits)
		}
	}
}

func TestParts_All(t *testing.T) {
	for bits := 0; bits < 1<<16; bits++ {
		f := FromBits(uint16(bits))
		neg, exp, frac := f.Parts()
		if got := FromParts(neg, exp, frac); got != f {
			t.Errorf("%04x: round trip gave %04x", bits, got)
		}
		if neg != f.Signbit() {
			t.Errorf("%04x: sign mismatch", bits)
		}
	}
}

func TestFromParts_Masking(t *testing.T) {
	// out-of-range fields are truncated to their widths
	if got := FromParts(false, 0x25, 0x7ff); got != FromParts(false, 0x05, 0x3ff) {
		t.Errorf("expected masked fields, got %04x", got)
	}
}

func TestFromFloat32(t *testing.T) {
	tests := []struct {
		f float32
		r Half
	}{
		// from https://en.wikipedia.org/wiki/Half-precision_floating-point_format
		{0, 0x0000},
		{0x1p-24, 0x0001},     // smallest positive subnormal number
		{0x1.ff8p-15, 0x03ff}, // largest positive subnormal number
		{0x1p-14, 0x0400},     // smallest positive normal number
		{0x1.554p-02, 0x3555}, // nearest value to 1/3
		{0x1.ffcp-01, 0x3bff}, // largest number less than one
		{0x1p+00, 0x3c00},     // one
		{0x1.004p+00, 0x3c01}, // smallest number larger than one
		{0x1.ffcp+15, 0x7bff}, // largest normal number
		{float32(negZero), 0x8000},
		{-2, 0xc000},

		// rounds to nearest even
		{0x1.002p+00, 0x3c00},
		{math.Nextafter32(0x1.002p+00, 2), 0x3c01},
		{math.Nextafter32(0x1.006p+00, 0), 0x3c01},
		{0x1.006p+00, 0x3c02},
		{0x1.ffcp-15, 0x0400},

		// underflow
		{0x1p-25, 0x0000},
		{0x1p-126, 0x0000},
		{0x1.fffffcp-127, 0x0000},

		// overflow
		{0x1p+16, 0x7c00},
		{0x1p+17, 0x7c00},
		{-0x1p+16, 0xfc00},
		{-0x1p+17, 0xfc00},

		// infinities
		{float32(math.Inf(1)), 0x7c00},
		{float32(math.Inf(-1)), 0xfc00},

		// NaN
		{float32(math.NaN()), 0x7e00},
	}
	for _, tt := range tests {
		r := FromFloat32(tt.f)
		if r != tt.r {
			t.Errorf("%x: expected %x, got %x", tt.f, tt.r, r)
		}
	}
}

func TestFromFloat32_All(t *testing.T) {
	for bits := 0; bits < 1<<16; bits++ {
		f := FromBits(uint16(bits))
		if !f.IsNaN() && f != FromFloat32(f.Float32()) {
			t.Errorf("%x: expected %x, got %x", bits, f, FromFloat32(f.Float32()))
		}
	}
}

func TestFromFloat64(t *testing.T) {
	tests := []struct {
		f float64
		r Half
	}{
		{0, 0x0000},
		{0x1p-24, 0x0001},     // smallest positive subnormal number
		{0x1.ff8p-15, 0x03ff}, // largest positive subnormal number
		{0x1p-14, 0x0400},     // smallest positive normal number
		{0x1.554p-02, 0x3555}, // nearest value to 1/3
		{0x1.ffcp-01, 0x3bff}, // largest number less than one
		{0x1p+00, 0x3c00},     // one
		{0x1.004p+00, 0x3c01}, // smallest number larger than one
		{0x1.ffcp+15, 0x7bff}, // largest normal number
		{negZero, 0x8000},
		{-2, 0xc000},

		// rounds to nearest even
		{0x1.002p+00, 0x3c00},
		{math.Nextafter(0x1.002p+00, 2), 0x3c01},
		{math.Nextafter(0x1.006p+00, 0), 0x3c01},
		{0x1.006p+00, 0x3c02},
		{0x1.ffcp-15, 0x0400},

		// underflow
		{0x1p-25, 0x0000},
		{0x1p-126, 0x0000},
		{0x1.fffffcp-127, 0x0000},

		// overflow
		{0x1p+16, 0x7c00},
		{0x1p+17, 0x7c00},
		{-0x1p+16, 0xfc00},
		{-0x1p+17, 0xfc00},

		// infinities
		{math.Inf(1), 0x7c00},
		{math.Inf(-1), 0xfc00},

		// NaN
		{math.NaN(), 0x7e00},
	}
	for _, tt := range tests {
		r := FromFloat64(tt.f)
		if r != tt.r {
			t.Errorf("%x: expected %x, got %x", tt.f, tt.r, r)
		}
	}
}

func TestFromFloat64_All(t *testing.T) {
	for bits := 0; bits < 1<<16; bits++ {
		f16 := FromBits(uint16(bits))
		f64 := f16.Float64()
		got := FromFloat64(f64)
		if f16.IsNaN() && got.IsNaN() {
			continue
		}
		if got != f16 {
			t.Errorf("%x: expected %x, got %x", bits, f16, got)
		}
	}
}

func TestFloat32(t *testing.T) {
	tests := []struct {
		f Half
		r float32
	}{
		{0x0000, 0},
		{0x0001, 0x1p-24},     // smallest positive subnormal number
		{0x03ff, 0x1.ff8p-15}, // largest positive subnormal number
		{0x0400, 0x1p-14},     // smallest positive normal number
		{0x3555, 0x1.554p-02}, // nearest value to 1/3
		{0x3bff, 0x1.ffcp-01}, // largest number less than one
		{0x3c00, 0x1p+00},     // one
		{0x3c01, 0x1.004p+00}, // smallest number larger than one
		{0x7bff, 0x1.ffcp+15}, // largest normal number
		{0x8000, -0},
		{0xc000, -2},
	}

	for _, tt := range tests {
		r := tt.f.Float32()
		if r != tt.r {
			t.Errorf("expected %x, got %x", tt.r, r)
		}
	}
}

func TestFloat32_Specials(t *testing.T) {
	if r := Inf(1).Float32(); !math.IsInf(float64(r), 1) {
		t.Errorf("expected +Inf, got %x", r)
	}
	if r := Inf(-1).Float32(); !math.IsInf(float64(r), -1) {
		t.Errorf("expected -Inf, got %x", r)
	}
	if r := NaN().Float32(); !math.IsNaN(float64(r)) {
		t.Errorf("expected NaN, got %x", r)
	}
	if r := Half(0x0000).Float32(); r != 0 || !math.IsInf(float64(1/r), 1) {
		t.Errorf("expected +0, got %x", r)
	}
	if r := Half(0x8000).Float32(); r != 0 || !math.IsInf(float64(1/r), -1) {
		t.Errorf("expected -0, got %x", r)
	}
}

func TestFloat64(t *testing.T) {
	tests := []struct {
		f Half
		r float64
	}{
		{0x0000, 0},
		{0x0001, 0x1p-24},     // smallest positive subnormal number
		{0x03ff, 0x1.ff8p-15}, // largest positive subnormal number
		{0x0400, 0x1p-14},     // smallest positive normal number
		{0x3555, 0x1.554p-02}, // nearest value to 1/3
		{0x3bff, 0x1.ffcp-01}, // largest number less than one
		{0x3c00, 0x1p+00},     // one
		{0x3c01, 0x1.004p+00}, // smallest number larger than one
		{0x7bff, 0x1.ffcp+15}, // largest normal number
		{0x8000, -0},
		{0xc000, -2},
	}

	for _, tt := range tests {
		r := tt.f.Float64()
		if r != tt.r {
			t.Errorf("expected %x, got %x", tt.r, r)
		}
	}
}

func TestFloat64_Specials(t *testing.T) {
	if r := Inf(1).Float64(); !math.IsInf(r, 1) {
		t.Errorf("expected +Inf, got %x", r)
	}
	if r := Inf(-1).Float64(); !math.IsInf(r, -1) {
		t.Errorf("expected -Inf, got %x", r)
	}
	if r := NaN().Float64(); !math.IsNaN(r) {
		t.Errorf("expected NaN, got %x", r)
	}
	if r := Half(0x0000).Float64(); r != 0 || !math.IsInf(1/r, 1) {
		t.Errorf("expected +0, got %x", r)
	}
	if r := Half(0x8000).Float64(); r != 0 || !math.IsInf(1/r, -1) {
		t.Errorf("expected -0, got %x", r)
	}
}

func TestIsCanonical(t *testing.T) {
	if !Half(0x0001).IsCanonical() || !NaN().IsCanonical() {
		t.Errorf("every pattern is canonical in the default mode")
	}

	SetFlushSubnormals(true)
	defer SetFlushSubnormals(false)
	if Half(0x0001).IsCanonical() {
		t.Errorf("subnormal encodings are non-canonical when flushed")
	}
	if !Half(0x0000).IsCanonical() || !Half(0x0400).IsCanonical() {
		t.Errorf("zero and normal patterns stay canonical")
	}
}

func BenchmarkFromFloat32(b *testing.B) {
	r := newXorshift32()
	for i := 0; i < b.N; i++ {
		f := r.Float32()
		runtime.KeepAlive(FromFloat32(f))
	}
}

func BenchmarkFloat32(b *testing.B) {
	r := newXorshift32()
	for i := 0; i < b.N; i++ {
		f, _ := r.HalfPair()
		runtime.KeepAlive(f.Float32())
	}
}

func BenchmarkFromFloat64(b *testing.B) {
	r := newXorshift64()
	for i := 0; i < b.N; i++ {
		f := r.Float64()
		runtime.KeepAlive(FromFloat64(f))
	}
}

func BenchmarkFloat64(b *testing.B) {
	r := newXorshift32()
	for i := 0; i < b.N; i++ {
		f, _ := r.HalfPair()
		runtime.KeepAlive(f.Float64())
	}
}
