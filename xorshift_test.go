package half

import "math"

// xorshift PRNGs for benchmarks and sweeps; deterministic on purpose.

type xorshift32 uint32

func newXorshift32() *xorshift32 {
	s := xorshift32(2463534242)
	return &s
}

func (s *xorshift32) Uint32() uint32 {
	x := uint32(*s)
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	*s = xorshift32(x)
	return x
}

func (s *xorshift32) Float32() float32 {
	return math.Float32frombits(s.Uint32())
}

func (s *xorshift32) HalfPair() (Half, Half) {
	x := s.Uint32()
	return Half(x >> 16), Half(x)
}

type xorshift64 uint64

func newXorshift64() *xorshift64 {
	s := xorshift64(88172645463325252)
	return &s
}

func (s *xorshift64) Uint64() uint64 {
	x := uint64(*s)
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*s = xorshift64(x)
	return x
}

func (s *xorshift64) Float64() float64 {
	return math.Float64frombits(s.Uint64())
}
