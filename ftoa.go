// Half to string conversion.

package half

import (
	"math/bits"
	"strconv"

	"github.com/shogo82148/int128"
)

// String formats x through its float32 widening with the default
// decimal formatter. Every Half is exactly representable in float32,
// so the widening introduces no extra rounding. NaN formats as "nan"
// regardless of payload or signaling bit; the infinities format as
// "inf" and "-inf".
func (x Half) String() string {
	switch {
	case x.IsNaN():
		return "nan"
	case x == uvinf:
		return "inf"
	case x == uvneginf:
		return "-inf"
	}
	return strconv.FormatFloat(float64(x.Float32()), 'g', -1, 32)
}

// Text returns the string form of x in the given format with the
// given precision. The formats are those of [strconv.FormatFloat];
// for negative precisions the decimal formats produce the shortest
// string that parses back to x exactly, computed without going
// through a wider float.
func (x Half) Text(fmt byte, prec int) string {
	return string(x.Append(make([]byte, 0, 8), fmt, prec))
}

// Append appends the string form of x, as generated by Text, to buf
// and returns the extended buffer.
func (x Half) Append(buf []byte, fmt byte, prec int) []byte {
	switch {
	case x.IsNaN():
		return append(buf, "nan"...)
	case x == uvinf:
		return append(buf, "inf"...)
	case x == uvneginf:
		return append(buf, "-inf"...)
	}

	switch fmt {
	case 'b':
		return x.appendBin(buf)
	case 'x', 'X':
		return x.appendHex(buf, fmt, prec)
	case 'f':
		return x.appendDec(buf, fmt, prec)
	case 'e', 'E':
		return x.appendSci(buf, fmt, prec)
	case 'g', 'G':
		if prec >= 0 {
			// bitSize is ignored when the precision is given
			return strconv.AppendFloat(buf, x.Float64(), fmt, prec, 64)
		}

		if x&signMask != 0 {
			buf = append(buf, '-')
		}
		x = x &^ signMask
		if x == 0 {
			return append(buf, '0')
		}
		if x <= 0x068d { // 9.996e-05
			return x.appendSci(buf, fmt+'e'-'g', prec-1)
		}
		return x.appendDec(buf, fmt, prec)
	}

	return x.appendDec(buf, fmt, prec)
}

func (x Half) appendBin(buf []byte) []byte {
	if x&signMask != 0 {
		buf = append(buf, '-')
	}
	exp := int(x>>expShift&expMask) - expBias
	frac := x & fracMask

	if exp == -expBias {
		exp++
	} else {
		frac |= 1 << expShift
	}
	exp -= expShift

	switch {
	case frac >= 1000:
		buf = append(buf, byte((frac/1000)%10)+'0')
		fallthrough
	case frac >= 100:
		buf = append(buf, byte((frac/100)%10)+'0')
		fallthrough
	case frac >= 10:
		buf = append(buf, byte((frac/10)%10)+'0')
		fallthrough
	default:
		buf = append(buf, byte(frac%10)+'0')
	}

	buf = append(buf, 'p')
	if exp >= 0 {
		buf = append(buf, '+')
	} else {
		buf = append(buf, '-')
		exp = -exp
	}

	switch {
	case exp >= 10:
		buf = append(buf, byte(exp/10)+'0')
		fallthrough
	default:
		buf = append(buf, byte(exp%10)+'0')
	}
	return buf
}

func (x Half) appendDec(buf []byte, fmt byte, prec int) []byte {
	ten := int128.Uint128{L: 10}

	if x&signMask != 0 {
		buf = append(buf, '-')
		x &^= signMask
	}

	if prec >= 0 {
		const five24 = 59604644775390625 // = 5^24

		// the exact decimal expansion of |x| has at most 24 fractional
		// digits: x * 10^24 = fix24(x) * 5^24
		var dec24 int128.Uint128
		fix := x.fix24()
		dec24.H, dec24.L = bits.Mul64(uint64(fix), five24)
		if prec < 24 {
			n := int128.Uint128{L: 1}
			for i := 0; i < 24-prec; i++ {
				n = n.Mul(ten)
			}
			n2 := n.Rsh(1)
			div, mod := dec24.DivMod(n)
			dec24 = dec24.Sub(mod)
			if mod.Cmp(n2) > 0 {
				// round up
				dec24 = dec24.Add(n)
			} else if mod.Cmp(n2) == 0 {
				// round to even
				if div.L&1 != 0 {
					dec24 = dec24.Add(n)
				}
			}
		}

		// convert to decimal
		var data [24]byte
		for i := 0; i < 24; i++ {
			var mod int128.Uint128
			dec24, mod = dec24.DivMod(ten)
			data[i] = byte(mod.L)
		}

		// convert the integer part
		switch {
		case dec24.L >= 10000:
			buf = append(buf, byte((dec24.L/10000)%10)+'0')
			fallthrough
		case dec24.L >= 1000:
			buf = append(buf, byte((dec24.L/1000)%10)+'0')
			fallthrough
		case dec24.L >= 100:
			buf = append(buf, byte((dec24.L/100)%10)+'0')
			fallthrough
		case dec24.L >= 10:
			buf = append(buf, byte((dec24.L/10)%10)+'0')
			fallthrough
		default:
			buf = append(buf, byte(dec24.L%10)+'0')
		}
		if prec == 0 {
			return buf
		}

		// convert the fractional part
		buf = append(buf, '.')
		var i int
		for i = 0; i < prec && i < len(data); i++ {
			buf = append(buf, data[23-i]+'0')
		}
		for ; i < prec; i++ {
			buf = append(buf, '0')
		}

		return buf
	}

	if x == 0 {
		return append(buf, '0')
	}

	// shortest form: search for the decimal with the fewest digits
	// that still lies between the midpoints to the adjacent values
	exact, lower, upper := x.decBounds()

	var n int = 25
	var dec25 int128.Uint128
	for ; n > 0; n-- {
		dec25 = roundUint128(exact, n)
		if dec25.Cmp(lower) > 0 && dec25.Cmp(upper) < 0 {
			break
		}
	}

	// convert to decimal
	var data [25]byte
	for i := 0; i < 25; i++ {
		var mod int128.Uint128
		dec25, mod = dec25.DivMod(ten)
		data[i] = byte(mod.L)
	}

	// convert the integer part
	switch {
	case dec25.L >= 10000:
		buf = append(buf, byte((dec25.L/10000)%10)+'0')
		fallthrough
	case dec25.L >= 1000:
		buf = append(buf, byte((dec25.L/1000)%10)+'0')
		fallthrough
	case dec25.L >= 100:
		buf = append(buf, byte((dec25.L/100)%10)+'0')
		fallthrough
	case dec25.L >= 10:
		buf = append(buf, byte((dec25.L/10)%10)+'0')
		fallthrough
	default:
		buf = append(buf, byte(dec25.L%10)+'0')
	}
	if n >= 25 {
		return buf
	}

	// convert the fractional part
	buf = append(buf, '.')
	for i := 24; i >= n; i-- {
		buf = append(buf, data[i]+'0')
	}
	return buf
}

// decBounds returns |x| and the midpoints to its two neighbors, all
// scaled by 10^25. The midpoints are exact: |x| is a multiple of
// 2^-24, the midpoints of 2^-25, and 10^25 * 2^-25 = 5^25.
func (x Half) decBounds() (exact, lower, upper int128.Uint128) {
	exp := int(x >> expShift & expMask)
	frac := uint64(x & fracMask)
	if exp == 0 {
		// subnormal number
		exact.L = frac * 2
		lower.L = exact.L - 1
		upper.L = exact.L + 1
	} else {
		// normal number
		exact.L = (frac | 1<<expShift) << exp
		if frac == 0 && exp > 1 {
			// the gap below a power of two is half as wide
			lower.L = exact.L - 1<<(exp-2)
		} else {
			lower.L = exact.L - 1<<(exp-1)
		}
		upper.L = exact.L + 1<<(exp-1)
	}

	const five25 = 298023223876953125 // = 5^25
	exact.H, exact.L = bits.Mul64(exact.L, five25)
	lower.H, lower.L = bits.Mul64(lower.L, five25)
	upper.H, upper.L = bits.Mul64(upper.L, five25)
	return
}

func (x Half) appendSci(buf []byte, fmt byte, prec int) []byte {
	ten := int128.Uint128{L: 10}

	if x&signMask != 0 {
		buf = append(buf, '-')
		x &^= signMask
	}

	if x == 0 {
		buf = append(buf, '0')
		if prec > 0 {
			buf = append(buf, '.')
			for i := 0; i < prec; i++ {
				buf = append(buf, '0')
			}
		}
		return append(buf, fmt, '+', '0', '0')
	}

	if prec >= 0 {
		const five24 = 59604644775390625 // = 5^24

		var dec24 int128.Uint128
		fix := x.fix24()
		dec24.H, dec24.L = bits.Mul64(uint64(fix), five24)

		// count the digits of the exact expansion
		tmp := dec24
		var n int
		for ; tmp.H != 0 || tmp.L != 0; n++ {
			tmp = tmp.Div(ten)
		}
		n--

		// keep prec+1 significant digits, rounding to nearest even
		if n > prec {
			m := int128.Uint128{L: 1}
			for i := 0; i < n-prec; i++ {
				m = m.Mul(ten)
			}
			m2 := m.Rsh(1)
			div, mod := dec24.DivMod(m)
			dec24 = dec24.Sub(mod)
			if mod.Cmp(m2) > 0 {
				dec24 = dec24.Add(m)
			} else if mod.Cmp(m2) == 0 && div.L&1 != 0 {
				dec24 = dec24.Add(m)
			}
		}

		// convert to decimal
		var data [30]byte
		for i := 0; i < 30; i++ {
			var mod int128.Uint128
			dec24, mod = dec24.DivMod(ten)
			data[i] = byte(mod.L)
		}

		// the rounding may carry into a new leading digit
		i := len(data) - 1
		for ; i > 0; i-- {
			if data[i] != 0 {
				break
			}
		}
		if i > n {
			n = i
		}

		buf = append(buf, data[i]+'0')
		i--
		if prec != 0 {
			buf = append(buf, '.')
			var j int
			for ; i >= 0 && j < prec; i, j = i-1, j+1 {
				buf = append(buf, data[i]+'0')
			}
			for ; j < prec; j++ {
				buf = append(buf, '0')
			}
		}

		buf = append(buf, fmt)
		n -= 24
		if n >= 0 {
			buf = append(buf, '+')
		} else {
			buf = append(buf, '-')
			n = -n
		}
		return append(buf, byte((n/10)%10)+'0', byte(n%10)+'0')
	}

	// shortest form
	exact, lower, upper := x.decBounds()

	var n int = 30
	var dec25 int128.Uint128
	for ; n > 0; n-- {
		dec25 = roundUint128(exact, n)
		if dec25.Cmp(lower) > 0 && dec25.Cmp(upper) < 0 {
			break
		}
	}

	// convert to decimal
	var data [30]byte
	for i := 0; i < 30; i++ {
		var mod int128.Uint128
		dec25, mod = dec25.DivMod(ten)
		data[i] = byte(mod.L)
	}

	// find the leading digit
	i := len(data) - 1
	for ; i > 0; i-- {
		if data[i] != 0 {
			break
		}
	}
	m := i

	buf = append(buf, data[i]+'0')
	i--
	if i >= n {
		buf = append(buf, '.')
		for ; i >= n; i-- {
			buf = append(buf, data[i]+'0')
		}
	}

	buf = append(buf, fmt)
	m -= 25
	if m >= 0 {
		buf = append(buf, '+')
	} else {
		buf = append(buf, '-')
		m = -m
	}
	return append(buf, byte((m/10)%10)+'0', byte(m%10)+'0')
}

// roundUint128 rounds x to a multiple of 10^n, ties to even.
func roundUint128(x int128.Uint128, n int) int128.Uint128 {
	ten := int128.Uint128{L: 10}
	y := int128.Uint128{L: 1}
	for i := 0; i < n; i++ {
		y = y.Mul(ten)
	}
	y2 := y.Rsh(1)

	div, mod := x.DivMod(y)
	x = x.Sub(mod)
	cmp := mod.Cmp(y2)
	if cmp > 0 {
		// round up
		return x.Add(y)
	}
	if cmp < 0 {
		// round down
		return x
	}

	// round to even
	if div.L&1 != 0 {
		return x.Add(y)
	}
	return x
}

func (x Half) appendHex(buf []byte, fmt byte, prec int) []byte {
	sign, exp, frac := x.split()
	if sign != 0 {
		buf = append(buf, '-')
	}
	buf = append(buf, '0', fmt) // "0x" or "0X"
	p := fmt - ('x' - 'p')      // 'p' or 'P'

	if x&^signMask == 0 {
		buf = append(buf, '0')
		if prec >= 1 {
			buf = append(buf, '.')
			for i := 0; i < prec; i++ {
				buf = append(buf, '0')
			}
		}
		return append(buf, p, '+', '0', '0')
	}

	switch prec {
	case -1:
		switch {
		case frac&0x3ff == 0:
			buf = append(buf, '1')
		case frac&0x3f == 0:
			buf = append(buf, '1', '.')
			buf = append(buf, nibble(fmt, frac>>6))
		case frac&0x3 == 0:
			buf = append(buf, '1', '.')
			buf = append(buf, nibble(fmt, frac>>6))
			buf = append(buf, nibble(fmt, frac>>2))
		default:
			buf = append(buf, '1', '.')
			buf = append(buf, nibble(fmt, frac>>6))
			buf = append(buf, nibble(fmt, frac>>2))
			buf = append(buf, nibble(fmt, frac<<2))
		}

	case 0:
		// round to nearest even
		frac += 1 << (expShift - 1)
		if frac >= 1<<(expShift+1) {
			exp++
			frac >>= 1
		}
		buf = append(buf, '1')

	case 1:
		// round to nearest even
		frac += 0x1f + frac>>6&1
		if frac >= 1<<(expShift+1) {
			exp++
			frac >>= 1
		}
		buf = append(buf, '1', '.')
		buf = append(buf, nibble(fmt, frac>>6))

	case 2:
		// round to nearest even
		frac += 1 + frac>>2&1
		if frac >= 1<<(expShift+1) {
			exp++
			frac >>= 1
		}
		buf = append(buf, '1', '.')
		buf = append(buf, nibble(fmt, frac>>6))
		buf = append(buf, nibble(fmt, frac>>2))

	default:
		buf = append(buf, '1', '.')
		buf = append(buf, nibble(fmt, frac>>6))
		buf = append(buf, nibble(fmt, frac>>2))
		buf = append(buf, nibble(fmt, frac<<2))
		for i := 3; i < prec; i++ {
			buf = append(buf, '0')
		}
	}

	buf = append(buf, p)
	if exp >= 0 {
		buf = append(buf, '+')
	} else {
		buf = append(buf, '-')
		exp = -exp
	}
	return append(buf, byte(exp/10)+'0', byte(exp%10)+'0')
}

func nibble(fmt byte, x uint16) byte {
	x &= 0xf
	if x < 10 {
		return '0' + byte(x)
	}
	return 'A' + byte(x-10) | fmt&('a'-'A')
}
