// String to Half conversion.

package half

import (
	"strconv"

	"github.com/shogo82148/int128"
)

const fnParse = "half.Parse"

// lower(c) is a lower-case letter if and only if
// c is either that lower-case letter or the equivalent upper-case letter.
// Instead of writing c == 'x' || c == 'X' one can write lower(c) == 'x'.
// Note that lower of non-letters can produce other non-letters.
func lower(c byte) byte {
	return c | ('x' - 'X')
}

// commonPrefixLenIgnoreCase returns the length of the common
// prefix of s and prefix, with the character case of s ignored.
// The prefix argument must be all lower-case.
func commonPrefixLenIgnoreCase(s, prefix string) int {
	n := len(prefix)
	if n > len(s) {
		n = len(s)
	}
	for i := 0; i < n; i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return i
		}
	}
	return n
}

func special(s string) (f Half, n int, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}

	sign := 1
	nsign := 0
	switch s[0] {
	case '+', '-':
		if s[0] == '-' {
			sign = -1
		}
		nsign = 1
		s = s[1:]
		fallthrough
	case 'i', 'I':
		n := commonPrefixLenIgnoreCase(s, "infinity")
		// Anything longer than "inf" is ok, but if we
		// don't have "infinity", only consume "inf".
		if 3 < n && n < 8 {
			n = 3
		}
		if n == 3 || n == 8 {
			return Inf(sign), nsign + n, true
		}
	case 'n', 'N':
		n := commonPrefixLenIgnoreCase(s, "nan")
		if n == 3 {
			return NaN(), n, true
		}
	}
	return 0, 0, false
}

// decDigits is a parsed decimal mantissa: the digits d[:nd] with the
// decimal point after the first dp of them. 32 digits are enough: any
// digit past the 32nd sits below 10^-26 for every magnitude this type
// can hold, so it only ever contributes to the sticky bit.
type decDigits struct {
	d     [32]byte // ASCII digits, leading and trailing zeros stripped
	nd    int
	dp    int
	neg   bool
	trunc bool
}

func (b *decDigits) set(s string) (ok bool) {
	i := 0
	b.neg = false
	b.trunc = false

	// optional sign
	if i >= len(s) {
		return
	}
	switch {
	case s[i] == '+':
		i++
	case s[i] == '-':
		b.neg = true
		i++
	}

	// digits
	sawdot := false
	sawdigits := false
	for ; i < len(s); i++ {
		switch {
		case s[i] == '_':
			// readFloat already checked underscores
			continue
		case s[i] == '.':
			if sawdot {
				return
			}
			sawdot = true
			b.dp = b.nd
			continue

		case '0' <= s[i] && s[i] <= '9':
			sawdigits = true
			if s[i] == '0' && b.nd == 0 { // ignore leading zeros
				b.dp--
				continue
			}
			if b.nd < len(b.d) {
				b.d[b.nd] = s[i]
				b.nd++
			} else if s[i] != '0' {
				b.trunc = true
			}
			continue
		}
		break
	}
	if !sawdigits {
		return
	}
	if !sawdot {
		b.dp = b.nd
	}

	// optional exponent moves decimal point.
	// if we read a very large, very long number,
	// just be sure to move the decimal point by
	// a lot (say, 100000).  it doesn't matter if it's
	// not the exact number.
	if i < len(s) && lower(s[i]) == 'e' {
		i++
		if i >= len(s) {
			return
		}
		esign := 1
		if s[i] == '+' {
			i++
		} else if s[i] == '-' {
			i++
			esign = -1
		}
		if i >= len(s) || s[i] < '0' || s[i] > '9' {
			return
		}
		e := 0
		for ; i < len(s) && ('0' <= s[i] && s[i] <= '9' || s[i] == '_'); i++ {
			if s[i] == '_' {
				// readFloat already checked underscores
				continue
			}
			if e < 10000 {
				e = e*10 + int(s[i]) - '0'
			}
		}
		b.dp += e * esign
	}

	if i != len(s) {
		return
	}

	ok = true
	return
}

// floatBits converts the decimal to the nearest Half, ties to even.
//
// The digits are accumulated exactly in 128 bits at scale 10^-26 and
// divided by 2 * 5^26 to reach scale 2^-25. Every representable value
// and every rounding midpoint is a multiple of 2^-25, so one unit at
// that scale plus a sticky bit decides the rounding exactly.
func (d *decDigits) floatBits() (h Half, overflow bool) {
	// zero mantissa keeps its sign
	if d.nd == 0 {
		if d.neg {
			return signMask, false
		}
		return 0, false
	}

	// obvious overflow/underflow
	if d.dp > 5 {
		// |v| >= 10^5 > the greatest finite value
		h = uvinf
		if d.neg {
			h |= signMask
		}
		return h, true
	}
	if d.dp < -8 {
		// |v| < 10^-8, below half the least subnormal
		if d.neg {
			return signMask, false
		}
		return 0, false
	}

	ten := int128.Uint128{L: 10}
	sticky := d.trunc

	// n = floor(|v| * 10^26): digit i has weight 10^(dp+25-i), so
	// digits past index dp+25 fall below the scale and go to sticky
	var n int128.Uint128
	lim := d.dp + 25
	for i := 0; i < d.nd; i++ {
		if i > lim {
			sticky = sticky || d.d[i] != '0'
			continue
		}
		n = n.Mul(ten).Add(int128.Uint128{L: uint64(d.d[i] - '0')})
	}
	for i := d.nd; i <= lim; i++ {
		n = n.Mul(ten)
	}

	// 10^26 / 2^25 = 2 * 5^26
	div := int128.Uint128{L: 2980232238769531250}
	q, r := n.DivMod(div)
	sticky = sticky || r.H != 0 || r.L != 0

	return roundBits(q.L, -25, d.neg, sticky)
}

// readFloat reads a decimal or hexadecimal mantissa and exponent from a float
// string representation in s; the number may be followed by other characters.
// readFloat reports the number of bytes consumed (i), and whether the number
// is valid (ok).
func readFloat(s string) (mantissa uint64, exp int, neg, trunc, hex bool, i int, ok bool) {
	underscores := false

	// optional sign
	if i >= len(s) {
		return
	}
	switch {
	case s[i] == '+':
		i++
	case s[i] == '-':
		neg = true
		i++
	}

	// digits
	base := uint64(10)
	maxMantDigits := 19 // 10^19 fits in uint64
	expChar := byte('e')
	if i+2 < len(s) && s[i] == '0' && lower(s[i+1]) == 'x' {
		base = 16
		maxMantDigits = 16 // 16^16 fits in uint64
		i += 2
		expChar = 'p'
		hex = true
	}
	sawdot := false
	sawdigits := false
	nd := 0
	ndMant := 0
	dp := 0
loop:
	for ; i < len(s); i++ {
		switch c := s[i]; true {
		case c == '_':
			underscores = true
			continue

		case c == '.':
			if sawdot {
				break loop
			}
			sawdot = true
			dp = nd
			continue

		case '0' <= c && c <= '9':
			sawdigits = true
			if c == '0' && nd == 0 { // ignore leading zeros
				dp--
				continue
			}
			nd++
			if ndMant < maxMantDigits {
				mantissa *= base
				mantissa += uint64(c - '0')
				ndMant++
			} else if c != '0' {
				trunc = true
			}
			continue

		case base == 16 && 'a' <= lower(c) && lower(c) <= 'f':
			sawdigits = true
			nd++
			if ndMant < maxMantDigits {
				mantissa *= 16
				mantissa += uint64(lower(c) - 'a' + 10)
				ndMant++
			} else {
				trunc = true
			}
			continue
		}
		break
	}
	if !sawdigits {
		return
	}
	if !sawdot {
		dp = nd
	}

	if base == 16 {
		dp *= 4
		ndMant *= 4
	}

	// optional exponent moves decimal point.
	// if we read a very large, very long number,
	// just be sure to move the decimal point by
	// a lot (say, 100000).  it doesn't matter if it's
	// not the exact number.
	if i < len(s) && lower(s[i]) == expChar {
		i++
		if i >= len(s) {
			return
		}
		esign := 1
		if s[i] == '+' {
			i++
		} else if s[i] == '-' {
			i++
			esign = -1
		}
		if i >= len(s) || s[i] < '0' || s[i] > '9' {
			return
		}
		e := 0
		for ; i < len(s) && ('0' <= s[i] && s[i] <= '9' || s[i] == '_'); i++ {
			if s[i] == '_' {
				underscores = true
				continue
			}
			if e < 10000 {
				e = e*10 + int(s[i]) - '0'
			}
		}
		dp += e * esign
	} else if base == 16 {
		// Must have exponent.
		return
	}

	if mantissa != 0 {
		exp = dp - ndMant
	}

	if underscores && !underscoreOK(s[:i]) {
		return
	}

	ok = true
	return
}

// underscoreOK reports whether the underscores in s are allowed.
// Checking them in this one function lets all the parsers skip over them simply.
// Underscore must appear only between digits or between a base prefix and a digit.
func underscoreOK(s string) bool {
	// saw tracks the last character (class) we saw:
	// ^ for beginning of number,
	// 0 for a digit or base prefix,
	// _ for an underscore,
	// ! for none of the above.
	saw := '^'
	i := 0

	// Optional sign.
	if len(s) >= 1 && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}

	// Optional base prefix.
	hex := false
	if len(s) >= 2 && s[0] == '0' && (lower(s[1]) == 'b' || lower(s[1]) == 'o' || lower(s[1]) == 'x') {
		i = 2
		saw = '0' // base prefix counts as a digit for "underscore as digit separator"
		hex = lower(s[1]) == 'x'
	}

	// Number proper.
	for ; i < len(s); i++ {
		// Digits are always okay.
		if '0' <= s[i] && s[i] <= '9' || hex && 'a' <= lower(s[i]) && lower(s[i]) <= 'f' {
			saw = '0'
			continue
		}
		// Underscore must follow digit.
		if s[i] == '_' {
			if saw != '0' {
				return false
			}
			saw = '_'
			continue
		}
		// Underscore must also be followed by digit.
		if saw == '_' {
			return false
		}
		// Saw non-digit, non-underscore.
		saw = '!'
	}
	return saw != '_'
}

func atof16(s string) (f Half, n int, err error) {
	if val, n, ok := special(s); ok {
		return val, n, nil
	}

	mantissa, exp, neg, trunc, hex, n, ok := readFloat(s)
	if !ok {
		return 0, n, &strconv.NumError{Func: fnParse, Num: s, Err: strconv.ErrSyntax}
	}

	if hex {
		f, ovf := roundBits(mantissa, exp, neg, trunc)
		if ovf {
			return f, n, &strconv.NumError{Func: fnParse, Num: s, Err: strconv.ErrRange}
		}
		return f, n, nil
	}

	var d decDigits
	if !d.set(s[:n]) {
		return 0, n, &strconv.NumError{Func: fnParse, Num: s, Err: strconv.ErrSyntax}
	}
	f, ovf := d.floatBits()
	if ovf {
		err = &strconv.NumError{Func: fnParse, Num: s, Err: strconv.ErrRange}
	}
	return f, n, err
}

// Parse converts the string s to a Half, rounding to nearest with
// ties to even. It accepts the formats produced by Text, decimal and
// hexadecimal literals with optional digit-separating underscores,
// and the special tokens "nan", "inf", "-inf", and "infinity" in any
// case. Values outside the finite range saturate to infinity and
// return [strconv.ErrRange].
func Parse(s string) (Half, error) {
	f, n, err := atof16(s)
	if n != len(s) && (err == nil || err.(*strconv.NumError).Err != strconv.ErrSyntax) {
		return 0, &strconv.NumError{Func: fnParse, Num: s, Err: strconv.ErrSyntax}
	}
	return f, err
}
