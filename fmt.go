package half

import "fmt"

var _ fmt.Formatter = Half(0)

// Format implements [fmt.Formatter]. The verbs and flags are those of
// the float verbs of package fmt; %v formats like %g.
func (x Half) Format(s fmt.State, verb rune) {
	switch verb {
	case 'b', 'f', 'e', 'E', 'g', 'G', 'x', 'X', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(half.Half=%s)", verb, x.String())
		return
	}

	if x.IsNaN() {
		s.Write([]byte("nan"))
		return
	}

	var prefix []byte
	var data []byte

	// sign
	if x&signMask != 0 {
		prefix = append(prefix, '-')
		x &^= signMask
	} else {
		if s.Flag('+') {
			prefix = append(prefix, '+')
		} else if s.Flag(' ') {
			prefix = append(prefix, ' ')
		}
	}

	switch verb {
	case 'b':
		data = x.appendBin(data)
	case 'f', 'e', 'E', 'g', 'G', 'x', 'X':
		if prec, ok := s.Precision(); ok {
			data = x.Append(data, byte(verb), prec)
		} else {
			data = x.Append(data, byte(verb), -1)
		}
	case 'v':
		data = x.Append(data, 'g', -1)
	}

	if w, ok := s.Width(); ok {
		var buf [1]byte
		if s.Flag('-') {
			s.Write(prefix)
			s.Write(data)
			buf[0] = ' '
			for i := len(prefix) + len(data); i < w; i++ {
				s.Write(buf[:1])
			}
		} else {
			buf[0] = ' '
			for i := len(prefix) + len(data); i < w; i++ {
				s.Write(buf[:1])
			}
			s.Write(prefix)
			s.Write(data)
		}
		return
	}

	if len(prefix) > 0 {
		s.Write(prefix)
	}
	s.Write(data)
}
