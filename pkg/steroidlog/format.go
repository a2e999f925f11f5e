package steroidlog

import (
	"math"
	"strconv"
)

// The consumer-side renderer. The mini-language has a single
// placeholder, the two-character sequence "{}":
//
//	{}   consumes the next argument
//	{{   literal {
//	}}   literal }
//
// A lone { or } is copied verbatim. A {} with no argument left emits
// the literal characters {} (records cannot fail at format time), and
// surplus arguments are ignored.

// appendArg renders one slot.
func appendArg(dst []byte, a Arg) []byte {
	switch a.kind {
	case argUint:
		return strconv.AppendUint(dst, a.num, 10)
	case argInt:
		return strconv.AppendInt(dst, int64(a.num), 10)
	case argFloat:
		return strconv.AppendFloat(dst, math.Float64frombits(a.num), 'g', -1, 64)
	case argStr:
		return append(dst, a.str...)
	default:
		return dst
	}
}

// renderLine appends the rendered line for rec to dst: the format
// literal (level prefix included) with placeholders substituted,
// truncated to limit bytes, terminated with a single newline. It
// reports whether truncation happened.
func renderLine(dst []byte, literal string, rec *record, limit int) ([]byte, bool) {
	argi := 0
	for i := 0; i < len(literal); {
		c := literal[i]
		if c == '{' && i+1 < len(literal) {
			switch literal[i+1] {
			case '{':
				dst = append(dst, '{')
				i += 2
				continue
			case '}':
				if argi < int(rec.n) {
					dst = appendArg(dst, rec.args[argi])
					argi++
				} else {
					dst = append(dst, '{', '}')
				}
				i += 2
				continue
			}
		}
		if c == '}' && i+1 < len(literal) && literal[i+1] == '}' {
			dst = append(dst, '}')
			i += 2
			continue
		}
		dst = append(dst, c)
		i++
	}

	truncated := false
	if len(dst) > limit {
		dst = dst[:limit]
		truncated = true
	}
	return append(dst, '\n'), truncated
}

// renderUnknown appends the fallback line for a record whose id was
// never registered. This only happens on a build-system or collision
// bug; the consumer keeps going.
func renderUnknown(dst []byte, id uint32, limit int) []byte {
	dst = append(dst, "<unknown fmt id="...)
	dst = strconv.AppendUint(dst, uint64(id), 10)
	dst = append(dst, '>')
	if len(dst) > limit {
		dst = dst[:limit]
	}
	return append(dst, '\n')
}
