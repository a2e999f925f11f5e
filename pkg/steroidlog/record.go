package steroidlog

import (
	"math"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// MaxArgs bounds the number of arguments a single record can carry.
// Arguments beyond the bound are dropped at pack time and counted in
// the metrics.
const MaxArgs = 8

// argKind tags which variant an Arg holds.
type argKind uint8

const (
	argNone argKind = iota
	argUint
	argInt
	argFloat
	argStr
)

// Arg is one packed argument slot. It holds exactly one of: an
// unsigned 64-bit integer, a signed 64-bit integer (bit-cast into the
// same word), a 64-bit float (bits in the same word), or a string
// view. Packing never allocates and never copies string bytes.
type Arg struct {
	str  string
	num  uint64
	kind argKind
}

// Uint packs any unsigned integer.
func Uint[T constraints.Unsigned](v T) Arg {
	return Arg{kind: argUint, num: uint64(v)}
}

// Int packs any signed integer. The value is bit-cast into the slot's
// word; the tag keeps it rendering with its sign.
func Int[T constraints.Signed](v T) Arg {
	return Arg{kind: argInt, num: uint64(int64(v))}
}

// Float packs a 32- or 64-bit float, widening to 64 bits.
func Float[T constraints.Float](v T) Arg {
	return Arg{kind: argFloat, num: math.Float64bits(float64(v))}
}

// Str packs a string by reference. No bytes are copied.
func Str(s string) Arg {
	return Arg{kind: argStr, str: s}
}

// Bytes packs a byte slice as a string view without copying. The
// caller must not mutate b until the record has been emitted; the
// usual sources are static tables and buffers that live past the next
// drain.
func Bytes(b []byte) Arg {
	if len(b) == 0 {
		return Arg{kind: argStr}
	}
	return Arg{kind: argStr, str: unsafe.String(unsafe.SliceData(b), len(b))}
}

// record is the fixed-layout value sent across the ring: the format
// identifier plus up to MaxArgs packed slots. Unused slots are left
// untouched.
type record struct {
	id   uint32
	n    uint8
	args [MaxArgs]Arg
}

// pack fills rec from args, truncating at MaxArgs. It reports whether
// anything was dropped.
func (rec *record) pack(id uint32, args []Arg) (truncated bool) {
	rec.id = id
	n := len(args)
	if n > MaxArgs {
		n = MaxArgs
		truncated = true
	}
	rec.n = uint8(n)
	copy(rec.args[:n], args[:n])
	return truncated
}
