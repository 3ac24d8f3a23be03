package vmath

import "strings"

// BitVec holds the per-component result of a vector comparison.
// Up to eight flags are packed into a single byte.
type BitVec struct {
	bits uint8
	n    uint8
}

// NewBitVec packs the given flags, first flag at index 0.
func NewBitVec(flags ...bool) BitVec {
	if len(flags) == 0 || len(flags) > 8 {
		panic("vmath: BitVec holds between 1 and 8 flags")
	}
	b := BitVec{n: uint8(len(flags))}
	for i, f := range flags {
		b = b.Set(i, f)
	}
	return b
}

// Len returns the number of flags.
func (b BitVec) Len() int { return int(b.n) }

// Get returns flag i.
func (b BitVec) Get(i int) bool {
	if i < 0 || i >= int(b.n) {
		panic("vmath: BitVec index out of range")
	}
	return b.bits>>uint(i)&1 == 1
}

// Set returns a copy of b with flag i set to v.
func (b BitVec) Set(i int, v bool) BitVec {
	if i < 0 || i >= int(b.n) {
		panic("vmath: BitVec index out of range")
	}
	if v {
		b.bits |= 1 << uint(i)
	} else {
		b.bits &^= 1 << uint(i)
	}
	return b
}

func (b BitVec) mask() uint8 {
	return uint8(uint16(1)<<b.n - 1)
}

// All reports whether every flag is set.
func (b BitVec) All() bool { return b.bits&b.mask() == b.mask() }

// Any reports whether at least one flag is set.
func (b BitVec) Any() bool { return b.bits&b.mask() != 0 }

// None reports whether no flag is set.
func (b BitVec) None() bool { return !b.Any() }

// Not returns the bitwise negation.
func (b BitVec) Not() BitVec {
	b.bits = ^b.bits & b.mask()
	return b
}

// Bool collapses the vector to a single truth value, equal to All.
func (b BitVec) Bool() bool { return b.All() }

func (b BitVec) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i := 0; i < int(b.n); i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		if b.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
