package atlas

import "strings"

// Flags alter how a Landfill sorts and places rectangles.
// These flags can be combined with bitwise OR, subject to the mutual
// exclusions documented on each value.
type Flags uint32

const (
	// RotatePortrait allows rotating rectangles 90° so their final
	// orientation is portrait (height not smaller than width). Rectangles
	// that can only fit the atlas unrotated are kept unrotated.
	// Mutually exclusive with RotateLandscape.
	RotatePortrait Flags = 1 << iota

	// RotateLandscape allows rotating rectangles 90° so their final
	// orientation is landscape (width not smaller than height). Rectangles
	// that can only fit the atlas unrotated are kept unrotated.
	// Mutually exclusive with RotatePortrait.
	RotateLandscape

	// WidestFirst sorts rectangles of the same height so the widest are
	// placed first. Mutually exclusive with NarrowestFirst; if neither is
	// set, rectangles of the same height keep their input order.
	WidestFirst

	// NarrowestFirst sorts rectangles of the same height so the narrowest
	// are placed first. Mutually exclusive with WidestFirst; if neither is
	// set, rectangles of the same height keep their input order.
	NarrowestFirst

	// ReverseDirectionAlways flips the horizontal fill direction after
	// every row, instead of only when the row ended lower than it started.
	ReverseDirectionAlways
)

// DefaultFlags is the flag set a new Landfill starts with.
const DefaultFlags = RotatePortrait | WidestFirst

// Has reports whether all bits of q are set in f.
func (f Flags) Has(q Flags) bool {
	return f&q == q
}

var flagNames = []struct {
	bit  Flags
	name string
}{
	{RotatePortrait, "RotatePortrait"},
	{RotateLandscape, "RotateLandscape"},
	{WidestFirst, "WidestFirst"},
	{NarrowestFirst, "NarrowestFirst"},
	{ReverseDirectionAlways, "ReverseDirectionAlways"},
}

// String returns the set bits joined by "|", or "0" for an empty set.
func (f Flags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.bit != 0 {
			parts = append(parts, fn.name)
			f &^= fn.bit
		}
	}
	if f != 0 {
		parts = append(parts, "Flags(unknown)")
	}
	return strings.Join(parts, "|")
}

// validate panics if mutually exclusive flags are combined.
func (f Flags) validate() {
	if f.Has(RotatePortrait | RotateLandscape) {
		panic("atlas: RotatePortrait and RotateLandscape are mutually exclusive")
	}
	if f.Has(WidestFirst | NarrowestFirst) {
		panic("atlas: WidestFirst and NarrowestFirst are mutually exclusive")
	}
}
