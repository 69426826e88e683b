package atlas

import "fmt"

// Vec2i represents a 2D integer vector, used for sizes, offsets and padding.
type Vec2i struct {
	X, Y int32
}

// V2 is a convenience function to create a Vec2i.
func V2(x, y int32) Vec2i {
	return Vec2i{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2i) Add(w Vec2i) Vec2i {
	return Vec2i{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2i) Sub(w Vec2i) Vec2i {
	return Vec2i{X: v.X - w.X, Y: v.Y - w.Y}
}

// Swapped returns the vector with X and Y exchanged.
func (v Vec2i) Swapped() Vec2i {
	return Vec2i{X: v.Y, Y: v.X}
}

// String returns a "(x, y)" representation.
func (v Vec2i) String() string {
	return fmt.Sprintf("(%d, %d)", v.X, v.Y)
}

// Vec3i represents a 3D integer vector. The Z component holds a layer
// index or layer count when describing array atlases.
type Vec3i struct {
	X, Y, Z int32
}

// V3 is a convenience function to create a Vec3i.
func V3(x, y, z int32) Vec3i {
	return Vec3i{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors.
func (v Vec3i) Add(w Vec3i) Vec3i {
	return Vec3i{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3i) Sub(w Vec3i) Vec3i {
	return Vec3i{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// XY returns the X and Y components as a Vec2i.
func (v Vec3i) XY() Vec2i {
	return Vec2i{X: v.X, Y: v.Y}
}

// String returns a "(x, y, z)" representation.
func (v Vec3i) String() string {
	return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z)
}

// Range2Di is a half-open axis-aligned 2D box: Min is included, Max is not.
// The zero value is an empty range at the origin.
type Range2Di struct {
	Min, Max Vec2i
}

// R2 creates a Range2Di from min and max corners.
func R2(min, max Vec2i) Range2Di {
	return Range2Di{Min: min, Max: max}
}

// Size returns the extent of the range on both axes.
func (r Range2Di) Size() Vec2i {
	return r.Max.Sub(r.Min)
}

// Empty reports whether the range spans no area.
func (r Range2Di) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether the point lies inside the range.
func (r Range2Di) Contains(p Vec2i) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// ContainsRange reports whether the other range lies fully inside this one.
// An empty range is contained anywhere.
func (r Range2Di) ContainsRange(o Range2Di) bool {
	if o.Empty() {
		return true
	}
	return o.Min.X >= r.Min.X && o.Max.X <= r.Max.X &&
		o.Min.Y >= r.Min.Y && o.Max.Y <= r.Max.Y
}

// Intersects reports whether the two ranges share any area.
func (r Range2Di) Intersects(o Range2Di) bool {
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X &&
		r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Union returns the smallest range containing both. Empty ranges are
// ignored so a zero Range2Di can serve as the accumulator seed.
func (r Range2Di) Union(o Range2Di) Range2Di {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Range2Di{
		Min: Vec2i{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: Vec2i{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}

// String returns a "[min - max)" representation.
func (r Range2Di) String() string {
	return fmt.Sprintf("[%v - %v)", r.Min, r.Max)
}

// Range3Di is a half-open axis-aligned 3D box. For array atlases the Z
// axis addresses layers.
type Range3Di struct {
	Min, Max Vec3i
}

// R3 creates a Range3Di from min and max corners.
func R3(min, max Vec3i) Range3Di {
	return Range3Di{Min: min, Max: max}
}

// Size returns the extent of the range on all axes.
func (r Range3Di) Size() Vec3i {
	return r.Max.Sub(r.Min)
}

// Empty reports whether the range spans no volume.
func (r Range3Di) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y || r.Max.Z <= r.Min.Z
}

// Contains reports whether the point lies inside the range.
func (r Range3Di) Contains(p Vec3i) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y &&
		p.Z >= r.Min.Z && p.Z < r.Max.Z
}

// XY returns the 2D part of the range, dropping the layer axis.
func (r Range3Di) XY() Range2Di {
	return Range2Di{Min: r.Min.XY(), Max: r.Max.XY()}
}

// Union returns the smallest range containing both. Empty ranges are
// ignored so a zero Range3Di can serve as the accumulator seed.
func (r Range3Di) Union(o Range3Di) Range3Di {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Range3Di{
		Min: Vec3i{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y), Z: min(r.Min.Z, o.Min.Z)},
		Max: Vec3i{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y), Z: max(r.Max.Z, o.Max.Z)},
	}
}

// String returns a "[min - max)" representation.
func (r Range3Di) String() string {
	return fmt.Sprintf("[%v - %v)", r.Min, r.Max)
}
