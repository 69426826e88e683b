package atlas

import (
	"cmp"
	"fmt"
	"slices"
)

// maxBoundedHeight is the largest bounded atlas height. Heights above this
// don't fit a 16-bit range; use 0 for an unbounded atlas instead.
const maxBoundedHeight = 65535

// Landfill is an incremental rectangle packer producing a tightly filled
// atlas. Rectangles are placed the way garbage is compacted in a landfill:
// each one is dropped onto the lowest spot at a horizontal cursor that
// sweeps across the atlas, and the floor below the cursor keeps rising as
// rows pile on top of earlier ones.
//
// For every batch passed to Add or AddArray the rectangles are first
// rotated to a common orientation (see RotatePortrait and RotateLandscape)
// and sorted by height, tallest first, with ties ordered by the sort flags.
// Each rectangle is then placed at the running maximum of the per-column
// heights under the cursor, the cursor advances past it, and the columns
// it covers rise to its top edge. When a rectangle runs off the edge the
// cursor wraps and a new row starts; the fill direction reverses only when
// the finished row ended lower than it started, so rows snake across the
// atlas instead of always restarting at the same edge.
// ReverseDirectionAlways forces the flip after every row.
//
// With a bounded height, a rectangle that doesn't fit vertically at the
// cursor slides along the row looking for a pocket before wrapping; once a
// whole row has been scanned without success the layer is exhausted for
// that rectangle. A multi-layer atlas then retries on the next layer,
// always scanning from layer zero first so later, smaller rectangles
// backfill earlier layers. If no layer can take some rectangle, the whole
// call fails without modifying the atlas. An unbounded atlas never fails:
// the filled height simply grows.
//
// State persists between calls. Incremental batches keep stacking onto the
// same heightmap and never move previously placed rectangles, which makes
// Landfill suitable for glyph caches and other append-only workloads.
//
// A Landfill must not be copied by value after creation.
type Landfill struct {
	// addr is used for copy protection (Ebitengine pattern).
	addr *Landfill

	size    Vec3i // Y == 0 means the height is unbounded
	flags   Flags
	padding Vec2i
	layers  []layerState
}

// layerState is the per-layer heightmap plus the cursor sweep state.
type layerState struct {
	heights []int32
	cursor  int32
	dir     int32 // +1 fills left to right, -1 right to left
	rowTop  int32 // top of the first placement in the current row, -1 while empty
	lastTop int32 // top of the most recent placement in the current row
	top     int32 // highest filled column, feeds FilledSize
}

func newLayerState(width int32) layerState {
	return layerState{
		heights: make([]int32, width),
		dir:     1,
		rowTop:  -1,
	}
}

// NewLandfill creates a packer for an atlas of the given size.
//
// The width must be positive. A height of 0 means the atlas height is
// unbounded and grows as needed, which is only supported for a single
// layer; a bounded height must fit a 16-bit range (at most 65535).
// A layer count of 0 defaults to 1.
//
// The packer starts with DefaultFlags and no padding.
func NewLandfill(size Vec3i) *Landfill {
	if size.X <= 0 {
		panic(fmt.Sprintf("atlas: expected a positive width, got %d", size.X))
	}
	if size.Y < 0 || size.Y > maxBoundedHeight {
		panic(fmt.Sprintf("atlas: expected a height between 0 and %d, got %d", maxBoundedHeight, size.Y))
	}
	if size.Z < 0 {
		panic(fmt.Sprintf("atlas: expected a non-negative layer count, got %d", size.Z))
	}
	layers := size.Z
	if layers == 0 {
		layers = 1
	}
	if size.Y == 0 && layers != 1 {
		panic("atlas: unbounded height is only supported for a single-layer atlas")
	}

	l := &Landfill{
		size:  Vec3i{X: size.X, Y: size.Y, Z: layers},
		flags: DefaultFlags,
	}
	l.addr = l
	return l
}

// copyCheck panics if the Landfill was copied by value.
func (l *Landfill) copyCheck() {
	if l.addr != l {
		panic("atlas: Landfill must not be copied by value")
	}
}

// Size returns the atlas size the packer was created with. The layer
// count is normalized to at least 1; a Y of 0 means the height is
// unbounded.
func (l *Landfill) Size() Vec3i {
	return l.size
}

// FilledSize returns the bounding box of everything placed so far. It
// starts at (width, 0, 0) for a single-layer atlas and (width, 0, layers)
// for a multi-layer one, and never shrinks. The Y value is the highest
// filled column across all layers.
func (l *Landfill) FilledSize() Vec3i {
	var top int32
	for i := range l.layers {
		top = max(top, l.layers[i].top)
	}
	z := l.size.Z
	if l.size.Z == 1 {
		z = 0
		if top > 0 {
			z = 1
		}
	}
	return Vec3i{X: l.size.X, Y: top, Z: z}
}

// Flags returns the current flag set.
func (l *Landfill) Flags() Flags {
	return l.flags
}

// SetFlags replaces the flag set. Panics if mutually exclusive flags are
// combined. Takes effect for subsequent Add and AddArray calls.
func (l *Landfill) SetFlags(f Flags) {
	l.copyCheck()
	f.validate()
	l.flags = f
}

// AddFlags sets the given flags, keeping the rest. Panics if the resulting
// set combines mutually exclusive flags.
func (l *Landfill) AddFlags(f Flags) {
	l.SetFlags(l.flags | f)
}

// ClearFlags unsets the given flags, keeping the rest.
func (l *Landfill) ClearFlags(f Flags) {
	l.SetFlags(l.flags &^ f)
}

// Padding returns the current per-rectangle padding.
func (l *Landfill) Padding() Vec2i {
	return l.padding
}

// SetPadding reserves extra space around every subsequently placed
// rectangle: pad.X on the left and right, pad.Y on the top and bottom, in
// the rectangle's original orientation. Offsets returned by Add and
// AddArray keep pointing at the unpadded rectangle. Previously placed
// rectangles are not affected.
func (l *Landfill) SetPadding(pad Vec2i) {
	l.copyCheck()
	if pad.X < 0 || pad.Y < 0 {
		panic(fmt.Sprintf("atlas: expected non-negative padding, got %v", pad))
	}
	l.padding = pad
}

// Add places a batch of rectangles into a single-layer atlas, writing the
// position of each rectangle's unpadded origin to the corresponding
// element of offsets. Panics for a multi-layer atlas; use AddArray there.
//
// If RotatePortrait or RotateLandscape is set, rotations must have the
// same length as sizes and receives true for every rectangle that was
// placed rotated 90°; a rotated rectangle's offset addresses its
// rotated-footprint origin. If neither rotation flag is set, rotations
// must be nil.
//
// Every size, after padding and the best-case rotation, must fit the
// atlas; violating sizes panic. If the batch doesn't fit the remaining
// free space, Add returns a zero range and false, the packer state stays
// untouched and the contents of offsets and rotations are unspecified.
// On success it returns the bounding box of the area touched by this
// call, padding included.
func (l *Landfill) Add(sizes, offsets []Vec2i, rotations []bool) (Range2Di, bool) {
	l.copyCheck()
	if l.size.Z != 1 {
		panic("atlas: single-layer Add on a multi-layer atlas, use AddArray")
	}
	if len(offsets) != len(sizes) {
		panic(fmt.Sprintf("atlas: expected %d offsets, got %d", len(sizes), len(offsets)))
	}
	r, ok := l.add(sizes, rotations, func(i int, off Vec3i) {
		offsets[i] = off.XY()
	})
	if !ok {
		return Range2Di{}, false
	}
	return r.XY(), true
}

// AddArray places a batch of rectangles into the atlas, writing the
// position and layer of each rectangle's unpadded origin to the
// corresponding element of offsets. It works for single- and multi-layer
// atlases; single-layer placements have Z == 0.
//
// The rotations contract and the failure behavior match Add.
func (l *Landfill) AddArray(sizes []Vec2i, offsets []Vec3i, rotations []bool) (Range3Di, bool) {
	l.copyCheck()
	if len(offsets) != len(sizes) {
		panic(fmt.Sprintf("atlas: expected %d offsets, got %d", len(sizes), len(offsets)))
	}
	return l.add(sizes, rotations, func(i int, off Vec3i) {
		offsets[i] = off
	})
}

// pending is one rectangle of a batch, normalized for placement.
type pending struct {
	index   int   // position in the input batch
	foot    Vec2i // padded, possibly rotated footprint
	rotated bool
}

func (l *Landfill) add(sizes []Vec2i, rotations []bool, setOffset func(int, Vec3i)) (Range3Di, bool) {
	rotating := l.flags&(RotatePortrait|RotateLandscape) != 0
	if rotating && len(rotations) != len(sizes) {
		panic(fmt.Sprintf("atlas: rotation flags are set, expected %d rotations, got %d", len(sizes), len(rotations)))
	}
	if !rotating && rotations != nil {
		panic("atlas: no rotation flags are set, expected nil rotations")
	}

	items := make([]pending, len(sizes))
	for i, size := range sizes {
		if size.X < 0 || size.Y < 0 {
			panic(fmt.Sprintf("atlas: expected a non-negative size, got %v", size))
		}
		foot, rotated := l.orient(size)
		items[i] = pending{index: i, foot: foot, rotated: rotated}
	}

	// Tallest first; ties between equal heights follow the sort flags and
	// otherwise keep their input order.
	slices.SortStableFunc(items, func(a, b pending) int {
		if c := cmp.Compare(b.foot.Y, a.foot.Y); c != 0 {
			return c
		}
		switch {
		case l.flags.Has(WidestFirst):
			return cmp.Compare(b.foot.X, a.foot.X)
		case l.flags.Has(NarrowestFirst):
			return cmp.Compare(a.foot.X, b.foot.X)
		}
		return 0
	})

	// Place into a staged copy of the per-layer state so a failed batch
	// leaves the packer untouched.
	staged := make([]layerState, len(l.layers))
	for i := range l.layers {
		staged[i] = l.layers[i]
		staged[i].heights = slices.Clone(l.layers[i].heights)
	}

	limitY := int32(-1)
	if l.size.Y != 0 {
		limitY = l.size.Y
	}
	reverseAlways := l.flags.Has(ReverseDirectionAlways)

	var bounds Range3Di
	for _, it := range items {
		placed := false
		for li := int32(0); li < l.size.Z; li++ {
			for int32(len(staged)) <= li {
				staged = append(staged, newLayerState(l.size.X))
			}
			x, y, ok := staged[li].place(it.foot, limitY, reverseAlways)
			if !ok {
				continue
			}
			off := Vec3i{X: x + l.padding.X, Y: y + l.padding.Y, Z: li}
			if it.rotated {
				// The footprint is the padded rectangle rotated whole, so
				// the original X padding now insets vertically and the Y
				// padding horizontally.
				off = Vec3i{X: x + l.padding.Y, Y: y + l.padding.X, Z: li}
			}
			setOffset(it.index, off)
			if rotating {
				rotations[it.index] = it.rotated
			}
			bounds = bounds.Union(R3(
				Vec3i{X: x, Y: y, Z: li},
				Vec3i{X: x + it.foot.X, Y: y + it.foot.Y, Z: li + 1},
			))
			placed = true
			break
		}
		if !placed {
			Logger().Debug("landfill batch does not fit",
				"items", len(sizes), "size", l.size, "filled", l.FilledSize())
			return Range3Di{}, false
		}
	}

	l.layers = staged
	Logger().Debug("landfill batch placed",
		"items", len(sizes), "bounds", bounds, "filled", l.FilledSize())
	return bounds, true
}

// orient picks the orientation for one rectangle and returns its padded
// footprint. The preferred orientation follows the rotation flags; if the
// preferred footprint can't fit the atlas but the opposite one can, the
// opposite is used. Panics when neither orientation fits.
func (l *Landfill) orient(size Vec2i) (foot Vec2i, rotated bool) {
	rotate := false
	switch {
	case l.flags.Has(RotatePortrait):
		rotate = size.X > size.Y
	case l.flags.Has(RotateLandscape):
		rotate = size.Y > size.X
	}
	foot = l.footprint(size, rotate)
	if l.fits(foot) {
		return foot, rotate
	}
	if l.flags&(RotatePortrait|RotateLandscape) != 0 {
		if alt := l.footprint(size, !rotate); l.fits(alt) {
			return alt, !rotate
		}
	}
	panic(fmt.Sprintf("atlas: size %v with padding %v doesn't fit an atlas of %v", size, l.padding, l.size))
}

// footprint returns the space a rectangle reserves: the size padded on
// both axes, swapped when rotated.
func (l *Landfill) footprint(size Vec2i, rotated bool) Vec2i {
	padded := Vec2i{X: size.X + 2*l.padding.X, Y: size.Y + 2*l.padding.Y}
	if rotated {
		return padded.Swapped()
	}
	return padded
}

// fits reports whether a footprint can fit the atlas at all.
func (l *Landfill) fits(foot Vec2i) bool {
	return foot.X <= l.size.X && (l.size.Y == 0 || foot.Y <= l.size.Y)
}

// place reserves a footprint in the layer and returns its position.
// limitY < 0 means the height is unbounded. On failure the layer state is
// left unchanged.
func (s *layerState) place(foot Vec2i, limitY int32, reverseAlways bool) (x, y int32, ok bool) {
	width := int32(len(s.heights))
	cursor, dir, rowTop, lastTop := s.cursor, s.dir, s.rowTop, s.lastTop

	wraps := 0
	for {
		offEdge := cursor+foot.X > width
		if dir < 0 {
			offEdge = cursor-foot.X < 0
		}
		if offEdge {
			wraps++
			if wraps > 1 {
				// A whole row was already scanned from an edge, so no
				// horizontal position can take this footprint.
				return 0, 0, false
			}
			if reverseAlways || (rowTop >= 0 && lastTop < rowTop) {
				dir = -dir
			}
			cursor = 0
			if dir < 0 {
				cursor = width
			}
			rowTop = -1
			continue
		}

		x0 := cursor
		if dir < 0 {
			x0 = cursor - foot.X
		}
		var floor int32
		for i := x0; i < x0+foot.X; i++ {
			floor = max(floor, s.heights[i])
		}
		if limitY >= 0 && floor+foot.Y > limitY {
			// Too high here; slide one column onward and retry. Running
			// off the edge is handled by the wrap above.
			cursor += dir
			continue
		}

		top := floor + foot.Y
		if foot.Y > 0 {
			for i := x0; i < x0+foot.X; i++ {
				s.heights[i] = top
			}
		}
		if foot.X > 0 {
			s.top = max(s.top, top)
		}
		if rowTop < 0 {
			rowTop = top
		}
		s.cursor = x0 + foot.X
		if dir < 0 {
			s.cursor = x0
		}
		s.dir, s.rowTop, s.lastTop = dir, rowTop, top
		return x0, floor, true
	}
}
