package atlas

import (
	"cmp"
	"fmt"
	"slices"
)

// ArrayPowerOfTwo packs power-of-two square textures into layers of a
// power-of-two square atlas and returns the number of layers used.
//
// Each element of sizes is the side length of one square; it must be a
// non-zero power of two not larger than layerSize, which itself must be a
// non-zero power of two. The offset and layer index of each square is
// written to the corresponding element of offsets, which must have the
// same length as sizes.
//
// Squares are placed tallest first (stable, equal sizes keep their input
// order) following a quad-tree subdivision of every layer: a square of a
// given size fills the four child slots of its parent square in Z-order
// before the next same-size square moves on, so a fully packed batch
// wastes no space between different sizes. A new layer is opened only
// when the current one has no free slot left.
//
// The packing is deterministic: the same multiset of sizes always
// produces the same set of offsets. An empty batch returns 0.
func ArrayPowerOfTwo(layerSize int32, sizes []int32, offsets []Vec3i) int32 {
	if layerSize <= 0 || layerSize&(layerSize-1) != 0 {
		panic(fmt.Sprintf("atlas: expected a power-of-two layer size, got %d", layerSize))
	}
	if len(offsets) != len(sizes) {
		panic(fmt.Sprintf("atlas: expected %d offsets, got %d", len(sizes), len(offsets)))
	}
	for _, s := range sizes {
		if s <= 0 || s&(s-1) != 0 || s > layerSize {
			panic(fmt.Sprintf("atlas: expected power-of-two sizes not larger than %d, got %d", layerSize, s))
		}
	}
	if len(sizes) == 0 {
		return 0
	}

	// Sort indices tallest first, equal sizes in input order.
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(sizes[b], sizes[a])
	})

	// counter walks the Z-order curve over cells of the current size;
	// shrinking the size quarters every remaining cell, so the counter
	// scales by 4 and the curve continues where the larger squares left
	// off.
	var (
		layer   int32
		counter uint64
		cur     = sizes[order[0]]
	)
	capacity := func(s int32) uint64 {
		n := uint64(layerSize / s)
		return n * n
	}
	for _, idx := range order {
		s := sizes[idx]
		if s < cur {
			shrink := uint64(cur / s)
			counter *= shrink * shrink
			cur = s
		}
		if counter == capacity(cur) {
			layer++
			counter = 0
		}
		cx, cy := mortonDecode(counter)
		offsets[idx] = Vec3i{X: int32(cx) * cur, Y: int32(cy) * cur, Z: layer}
		counter++
	}
	return layer + 1
}

// mortonDecode splits a Z-order curve index into cell coordinates, taking
// even bits for x and odd bits for y.
func mortonDecode(k uint64) (x, y int32) {
	for i := 0; k != 0; i++ {
		x |= int32(k&1) << i
		k >>= 1
		y |= int32(k&1) << i
		k >>= 1
	}
	return x, y
}
