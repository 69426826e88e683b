package atlas

import "fmt"

// TextureCoordinates returns the transformation from unit coordinates of
// an unrotated item of the given size to unit coordinates within an atlas
// of atlasSize, with the item placed at offset. Use it to turn packer
// offsets into texture coordinate matrices for quads that sample the
// atlas.
//
// Panics if the item, placed at the offset, doesn't fit the atlas.
func TextureCoordinates(atlasSize, size, offset Vec2i) Matrix {
	checkPlacement(atlasSize, size, offset)
	w, h := float64(atlasSize.X), float64(atlasSize.Y)
	return Matrix{
		A: float64(size.X) / w, B: 0, C: float64(offset.X) / w,
		D: 0, E: float64(size.Y) / h, F: float64(offset.Y) / h,
	}
}

// TextureCoordinatesRotatedCounterClockwise returns the transformation
// from unit coordinates of an item of the given size to unit coordinates
// within an atlas of atlasSize, for an item that was placed rotated 90°
// counterclockwise at offset. The size is the item's original, unrotated
// size; the space reserved in the atlas is the swapped footprint. The
// item's lower left corner ends up at the footprint's lower right.
//
// Panics if the rotated footprint, placed at the offset, doesn't fit the
// atlas.
func TextureCoordinatesRotatedCounterClockwise(atlasSize, size, offset Vec2i) Matrix {
	checkPlacement(atlasSize, size.Swapped(), offset)
	w, h := float64(atlasSize.X), float64(atlasSize.Y)
	return Matrix{
		A: 0, B: -float64(size.Y) / w, C: float64(offset.X+size.Y) / w,
		D: float64(size.X) / h, E: 0, F: float64(offset.Y) / h,
	}
}

// TextureCoordinatesRotatedClockwise returns the transformation from unit
// coordinates of an item of the given size to unit coordinates within an
// atlas of atlasSize, for an item that was placed rotated 90° clockwise
// at offset. The size is the item's original, unrotated size; the space
// reserved in the atlas is the swapped footprint. The item's lower left
// corner ends up at the footprint's upper left.
//
// Panics if the rotated footprint, placed at the offset, doesn't fit the
// atlas.
func TextureCoordinatesRotatedClockwise(atlasSize, size, offset Vec2i) Matrix {
	checkPlacement(atlasSize, size.Swapped(), offset)
	w, h := float64(atlasSize.X), float64(atlasSize.Y)
	return Matrix{
		A: 0, B: float64(size.Y) / w, C: float64(offset.X) / w,
		D: -float64(size.X) / h, E: 0, F: float64(offset.Y+size.X) / h,
	}
}

// checkPlacement panics unless a footprint placed at offset lies fully
// within the atlas.
func checkPlacement(atlasSize, foot, offset Vec2i) {
	if atlasSize.X <= 0 || atlasSize.Y <= 0 {
		panic(fmt.Sprintf("atlas: expected a positive atlas size, got %v", atlasSize))
	}
	if foot.X < 0 || foot.Y < 0 || offset.X < 0 || offset.Y < 0 ||
		offset.X+foot.X > atlasSize.X || offset.Y+foot.Y > atlasSize.Y {
		panic(fmt.Sprintf("atlas: footprint %v at %v doesn't fit an atlas of %v", foot, offset, atlasSize))
	}
}
