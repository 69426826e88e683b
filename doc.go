// Package atlas packs rectangles into texture atlases.
//
// # Overview
//
// atlas is a Pure Go rectangle packing library for the GoGPU ecosystem.
// It provides an incremental skyline packer (Landfill), a deterministic
// packer for power-of-two square textures (ArrayPowerOfTwo), texture
// coordinate transformation helpers, and an image-backed atlas cache
// (ImageAtlas) for glyph-cache style workloads. The packers are pure
// in-memory algorithms: no GPU calls, no file I/O.
//
// # Quick Start
//
//	import "github.com/gogpu/atlas"
//
//	// Create a packer for a 1024x1024 atlas with a single layer.
//	packer := atlas.NewLandfill(atlas.V3(1024, 1024, 1))
//
//	sizes := []atlas.Vec2i{{X: 160, Y: 96}, {X: 64, Y: 48}}
//	offsets := make([]atlas.Vec2i, len(sizes))
//	rotations := make([]bool, len(sizes))
//
//	if _, ok := packer.Add(sizes, offsets, rotations); !ok {
//	    // Doesn't fit; try a bigger atlas or fewer items.
//	}
//
// Placement is incremental: later Add calls stack onto the space left by
// earlier ones. For texture arrays, create the packer with more layers
// and use AddArray.
//
// # Coordinate System
//
// Offsets address the top-left corner of a placed rectangle with Y
// increasing downwards, matching Go's image package. The texture
// coordinate helpers are orientation-agnostic: they map the unit square
// to the placed sub-rectangle in units of the atlas size, so they work
// with either Y convention as long as it is used consistently.
//
// # Determinism
//
// All packing is deterministic. Equal inputs produce byte-identical
// outputs, and rectangles of equal size keep their input order, so a
// cache keyed on packing results stays stable across runs.
package atlas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
