package atlas

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Config holds ImageAtlas configuration.
type Config struct {
	// Width and Height are the dimensions of every layer in pixels.
	Width, Height int32

	// Layers is the number of atlas layers.
	// Default: 1
	Layers int32

	// Padding reserves space around every inserted image to prevent
	// bleeding when the atlas is sampled with filtering.
	Padding Vec2i

	// Flags configure the packer. The zero value packs in input order
	// without rotation; DefaultConfig uses DefaultFlags.
	Flags Flags
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		Width:   1024,
		Height:  1024,
		Layers:  1,
		Padding: Vec2i{X: 1, Y: 1},
		Flags:   DefaultFlags,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Width < 1 {
		return &ConfigError{Field: "Width", Reason: "must be at least 1"}
	}
	if c.Width > 8192 {
		return &ConfigError{Field: "Width", Reason: "must be at most 8192"}
	}
	if c.Height < 1 {
		return &ConfigError{Field: "Height", Reason: "must be at least 1"}
	}
	if c.Height > 8192 {
		return &ConfigError{Field: "Height", Reason: "must be at most 8192"}
	}
	if c.Layers < 0 {
		return &ConfigError{Field: "Layers", Reason: "must be non-negative"}
	}
	if c.Layers > 256 {
		return &ConfigError{Field: "Layers", Reason: "must be at most 256"}
	}
	if c.Padding.X < 0 || c.Padding.Y < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Flags.Has(RotatePortrait | RotateLandscape) {
		return &ConfigError{Field: "Flags", Reason: "RotatePortrait and RotateLandscape are mutually exclusive"}
	}
	if c.Flags.Has(WidestFirst | NarrowestFirst) {
		return &ConfigError{Field: "Flags", Reason: "WidestFirst and NarrowestFirst are mutually exclusive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}

// Region describes where one inserted image ended up.
type Region struct {
	// Layer is the atlas layer holding the image.
	Layer int32

	// Offset is the position of the image within the layer, in its
	// stored orientation, padding not included.
	Offset Vec2i

	// Size is the original image size before any rotation.
	Size Vec2i

	// Rotated reports whether the image was stored rotated 90° clockwise
	// (in image coordinates, equivalent to counterclockwise in a y-up
	// texture space).
	Rotated bool
}

// TextureCoordinates returns the transformation from unit coordinates of
// the original image to unit coordinates within a layer of the given
// size, accounting for the stored rotation.
func (r Region) TextureCoordinates(layerSize Vec2i) Matrix {
	if r.Rotated {
		return TextureCoordinatesRotatedCounterClockwise(layerSize, r.Size, r.Offset)
	}
	return TextureCoordinates(layerSize, r.Size, r.Offset)
}

// ImageAtlas is a CPU-side texture atlas: a Landfill packer paired with
// RGBA pixel storage for every layer. Inserted images are blitted into
// the layer storage at their packed position, rotated when the packer
// decided to rotate them. The resulting images can be uploaded as the
// layers of a GPU texture array; Format reports the matching texture
// format. ImageAtlas itself performs no GPU calls.
//
// An ImageAtlas is not safe for concurrent use.
type ImageAtlas struct {
	packer *Landfill
	images []*image.RGBA
}

// NewImageAtlas creates an image-backed atlas for the given configuration.
func NewImageAtlas(cfg Config) (*ImageAtlas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	layers := cfg.Layers
	if layers == 0 {
		layers = 1
	}

	packer := NewLandfill(Vec3i{X: cfg.Width, Y: cfg.Height, Z: layers})
	packer.SetFlags(cfg.Flags)
	packer.SetPadding(cfg.Padding)

	images := make([]*image.RGBA, layers)
	for i := range images {
		images[i] = image.NewRGBA(image.Rect(0, 0, int(cfg.Width), int(cfg.Height)))
	}
	return &ImageAtlas{packer: packer, images: images}, nil
}

// Insert packs a batch of images into the atlas, blits their pixels into
// the layer storage and returns one region per image, in input order.
//
// If the batch doesn't fit the remaining space, Insert returns ErrFull
// and the atlas is left unchanged. Inserting in smaller batches can still
// succeed afterwards.
func (a *ImageAtlas) Insert(images []image.Image) ([]Region, error) {
	sizes := make([]Vec2i, len(images))
	for i, src := range images {
		b := src.Bounds()
		sizes[i] = Vec2i{X: int32(b.Dx()), Y: int32(b.Dy())}
	}
	offsets := make([]Vec3i, len(images))
	var rotations []bool
	if a.packer.Flags()&(RotatePortrait|RotateLandscape) != 0 {
		rotations = make([]bool, len(images))
	}

	if _, ok := a.packer.AddArray(sizes, offsets, rotations); !ok {
		return nil, ErrFull
	}

	regions := make([]Region, len(images))
	for i, src := range images {
		reg := Region{Layer: offsets[i].Z, Offset: offsets[i].XY(), Size: sizes[i]}
		if rotations != nil {
			reg.Rotated = rotations[i]
		}
		dst := a.images[reg.Layer]
		if reg.Rotated {
			blitRotated(dst, reg.Offset, src)
		} else {
			r := image.Rect(
				int(reg.Offset.X), int(reg.Offset.Y),
				int(reg.Offset.X+reg.Size.X), int(reg.Offset.Y+reg.Size.Y),
			)
			draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
		}
		regions[i] = reg
	}
	return regions, nil
}

// Image returns the pixel storage of one layer. The returned image is the
// live backing store, not a copy; treat it as read-only between Insert
// calls.
func (a *ImageAtlas) Image(layer int32) *image.RGBA {
	if layer < 0 || int(layer) >= len(a.images) {
		panic(fmt.Sprintf("atlas: layer %d out of range, have %d layers", layer, len(a.images)))
	}
	return a.images[layer]
}

// Format returns the texture format of the layer storage.
func (a *ImageAtlas) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Size returns the atlas dimensions: layer width, layer height and the
// layer count.
func (a *ImageAtlas) Size() Vec3i {
	return a.packer.Size()
}

// FilledSize returns the bounding box of everything inserted so far, as
// reported by the packer.
func (a *ImageAtlas) FilledSize() Vec3i {
	return a.packer.FilledSize()
}

// Flags returns the packer flags the atlas was configured with.
func (a *ImageAtlas) Flags() Flags {
	return a.packer.Flags()
}

// blitRotated draws src rotated 90° clockwise, so that the source pixel
// (u, v) lands at (off.X + h-1-v, off.Y + u), with h the source height.
func blitRotated(dst *image.RGBA, off Vec2i, src image.Image) {
	b := src.Bounds()
	m := f64.Aff3{
		0, -1, float64(int(off.X) + b.Dy() + b.Min.Y),
		1, 0, float64(int(off.Y) - b.Min.X),
	}
	xdraw.NearestNeighbor.Transform(dst, m, src, b, xdraw.Src, nil)
}
