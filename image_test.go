package atlas

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/gputypes"
)

// --- Config Tests ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.Width != 1024 || cfg.Height != 1024 {
		t.Errorf("expected 1024x1024, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Flags != DefaultFlags {
		t.Errorf("expected DefaultFlags, got %v", cfg.Flags)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantField string // empty means valid
	}{
		{
			name:   "default is valid",
			config: DefaultConfig(),
		},
		{
			name:   "zero layers default to one",
			config: Config{Width: 64, Height: 64},
		},
		{
			name:      "zero width",
			config:    Config{Width: 0, Height: 64, Layers: 1},
			wantField: "Width",
		},
		{
			name:      "width too large",
			config:    Config{Width: 16384, Height: 64, Layers: 1},
			wantField: "Width",
		},
		{
			name:      "zero height",
			config:    Config{Width: 64, Height: 0, Layers: 1},
			wantField: "Height",
		},
		{
			name:      "height too large",
			config:    Config{Width: 64, Height: 16384, Layers: 1},
			wantField: "Height",
		},
		{
			name:      "negative layers",
			config:    Config{Width: 64, Height: 64, Layers: -1},
			wantField: "Layers",
		},
		{
			name:      "too many layers",
			config:    Config{Width: 64, Height: 64, Layers: 512},
			wantField: "Layers",
		},
		{
			name:      "negative padding",
			config:    Config{Width: 64, Height: 64, Layers: 1, Padding: V2(-1, 0)},
			wantField: "Padding",
		},
		{
			name:      "conflicting rotation flags",
			config:    Config{Width: 64, Height: 64, Layers: 1, Flags: RotatePortrait | RotateLandscape},
			wantField: "Flags",
		},
		{
			name:      "conflicting sort flags",
			config:    Config{Width: 64, Height: 64, Layers: 1, Flags: WidestFirst | NarrowestFirst},
			wantField: "Flags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var cerr *ConfigError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if cerr.Field != tt.wantField {
				t.Errorf("Validate() flagged field %q, want %q", cerr.Field, tt.wantField)
			}
		})
	}
}

func TestConfigError_Message(t *testing.T) {
	err := &ConfigError{Field: "Width", Reason: "must be at least 1"}
	want := "atlas: invalid config.Width: must be at least 1"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

// --- ImageAtlas Tests ---

func TestNewImageAtlas_InvalidConfig(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 0, Height: 64, Layers: 1})
	if err == nil {
		t.Fatal("expected an error for an invalid config")
	}
	if a != nil {
		t.Error("expected nil atlas on error")
	}
}

func TestImageAtlas_Insert(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 8, Height: 4, Layers: 1, Flags: WidestFirst})
	if err != nil {
		t.Fatalf("failed to create atlas: %v", err)
	}

	red := color.RGBA{R: 0xff, A: 0xff}
	green := color.RGBA{G: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	regions, err := a.Insert([]image.Image{
		solidImage(3, 2, red),
		solidImage(2, 2, green),
		solidImage(1, 1, blue),
	})
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	want := []Region{
		{Layer: 0, Offset: V2(0, 0), Size: V2(3, 2)},
		{Layer: 0, Offset: V2(3, 0), Size: V2(2, 2)},
		{Layer: 0, Offset: V2(5, 0), Size: V2(1, 1)},
	}
	for i, reg := range regions {
		if reg != want[i] {
			t.Errorf("region %d: expected %+v, got %+v", i, want[i], reg)
		}
	}

	img := a.Image(0)
	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, red}, {2, 1, red},
		{3, 0, green}, {4, 1, green},
		{5, 0, blue},
		{6, 0, color.RGBA{}}, // untouched
	}
	for _, c := range checks {
		if got := img.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d, %d): expected %v, got %v", c.x, c.y, got, c.want)
		}
	}

	if got := a.FilledSize(); got != V3(8, 2, 1) {
		t.Errorf("expected filled size (8, 2, 1), got %v", got)
	}
}

func TestImageAtlas_InsertRotated(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 8, Height: 8, Layers: 1, Flags: RotatePortrait})
	if err != nil {
		t.Fatalf("failed to create atlas: %v", err)
	}

	// A wide image with a distinct color per pixel.
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for v := 0; v < 2; v++ {
		for u := 0; u < 4; u++ {
			src.SetRGBA(u, v, color.RGBA{R: uint8(10 * u), G: uint8(10 * v), A: 0xff})
		}
	}

	regions, err := a.Insert([]image.Image{src})
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}

	reg := regions[0]
	if !reg.Rotated {
		t.Fatal("expected the image to be stored rotated")
	}
	if reg.Offset != V2(0, 0) || reg.Size != V2(4, 2) {
		t.Errorf("expected offset (0, 0) and size (4, 2), got %v and %v", reg.Offset, reg.Size)
	}

	// Stored rotated 90° clockwise: source (u, v) lands at
	// (offset.X + height-1-v, offset.Y + u).
	img := a.Image(0)
	for v := 0; v < 2; v++ {
		for u := 0; u < 4; u++ {
			want := src.RGBAAt(u, v)
			x := int(reg.Offset.X) + 1 - v
			y := int(reg.Offset.Y) + u
			if got := img.RGBAAt(x, y); got != want {
				t.Errorf("source (%d, %d): expected %v at (%d, %d), got %v", u, v, want, x, y, got)
			}
		}
	}
}

func TestImageAtlas_RegionTextureCoordinates(t *testing.T) {
	layerSize := V2(8, 4)

	plain := Region{Offset: V2(0, 0), Size: V2(3, 2)}
	if got, want := plain.TextureCoordinates(layerSize), TextureCoordinates(layerSize, V2(3, 2), V2(0, 0)); got != want {
		t.Errorf("unrotated: expected %+v, got %+v", want, got)
	}

	rotated := Region{Offset: V2(4, 0), Size: V2(3, 2), Rotated: true}
	want := TextureCoordinatesRotatedCounterClockwise(layerSize, V2(3, 2), V2(4, 0))
	if got := rotated.TextureCoordinates(layerSize); got != want {
		t.Errorf("rotated: expected %+v, got %+v", want, got)
	}
}

func TestImageAtlas_Full(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 4, Height: 4, Layers: 1})
	if err != nil {
		t.Fatalf("failed to create atlas: %v", err)
	}

	red := color.RGBA{R: 0xff, A: 0xff}
	two := []image.Image{solidImage(4, 4, red), solidImage(4, 4, red)}

	// The batch fails as a whole and leaves the atlas untouched.
	if _, err := a.Insert(two); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if got := a.FilledSize(); got != V3(4, 0, 0) {
		t.Errorf("expected filled size (4, 0, 0) after rejection, got %v", got)
	}

	// A smaller batch still fits afterwards.
	regions, err := a.Insert(two[:1])
	if err != nil {
		t.Fatalf("failed to insert after rejection: %v", err)
	}
	if regions[0].Offset != V2(0, 0) {
		t.Errorf("expected offset (0, 0), got %v", regions[0].Offset)
	}
}

func TestImageAtlas_Layers(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 4, Height: 4, Layers: 2})
	if err != nil {
		t.Fatalf("failed to create atlas: %v", err)
	}

	red := color.RGBA{R: 0xff, A: 0xff}
	green := color.RGBA{G: 0xff, A: 0xff}

	regions, err := a.Insert([]image.Image{solidImage(4, 4, red), solidImage(4, 4, green)})
	if err != nil {
		t.Fatalf("failed to insert: %v", err)
	}
	if regions[0].Layer != 0 || regions[1].Layer != 1 {
		t.Errorf("expected layers 0 and 1, got %d and %d", regions[0].Layer, regions[1].Layer)
	}

	if got := a.Image(0).RGBAAt(0, 0); got != red {
		t.Errorf("layer 0: expected %v, got %v", red, got)
	}
	if got := a.Image(1).RGBAAt(3, 3); got != green {
		t.Errorf("layer 1: expected %v, got %v", green, got)
	}
	if got := a.Size(); got != V3(4, 4, 2) {
		t.Errorf("expected size (4, 4, 2), got %v", got)
	}
	if got := a.FilledSize(); got != V3(4, 4, 2) {
		t.Errorf("expected filled size (4, 4, 2), got %v", got)
	}
}

func TestImageAtlas_LayerOutOfRange(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 4, Height: 4, Layers: 1})
	if err != nil {
		t.Fatalf("failed to create atlas: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for an out-of-range layer")
		}
	}()
	a.Image(1)
}

func TestImageAtlas_Format(t *testing.T) {
	a, err := NewImageAtlas(Config{Width: 4, Height: 4, Layers: 1})
	if err != nil {
		t.Fatalf("failed to create atlas: %v", err)
	}
	if got := a.Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("expected TextureFormatRGBA8Unorm, got %v", got)
	}
}

// solidImage creates a w x h image filled with a single color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}
