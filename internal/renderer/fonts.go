package renderer

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/arandu/archdiagram/internal/scene"
)

// The Go fonts ship with golang.org/x/image, so text rendering needs no
// font files on disk and stays identical across machines.
var (
	fontsOnce   sync.Once
	fontsErr    error
	regularFont *sfnt.Font
	boldFont    *sfnt.Font
	monoFont    *sfnt.Font
)

func loadFonts() error {
	fontsOnce.Do(func() {
		regularFont, fontsErr = opentype.Parse(goregular.TTF)
		if fontsErr != nil {
			return
		}
		boldFont, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			return
		}
		monoFont, fontsErr = opentype.Parse(gomono.TTF)
	})
	return fontsErr
}

type faceKey struct {
	typeface scene.Typeface
	// size in 1/64 pixel so float sizes hash exactly
	size26_6 int
}

// faceCache hands out font.Face values per typeface and pixel size. Faces
// are cached because opentype.NewFace is not free and scenes reuse a small
// set of sizes.
type faceCache struct {
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) face(tf scene.Typeface, pixelSize float64) (font.Face, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("failed to load bundled fonts: %w", err)
	}

	key := faceKey{typeface: tf, size26_6: int(pixelSize * 64)}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	var src *sfnt.Font
	switch tf {
	case scene.FaceBold:
		src = boldFont
	case scene.FaceMono:
		src = monoFont
	default:
		src = regularFont
	}

	// DPI 72 makes Size a pixel size. Full hinting keeps glyph rasterization
	// bit-stable for the determinism guarantee.
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    pixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	c.faces[key] = f
	return f, nil
}
