package arandu

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Theme names the colors a diagram is painted with. All values are "#rrggbb"
// hex strings; the renderer treats a malformed value as transparent rather
// than failing, so a broken theme degrades visibly instead of erroring.
type Theme struct {
	Background  string `toml:"background"`
	Grid        string `toml:"grid"`
	Surface     string `toml:"surface"`      // darkest panel fill
	SurfaceAlt  string `toml:"surface_alt"`  // raised panel fill
	Primary     string `toml:"primary"`      // amber accents, processing
	PrimarySoft string `toml:"primary_soft"` // brighter amber
	Secondary   string `toml:"secondary"`    // cyan accents, transport
	Text        string `toml:"text"`
	TextSoft    string `toml:"text_soft"`
	Muted       string `toml:"muted"`
	Status      string `toml:"status"` // healthy-state indicator
	Alert       string `toml:"alert"`  // error or warning state
}

// DefaultTheme is the dark blue and amber palette the diagrams ship with.
func DefaultTheme() Theme {
	return Theme{
		Background:  "#0a1628",
		Grid:        "#1a3a52",
		Surface:     "#0d1f33",
		SurfaceAlt:  "#132639",
		Primary:     "#d4a84b",
		PrimarySoft: "#f0c674",
		Secondary:   "#2d6a8f",
		Text:        "#f8f9fa",
		TextSoft:    "#e8eaed",
		Muted:       "#6b7b8c",
		Status:      "#4caf50",
		Alert:       "#e07a5f",
	}
}

// LoadTheme reads a TOML theme file and overlays it on the default palette,
// so a file only needs to name the colors it changes.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	meta, err := toml.DecodeFile(path, &theme)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to load theme %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Theme{}, fmt.Errorf("theme %s has unknown keys: %v", path, undecoded)
	}
	return theme, nil
}
