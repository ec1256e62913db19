package renderer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// parseHex parses a "#rrggbb" color string and applies an opacity in [0,1]
// as the alpha channel. An empty or malformed string yields a fully
// transparent color; that is not an error, the command simply paints
// invisibly.
func parseHex(hexColor string, opacity float64) color.NRGBA {
	hexColor = strings.TrimPrefix(hexColor, "#")
	if len(hexColor) != 6 {
		return color.NRGBA{}
	}

	r, errR := strconv.ParseUint(hexColor[0:2], 16, 8)
	g, errG := strconv.ParseUint(hexColor[2:4], 16, 8)
	b, errB := strconv.ParseUint(hexColor[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return color.NRGBA{}
	}

	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}

	return color.NRGBA{
		R: uint8(r),
		G: uint8(g),
		B: uint8(b),
		A: uint8(opacity*255 + 0.5),
	}
}

// LightenColor lightens a hex color by a percentage.
func LightenColor(hexColor string, percent int) string {
	r, g, b, ok := splitHex(hexColor)
	if !ok {
		return hexColor
	}

	factor := float64(percent) / 100.0
	r = clampChannel(int64(float64(r) + (255-float64(r))*factor))
	g = clampChannel(int64(float64(g) + (255-float64(g))*factor))
	b = clampChannel(int64(float64(b) + (255-float64(b))*factor))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// DarkenColor darkens a hex color by a percentage.
func DarkenColor(hexColor string, percent int) string {
	r, g, b, ok := splitHex(hexColor)
	if !ok {
		return hexColor
	}

	factor := 1.0 - float64(percent)/100.0
	r = clampChannel(int64(float64(r) * factor))
	g = clampChannel(int64(float64(g) * factor))
	b = clampChannel(int64(float64(b) * factor))

	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func splitHex(hexColor string) (r, g, b int64, ok bool) {
	s := strings.TrimPrefix(hexColor, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	var errR, errG, errB error
	r, errR = strconv.ParseInt(s[0:2], 16, 64)
	g, errG = strconv.ParseInt(s[2:4], 16, 64)
	b, errB = strconv.ParseInt(s[4:6], 16, 64)
	if errR != nil || errG != nil || errB != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func clampChannel(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
