package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color4 is a linear RGBA color with float64 components in [0,1].
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

func From8BitRgb(r, g, b, a byte) Color4 {
	return Color4{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: float64(a) / 255.0,
	}
}

func Red() Color4 {
	return Color4{R: 1, G: 0, B: 0, A: 1}
}

// WithAlpha returns c with alpha replaced by a.
func (c Color4) WithAlpha(a float64) Color4 {
	return Color4{R: c.R, G: c.G, B: c.B, A: a}
}

// ToNRGBA returns the color as 8-bit non-premultiplied RGBA.
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		to8bit(c.R),
		to8bit(c.G),
		to8bit(c.B),
		to8bit(c.A),
	}
}

// Hex formats the color as "#rrggbbaa", the CSS form viewers accept.
func (c Color4) Hex() string {
	n := c.ToNRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// Parse reads "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is optional.
func Parse(s string) (Color4, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color4{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color4{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return From8BitRgb(byte(v>>24), byte(v>>16), byte(v>>8), byte(v)), nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// to8bit rounds 255 * clamp01(x) to the nearest integer.
func to8bit(x float64) uint8 {
	return uint8(255.0*clamp01(x) + 0.5)
}
