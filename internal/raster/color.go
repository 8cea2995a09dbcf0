package raster

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.NRGBA{
	"black": Black,
	"white": White,
	"gray":  {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"red":   {R: 0xff, A: 0xff},
	"green": {G: 0xff, A: 0xff},
	"blue":  {B: 0xff, A: 0xff},
}

// ParseColor accepts a color name ("white", "black", ...) or a hex triplet
// such as "#ff8800" or "#f80".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// FormatColor renders c as a "#rrggbb" hex triplet.
func FormatColor(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
