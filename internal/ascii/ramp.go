package ascii

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a requested output width is not positive.
	ErrInvalidDimension = errors.New("target width must be positive")
	// ErrEmptyBitmap is returned when a bitmap has, or would be resized to, zero width or height.
	ErrEmptyBitmap = errors.New("bitmap is empty")
	// ErrRampSizeMismatch is returned when a glyph ramp does not hold exactly RampSize glyphs.
	ErrRampSizeMismatch = errors.New("glyph ramp size mismatch")
)

const (
	// LevelStep is the width of the luminance band mapped onto one glyph.
	LevelStep = 25
	// RampSize is the number of glyphs needed to cover luminance 0-255 in
	// LevelStep bands: ceil(256/25) = 11, so 255/25 = 10 is the last index.
	RampSize = (256 + LevelStep - 1) / LevelStep

	// DefaultRamp lists the glyphs from darkest to lightest.
	DefaultRamp = "@#S%?*+;:,."
)

// Ramp is an immutable darkest-to-lightest glyph lookup table.
type Ramp struct {
	glyphs [RampSize]rune
}

// NewRamp builds a Ramp from exactly RampSize glyphs.
func NewRamp(glyphs string) (Ramp, error) {
	runes := []rune(glyphs)
	if len(runes) != RampSize {
		return Ramp{}, fmt.Errorf("%w: got %d glyphs in %q, want %d", ErrRampSizeMismatch, len(runes), glyphs, RampSize)
	}

	var r Ramp
	copy(r.glyphs[:], runes)
	return r, nil
}

// MustRamp is like NewRamp but panics on error. Use it for constants only.
func MustRamp(glyphs string) Ramp {
	r, err := NewRamp(glyphs)
	if err != nil {
		panic(err)
	}
	return r
}

// Index returns the ramp index for a luminance value.
func Index(lum uint8) int {
	return int(lum) / LevelStep
}

// Glyph returns the glyph for a luminance value.
func (r Ramp) Glyph(lum uint8) rune {
	return r.glyphs[Index(lum)]
}

// At returns the glyph at ramp index i.
func (r Ramp) At(i int) rune {
	return r.glyphs[i]
}

// String returns the glyphs in ramp order.
func (r Ramp) String() string {
	return string(r.glyphs[:])
}
