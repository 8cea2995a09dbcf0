// Package ascii turns decoded bitmaps into glyph grids.
//
// A conversion runs three steps: ToGrayscale reduces the bitmap to luminance,
// Resize scales it to the requested column count (squashing rows by the glyph
// aspect), and Quantize maps every luminance value onto one of the RampSize
// glyphs of a Ramp. A Converter bundles the ramp and resampling choices, and
// is immutable after New, so it may be shared between goroutines.
package ascii

import (
	"context"
	"fmt"
	"image"
	"strings"

	"asciiforge/internal/model"
)

// Converter runs the resize, grayscale and quantize pipeline.
type Converter struct {
	ramp      Ramp
	resampler Resampler
	aspect    float64

	rampGlyphs string
}

// Option configures a Converter.
type Option func(*Converter)

// WithRamp sets the glyph ramp, darkest first. It is validated by New.
func WithRamp(glyphs string) Option {
	return func(c *Converter) {
		c.rampGlyphs = glyphs
	}
}

// WithResampler selects the scaling algorithm.
func WithResampler(r Resampler) Option {
	return func(c *Converter) {
		c.resampler = r
	}
}

// WithGlyphAspect sets the width/height ratio of one output glyph cell.
func WithGlyphAspect(aspect float64) Option {
	return func(c *Converter) {
		c.aspect = aspect
	}
}

// New builds a Converter from DefaultRamp, DefaultResampler and
// DefaultGlyphAspect, then applies opts. The ramp is checked here, once.
func New(opts ...Option) (*Converter, error) {
	c := &Converter{
		resampler:  DefaultResampler,
		aspect:     DefaultGlyphAspect,
		rampGlyphs: DefaultRamp,
	}
	for _, o := range opts {
		o(c)
	}

	ramp, err := NewRamp(c.rampGlyphs)
	if err != nil {
		return nil, err
	}
	c.ramp = ramp

	if _, err := ParseResampler(string(c.resampler)); err != nil {
		return nil, err
	}
	if c.aspect <= 0 {
		return nil, fmt.Errorf("glyph aspect must be positive, got %g", c.aspect)
	}
	return c, nil
}

// Ramp returns the converter's glyph ramp.
func (c *Converter) Ramp() Ramp {
	return c.ramp
}

// Resampler returns the converter's scaling algorithm.
func (c *Converter) Resampler() Resampler {
	return c.resampler
}

// Convert renders img as a grid targetWidth glyphs wide.
func (c *Converter) Convert(img image.Image, targetWidth int) (model.Grid, error) {
	return c.ConvertContext(context.Background(), img, targetWidth)
}

// ConvertContext is Convert with cancellation checked between rows.
func (c *Converter) ConvertContext(ctx context.Context, img image.Image, targetWidth int) (model.Grid, error) {
	// Reduce first so transparent pixels keep their stored color.
	resized, err := resizeWithAspect(ToGrayscale(img), targetWidth, c.aspect, c.resampler)
	if err != nil {
		return model.Grid{}, fmt.Errorf("resize: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return model.Grid{}, err
	}

	gray := ToGrayscale(resized)
	if gray.Rect.Dx() == 0 || gray.Rect.Dy() == 0 {
		return model.Grid{}, ErrEmptyBitmap
	}
	return quantizeRows(ctx, gray, c.ramp)
}

// Quantize maps every pixel of gray onto ramp, one row of glyphs per pixel row.
func Quantize(gray *image.Gray, ramp Ramp) model.Grid {
	g, _ := quantizeRows(context.Background(), gray, ramp)
	return g
}

func quantizeRows(ctx context.Context, gray *image.Gray, ramp Ramp) (model.Grid, error) {
	b := gray.Bounds()
	rows := make([]string, 0, b.Dy())

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return model.Grid{}, err
		}

		sb.Reset()
		sb.Grow(b.Dx())
		row := gray.Pix[gray.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			sb.WriteRune(ramp.Glyph(row[x]))
		}
		rows = append(rows, sb.String())
	}
	return model.Grid{Rows: rows}, nil
}
