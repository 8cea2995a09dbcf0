package model

import "time"

// SourceCanvas is the Source value recorded for art drawn on the canvas.
const SourceCanvas = "canvas"

// ConversionResult holds the outcome of a single image-to-ASCII conversion.
type ConversionResult struct {
	ID           string // e.g. "20260218-163958-01"; empty = not set
	Timestamp    time.Time
	Source       string // image path, or SourceCanvas
	SourceWidth  int    // decoded bitmap width in pixels
	SourceHeight int
	Width        int // glyph columns after resize
	Height       int // glyph rows after resize
	Resampler    string
	Ramp         string
	Mode         string // "CLI" or "GUI"
	Elapsed      time.Duration
	Art          Grid
	SavedTo      string // text file the art was written to; empty = not saved
	Error        string
}

// Status returns a short status label for history tables.
func (r *ConversionResult) Status() string {
	if r.Error != "" {
		return "Error"
	}
	if r.SavedTo != "" {
		return "Saved"
	}
	return "OK"
}

// Glyphs returns the total number of glyphs in the converted art.
func (r *ConversionResult) Glyphs() int {
	return r.Art.Width() * r.Art.Height()
}
