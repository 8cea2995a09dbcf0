package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"asciiforge/internal/model"
)

// ErrEmptyGrid is returned when there is nothing to render.
var ErrEmptyGrid = errors.New("grid is empty")

// Glyph cell geometry of basicfont.Face7x13.
const (
	CellWidth  = 7
	CellHeight = 13
	pngMargin  = CellWidth
	blockGlyph = '█'
)

// RenderPNG draws the grid in a fixed 7x13 bitmap font, fg on bg. Block
// glyphs, which the font lacks, are painted as solid cells.
func RenderPNG(grid model.Grid, fg, bg color.Color) (*image.RGBA, error) {
	if grid.Empty() {
		return nil, ErrEmptyGrid
	}

	cols := 0
	for _, row := range grid.Rows {
		cols = max(cols, len([]rune(row)))
	}
	w := cols*CellWidth + 2*pngMargin
	h := grid.Height()*CellHeight + 2*pngMargin

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	ink := image.NewUniform(fg)
	d := font.Drawer{Dst: img, Src: ink, Face: face}

	for y, row := range grid.Rows {
		top := pngMargin + y*CellHeight
		x := 0
		for _, r := range row {
			left := pngMargin + x*CellWidth
			x++
			if r == ' ' {
				continue
			}
			if r == blockGlyph {
				cell := image.Rect(left, top, left+CellWidth, top+CellHeight)
				draw.Draw(img, cell, ink, image.Point{}, draw.Src)
				continue
			}
			d.Dot = fixed.P(left, top+face.Ascent)
			d.DrawString(string(r))
		}
	}
	return img, nil
}

// WritePNG renders grid as black text on white and encodes it to path.
func WritePNG(path string, grid model.Grid) error {
	img, err := RenderPNG(grid, color.Black, color.White)
	if err != nil {
		return fmt.Errorf("render png: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png file: %w", err)
	}
	return nil
}
