package raster

import "asciiforge/internal/model"

// Character canvas defaults.
const (
	DefaultCharWidth  = 80
	DefaultCharHeight = 24
	Blank             = ' '
	Brush             = '█'
)

// CharCanvas is a grid of glyphs for drawing ASCII art by hand.
type CharCanvas struct {
	*Grid[rune]
}

// NewCharCanvas returns a blank width x height character canvas.
func NewCharCanvas(width, height int) (*CharCanvas, error) {
	g, err := NewGrid(width, height, rune(Blank))
	if err != nil {
		return nil, err
	}
	return &CharCanvas{Grid: g}, nil
}

// DrawText writes text left to right starting at (x, y). Glyphs that fall
// off the canvas are dropped.
func (c *CharCanvas) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		c.SetPixel(x+i, y, r)
		i++
	}
}

// Art returns the canvas contents as a model.Grid.
func (c *CharCanvas) Art() model.Grid {
	rows := make([]string, c.Height())
	for y := range rows {
		rows[y] = string(c.Row(y))
	}
	return model.Grid{Rows: rows}
}

// String returns the canvas rows joined by newlines.
func (c *CharCanvas) String() string {
	return c.Art().String()
}
