package raster

import (
	"image"
	"image/color"
)

// Drawing surface defaults.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
	DefaultPenWidth     = 3
)

// PenWidths are the brush sizes offered by the drawing window.
var PenWidths = []int{1, 3, 5, 8, 12}

var (
	Black = color.NRGBA{A: 0xff}
	White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Pen is the brush used for strokes and shapes.
type Pen struct {
	Color color.NRGBA
	Width int // diameter in pixels; values below 1 draw single pixels
}

// DefaultPen is a white pen of DefaultPenWidth.
func DefaultPen() Pen {
	return Pen{Color: White, Width: DefaultPenWidth}
}

// Canvas is a color drawing surface with a pen. Mouse handlers feed it
// through StartStroke, ExtendStroke and EndStroke.
type Canvas struct {
	grid *Grid[color.NRGBA]
	pen  Pen

	stroking bool
	lastX    int
	lastY    int
}

// NewCanvas returns a width x height surface filled with background and
// holding DefaultPen.
func NewCanvas(width, height int, background color.NRGBA) (*Canvas, error) {
	g, err := NewGrid(width, height, background)
	if err != nil {
		return nil, err
	}
	return &Canvas{grid: g, pen: DefaultPen()}, nil
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int { return c.grid.Width() }

// Height returns the surface height in pixels.
func (c *Canvas) Height() int { return c.grid.Height() }

// Pen returns the current pen.
func (c *Canvas) Pen() Pen { return c.pen }

// SetPen replaces the current pen.
func (c *Canvas) SetPen(p Pen) { c.pen = p }

// SetPenWidth changes only the pen diameter.
func (c *Canvas) SetPenWidth(w int) { c.pen.Width = w }

// At returns the pixel at (x, y) and whether it lies on the surface.
func (c *Canvas) At(x, y int) (color.NRGBA, bool) {
	return c.grid.At(x, y)
}

// StartStroke begins a freehand stroke and dabs the pen at (x, y).
func (c *Canvas) StartStroke(x, y int) {
	c.stroking = true
	c.lastX, c.lastY = x, y
	c.stamp(x, y)
}

// ExtendStroke draws from the previous stroke point to (x, y). Without an
// active stroke it starts one.
func (c *Canvas) ExtendStroke(x, y int) {
	if !c.stroking {
		c.StartStroke(x, y)
		return
	}
	c.DrawLine(c.lastX, c.lastY, x, y)
	c.lastX, c.lastY = x, y
}

// EndStroke finishes the current stroke.
func (c *Canvas) EndStroke() {
	c.stroking = false
}

// Stroking reports whether a stroke is in progress.
func (c *Canvas) Stroking() bool {
	return c.stroking
}

// DrawLine draws a pen-width line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int) {
	Line(x1, y1, x2, y2, c.stamp)
}

// DrawRectangle draws a pen-width outline, or fills the box with the pen color.
func (c *Canvas) DrawRectangle(x1, y1, x2, y2 int, filled bool) {
	if filled {
		c.grid.DrawRectangle(x1, y1, x2, y2, c.pen.Color, true)
		return
	}
	Rectangle(x1, y1, x2, y2, false, c.stamp)
}

// Clear paints the whole surface with the background color and ends any stroke.
func (c *Canvas) Clear() {
	c.grid.Clear()
	c.stroking = false
}

// ToBitmap returns a snapshot of the surface. Later drawing does not affect it.
func (c *Canvas) ToBitmap() *image.NRGBA {
	w, h := c.grid.Width(), c.grid.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, _ := c.grid.At(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = px.R
			img.Pix[i+1] = px.G
			img.Pix[i+2] = px.B
			img.Pix[i+3] = px.A
		}
	}
	return img
}

// stamp paints a round dab of the pen diameter centred on (x, y).
// Offsets are compared in doubled coordinates so even widths stay symmetric.
func (c *Canvas) stamp(x, y int) {
	w := c.pen.Width
	if w <= 1 {
		c.grid.SetPixel(x, y, c.pen.Color)
		return
	}

	lo, hi := -(w-1)/2, w/2
	for dy := lo; dy <= hi; dy++ {
		ddy := 2*dy - (lo + hi)
		for dx := lo; dx <= hi; dx++ {
			ddx := 2*dx - (lo + hi)
			if ddx*ddx+ddy*ddy <= w*w {
				c.grid.SetPixel(x+dx, y+dy, c.pen.Color)
			}
		}
	}
}
