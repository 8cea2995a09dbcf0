// Package raster draws lines and rectangles onto fixed-size cell grids.
//
// Grid is generic over the cell value so the same Bresenham walk serves the
// character canvas (runes) and the freehand drawing surface (colors). Writes
// outside the grid are silently dropped: a stroke may leave the canvas and
// come back without any error handling mid-stroke. No drawing call fails and
// there is no undo; every write mutates the grid immediately.
package raster

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a grid is created with a non-positive side.
var ErrInvalidSize = errors.New("grid size must be positive")

// Grid is a width x height block of cells initialised to a background value.
// It is not safe for concurrent use.
type Grid[T any] struct {
	width      int
	height     int
	background T
	cells      []T
}

// NewGrid returns a grid filled with background.
func NewGrid[T any](width, height int, background T) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	g := &Grid[T]{
		width:      width,
		height:     height,
		background: background,
		cells:      make([]T, width*height),
	}
	g.Clear()
	return g, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return g.height }

// Background returns the value written by Clear.
func (g *Grid[T]) Background() T { return g.background }

// In reports whether (x, y) lies on the grid.
func (g *Grid[T]) In(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y) and whether it lies on the grid.
func (g *Grid[T]) At(x, y int) (T, bool) {
	if !g.In(x, y) {
		var zero T
		return zero, false
	}
	return g.cells[y*g.width+x], true
}

// SetPixel writes v at (x, y). Off-grid coordinates are ignored.
func (g *Grid[T]) SetPixel(x, y int, v T) {
	if !g.In(x, y) {
		return
	}
	g.cells[y*g.width+x] = v
}

// DrawLine writes v on every cell of the Bresenham line between the two
// endpoints, both inclusive.
func (g *Grid[T]) DrawLine(x1, y1, x2, y2 int, v T) {
	Line(x1, y1, x2, y2, func(x, y int) {
		g.SetPixel(x, y, v)
	})
}

// DrawRectangle writes v on the rectangle spanned by two opposite corners,
// given in any order. A filled rectangle covers the whole inclusive box;
// otherwise only the four edges are drawn.
func (g *Grid[T]) DrawRectangle(x1, y1, x2, y2 int, v T, filled bool) {
	Rectangle(x1, y1, x2, y2, filled, func(x, y int) {
		g.SetPixel(x, y, v)
	})
}

// Clear resets every cell to the background value.
func (g *Grid[T]) Clear() {
	for i := range g.cells {
		g.cells[i] = g.background
	}
}

// Row returns a copy of row y, or nil when y is off the grid.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]T, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Line walks the Bresenham line from (x1, y1) to (x2, y2), calling plot once
// per cell, endpoints included. It uses integer arithmetic only and produces
// an 8-connected path of max(|dx|, |dy|)+1 cells.
func Line(x1, y1, x2, y2 int, plot func(x, y int)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}
	err := dx - dy

	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// Rectangle calls plot for the cells of the rectangle spanned by two corners.
// Outline edges share their corner cells.
func Rectangle(x1, y1, x2, y2 int, filled bool, plot func(x, y int)) {
	if !filled {
		Line(x1, y1, x2, y1, plot) // top
		Line(x1, y2, x2, y2, plot) // bottom
		Line(x1, y1, x1, y2, plot) // left
		Line(x2, y1, x2, y2, plot) // right
		return
	}

	minX, maxX := min(x1, x2), max(x1, x2)
	minY, maxY := min(y1, y2), max(y1, y2)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			plot(x, y)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
