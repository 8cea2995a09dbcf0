package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"asciiforge/internal/export"
	"asciiforge/internal/model"
	"asciiforge/internal/raster"
)

// TextCanvasView composes art by hand on a character canvas: text, lines
// and boxes drawn with the block glyph.
type TextCanvasView struct {
	chars *raster.CharCanvas

	x1Entry, y1Entry *widget.Entry
	x2Entry, y2Entry *widget.Entry
	textEntry        *widget.Entry
	filledCheck      *widget.Check
	art              *artEntry
	status           *widget.Label

	outputDir func() string
	record    func(model.ConversionResult)

	container *fyne.Container
}

// NewTextCanvasView creates an 80x24 character canvas. Saved art goes to the
// directory outputDir returns and is passed to record.
func NewTextCanvasView(outputDir func() string, record func(model.ConversionResult)) *TextCanvasView {
	chars, _ := raster.NewCharCanvas(raster.DefaultCharWidth, raster.DefaultCharHeight)
	tv := &TextCanvasView{chars: chars, outputDir: outputDir, record: record}

	coord := func(v string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(v)
		return e
	}
	tv.x1Entry, tv.y1Entry = coord("0"), coord("0")
	tv.x2Entry, tv.y2Entry = coord("10"), coord("5")

	tv.textEntry = widget.NewEntry()
	tv.textEntry.SetPlaceHolder("text to place at x1,y1")
	tv.filledCheck = widget.NewCheck("Filled", nil)

	tv.art = newArtEntry()
	tv.status = widget.NewLabel(fmt.Sprintf("%dx%d characters", chars.Width(), chars.Height()))

	points := container.NewGridWithColumns(8,
		widget.NewLabel("x1"), tv.x1Entry, widget.NewLabel("y1"), tv.y1Entry,
		widget.NewLabel("x2"), tv.x2Entry, widget.NewLabel("y2"), tv.y2Entry,
	)
	buttons := container.NewHBox(
		widget.NewButton("Text", tv.onText),
		widget.NewButton("Line", tv.onLine),
		widget.NewButton("Box", tv.onBox),
		tv.filledCheck,
		widget.NewSeparator(),
		widget.NewButton("Clear", tv.Clear),
		widget.NewButton("Save", tv.onSave),
	)

	tv.container = container.NewBorder(
		container.NewVBox(points, tv.textEntry, buttons),
		tv.status, nil, nil,
		container.NewScroll(tv.art),
	)
	tv.refresh()
	return tv
}

// Container returns the view's container.
func (tv *TextCanvasView) Container() *fyne.Container {
	return tv.container
}

// Art returns the current canvas contents.
func (tv *TextCanvasView) Art() model.Grid {
	return tv.chars.Art()
}

// Clear blanks the canvas.
func (tv *TextCanvasView) Clear() {
	tv.chars.Clear()
	tv.refresh()
}

func (tv *TextCanvasView) refresh() {
	tv.art.SetText(tv.chars.String())
}

func (tv *TextCanvasView) points() (x1, y1, x2, y2 int) {
	return parseIntOrDefault(tv.x1Entry.Text, 0), parseIntOrDefault(tv.y1Entry.Text, 0),
		parseIntOrDefault(tv.x2Entry.Text, 0), parseIntOrDefault(tv.y2Entry.Text, 0)
}

func (tv *TextCanvasView) onText() {
	x1, y1, _, _ := tv.points()
	tv.chars.DrawText(x1, y1, tv.textEntry.Text)
	tv.refresh()
}

func (tv *TextCanvasView) onLine() {
	x1, y1, x2, y2 := tv.points()
	tv.chars.DrawLine(x1, y1, x2, y2, raster.Brush)
	tv.refresh()
}

func (tv *TextCanvasView) onBox() {
	x1, y1, x2, y2 := tv.points()
	tv.chars.DrawRectangle(x1, y1, x2, y2, raster.Brush, tv.filledCheck.Checked)
	tv.refresh()
}

func (tv *TextCanvasView) onSave() {
	res := tv.save(time.Now())
	if res.Error != "" {
		tv.status.SetText("Error: " + res.Error)
	} else {
		tv.status.SetText("Saved to " + res.SavedTo)
	}
	if tv.record != nil {
		tv.record(res)
	}
}

// save writes the canvas to canvas_ascii_<id>.txt in the output directory.
func (tv *TextCanvasView) save(now time.Time) model.ConversionResult {
	grid := tv.chars.Art()
	res := model.ConversionResult{
		ID:        export.NextConversionID(now),
		Timestamp: now,
		Source:    model.SourceCanvas,
		Width:     grid.Width(),
		Height:    grid.Height(),
		Mode:      "GUI",
		Art:       grid,
	}

	path := export.ArtPath(tv.outputDir(), model.SourceCanvas, res.ID)
	if err := export.EnsureDir(path); err != nil {
		res.Error = fmt.Sprintf("create output dir: %v", err)
		return res
	}
	if err := export.WriteTXT(path, grid); err != nil {
		res.Error = err.Error()
		return res
	}
	res.SavedTo = path
	return res
}
