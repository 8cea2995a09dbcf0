package ui

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"asciiforge/internal/config"
	"asciiforge/internal/export"
	"asciiforge/internal/model"
	"asciiforge/internal/raster"
)

// drawPad shows a raster.Canvas and turns mouse presses and drags into pen
// strokes on it.
type drawPad struct {
	widget.BaseWidget

	surface *raster.Canvas
	img     *canvas.Image
}

var (
	_ desktop.Mouseable = (*drawPad)(nil)
	_ fyne.Draggable    = (*drawPad)(nil)
)

func newDrawPad(surface *raster.Canvas) *drawPad {
	p := &drawPad{surface: surface}
	p.img = canvas.NewImageFromImage(surface.ToBitmap())
	p.img.FillMode = canvas.ImageFillStretch
	p.img.ScaleMode = canvas.ImageScalePixels
	p.img.SetMinSize(fyne.NewSize(float32(surface.Width()), float32(surface.Height())))
	p.ExtendBaseWidget(p)
	return p
}

func (p *drawPad) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.img)
}

// pixel maps a position inside the widget to surface coordinates.
func (p *drawPad) pixel(pos fyne.Position) (int, int) {
	size := p.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return int(math.Floor(float64(pos.X))), int(math.Floor(float64(pos.Y)))
	}
	x := float64(pos.X) * float64(p.surface.Width()) / float64(size.Width)
	y := float64(pos.Y) * float64(p.surface.Height()) / float64(size.Height)
	return int(math.Floor(x)), int(math.Floor(y))
}

// redraw pushes a fresh snapshot of the surface to the screen.
func (p *drawPad) redraw() {
	p.img.Image = p.surface.ToBitmap()
	p.img.Refresh()
}

func (p *drawPad) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p.surface.StartStroke(p.pixel(ev.Position))
	p.redraw()
}

func (p *drawPad) MouseUp(*desktop.MouseEvent) {
	p.surface.EndStroke()
}

func (p *drawPad) Dragged(ev *fyne.DragEvent) {
	p.surface.ExtendStroke(p.pixel(ev.Position))
	p.redraw()
}

func (p *drawPad) DragEnd() {
	p.surface.EndStroke()
}

// DrawingWindow is a freehand drawing surface whose picture can be previewed
// and saved as ASCII art.
type DrawingWindow struct {
	win     fyne.Window
	surface *raster.Canvas
	pad     *drawPad

	penRadio   *widget.RadioGroup
	clearBtn   *widget.Button
	previewBtn *widget.Button
	saveBtn    *StyledButton
	status     *widget.Label

	settings func() config.Config
	record   func(model.ConversionResult)
}

// NewDrawingWindow opens a window with a surface sized and colored from
// cfg.Canvas. settings supplies the conversion settings at the time of each
// preview or save; record receives every saved conversion.
func NewDrawingWindow(app fyne.App, cfg config.Config, settings func() config.Config, record func(model.ConversionResult)) (*DrawingWindow, error) {
	bg, err := raster.ParseColor(cfg.Canvas.Background)
	if err != nil {
		return nil, fmt.Errorf("canvas background: %w", err)
	}
	pen, err := cfg.Pen()
	if err != nil {
		return nil, fmt.Errorf("canvas pen: %w", err)
	}
	surface, err := raster.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height, bg)
	if err != nil {
		return nil, err
	}
	surface.SetPen(pen)

	dw := &DrawingWindow{
		win:      app.NewWindow("AsciiForge - Draw"),
		surface:  surface,
		settings: settings,
		record:   record,
	}
	dw.pad = newDrawPad(surface)

	sizes := make([]string, len(raster.PenWidths))
	for i, w := range raster.PenWidths {
		sizes[i] = strconv.Itoa(w)
	}
	dw.penRadio = widget.NewRadioGroup(sizes, dw.onPenSize)
	dw.penRadio.Horizontal = true
	dw.penRadio.Required = true
	dw.penRadio.SetSelected(strconv.Itoa(pen.Width))

	dw.clearBtn = widget.NewButton("Clear", dw.Clear)
	dw.previewBtn = widget.NewButton("Preview ASCII", dw.onPreview)
	dw.saveBtn = NewStyledButton("Convert & Save", dw.onSave, convertButtonColor)
	dw.status = widget.NewLabel(fmt.Sprintf("%dx%d, pen %s", surface.Width(), surface.Height(), raster.FormatColor(pen.Color)))

	toolbar := container.NewHBox(
		widget.NewLabel("Pen"),
		swatch(pen.Color),
		dw.penRadio,
		widget.NewSeparator(),
		dw.clearBtn,
		dw.previewBtn,
		dw.saveBtn,
	)

	dw.win.SetContent(container.NewBorder(toolbar, dw.status, nil, nil, container.NewScroll(dw.pad)))
	dw.win.Resize(NewDrawingWindowSize(surface.Width(), surface.Height()))
	return dw, nil
}

// Show displays the window.
func (dw *DrawingWindow) Show() {
	dw.win.Show()
}

// Window returns the underlying fyne window.
func (dw *DrawingWindow) Window() fyne.Window {
	return dw.win
}

// Clear wipes the drawing.
func (dw *DrawingWindow) Clear() {
	dw.surface.Clear()
	dw.pad.redraw()
	dw.status.SetText("Cleared")
}

func (dw *DrawingWindow) onPenSize(s string) {
	w, err := strconv.Atoi(s)
	if err != nil {
		return
	}
	dw.surface.SetPenWidth(w)
}

// Preview converts the drawing without saving it.
func (dw *DrawingWindow) Preview() (model.Grid, error) {
	cfg := dw.settings()
	conv, err := cfg.NewConverter()
	if err != nil {
		return model.Grid{}, err
	}
	return conv.Convert(dw.surface.ToBitmap(), cfg.Width)
}

func (dw *DrawingWindow) onPreview() {
	grid, err := dw.Preview()
	if err != nil {
		dialog.ShowError(err, dw.win)
		return
	}
	art := newArtEntry()
	art.SetText(grid.String())
	scroll := container.NewScroll(art)
	scroll.SetMinSize(fyne.NewSize(640, 420))
	dialog.ShowCustom("ASCII Preview", "Close", scroll, dw.win)
}

func (dw *DrawingWindow) onSave() {
	res := convertDrawing(context.Background(), dw.settings(), dw.surface)
	if res.Error != "" {
		dw.status.SetText("Error: " + res.Error)
	} else {
		dw.status.SetText(fmt.Sprintf("Saved %dx%d art to %s", res.Width, res.Height, res.SavedTo))
	}
	if dw.record != nil {
		dw.record(res)
	}
}

// convertDrawing converts a snapshot of surface with cfg and saves the art as
// canvas_ascii_<id>.txt in cfg.OutputDir.
func convertDrawing(ctx context.Context, cfg config.Config, surface *raster.Canvas) model.ConversionResult {
	start := time.Now()
	id := export.NextConversionID(start)
	res := model.ConversionResult{
		ID:           id,
		Timestamp:    start,
		Source:       model.SourceCanvas,
		SourceWidth:  surface.Width(),
		SourceHeight: surface.Height(),
		Resampler:    cfg.Resampler,
		Ramp:         cfg.Ramp,
		Mode:         "GUI",
	}

	path := export.ArtPath(cfg.OutputDir, model.SourceCanvas, id)
	grid, err := convertAndSave(ctx, cfg, surface, path)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Error = err.Error()
		log.WithError(err).Warn("drawing conversion failed")
		return res
	}
	res.Art = grid
	res.Width, res.Height = grid.Width(), grid.Height()
	res.SavedTo = path
	return res
}

func convertAndSave(ctx context.Context, cfg config.Config, surface *raster.Canvas, path string) (model.Grid, error) {
	conv, err := cfg.NewConverter()
	if err != nil {
		return model.Grid{}, err
	}
	grid, err := conv.ConvertContext(ctx, surface.ToBitmap(), cfg.Width)
	if err != nil {
		return model.Grid{}, fmt.Errorf("convert drawing: %w", err)
	}
	if err := export.EnsureDir(path); err != nil {
		return model.Grid{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := export.WriteTXT(path, grid); err != nil {
		return model.Grid{}, err
	}
	return grid, nil
}

// swatch is a small filled square used to show the pen color.
func swatch(c color.Color) fyne.CanvasObject {
	r := canvas.NewRectangle(c)
	r.SetMinSize(fyne.NewSize(16, 16))
	return r
}
