package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"asciiforge/internal/config"
	"asciiforge/internal/export"
	"asciiforge/internal/format"
	"asciiforge/internal/imagefile"
	"asciiforge/internal/model"
)

type convertState int

const (
	stateIdle convertState = iota
	stateConverting
)

// Controls manages the image selection, conversion and export buttons.
type Controls struct {
	mu     sync.Mutex
	state  convertState
	cancel context.CancelFunc
	image  string

	selectBtn  *widget.Button
	convertBtn *StyledButton
	stopBtn    *widget.Button
	saveBtn    *widget.Button
	exportBtn  *widget.Button
	clearBtn   *widget.Button
	drawBtn    *StyledButton
	imageLabel *widget.Label

	win         fyne.Window
	configForm  *ConfigForm
	outputView  *OutputView
	historyView *HistoryView
	savedFiles  *SavedFilesList

	// OnDraw opens the drawing window.
	OnDraw func()

	container *fyne.Container
}

// NewControls creates the control buttons wired to the given views.
func NewControls(win fyne.Window, cf *ConfigForm, ov *OutputView, hv *HistoryView, sfl *SavedFilesList) *Controls {
	c := &Controls{
		win:         win,
		configForm:  cf,
		outputView:  ov,
		historyView: hv,
		savedFiles:  sfl,
	}

	c.imageLabel = widget.NewLabel("No image selected")
	c.imageLabel.Truncation = fyne.TextTruncateEllipsis

	c.selectBtn = widget.NewButton("Select Image...", c.onSelect)
	c.convertBtn = NewStyledButton("Convert", c.onConvert, convertButtonColor)
	c.convertBtn.Disable()
	c.stopBtn = widget.NewButton("Stop", c.onStop)
	c.stopBtn.Disable()
	c.saveBtn = widget.NewButton("Save Art...", c.onSave)
	c.exportBtn = widget.NewButton("Export History...", c.onExport)
	c.clearBtn = widget.NewButton("Clear Output", ov.Clear)
	c.drawBtn = NewStyledButton("Draw...", c.onDraw, drawButtonColor)

	c.container = container.NewVBox(
		container.NewBorder(nil, nil, c.selectBtn, nil, c.imageLabel),
		container.NewHBox(c.convertBtn, c.stopBtn, c.drawBtn),
		container.NewHBox(c.saveBtn, c.exportBtn, c.clearBtn),
	)
	return c
}

// Container returns the controls container.
func (c *Controls) Container() *fyne.Container {
	return c.container
}

// LoadPreferences restores the last selected image.
func (c *Controls) LoadPreferences(prefs fyne.Preferences) {
	if v := prefs.String(prefLastImage); v != "" && imagefile.IsSupported(v) {
		c.SetImage(v)
	}
}

// SavePreferences persists the selected image.
func (c *Controls) SavePreferences(prefs fyne.Preferences) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefs.SetString(prefLastImage, c.image)
}

// SetImage selects the image the Convert button converts.
func (c *Controls) SetImage(path string) {
	c.mu.Lock()
	c.image = path
	idle := c.state == stateIdle
	c.mu.Unlock()

	c.imageLabel.SetText(path)
	if idle {
		c.convertBtn.Enable()
	}
}

// Record adds a finished conversion to the history, shows it and refreshes
// the saved files list. Safe to call from any goroutine.
func (c *Controls) Record(res model.ConversionResult) {
	c.historyView.AddResult(res)
	if res.Error != "" {
		c.outputView.AppendLine(format.FormatResult(&res))
		return
	}
	c.outputView.ShowArt(res.Art, "", format.FormatResult(&res))
	if res.SavedTo != "" {
		fyne.Do(func() { c.savedFiles.SetDir(c.configForm.OutputDir()) })
	}
}

func (c *Controls) onSelect() {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, c.win)
			return
		}
		if r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		c.SetImage(path)
	}, c.win)
	open.SetFilter(storage.NewExtensionFileFilter(imagefile.SupportedExtensions))
	open.Show()
}

func (c *Controls) onConvert() {
	c.mu.Lock()
	if c.state == stateConverting || c.image == "" {
		c.mu.Unlock()
		return
	}
	c.state = stateConverting
	path := c.image
	c.mu.Unlock()

	cfg := c.configForm.Config()
	if err := cfg.Validate(); err != nil {
		c.outputView.AppendLine(fmt.Sprintf("Config error: %v", err))
		c.resetState()
		return
	}

	c.convertBtn.Disable()
	c.stopBtn.Enable()

	ctx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	c.outputView.AppendLine(fmt.Sprintf("Converting %s at %d glyphs ...", filepath.Base(path), cfg.Width))

	go func() {
		defer c.resetState()
		defer cancel()

		res := convertImage(ctx, cfg, path)
		if errors.Is(ctx.Err(), context.Canceled) {
			c.outputView.AppendLine("Conversion cancelled.")
			return
		}
		c.Record(res)
	}()
}

// convertImage converts the image at path with cfg and saves the art next to
// the other outputs in cfg.OutputDir.
func convertImage(ctx context.Context, cfg config.Config, path string) model.ConversionResult {
	start := time.Now()
	res := model.ConversionResult{
		ID:        export.NextConversionID(start),
		Timestamp: start,
		Source:    path,
		Resampler: cfg.Resampler,
		Ramp:      cfg.Ramp,
		Mode:      "GUI",
	}
	fail := func(err error) model.ConversionResult {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		log.WithField("source", path).WithError(err).Warn("conversion failed")
		return res
	}

	conv, err := cfg.NewConverter()
	if err != nil {
		return fail(err)
	}
	img, err := imagefile.Load(path)
	if err != nil {
		return fail(err)
	}
	res.SourceWidth, res.SourceHeight = img.Width(), img.Height()

	grid, err := conv.ConvertContext(ctx, img, cfg.Width)
	if err != nil {
		return fail(fmt.Errorf("convert %s: %w", filepath.Base(path), err))
	}
	res.Art = grid
	res.Width, res.Height = grid.Width(), grid.Height()

	out := export.ArtPath(cfg.OutputDir, path, "")
	if err := export.EnsureDir(out); err != nil {
		return fail(fmt.Errorf("create output dir: %w", err))
	}
	if err := export.WriteTXT(out, grid); err != nil {
		return fail(err)
	}
	res.SavedTo = out
	res.Elapsed = time.Since(start)
	return res
}

func (c *Controls) onStop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controls) onDraw() {
	if c.OnDraw != nil {
		c.OnDraw()
	}
}

// onSave writes the latest art to a file chosen by the user; a .png name
// renders the art as an image, anything else saves the text.
func (c *Controls) onSave() {
	last, ok := c.historyView.Last()
	if !ok {
		c.outputView.AppendLine("No art to save yet.")
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()

		if err := saveArt(path, last.Art); err != nil {
			c.outputView.AppendLine(fmt.Sprintf("Save error: %v", err))
			return
		}
		c.outputView.AppendLine(fmt.Sprintf("Saved art to %s", path))
		c.savedFiles.Refresh()
	}, c.win)
	save.SetFileName(filepath.Base(export.ArtPath("", last.Source, last.ID)))
	save.Show()
}

func saveArt(path string, grid model.Grid) error {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return export.WritePNG(path, grid)
	}
	return export.WriteTXT(path, grid)
}

func (c *Controls) onExport() {
	results := c.historyView.Results()
	if len(results) == 0 {
		c.outputView.AppendLine("No results to export.")
		return
	}

	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		path := w.URI().Path()
		w.Close()

		for _, line := range exportHistory(path, results) {
			c.outputView.AppendLine(line)
		}
		c.savedFiles.Refresh()
	}, c.win)
	save.SetFileName(export.BuildPath("history", "", ".csv", time.Now()))
	save.Show()
}

// exportHistory writes results as a CSV log at path and as a text report
// next to it. It returns one status line per file.
func exportHistory(path string, results []model.ConversionResult) []string {
	var lines []string
	if err := export.WriteCSV(path, results); err != nil {
		lines = append(lines, fmt.Sprintf("CSV export error: %v", err))
	} else {
		lines = append(lines, fmt.Sprintf("Exported %d results to %s", len(results), path))
	}

	txtPath := export.WithExt(path, ".txt")
	if err := export.WriteReport(txtPath, results); err != nil {
		lines = append(lines, fmt.Sprintf("TXT export error: %v", err))
	} else {
		lines = append(lines, fmt.Sprintf("Exported %d results to %s", len(results), txtPath))
	}
	return lines
}

func (c *Controls) resetState() {
	c.mu.Lock()
	c.state = stateIdle
	c.cancel = nil
	hasImage := c.image != ""
	c.mu.Unlock()
	fyne.Do(func() {
		if hasImage {
			c.convertBtn.Enable()
		}
		c.stopBtn.Disable()
	})
}
