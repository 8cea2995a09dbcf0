package ui

import (
	"fmt"
	"path/filepath"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"asciiforge/internal/format"
	"asciiforge/internal/model"
)

var historyColumns = []string{"Time", "Source", "Image", "Art", "Resampler", "Elapsed", "Status"}

var historyColumnWidths = []float32{150, 180, 90, 80, 90, 80, 70}

// HistoryView displays a table of past conversions.
type HistoryView struct {
	mu      sync.Mutex
	results []model.ConversionResult
	table   *widget.Table

	// OnSelected is called with a copy of the result whose row was tapped.
	OnSelected func(model.ConversionResult)
}

// NewHistoryView creates a new history table view.
func NewHistoryView() *HistoryView {
	hv := &HistoryView{}

	hv.table = widget.NewTable(
		hv.tableSize,
		hv.createCell,
		hv.updateCell,
	)
	for i, w := range historyColumnWidths {
		hv.table.SetColumnWidth(i, w)
	}
	hv.table.OnSelected = hv.onSelected

	return hv
}

// Container returns the table widget.
func (hv *HistoryView) Container() *widget.Table {
	return hv.table
}

// AddResult appends a conversion to the history, safe to call from any
// goroutine.
func (hv *HistoryView) AddResult(r model.ConversionResult) {
	hv.mu.Lock()
	hv.results = append(hv.results, r)
	hv.mu.Unlock()
	fyne.Do(hv.table.Refresh)
}

// Results returns a copy of all stored results.
func (hv *HistoryView) Results() []model.ConversionResult {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	out := make([]model.ConversionResult, len(hv.results))
	copy(out, hv.results)
	return out
}

// Last returns the most recent successful conversion.
func (hv *HistoryView) Last() (model.ConversionResult, bool) {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	for i := len(hv.results) - 1; i >= 0; i-- {
		if hv.results[i].Error == "" && !hv.results[i].Art.Empty() {
			return hv.results[i], true
		}
	}
	return model.ConversionResult{}, false
}

func (hv *HistoryView) tableSize() (rows int, cols int) {
	hv.mu.Lock()
	defer hv.mu.Unlock()
	return len(hv.results) + 1, len(historyColumns) // +1 for header
}

func (hv *HistoryView) createCell() fyne.CanvasObject {
	return widget.NewLabel("")
}

func (hv *HistoryView) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	label := obj.(*widget.Label)

	if id.Row == 0 {
		label.TextStyle = fyne.TextStyle{Bold: true}
		label.SetText(historyColumns[id.Col])
		return
	}
	label.TextStyle = fyne.TextStyle{}
	label.SetText(hv.cellText(id.Row-1, id.Col))
}

func (hv *HistoryView) cellText(idx, col int) string {
	hv.mu.Lock()
	defer hv.mu.Unlock()

	if idx >= len(hv.results) {
		return ""
	}
	r := hv.results[idx]

	switch col {
	case 0:
		return r.Timestamp.Format("2006-01-02 15:04:05")
	case 1:
		if r.Source == model.SourceCanvas {
			return "(drawing)"
		}
		return filepath.Base(r.Source)
	case 2:
		if r.SourceWidth == 0 {
			return ""
		}
		return fmt.Sprintf("%dx%d", r.SourceWidth, r.SourceHeight)
	case 3:
		if r.Width == 0 {
			return ""
		}
		return fmt.Sprintf("%dx%d", r.Width, r.Height)
	case 4:
		return r.Resampler
	case 5:
		return format.FormatElapsed(r.Elapsed)
	case 6:
		return r.Status()
	}
	return ""
}

func (hv *HistoryView) onSelected(id widget.TableCellID) {
	hv.table.UnselectAll()
	if id.Row == 0 || hv.OnSelected == nil {
		return
	}
	hv.mu.Lock()
	idx := id.Row - 1
	if idx >= len(hv.results) {
		hv.mu.Unlock()
		return
	}
	r := hv.results[idx]
	hv.mu.Unlock()

	hv.OnSelected(r)
}
