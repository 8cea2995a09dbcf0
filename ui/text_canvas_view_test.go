package ui

import (
	"os"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"asciiforge/internal/model"
)

func TestTextCanvasDrawing(t *testing.T) {
	test.NewTempApp(t)

	tv := NewTextCanvasView(func() string { return t.TempDir() }, nil)
	if got := tv.Art(); got.Width() != 80 || got.Height() != 24 {
		t.Fatalf("Art() = %dx%d, want 80x24", got.Width(), got.Height())
	}

	tv.x1Entry.SetText("2")
	tv.y1Entry.SetText("1")
	tv.textEntry.SetText("hello")
	tv.onText()
	if row := tv.Art().Rows[1]; !strings.HasPrefix(row, "  hello ") {
		t.Errorf("row 1 = %q, want text at column 2", row)
	}

	tv.x1Entry.SetText("0")
	tv.y1Entry.SetText("3")
	tv.x2Entry.SetText("4")
	tv.y2Entry.SetText("3")
	tv.onLine()
	if row := tv.Art().Rows[3]; !strings.HasPrefix(row, "█████ ") {
		t.Errorf("row 3 = %q, want a 5-glyph line", row)
	}

	tv.x1Entry.SetText("0")
	tv.y1Entry.SetText("5")
	tv.x2Entry.SetText("3")
	tv.y2Entry.SetText("7")
	tv.onBox()
	rows := tv.Art().Rows
	if !strings.HasPrefix(rows[6], "█  █ ") {
		t.Errorf("row 6 = %q, want an outlined box", rows[6])
	}

	if !strings.Contains(tv.art.Text, "hello") {
		t.Error("art view not refreshed after drawing")
	}

	tv.Clear()
	if strings.TrimSpace(tv.Art().String()) != "" {
		t.Error("Clear() should blank the canvas")
	}
}

func TestTextCanvasSave(t *testing.T) {
	test.NewTempApp(t)
	dir := t.TempDir()

	var recorded []model.ConversionResult
	tv := NewTextCanvasView(func() string { return dir }, func(r model.ConversionResult) {
		recorded = append(recorded, r)
	})
	tv.textEntry.SetText("hi")
	tv.onText()

	res := tv.save(time.Date(2026, 2, 13, 10, 0, 0, 0, time.Local))
	if res.Error != "" {
		t.Fatalf("save() error: %s", res.Error)
	}
	if !strings.HasSuffix(res.SavedTo, "canvas_ascii_"+res.ID+".txt") {
		t.Errorf("SavedTo = %q", res.SavedTo)
	}
	data, err := os.ReadFile(res.SavedTo)
	if err != nil {
		t.Fatalf("read saved canvas: %v", err)
	}
	if !strings.HasPrefix(string(data), "hi") || strings.Count(string(data), "\n") != 23 {
		t.Errorf("saved canvas has unexpected layout: %q", data)
	}

	tv.onSave()
	if len(recorded) != 1 || recorded[0].Source != model.SourceCanvas {
		t.Errorf("record got %v, want one canvas result", recorded)
	}
}
