package ui

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"asciiforge/internal/config"
	"asciiforge/internal/model"
)

func writePNG(t *testing.T, path string, w, h int, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestConvertImage(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "white.png")
	writePNG(t, src, 100, 100, color.White)

	cfg := config.DefaultConfig()
	cfg.Width = 10
	cfg.OutputDir = filepath.Join(dir, "out")

	res := convertImage(context.Background(), cfg, src)
	if res.Error != "" {
		t.Fatalf("convertImage() error: %s", res.Error)
	}
	if res.Mode != "GUI" {
		t.Errorf("Mode = %q, want GUI", res.Mode)
	}
	if res.SourceWidth != 100 || res.SourceHeight != 100 {
		t.Errorf("source = %dx%d, want 100x100", res.SourceWidth, res.SourceHeight)
	}
	// round(10 * 100/100 * 0.55) = 6 rows
	if res.Width != 10 || res.Height != 6 {
		t.Errorf("art = %dx%d, want 10x6", res.Width, res.Height)
	}
	for i, row := range res.Art.Rows {
		if row != strings.Repeat(".", 10) {
			t.Errorf("row %d = %q, want all '.'", i, row)
		}
	}

	want := filepath.Join(dir, "out", "white_ascii.txt")
	if res.SavedTo != want {
		t.Errorf("SavedTo = %q, want %q", res.SavedTo, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read saved art: %v", err)
	}
	if string(data) != res.Art.String() {
		t.Errorf("saved art differs from result")
	}
}

func TestConvertImageErrors(t *testing.T) {
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.OutputDir = dir

	res := convertImage(context.Background(), cfg, filepath.Join(dir, "missing.png"))
	if res.Error == "" {
		t.Error("missing image should record an error")
	}
	if res.SavedTo != "" || !res.Art.Empty() {
		t.Error("failed conversion should not carry art")
	}

	src := filepath.Join(dir, "gray.png")
	writePNG(t, src, 20, 20, color.Gray{Y: 128})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res = convertImage(ctx, cfg, src)
	if res.Error == "" {
		t.Error("cancelled conversion should record an error")
	}
}

func TestExportHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.csv")

	lines := exportHistory(path, sampleResults())
	if len(lines) != 2 {
		t.Fatalf("exportHistory() returned %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "Exported 3 results") {
			t.Errorf("status line %q, want success", l)
		}
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("csv not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "history.txt")); err != nil {
		t.Errorf("report not written: %v", err)
	}

	lines = exportHistory(filepath.Join(dir, "nope", "h.csv"), sampleResults())
	if !strings.HasPrefix(lines[0], "CSV export error") {
		t.Errorf("status line %q, want CSV error", lines[0])
	}
}

func TestSaveArt(t *testing.T) {
	dir := t.TempDir()
	grid := model.Grid{Rows: []string{"@.", ".@"}}

	txt := filepath.Join(dir, "a.txt")
	if err := saveArt(txt, grid); err != nil {
		t.Fatalf("saveArt(txt) error: %v", err)
	}
	if data, _ := os.ReadFile(txt); string(data) != "@.\n.@" {
		t.Errorf("txt content = %q", data)
	}

	pngPath := filepath.Join(dir, "a.PNG")
	if err := saveArt(pngPath, grid); err != nil {
		t.Fatalf("saveArt(png) error: %v", err)
	}
	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("saved file is not a PNG: %v", err)
	}
}

func TestControlsRecord(t *testing.T) {
	app := test.NewTempApp(t)
	win := app.NewWindow("test")
	dir := t.TempDir()

	base := config.DefaultConfig()
	base.OutputDir = dir
	cf := NewConfigForm(base)
	ov := NewOutputView()
	hv := NewHistoryView()
	sfl := NewSavedFilesList(dir)
	c := NewControls(win, cf, ov, hv, sfl)

	if !c.convertBtn.Disabled() {
		t.Error("Convert should be disabled until an image is selected")
	}
	c.SetImage(filepath.Join(dir, "cat.png"))
	if c.convertBtn.Disabled() {
		t.Error("Convert should be enabled once an image is selected")
	}

	res := sampleResults()[0]
	res.Timestamp = time.Now()
	c.Record(res)

	if len(hv.Results()) != 1 {
		t.Errorf("history has %d entries, want 1", len(hv.Results()))
	}
	if !strings.HasPrefix(ov.Text(), "@@\n..") {
		t.Errorf("output = %q, want the art first", ov.Text())
	}

	c.Record(sampleResults()[2])
	if !strings.Contains(ov.Text(), "Error: decode image") {
		t.Errorf("output = %q, want the error appended", ov.Text())
	}
}

func TestControlsPreferences(t *testing.T) {
	app := test.NewTempApp(t)
	win := app.NewWindow("test")
	prefs := app.Preferences()

	newControls := func() *Controls {
		cf := NewConfigForm(config.DefaultConfig())
		return NewControls(win, cf, NewOutputView(), NewHistoryView(), NewSavedFilesList(t.TempDir()))
	}

	c := newControls()
	c.SetImage("/tmp/cat.jpeg")
	c.SavePreferences(prefs)

	restored := newControls()
	restored.LoadPreferences(prefs)
	if restored.image != "/tmp/cat.jpeg" {
		t.Errorf("image = %q, want /tmp/cat.jpeg", restored.image)
	}

	prefs.SetString(prefLastImage, "/tmp/notes.pdf")
	other := newControls()
	other.LoadPreferences(prefs)
	if other.image != "" {
		t.Errorf("unsupported file restored as %q", other.image)
	}
}
