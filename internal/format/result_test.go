package format

import (
	"strings"
	"testing"
	"time"

	"asciiforge/internal/model"
)

func sampleResult() *model.ConversionResult {
	return &model.ConversionResult{
		ID:           "20260213-120000-01",
		Timestamp:    time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC),
		Source:       "/tmp/photos/cat.png",
		SourceWidth:  640,
		SourceHeight: 480,
		Width:        100,
		Height:       41,
		Resampler:    "catmullrom",
		Ramp:         "@#S%?*+;:,.",
		Elapsed:      12345 * time.Microsecond,
		Art:          model.Grid{Rows: make([]string, 41)},
	}
}

func TestFormatResult(t *testing.T) {
	r := sampleResult()
	r.Art = model.Grid{Rows: []string{strings.Repeat(".", 100)}}
	r.SavedTo = "/tmp/out/cat.txt"

	out := FormatResult(r)

	for _, want := range []string{
		"=== Conversion ===",
		"Timestamp:   2026-02-13 12:00:00",
		"ID:          20260213-120000-01",
		"Source:      /tmp/photos/cat.png",
		"Image:       640x480 px",
		"Output:      100x41 glyphs (100 total)",
		"Resampler:   catmullrom",
		`Ramp:        "@#S%?*+;:,."`,
		"Elapsed:     12.3ms",
		"Saved to:    /tmp/out/cat.txt",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FormatResult() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatResultError(t *testing.T) {
	r := &model.ConversionResult{
		Timestamp: time.Date(2026, 2, 13, 12, 0, 0, 0, time.UTC),
		Source:    "broken.jpg",
		Error:     "decode image: unexpected EOF",
	}

	out := FormatResult(r)

	if !strings.Contains(out, "Error: decode image: unexpected EOF") {
		t.Errorf("missing error line:\n%s", out)
	}
	if strings.Contains(out, "Output:") {
		t.Error("failed conversion should not show output size")
	}
	if strings.Contains(out, "Image:") {
		t.Error("unknown source size should be omitted")
	}
}

func TestFormatResultGlyphCountGrouping(t *testing.T) {
	r := sampleResult()
	rows := make([]string, 30)
	for i := range rows {
		rows[i] = strings.Repeat("@", 200)
	}
	r.Art = model.Grid{Rows: rows}

	if out := FormatResult(r); !strings.Contains(out, "(6,000 total)") {
		t.Errorf("expected grouped glyph count in:\n%s", out)
	}
}

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name string
		r    *model.ConversionResult
		want string
	}{
		{"ok", sampleResult(), "cat.png -> 100x41 (catmullrom, 12.3ms)"},
		{"canvas", &model.ConversionResult{Source: model.SourceCanvas, Width: 80, Height: 33, Resampler: "nearest"},
			"canvas -> 80x33 (nearest, 0s)"},
		{"error", &model.ConversionResult{Source: "a/b.gif", Error: "boom"}, "b.gif: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSummary(tt.r); got != tt.want {
				t.Errorf("FormatSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{1500 * time.Nanosecond, "2µs"},
		{12345 * time.Microsecond, "12.3ms"},
		{1234 * time.Millisecond, "1.23s"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.in); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{512, "512 B"},
		{3400, "3.4 kB"},
		{2_100_000, "2.1 MB"},
	}

	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
