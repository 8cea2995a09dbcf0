package model

import "testing"

func TestGridDimensions(t *testing.T) {
	g := Grid{Rows: []string{"@#S", "%?*"}}
	if g.Width() != 3 {
		t.Errorf("Width() = %d, want 3", g.Width())
	}
	if g.Height() != 2 {
		t.Errorf("Height() = %d, want 2", g.Height())
	}
	if g.Empty() {
		t.Error("Empty() = true, want false")
	}
}

func TestGridWidthCountsRunes(t *testing.T) {
	g := Grid{Rows: []string{"██ ", "█  "}}
	if g.Width() != 3 {
		t.Errorf("Width() = %d, want 3", g.Width())
	}
}

func TestGridString(t *testing.T) {
	g := Grid{Rows: []string{"ab", "cd", "ef"}}
	want := "ab\ncd\nef"
	if got := g.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestGridEmpty(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
	}{
		{"nil rows", Grid{}},
		{"empty row", Grid{Rows: []string{""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.grid.Empty() {
				t.Errorf("Empty() = false for %q", tt.grid.Rows)
			}
		})
	}
}

func TestConversionResultStatus(t *testing.T) {
	tests := []struct {
		name string
		r    ConversionResult
		want string
	}{
		{"ok", ConversionResult{}, "OK"},
		{"saved", ConversionResult{SavedTo: "art.txt"}, "Saved"},
		{"error wins", ConversionResult{SavedTo: "art.txt", Error: "boom"}, "Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}
