package ui

import "testing"

func TestParseIntOrDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"", 7, 7},
		{"42", 7, 42},
		{"-3", 7, -3},
		{"abc", 7, 7},
		{"4.5", 7, 7},
	}
	for _, tt := range tests {
		if got := parseIntOrDefault(tt.in, tt.def); got != tt.want {
			t.Errorf("parseIntOrDefault(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseFloatOrDefault(t *testing.T) {
	if got := parseFloatOrDefault("0.5", 1); got != 0.5 {
		t.Errorf("parseFloatOrDefault(0.5) = %g, want 0.5", got)
	}
	if got := parseFloatOrDefault("wide", 0.55); got != 0.55 {
		t.Errorf("parseFloatOrDefault(wide) = %g, want 0.55", got)
	}
}

func TestParseIntInRange(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{"in range", "10", 10, false},
		{"lower bound", "1", 1, false},
		{"upper bound", "20", 20, false},
		{"below", "0", 0, true},
		{"above", "21", 0, true},
		{"empty", "", 0, true},
		{"not a number", "ten", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntInRange(tt.in, 1, 20, "width")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIntInRange(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseIntInRange(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestEntryValidators(t *testing.T) {
	tests := []struct {
		name     string
		validate func(string) error
		in       string
		wantErr  bool
	}{
		{"width ok", validateWidth, "100", false},
		{"width zero", validateWidth, "0", true},
		{"width too wide", validateWidth, "1001", true},
		{"ramp default", validateRamp, "@#S%?*+;:,.", false},
		{"ramp multibyte", validateRamp, "█▓▒░@#S%?*.", false},
		{"ramp short", validateRamp, "@#S", true},
		{"ramp long", validateRamp, "@#S%?*+;:,. ", true},
		{"aspect ok", validateAspect, "0.55", false},
		{"aspect zero", validateAspect, "0", true},
		{"aspect huge", validateAspect, "5", true},
		{"aspect text", validateAspect, "tall", true},
		{"port ok", validatePort, "2222", false},
		{"port zero", validatePort, "0", true},
		{"port high", validatePort, "65536", true},
		{"port empty", validatePort, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestParsePort(t *testing.T) {
	if got := parsePort("2222", 22); got != 2222 {
		t.Errorf("parsePort(2222) = %d, want 2222", got)
	}
	if got := parsePort("99999", 22); got != 22 {
		t.Errorf("parsePort(99999) = %d, want 22", got)
	}
	if got := parsePort("", 22); got != 22 {
		t.Errorf("parsePort(\"\") = %d, want 22", got)
	}
}
