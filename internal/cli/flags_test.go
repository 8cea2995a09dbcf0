package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"asciiforge/internal/config"
	"asciiforge/internal/export"
)

// isolate keeps the user's real config file out of the tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestParseFlags_NoArgs(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"asciiforge"}

	cfg, err := ParseFlags()
	if err != nil {
		t.Errorf("ParseFlags() error = %v, want nil", err)
	}
	if cfg != nil {
		t.Errorf("ParseFlags() with no args should return nil config for GUI mode, got %v", cfg)
	}
}

func TestParseFlags_HelpFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	for _, arg := range []string{"help", "--help", "-h"} {
		os.Args = []string{"asciiforge", arg}

		cfg, err := ParseFlags()
		if err != nil {
			t.Errorf("ParseFlags(%s) error = %v, want nil", arg, err)
		}
		if cfg != nil {
			t.Errorf("ParseFlags(%s) should return nil config, got %v", arg, cfg)
		}
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := ParseArgs([]string{"cat.png"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.Inputs, []string{"cat.png"}) {
		t.Errorf("Inputs = %v, want [cat.png]", cfg.Inputs)
	}
	if cfg.Output != export.DefaultTXTName {
		t.Errorf("Output = %q, want %q", cfg.Output, export.DefaultTXTName)
	}
	if cfg.Config != config.DefaultConfig() {
		t.Errorf("Config = %+v, want defaults", cfg.Config)
	}
	if cfg.SSHPort != 22 || cfg.SSHPath != "/etc/motd" || !cfg.SSHBackup {
		t.Errorf("SSH defaults = %d %q %v", cfg.SSHPort, cfg.SSHPath, cfg.SSHBackup)
	}
}

func TestParseArgs_Conversion(t *testing.T) {
	isolate(t)

	cfg, err := ParseArgs([]string{
		"-i", "a.png", "-input", "b.jpg",
		"-w", "64", "-resample", "lanczos", "-aspect", "0.5",
		"-ramp", "0123456789A", "-o", "-", "-png", "out.png", "-csv", "hist.csv", "-q", "-v",
		"c.gif",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if want := []string{"a.png", "b.jpg", "c.gif"}; !reflect.DeepEqual(cfg.Inputs, want) {
		t.Errorf("Inputs = %v, want %v", cfg.Inputs, want)
	}
	if cfg.Config.Width != 64 {
		t.Errorf("Width = %d, want 64", cfg.Config.Width)
	}
	if cfg.Config.Resampler != "lanczos" {
		t.Errorf("Resampler = %q, want lanczos", cfg.Config.Resampler)
	}
	if cfg.Config.GlyphAspect != 0.5 {
		t.Errorf("GlyphAspect = %g, want 0.5", cfg.Config.GlyphAspect)
	}
	if cfg.Config.Ramp != "0123456789A" {
		t.Errorf("Ramp = %q", cfg.Config.Ramp)
	}
	if cfg.Output != "-" || cfg.PNG != "out.png" || cfg.HistoryCSV != "hist.csv" {
		t.Errorf("outputs = %q %q %q", cfg.Output, cfg.PNG, cfg.HistoryCSV)
	}
	if !cfg.Quiet || !cfg.Verbose {
		t.Errorf("Quiet/Verbose = %v/%v, want true/true", cfg.Quiet, cfg.Verbose)
	}
}

func TestParseArgs_LongWidth(t *testing.T) {
	isolate(t)

	cfg, err := ParseArgs([]string{"-width", "40", "x.png"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.Config.Width != 40 {
		t.Errorf("Width = %d, want 40", cfg.Config.Width)
	}
}

func TestParseArgs_ConfigFileUnderFlags(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "forge.toml")
	content := `
width = 72
resampler = "nearest"
output_dir = "art"

[remote]
host = "pi.local"
user = "pi"
path = "/home/pi/motd"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseArgs([]string{"-config", path, "-resample", "bilinear", "cat.png"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if cfg.Config.Width != 72 {
		t.Errorf("Width = %d, want 72 from file", cfg.Config.Width)
	}
	if cfg.Config.Resampler != "bilinear" {
		t.Errorf("Resampler = %q, flag should override file", cfg.Config.Resampler)
	}
	if cfg.Config.OutputDir != "art" {
		t.Errorf("OutputDir = %q, want art", cfg.Config.OutputDir)
	}
	if cfg.SSHHost != "pi.local" || cfg.SSHUser != "pi" || cfg.SSHPath != "/home/pi/motd" {
		t.Errorf("remote = %q %q %q", cfg.SSHHost, cfg.SSHUser, cfg.SSHPath)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no input", []string{"-w", "10"}, "no input image"},
		{"bad width", []string{"-w", "0", "a.png"}, "width must be between"},
		{"bad resampler", []string{"-resample", "box", "a.png"}, "unknown resampler"},
		{"short ramp", []string{"-ramp", "@#", "a.png"}, "exactly 11 glyphs"},
		{"watch two inputs", []string{"-watch", "a.png", "b.png"}, "-watch needs exactly one input"},
		{"bad ssh host", []string{"-ssh", "bad host!", "-user", "pi", "a.png"}, "invalid remote host"},
		{"missing config", []string{"-config", "/nonexistent/forge.toml", "a.png"}, "read config"},
		{"unknown flag", []string{"-nope", "a.png"}, "flag provided but not defined"},
		{"png over input", []string{"-o", "logo.txt", "-png", "in.png", "in.png"}, "-png in.png would overwrite input image in.png"},
		{"text over input", []string{"-o", "./in.png", "in.png"}, "would overwrite input image"},
		{"csv over input", []string{"-csv", "in.png", "in.png"}, "-csv in.png would overwrite"},
		{"output dir joins input", []string{"-dir", "art", "-png", "in.png", "art/in.png"}, "would overwrite input image art/in.png"},
		{"watched png", []string{"-watch", "-png", "logo.png", "logo.png"}, "would overwrite input image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			if err == nil {
				t.Fatalf("ParseArgs() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseArgs() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseArgs_SaveConfigWithoutInput(t *testing.T) {
	isolate(t)

	cfg, err := ParseArgs([]string{"-save-config", "forge.yaml", "-w", "90"})
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if cfg.SaveConfig != "forge.yaml" || len(cfg.Inputs) != 0 {
		t.Errorf("SaveConfig/Inputs = %q/%v", cfg.SaveConfig, cfg.Inputs)
	}
}

func TestParseArgs_OutputsBesideInputs(t *testing.T) {
	isolate(t)

	tests := [][]string{
		{"-watch", "-o", "logo.txt", "-png", "logo_ascii.png", "logo.png"},
		{"-png", "in.png", "a.png", "in.png"},
		{"-dir", "art", "-png", "in.png", "in.png"},
	}
	for _, args := range tests {
		if _, err := ParseArgs(args); err != nil {
			t.Errorf("ParseArgs(%q) error = %v", args, err)
		}
	}
}
