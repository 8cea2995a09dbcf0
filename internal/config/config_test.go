package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asciiforge/internal/ascii"
	"asciiforge/internal/raster"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 100 {
		t.Errorf("Width = %d, want 100", cfg.Width)
	}
	if cfg.Ramp != "@#S%?*+;:,." {
		t.Errorf("Ramp = %q, want default ramp", cfg.Ramp)
	}
	if cfg.Resampler != "catmullrom" {
		t.Errorf("Resampler = %q, want catmullrom", cfg.Resampler)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 || cfg.Canvas.PenWidth != 3 {
		t.Errorf("Canvas = %+v", cfg.Canvas)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "width must be between"},
		{"huge width", func(c *Config) { c.Width = MaxWidth + 1 }, "width must be between"},
		{"short ramp", func(c *Config) { c.Ramp = "@#S" }, "exactly 11 glyphs"},
		{"unicode ramp ok", func(c *Config) { c.Ramp = "█▓▒░@#%*:. " }, ""},
		{"bad resampler", func(c *Config) { c.Resampler = "box" }, "unknown resampler"},
		{"empty resampler ok", func(c *Config) { c.Resampler = "" }, ""},
		{"zero aspect", func(c *Config) { c.GlyphAspect = 0 }, "glyph aspect"},
		{"canvas width", func(c *Config) { c.Canvas.Width = 0 }, "canvas width"},
		{"canvas height", func(c *Config) { c.Canvas.Height = MaxCanvasSide + 1 }, "canvas height"},
		{"background", func(c *Config) { c.Canvas.Background = "plaid" }, "canvas background"},
		{"pen color", func(c *Config) { c.Canvas.PenColor = "#12" }, "pen color"},
		{"pen width", func(c *Config) { c.Canvas.PenWidth = 0 }, "pen width"},
		{"remote ok", func(c *Config) { c.Remote.Host = "pi.local"; c.Remote.User = "pi" }, ""},
		{"remote bad host", func(c *Config) { c.Remote.Host = "a;rm -rf"; c.Remote.User = "pi" }, "invalid remote host"},
		{"remote no user", func(c *Config) { c.Remote.Host = "pi.local" }, "remote user is required"},
		{"remote bad port", func(c *Config) { c.Remote.Host = "pi.local"; c.Remote.User = "pi"; c.Remote.Port = 0 }, "remote port"},
		{"remote bad path", func(c *Config) { c.Remote.Host = "pi.local"; c.Remote.User = "pi"; c.Remote.Path = "/etc/motd; reboot" }, "invalid remote path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "forge.toml", `
width = 64
resampler = "nearest"

[canvas]
pen_color = "#ff0000"
pen_width = 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != 64 || cfg.Resampler != "nearest" {
		t.Errorf("Width/Resampler = %d/%q", cfg.Width, cfg.Resampler)
	}
	if cfg.Canvas.PenColor != "#ff0000" || cfg.Canvas.PenWidth != 5 {
		t.Errorf("Canvas = %+v", cfg.Canvas)
	}
	// keys not in the file keep their defaults
	if cfg.Ramp != ascii.DefaultRamp || cfg.Canvas.Height != raster.DefaultCanvasHeight {
		t.Errorf("defaults lost: ramp %q, canvas height %d", cfg.Ramp, cfg.Canvas.Height)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "forge.yml", `
width: 120
glyph_aspect: 0.5
output_dir: /tmp/art
remote:
  host: banner.example.org
  user: ops
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Width != 120 || cfg.GlyphAspect != 0.5 || cfg.OutputDir != "/tmp/art" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Remote.Host != "banner.example.org" || cfg.Remote.Port != 22 || cfg.Remote.Path != "/etc/motd" {
		t.Errorf("Remote = %+v", cfg.Remote)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yaml", ""))
	if err != nil {
		t.Fatalf("Load(empty) error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load(empty) = %+v, want defaults", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown toml key", "a.toml", "colour = true\n", "unknown config key"},
		{"unknown yaml key", "a.yaml", "colour: true\n", "parse yaml config"},
		{"bad toml", "a.toml", "width = \n", "parse toml config"},
		{"invalid value", "a.toml", "width = -3\n", "width must be between"},
		{"bad extension", "a.json", "{}", "config file must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatalf("Load() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 72
	cfg.Canvas.Background = "#102030"
	cfg.Remote = RemoteConfig{Host: "pi.local", Port: 2222, User: "pi", Path: "/etc/motd"}

	for _, name := range []string{"out.toml", "out.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := Save(path, cfg); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got != cfg {
				t.Errorf("round trip = %+v, want %+v", got, cfg)
			}
		})
	}
}

func TestSaveBadExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "cfg.ini"), DefaultConfig())
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Save(.ini) error = %v, want ErrUnknownFormat", err)
	}
}

func TestNewConverter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resampler = "bilinear"
	conv, err := cfg.NewConverter()
	if err != nil {
		t.Fatalf("NewConverter() error: %v", err)
	}
	if conv.Resampler() != ascii.Bilinear {
		t.Errorf("Resampler() = %q, want bilinear", conv.Resampler())
	}
	if conv.Ramp().String() != cfg.Ramp {
		t.Errorf("Ramp() = %q, want %q", conv.Ramp().String(), cfg.Ramp)
	}

	cfg.Ramp = "short"
	if _, err := cfg.NewConverter(); !errors.Is(err, ascii.ErrRampSizeMismatch) {
		t.Errorf("NewConverter(short ramp) error = %v, want ErrRampSizeMismatch", err)
	}
}

func TestPen(t *testing.T) {
	cfg := DefaultConfig()
	pen, err := cfg.Pen()
	if err != nil {
		t.Fatalf("Pen() error: %v", err)
	}
	if pen != raster.DefaultPen() {
		t.Errorf("Pen() = %+v, want %+v", pen, raster.DefaultPen())
	}
}
