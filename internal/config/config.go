// Package config holds conversion and drawing settings and reads them from
// TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"asciiforge/internal/ascii"
	"asciiforge/internal/raster"
)

// DefaultWidth is the glyph column count used when none is configured.
const DefaultWidth = 100

// Limits enforced by Validate.
const (
	MaxWidth      = 1000
	MaxCanvasSide = 4096
	MaxPenWidth   = 64
)

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("config file must be .toml, .yaml or .yml")

// Config holds the settings for a conversion run and the drawing window.
type Config struct {
	Width       int     `toml:"width" yaml:"width"`
	Ramp        string  `toml:"ramp" yaml:"ramp"`
	Resampler   string  `toml:"resampler" yaml:"resampler"`
	GlyphAspect float64 `toml:"glyph_aspect" yaml:"glyph_aspect"`
	OutputDir   string  `toml:"output_dir" yaml:"output_dir"` // empty = current directory

	Canvas CanvasConfig `toml:"canvas" yaml:"canvas"`
	Remote RemoteConfig `toml:"remote" yaml:"remote"`
}

// CanvasConfig describes the freehand drawing surface.
type CanvasConfig struct {
	Width      int    `toml:"width" yaml:"width"`
	Height     int    `toml:"height" yaml:"height"`
	Background string `toml:"background" yaml:"background"` // color name or #rrggbb
	PenColor   string `toml:"pen_color" yaml:"pen_color"`
	PenWidth   int    `toml:"pen_width" yaml:"pen_width"`
}

// RemoteConfig is the SSH target art is published to. An empty Host
// disables publishing.
type RemoteConfig struct {
	Host    string `toml:"host" yaml:"host"`
	Port    int    `toml:"port" yaml:"port"`
	User    string `toml:"user" yaml:"user"`
	KeyPath string `toml:"key_path" yaml:"key_path"`
	Path    string `toml:"path" yaml:"path"` // remote file, e.g. /etc/motd
}

// DefaultConfig returns a Config with the stock ramp, width and canvas.
func DefaultConfig() Config {
	return Config{
		Width:       DefaultWidth,
		Ramp:        ascii.DefaultRamp,
		Resampler:   string(ascii.DefaultResampler),
		GlyphAspect: ascii.DefaultGlyphAspect,
		Canvas: CanvasConfig{
			Width:      raster.DefaultCanvasWidth,
			Height:     raster.DefaultCanvasHeight,
			Background: "black",
			PenColor:   "white",
			PenWidth:   raster.DefaultPenWidth,
		},
		Remote: RemoteConfig{
			Port: 22,
			Path: "/etc/motd",
		},
	}
}

var (
	validHostname   = regexp.MustCompile(`^[a-zA-Z0-9._:-]+$`)
	validUser       = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	validRemotePath = regexp.MustCompile(`^[a-zA-Z0-9._/~-]+$`)
)

// Validate checks the config and returns the first violated constraint.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Width > MaxWidth {
		return fmt.Errorf("width must be between 1 and %d, got %d", MaxWidth, c.Width)
	}
	if n := utf8.RuneCountInString(c.Ramp); n != ascii.RampSize {
		return fmt.Errorf("ramp must have exactly %d glyphs, got %d", ascii.RampSize, n)
	}
	if _, err := ascii.ParseResampler(c.Resampler); err != nil {
		return err
	}
	if c.GlyphAspect <= 0 || c.GlyphAspect > 4 {
		return fmt.Errorf("glyph aspect must be in (0, 4], got %g", c.GlyphAspect)
	}
	if c.Canvas.Width < 1 || c.Canvas.Width > MaxCanvasSide {
		return fmt.Errorf("canvas width must be between 1 and %d, got %d", MaxCanvasSide, c.Canvas.Width)
	}
	if c.Canvas.Height < 1 || c.Canvas.Height > MaxCanvasSide {
		return fmt.Errorf("canvas height must be between 1 and %d, got %d", MaxCanvasSide, c.Canvas.Height)
	}
	if _, err := raster.ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas background: %w", err)
	}
	if _, err := raster.ParseColor(c.Canvas.PenColor); err != nil {
		return fmt.Errorf("canvas pen color: %w", err)
	}
	if c.Canvas.PenWidth < 1 || c.Canvas.PenWidth > MaxPenWidth {
		return fmt.Errorf("pen width must be between 1 and %d, got %d", MaxPenWidth, c.Canvas.PenWidth)
	}
	if c.Remote.Host != "" {
		return c.Remote.Validate()
	}
	return nil
}

// Validate checks the SSH publish target.
func (r *RemoteConfig) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("remote host is required")
	}
	if !validHostname.MatchString(r.Host) {
		return fmt.Errorf("invalid remote host: %q", r.Host)
	}
	if r.Port < 1 || r.Port > 65535 {
		return fmt.Errorf("remote port must be between 1 and 65535, got %d", r.Port)
	}
	if r.User == "" {
		return fmt.Errorf("remote user is required")
	}
	if !validUser.MatchString(r.User) {
		return fmt.Errorf("invalid remote user: %q", r.User)
	}
	if !validRemotePath.MatchString(r.Path) {
		return fmt.Errorf("invalid remote path: %q", r.Path)
	}
	return nil
}

// ConverterOptions returns the ascii options matching the config.
func (c *Config) ConverterOptions() ([]ascii.Option, error) {
	if _, err := ascii.NewRamp(c.Ramp); err != nil {
		return nil, err
	}
	alg, err := ascii.ParseResampler(c.Resampler)
	if err != nil {
		return nil, err
	}
	return []ascii.Option{
		ascii.WithRamp(c.Ramp),
		ascii.WithResampler(alg),
		ascii.WithGlyphAspect(c.GlyphAspect),
	}, nil
}

// NewConverter builds a Converter from the config.
func (c *Config) NewConverter() (*ascii.Converter, error) {
	opts, err := c.ConverterOptions()
	if err != nil {
		return nil, err
	}
	return ascii.New(opts...)
}

// Pen returns the configured drawing pen.
func (c *Config) Pen() (raster.Pen, error) {
	col, err := raster.ParseColor(c.Canvas.PenColor)
	if err != nil {
		return raster.Pen{}, err
	}
	return raster.Pen{Color: col, Width: c.Canvas.PenWidth}, nil
}

// Load reads a TOML or YAML file, chosen by extension, over DefaultConfig
// and validates the result. Keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return cfg, fmt.Errorf("parse toml config: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return cfg, fmt.Errorf("unknown config key %q", keys[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse yaml config: %w", err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath when it exists and returns DefaultConfig
// otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// DefaultPath is config.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "asciiforge", "config.toml"), nil
}

// Save writes cfg as TOML or YAML, chosen by the extension of path.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("encode toml config: %w", err)
		}
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml config: %w", err)
		}
		enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
