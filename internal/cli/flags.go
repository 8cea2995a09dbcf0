package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"asciiforge/internal/config"
	"asciiforge/internal/export"
)

// errHelp is returned by ParseArgs when usage was printed on request.
var errHelp = errors.New("help requested")

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// ParseFlags parses os.Args and returns a RunnerConfig. A nil config with a
// nil error means the GUI should start: no arguments were given, or help was
// printed.
func ParseFlags() (*RunnerConfig, error) {
	if len(os.Args) < 2 {
		return nil, nil // No args = use GUI
	}

	cfg, err := ParseArgs(os.Args[1:])
	if errors.Is(err, errHelp) {
		return nil, nil
	}
	return cfg, err
}

// ParseArgs parses CLI arguments (without the program name). Settings are
// layered: built-in defaults, then the config file, then explicit flags.
func ParseArgs(args []string) (*RunnerConfig, error) {
	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		PrintUsage()
		return nil, errHelp
	}

	defaults := config.DefaultConfig()
	cfg := &RunnerConfig{
		Output:    export.DefaultTXTName,
		SSHUser:   os.Getenv("USER"),
		SSHPort:   defaults.Remote.Port,
		SSHPath:   defaults.Remote.Path,
		SSHBackup: true,
	}

	var (
		inputs    stringList
		width     int
		ramp      string
		resampler string
		aspect    float64
		outDir    string
	)

	fs := flag.NewFlagSet("asciiforge", flag.ContinueOnError)
	fs.Usage = PrintUsage

	// Conversion flags
	fs.Var(&inputs, "i", "Input image (repeatable)")
	fs.Var(&inputs, "input", "Input image (repeatable)")
	fs.IntVar(&width, "w", defaults.Width, "Output width in glyphs")
	fs.IntVar(&width, "width", defaults.Width, "Output width in glyphs")
	fs.StringVar(&ramp, "ramp", defaults.Ramp, "11 glyphs, darkest first")
	fs.StringVar(&resampler, "resample", defaults.Resampler, "Resampling algorithm")
	fs.Float64Var(&aspect, "aspect", defaults.GlyphAspect, "Glyph width/height ratio")
	fs.StringVar(&cfg.ConfigPath, "config", "", "TOML or YAML config file")
	fs.StringVar(&cfg.SaveConfig, "save-config", "", "Write the effective config to this file")
	fs.BoolVar(&cfg.Watch, "watch", false, "Reconvert whenever the input changes")

	// Output flags
	fs.StringVar(&cfg.Output, "o", cfg.Output, "Output text file ('-' for stdout only)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "Output text file ('-' for stdout only)")
	fs.StringVar(&outDir, "dir", "", "Output directory")
	fs.StringVar(&cfg.PNG, "png", "", "Also render the art to this PNG file")
	fs.StringVar(&cfg.HistoryCSV, "csv", "", "Append a history row to this CSV file")
	fs.BoolVar(&cfg.Quiet, "q", false, "Do not print the art")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Do not print the art")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")

	// Remote publish flags
	fs.StringVar(&cfg.SSHHost, "ssh", "", "Publish the art to this SSH host")
	fs.StringVar(&cfg.SSHUser, "user", cfg.SSHUser, "SSH username")
	fs.StringVar(&cfg.SSHKeyPath, "key", "", "SSH private key path")
	fs.StringVar(&cfg.SSHPassword, "password", "", "SSH password (insecure, use key instead)")
	fs.IntVar(&cfg.SSHPort, "ssh-port", cfg.SSHPort, "SSH port")
	fs.StringVar(&cfg.SSHPath, "remote-path", cfg.SSHPath, "Remote file to write")
	fs.BoolVar(&cfg.SSHAppend, "append", false, "Append to the remote file")
	fs.BoolVar(&cfg.SSHBackup, "backup", cfg.SSHBackup, "Keep a .bak copy of the remote file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, err
	}
	cfg.Inputs = append(inputs, fs.Args()...)

	// Layer the config file under the flags that were set explicitly.
	var err error
	if cfg.ConfigPath != "" {
		cfg.Config, err = config.Load(cfg.ConfigPath)
	} else {
		cfg.Config, err = config.LoadDefault()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, err
	}
	fromFile := cfg.Config.Remote

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w", "width":
			cfg.Config.Width = width
		case "ramp":
			cfg.Config.Ramp = ramp
		case "resample":
			cfg.Config.Resampler = resampler
		case "aspect":
			cfg.Config.GlyphAspect = aspect
		case "dir":
			cfg.Config.OutputDir = outDir
		}
	})
	applyRemoteDefaults(cfg, fs, fromFile)

	if err := cfg.Config.Validate(); err != nil {
		err = fmt.Errorf("invalid settings: %w", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		PrintUsage()
		return nil, err
	}
	return cfg, nil
}

// applyRemoteDefaults fills SSH settings the user did not pass from the
// config file's [remote] table.
func applyRemoteDefaults(cfg *RunnerConfig, fs *flag.FlagSet, file config.RemoteConfig) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["ssh"] && file.Host != "" {
		cfg.SSHHost = file.Host
	}
	if !set["user"] && file.User != "" {
		cfg.SSHUser = file.User
	}
	if !set["key"] && file.KeyPath != "" {
		cfg.SSHKeyPath = file.KeyPath
	}
	if !set["ssh-port"] && file.Port != 0 {
		cfg.SSHPort = file.Port
	}
	if !set["remote-path"] && file.Path != "" {
		cfg.SSHPath = file.Path
	}
}

func (c *RunnerConfig) validate() error {
	if len(c.Inputs) == 0 && c.SaveConfig == "" {
		return fmt.Errorf("no input image given (use -i <file> or pass it as an argument)")
	}
	if c.Watch && len(c.Inputs) != 1 {
		return fmt.Errorf("-watch needs exactly one input, got %d", len(c.Inputs))
	}
	if err := c.checkOutputsSpareInputs(); err != nil {
		return err
	}
	if c.SSHHost != "" {
		remote := config.RemoteConfig{
			Host: c.SSHHost, Port: c.SSHPort, User: c.SSHUser, Path: c.SSHPath,
		}
		if err := remote.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// checkOutputsSpareInputs rejects any text, PNG or CSV output that resolves to
// one of the input images.
func (c *RunnerConfig) checkOutputsSpareInputs() error {
	inputs := make(map[string]string, len(c.Inputs))
	for _, in := range c.Inputs {
		inputs[absPath(in)] = in
	}

	for _, in := range c.Inputs {
		txt, png := c.OutputPaths(in)
		outputs := []struct{ flag, path string }{
			{"-o", txt},
			{"-png", png},
			{"-csv", c.inOutputDir(c.HistoryCSV)},
		}
		for _, out := range outputs {
			if out.path == "" {
				continue
			}
			if src, ok := inputs[absPath(out.path)]; ok {
				return fmt.Errorf("%s %s would overwrite input image %s", out.flag, out.path, src)
			}
		}
	}
	return nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// PrintUsage prints the help message.
func PrintUsage() {
	fmt.Fprintf(os.Stderr, `AsciiForge - image to ASCII art converter

Usage: asciiforge [flags] [image ...]
       asciiforge help    (show this message)
       asciiforge         (no arguments: open the GUI)

CONVERSION:
  -i, -input <file>        Input image, PNG/JPEG/GIF/BMP/WebP (repeatable)
  -w, -width <num>         Output width in glyphs (default: 100)
  -ramp <glyphs>           11 glyphs, darkest first (default: "@#S%%?*+;:,.")
  -resample <name>         catmullrom, nearest, bilinear or lanczos (default: catmullrom)
  -aspect <ratio>          Glyph width/height ratio (default: 0.55)
  -config <file>           TOML or YAML config file
  -save-config <file>      Write the effective settings to a config file
  -watch                   Reconvert whenever the input file changes

OUTPUT:
  -o, -output <file>       Text file for the art (default: ascii_image.txt, '-' = none)
  -dir <path>              Output directory
  -png <file>              Also render the art as a PNG image
  -csv <file>              Append a row per conversion to a history CSV
  -q, -quiet               Do not print the art to stdout
  -v, -verbose             Verbose output

REMOTE PUBLISH:
  -ssh <host>              Write the art to a file on this SSH host
  -user <name>             SSH username (default: $USER)
  -key <path>              SSH private key path
  -password <pwd>          SSH password (insecure, prefer -key)
  -ssh-port <num>          SSH port (default: 22)
  -remote-path <file>      Remote file (default: /etc/motd)
  -append                  Append instead of replacing the remote file
  -backup                  Keep a .bak copy of the remote file (default: true)

EXAMPLES:
  # Convert a photo at 80 columns
  asciiforge -w 80 cat.jpg

  # Several images with the Lanczos filter into ./art
  asciiforge -resample lanczos -dir art a.png b.png

  # Keep a text and PNG rendering up to date while editing
  asciiforge -watch -o logo.txt -png logo_ascii.png logo.png

  # Use the art as a login banner
  asciiforge -w 60 -ssh pi.local -user pi -key ~/.ssh/id_ed25519 logo.png

`)
}
