package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"asciiforge/internal/ascii"
	"asciiforge/internal/config"
	"asciiforge/internal/export"
	"asciiforge/internal/format"
	"asciiforge/internal/imagefile"
	"asciiforge/internal/model"
	"asciiforge/internal/ssh"
)

// RunnerConfig holds all CLI options for a conversion run.
type RunnerConfig struct {
	Inputs     []string
	Config     config.Config // effective settings: defaults < config file < flags
	ConfigPath string
	SaveConfig string
	Watch      bool

	// Output
	Output     string // text file; "-" = none
	PNG        string
	HistoryCSV string
	Quiet      bool
	Verbose    bool

	// Remote publish (optional)
	SSHHost     string
	SSHUser     string
	SSHKeyPath  string
	SSHPassword string
	SSHPort     int
	SSHPath     string
	SSHAppend   bool
	SSHBackup   bool
}

// OutputPaths returns where the art converted from input is written. With
// several inputs each gets its own "<name>_ascii.txt"; an explicit -png then
// only switches PNG rendering on. Relative paths land in Config.OutputDir.
func (c *RunnerConfig) OutputPaths(input string) (txt, png string) {
	if len(c.Inputs) > 1 {
		art := export.ArtPath("", input, "")
		if c.Output != "-" {
			txt = art
		}
		if c.PNG != "" {
			png = export.WithExt(art, ".png")
		}
	} else {
		if c.Output != "-" {
			txt = c.Output
		}
		png = c.PNG
	}
	return c.inOutputDir(txt), c.inOutputDir(png)
}

func (c *RunnerConfig) inOutputDir(path string) string {
	if path == "" || c.Config.OutputDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Config.OutputDir, path)
}

// ConvertFile loads one image, converts it and writes the configured outputs.
// The returned result is never nil; on failure its Error field is set.
func ConvertFile(ctx context.Context, cfg *RunnerConfig, conv *ascii.Converter, input string) (*model.ConversionResult, error) {
	start := time.Now()
	res := &model.ConversionResult{
		ID:        export.NextConversionID(start),
		Timestamp: start,
		Source:    input,
		Resampler: string(conv.Resampler()),
		Ramp:      conv.Ramp().String(),
		Mode:      "CLI",
	}

	err := convertInto(ctx, cfg, conv, res)
	res.Elapsed = time.Since(start)
	if err != nil {
		res.Error = err.Error()
	}

	if cfg.HistoryCSV != "" {
		path := cfg.inOutputDir(cfg.HistoryCSV)
		if csvErr := writeHistory(path, res); csvErr != nil {
			log.WithError(csvErr).Warn("could not update history")
		}
	}
	return res, err
}

func convertInto(ctx context.Context, cfg *RunnerConfig, conv *ascii.Converter, res *model.ConversionResult) error {
	img, err := imagefile.Load(res.Source)
	if err != nil {
		return err
	}
	res.SourceWidth, res.SourceHeight = img.Width(), img.Height()
	log.WithFields(log.Fields{
		"source": res.Source,
		"format": img.Format,
		"size":   fmt.Sprintf("%dx%d", res.SourceWidth, res.SourceHeight),
	}).Debug("decoded image")

	grid, err := conv.ConvertContext(ctx, img, cfg.Config.Width)
	if err != nil {
		return fmt.Errorf("convert %s: %w", res.Source, err)
	}
	res.Art = grid
	res.Width, res.Height = grid.Width(), grid.Height()

	txt, png := cfg.OutputPaths(res.Source)
	if txt != "" {
		if err := export.EnsureDir(txt); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := export.WriteTXT(txt, grid); err != nil {
			return err
		}
		res.SavedTo = txt
	}
	if png != "" {
		if err := export.EnsureDir(png); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := export.WritePNG(png, grid); err != nil {
			return err
		}
		log.WithField("path", png).Debug("rendered png")
	}
	return nil
}

func writeHistory(path string, res *model.ConversionResult) error {
	if err := export.EnsureDir(path); err != nil {
		return err
	}
	return export.WriteCSV(path, []model.ConversionResult{*res})
}

// Run converts every input, prints the results to w and publishes the art
// when an SSH host is configured. A failing input does not stop the others;
// all failures are returned together.
func Run(ctx context.Context, cfg *RunnerConfig, w io.Writer) ([]model.ConversionResult, error) {
	if cfg.SaveConfig != "" {
		if err := config.Save(cfg.SaveConfig, cfg.Config); err != nil {
			return nil, err
		}
		log.WithField("path", cfg.SaveConfig).Info("settings saved")
	}
	if len(cfg.Inputs) == 0 {
		return nil, nil
	}

	conv, err := cfg.Config.NewConverter()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		results []model.ConversionResult
		errs    []error
	)
	for _, input := range cfg.Inputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := ConvertFile(ctx, cfg, conv, input)
		results = append(results, *res)
		if err != nil {
			log.WithField("source", input).WithError(err).Error("conversion failed")
			errs = append(errs, err)
			continue
		}
		PrintResult(w, res, !cfg.Quiet, cfg.Verbose)
	}

	if cfg.SSHHost != "" {
		if err := publishResults(cfg, results); err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}

func publishResults(cfg *RunnerConfig, results []model.ConversionResult) error {
	var grids []model.Grid
	for _, r := range results {
		if r.Error == "" && !r.Art.Empty() {
			grids = append(grids, r.Art)
		}
	}
	if len(grids) == 0 {
		return nil
	}

	pub := NewRemotePublisher(*cfg)
	if err := pub.Connect(); err != nil {
		return err
	}
	defer pub.Close()

	for i, g := range grids {
		// only the first grid replaces the file
		if err := pub.Publish(g, cfg.SSHAppend || i > 0, cfg.SSHBackup && i == 0); err != nil {
			return err
		}
	}
	return nil
}

// RemotePublisher writes art to a file on a remote host via SSH.
type RemotePublisher struct {
	cfg    RunnerConfig
	client *ssh.Client
	pub    *ssh.Publisher
}

// NewRemotePublisher creates a publisher for the SSH settings in cfg.
func NewRemotePublisher(cfg RunnerConfig) *RemotePublisher {
	return &RemotePublisher{cfg: cfg}
}

// Connect establishes the SSH connection to the remote host.
func (r *RemotePublisher) Connect() error {
	client, err := ssh.Connect(ssh.ConnectConfig{
		Host:     r.cfg.SSHHost,
		Port:     r.cfg.SSHPort,
		User:     r.cfg.SSHUser,
		KeyPath:  r.cfg.SSHKeyPath,
		Password: r.cfg.SSHPassword,
	})
	if err != nil {
		return fmt.Errorf("SSH connect: %w", err)
	}
	r.client = client
	r.pub = ssh.NewPublisher(client)

	log.WithField("host", client.Host()).Info("connected")
	if osType, err := ssh.DetectOS(client); err == nil {
		log.WithField("os", osType).Debug("remote system")
	}
	return nil
}

// Publish writes grid to the configured remote path.
func (r *RemotePublisher) Publish(grid model.Grid, appendMode, backup bool) error {
	if r.pub == nil {
		return fmt.Errorf("not connected")
	}
	opts := ssh.PublishOptions{Append: appendMode, Backup: backup}
	if err := r.pub.Publish(grid, r.cfg.SSHPath, opts); err != nil {
		return err
	}
	log.WithFields(log.Fields{"host": r.cfg.SSHHost, "path": r.cfg.SSHPath}).Info("art published")
	return nil
}

// Close disconnects from the remote host.
func (r *RemotePublisher) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// PrintResult prints the art and, when summary is set, the conversion details.
func PrintResult(w io.Writer, result *model.ConversionResult, art, summary bool) {
	if art && !result.Art.Empty() {
		fmt.Fprintln(w, result.Art.String())
	}
	if summary {
		fmt.Fprintln(w, format.FormatResult(result))
	}
}
