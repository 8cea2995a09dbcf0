package cli

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"asciiforge/internal/format"
	"asciiforge/internal/watch"
)

// Watch converts the single input once and then again every time the file
// changes, until ctx is cancelled. Conversion errors are logged and do not
// stop watching.
func Watch(ctx context.Context, cfg *RunnerConfig, w io.Writer) error {
	conv, err := cfg.Config.NewConverter()
	if err != nil {
		return err
	}
	input := cfg.Inputs[0]

	convert := func(path string) {
		res, err := ConvertFile(ctx, cfg, conv, path)
		if err != nil {
			log.WithField("source", path).WithError(err).Error("conversion failed")
			return
		}
		PrintResult(w, res, !cfg.Quiet, cfg.Verbose)
		log.Info(format.FormatSummary(res))
	}

	convert(input)
	log.WithField("path", input).Info("watching for changes, press Ctrl+C to stop")
	return watch.New(input, convert).Run(ctx)
}
