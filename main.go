package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"fyne.io/fyne/v2/app"
	log "github.com/sirupsen/logrus"

	"asciiforge/internal/cli"
	"asciiforge/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		os.Exit(1)
	}

	// No flags provided or help requested = use GUI
	if cfg == nil {
		a := app.NewWithID("com.asciiforge.gui")
		win := ui.BuildMainWindow(a)
		win.ShowAndRun()
		return
	}

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	log.SetLevel(log.WarnLevel)
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := runCLI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCLI(cfg *cli.RunnerConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Watch {
		if !cfg.Verbose {
			log.SetLevel(log.InfoLevel)
		}
		if cfg.SaveConfig != "" {
			if _, err := cli.Run(ctx, &cli.RunnerConfig{SaveConfig: cfg.SaveConfig, Config: cfg.Config}, os.Stdout); err != nil {
				return err
			}
		}
		return cli.Watch(ctx, cfg, os.Stdout)
	}

	_, err := cli.Run(ctx, cfg, os.Stdout)
	return err
}
