package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/youruser/cardtoolkit/internal/bitmap"
	"github.com/youruser/cardtoolkit/internal/config"
	"github.com/youruser/cardtoolkit/internal/fonts"
)

// app carries what every subcommand shares once the root pre-run has
// resolved configuration.
type app struct {
	cfg    *config.Config
	fonts  *fonts.Registry
	loader *bitmap.Loader

	// persistent flag values; empty or zero means "use the environment"
	outputDir string
	fontDir   string
	logLevel  string
	workers   int
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:               "toolkit",
		Short:             "Compose thumbnails and card news images from text and pictures",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.outputDir, "output-dir", "o", "", "directory for written images (default $"+config.EnvOutputDir+" or "+config.DefaultOutputDir+")")
	pf.StringVar(&a.fontDir, "font-dir", "", "directory of extra Family-Weight.ttf fonts (default $"+config.EnvFontDir+")")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (default $"+config.EnvLogLevel+" or "+config.DefaultLogLevel+")")
	pf.IntVar(&a.workers, "workers", 0, "concurrent card paints (default $"+config.EnvWorkers+" or 4)")

	root.AddCommand(
		newThumbnailCmd(a),
		newCardNewsCmd(a),
		newSplitCmd(),
		newFontsCmd(a),
		newQRCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.outputDir != "" {
		cfg.OutputDir = a.outputDir
	}
	if a.fontDir != "" {
		cfg.FontDir = a.fontDir
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.workers > 0 {
		cfg.Workers = a.workers
	}
	if err := config.SetupLogger(cfg.LogLevel); err != nil {
		return err
	}

	a.cfg = cfg
	a.fonts = fonts.NewRegistry()
	a.loader = bitmap.NewLoader(bitmap.DefaultTTL)
	if cfg.FontDir != "" {
		n, err := a.fonts.LoadDir(cfg.FontDir)
		if err != nil {
			return fmt.Errorf("load fonts: %w", err)
		}
		slog.Debug("fonts loaded", "dir", cfg.FontDir, "count", n)
	}
	return nil
}
