package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shouni/go-utils/envutil"
)

// Defaults for values that neither flags nor the environment override.
const (
	DefaultOutputDir       = "output"
	DefaultLogLevel        = "info"
	DefaultWorkers         = 4
	DefaultThumbnailWidth  = 1280
	DefaultThumbnailHeight = 720
)

// Environment variables read by Load.
const (
	EnvOutputDir = "TOOLKIT_OUTPUT_DIR"
	EnvFontDir   = "TOOLKIT_FONT_DIR"
	EnvLogLevel  = "TOOLKIT_LOG_LEVEL"
	EnvWorkers   = "TOOLKIT_WORKERS"
)

// Config holds the process-wide settings of the toolkit.
type Config struct {
	OutputDir string
	// FontDir, when set, is scanned for extra "Family-Weight.ttf" files.
	FontDir  string
	LogLevel string
	Workers  int
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		OutputDir: envutil.GetEnv(EnvOutputDir, DefaultOutputDir),
		FontDir:   envutil.GetEnv(EnvFontDir, ""),
		LogLevel:  envutil.GetEnv(EnvLogLevel, DefaultLogLevel),
		Workers:   DefaultWorkers,
	}
	if v := envutil.GetEnv(EnvWorkers, ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvWorkers, v)
		}
		cfg.Workers = n
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// SetupLogger installs a text handler on stderr as the default slog logger.
func SetupLogger(level string) error {
	l, err := ParseLevel(level)
	if err != nil {
		return err
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(h))
	return nil
}
