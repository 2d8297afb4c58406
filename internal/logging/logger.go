// Package logging constructs the process-wide hclog logger from config.
// Components receive the logger (or a Named sub-logger) by injection; no
// package-level logger globals.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/reelforge/reelforge/internal/config"
)

// New builds a leveled hclog.Logger from cfg. When cfg.LogFile is set, log
// lines are tee'd to the file (colors stripped by hclog on non-TTY writers).
// The returned closer releases the file sink; it is a no-op when no file
// sink was opened.
func New(cfg *config.Config) (hclog.Logger, func() error, error) {
	level := hclog.Info
	if cfg.Verbose {
		level = hclog.Debug
	}

	var out io.Writer = os.Stdout
	closer := func() error { return nil }

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(os.Stdout, f)
		closer = f.Close
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "reelforge",
		Level:  level,
		Output: out,
		Color:  colorOption(cfg.ColorMode),
	})
	return logger, closer, nil
}

// colorOption maps the config color mode onto hclog's color behavior.
// "auto" defers to hclog's own TTY detection.
func colorOption(mode config.ColorMode) hclog.ColorOption {
	switch mode {
	case config.ColorAlways:
		return hclog.ForceColor
	case config.ColorNever:
		return hclog.ColorOff
	default:
		return hclog.AutoColor
	}
}
