package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reelforge/reelforge/internal/config"
)

func TestNewLevels(t *testing.T) {
	cfg := config.DefaultConfig()
	log, closer, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer closer()

	if log.IsDebug() {
		t.Error("default logger should not be at debug level")
	}

	cfg.Verbose = true
	vlog, vcloser, err := New(&cfg)
	if err != nil {
		t.Fatalf("New verbose: %v", err)
	}
	defer vcloser()
	if !vlog.IsDebug() {
		t.Error("verbose logger should be at debug level")
	}
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	cfg := config.DefaultConfig()
	cfg.LogFile = path
	cfg.ColorMode = config.ColorNever

	log, closer, err := New(&cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Info("assembly started", "job", "test-123")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "assembly started") {
		t.Errorf("log file missing entry:\n%s", data)
	}
}
