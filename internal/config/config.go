// Package config holds runtime configuration: defaults, CLI flag parsing,
// YAML file and environment overlays, and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// --- Enum types for validated string fields ---

// Quality selects the output quality preset.
type Quality string

const (
	QualityUltra  Quality = "ultra"  // 1080x1920 @ 60fps, highest bitrate.
	QualityHigh   Quality = "high"   // 1080x1920 @ 30fps (default).
	QualityMedium Quality = "medium" // 720x1280 @ 30fps.
	QualityFast   Quality = "fast"   // 540x960 @ 24fps, speed over quality.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid from a YAML file and the environment, and then mutated
// by [ParseFlags] before being passed (by pointer) to packages that need it.
type Config struct {
	// External tool binaries.
	FFmpegBin  string // Default: "ffmpeg" (resolved on PATH).
	FFprobeBin string // Default: "ffprobe".

	// Job inputs (set from flags for single-shot CLI runs).
	BackgroundPath string
	NarrationPath  string
	MusicPath      string // Optional.
	Script         string
	ScriptFile     string // Alternative to Script; read at startup.
	StyleTag       string // Default: "default". Unknown tags fall back.
	OutputPath     string

	// Assembly settings.
	Quality        Quality // Default: "high".
	TargetDuration float64 // Seconds; 0 means derive from narration.
	BufferSeconds  float64 // Default: 1.5. Trim headroom after looping.
	MinDuration    float64 // Default: 5.0. Floor for derived targets.
	ChunkWords     int     // Default: 4 words per subtitle chunk.
	MusicGain      float64 // Default: 0.1 (~-20 dB) music attenuation.
	AudioBitrate   string  // Default: "192k".
	TempDir        string  // Default: os.TempDir().

	// Encoder selection.
	ForceSoftware bool // Skip hardware candidates entirely.

	// Executor limits.
	TranscodeTimeout time.Duration // Default: 300s per ffmpeg pass.
	ProbeTimeout     time.Duration // Default: 30s for probes and test encodes.
	MaxConcurrent    int           // Default: 2 concurrent ffmpeg processes.

	// Output validation.
	MinOutputBytes int64 // Default: 1000. Smaller outputs are failures.

	// Platform optimization (optional post-step).
	Platform string // e.g. "youtube_shorts"; empty disables.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults. Used as the base before
// [LoadYAML], [LoadEnv], and [ParseFlags] apply overrides (in that order, so
// flags win over environment, which wins over the file).
func DefaultConfig() Config {
	return Config{
		FFmpegBin:        "ffmpeg",
		FFprobeBin:       "ffprobe",
		StyleTag:         "default",
		Quality:          QualityHigh,
		BufferSeconds:    1.5,
		MinDuration:      5.0,
		ChunkWords:       4,
		MusicGain:        0.1,
		AudioBitrate:     "192k",
		TempDir:          os.TempDir(),
		TranscodeTimeout: 300 * time.Second,
		ProbeTimeout:     30 * time.Second,
		MaxConcurrent:    2,
		MinOutputBytes:   1000,
		ColorMode:        ColorAuto,
	}
}

// Validate checks enum fields and numeric ranges. Called after all overlays
// have been applied.
func (c *Config) Validate() error {
	switch c.Quality {
	case QualityUltra, QualityHigh, QualityMedium, QualityFast:
	default:
		return fmt.Errorf("invalid quality %q (want ultra, high, medium, or fast)", c.Quality)
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always, or never)", c.ColorMode)
	}

	if c.TargetDuration < 0 {
		return errors.New("target duration must not be negative")
	}
	if c.BufferSeconds < 0 {
		return errors.New("buffer seconds must not be negative")
	}
	if c.ChunkWords <= 0 {
		return errors.New("chunk words must be positive")
	}
	if c.MusicGain < 0 || c.MusicGain > 1 {
		return errors.New("music gain must be between 0 and 1")
	}
	if c.TranscodeTimeout <= 0 || c.ProbeTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.MaxConcurrent <= 0 {
		return errors.New("max concurrent must be positive")
	}
	return nil
}

// ValidateJob checks that the flags describe a runnable build job. Split from
// Validate so --check can run without job inputs.
func (c *Config) ValidateJob() error {
	if c.BackgroundPath == "" {
		return errors.New("background video path is required")
	}
	if c.NarrationPath == "" {
		return errors.New("narration audio path is required")
	}
	if c.OutputPath == "" {
		return errors.New("output path is required")
	}
	if c.Script == "" && c.ScriptFile == "" {
		return errors.New("script text or script file is required")
	}
	return nil
}

// ResolveScript loads ScriptFile into Script when Script itself is empty.
func (c *Config) ResolveScript() error {
	if c.Script != "" || c.ScriptFile == "" {
		return nil
	}
	data, err := os.ReadFile(c.ScriptFile)
	if err != nil {
		return fmt.Errorf("read script file: %w", err)
	}
	c.Script = string(data)
	return nil
}
