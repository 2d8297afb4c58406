package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML config file schema. Pointer fields distinguish
// "absent" from zero values so the file only overrides what it sets.
type fileConfig struct {
	FFmpegBin  *string `yaml:"ffmpeg_bin"`
	FFprobeBin *string `yaml:"ffprobe_bin"`

	Quality        *string  `yaml:"quality"`
	StyleTag       *string  `yaml:"style"`
	BufferSeconds  *float64 `yaml:"buffer_seconds"`
	MinDuration    *float64 `yaml:"min_duration"`
	ChunkWords     *int     `yaml:"chunk_words"`
	MusicGain      *float64 `yaml:"music_gain"`
	AudioBitrate   *string  `yaml:"audio_bitrate"`
	TempDir        *string  `yaml:"temp_dir"`
	ForceSoftware  *bool    `yaml:"force_software"`
	MaxConcurrent  *int     `yaml:"max_concurrent"`
	MinOutputBytes *int64   `yaml:"min_output_bytes"`

	TranscodeTimeoutSec *int `yaml:"transcode_timeout_sec"`
	ProbeTimeoutSec     *int `yaml:"probe_timeout_sec"`

	LogFile   *string `yaml:"log_file"`
	ColorMode *string `yaml:"color"`
}

// LoadYAML overlays settings from the YAML file at path onto cfg. Enum and
// range validation is deferred to [Config.Validate].
func LoadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	applyString(&cfg.FFmpegBin, fc.FFmpegBin)
	applyString(&cfg.FFprobeBin, fc.FFprobeBin)
	if fc.Quality != nil {
		cfg.Quality = Quality(*fc.Quality)
	}
	applyString(&cfg.StyleTag, fc.StyleTag)
	applyFloat(&cfg.BufferSeconds, fc.BufferSeconds)
	applyFloat(&cfg.MinDuration, fc.MinDuration)
	applyInt(&cfg.ChunkWords, fc.ChunkWords)
	applyFloat(&cfg.MusicGain, fc.MusicGain)
	applyString(&cfg.AudioBitrate, fc.AudioBitrate)
	applyString(&cfg.TempDir, fc.TempDir)
	if fc.ForceSoftware != nil {
		cfg.ForceSoftware = *fc.ForceSoftware
	}
	applyInt(&cfg.MaxConcurrent, fc.MaxConcurrent)
	if fc.MinOutputBytes != nil {
		cfg.MinOutputBytes = *fc.MinOutputBytes
	}
	if fc.TranscodeTimeoutSec != nil {
		cfg.TranscodeTimeout = time.Duration(*fc.TranscodeTimeoutSec) * time.Second
	}
	if fc.ProbeTimeoutSec != nil {
		cfg.ProbeTimeout = time.Duration(*fc.ProbeTimeoutSec) * time.Second
	}
	applyString(&cfg.LogFile, fc.LogFile)
	if fc.ColorMode != nil {
		cfg.ColorMode = ColorMode(*fc.ColorMode)
	}
	return nil
}

// FindConfigFile searches the standard locations for a config file and
// returns the first that exists, or "" (non-fatal).
func FindConfigFile() string {
	locations := []string{
		"./reelforge.yaml",
		"./reelforge.yml",
		filepath.Join(os.Getenv("HOME"), ".reelforge", "config.yaml"),
		"/etc/reelforge/config.yaml",
	}
	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func applyFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
