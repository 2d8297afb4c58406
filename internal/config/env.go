package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadEnv overlays REELFORGE_* environment variables onto cfg. A .env file
// in the working directory is loaded first when present; a missing .env is
// not an error (variables may be set in the real environment).
func LoadEnv(cfg *Config) error {
	_ = godotenv.Load()

	if v := os.Getenv("REELFORGE_FFMPEG"); v != "" {
		cfg.FFmpegBin = v
	}
	if v := os.Getenv("REELFORGE_FFPROBE"); v != "" {
		cfg.FFprobeBin = v
	}
	if v := os.Getenv("REELFORGE_QUALITY"); v != "" {
		cfg.Quality = Quality(v)
	}
	if v := os.Getenv("REELFORGE_TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	if v := os.Getenv("REELFORGE_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("REELFORGE_FORCE_SOFTWARE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("REELFORGE_FORCE_SOFTWARE: %w", err)
		}
		cfg.ForceSoftware = b
	}
	if v := os.Getenv("REELFORGE_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REELFORGE_MAX_CONCURRENT: %w", err)
		}
		cfg.MaxConcurrent = n
	}
	return nil
}
