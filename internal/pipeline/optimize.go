package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reelforge/reelforge/internal/ffmpeg"
	"github.com/reelforge/reelforge/internal/planner"
)

// OptimizeForPlatform re-encodes a finished output that exceeds a
// platform's size cap, targeting 90% of the cap. Files already under the
// cap are returned unchanged. The re-encode always runs on the same encoder
// that produced the original; a file small enough to re-encode is a file
// that encoder already handled once.
func (o *Orchestrator) OptimizeForPlatform(ctx context.Context, result *Result, platformName string) (string, error) {
	platform, ok := planner.PlatformFor(platformName)
	if !ok {
		return "", fmt.Errorf("unknown platform %q", platformName)
	}
	log := o.log.With("platform", platform.Name)

	if result.OutputBytes <= platform.MaxSizeBytes() {
		log.Debug("output within platform size cap", "bytes", result.OutputBytes)
		return result.OutputPath, nil
	}
	if result.ActualDuration > platform.MaxDuration {
		log.Warn("output exceeds platform duration cap",
			"duration_sec", result.ActualDuration, "max_sec", platform.MaxDuration)
	}

	kbps := platform.TargetBitrateKbps(result.ActualDuration)
	optimizedPath := optimizedName(result.OutputPath, platform.Name)
	log.Info("re-encoding for platform size cap",
		"bytes", result.OutputBytes, "cap_bytes", platform.MaxSizeBytes(), "bitrate_kbps", kbps)

	args := ffmpeg.BuildOptimizeArgs(result.OutputPath, optimizedPath, result.Encoder.Name, kbps)
	if _, err := o.runner.Run(ctx, args, o.cfg.TranscodeTimeout); err != nil {
		removeIfExists(optimizedPath)
		return "", err
	}

	info, err := os.Stat(optimizedPath)
	if err != nil || info.Size() < o.cfg.MinOutputBytes {
		removeIfExists(optimizedPath)
		var size int64
		if info != nil {
			size = info.Size()
		}
		return "", &OutputValidationError{Path: optimizedPath, Size: size, Min: o.cfg.MinOutputBytes}
	}
	log.Info("platform re-encode complete", "output", optimizedPath, "bytes", info.Size())
	return optimizedPath, nil
}

// optimizedName derives the platform-qualified output path:
// clip.mp4 -> clip_tiktok.mp4.
func optimizedName(path, platform string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_" + platform + ext
}
