package probe

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// The lightweight clip reader: when ffprobe itself fails (truncated index,
// exotic container), ffmpeg can often still open the file and print stream
// metadata in its banner. We run a null decode of the first frames and
// scrape duration, dimensions, and audio presence from stderr.

var (
	reBannerDuration = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2})\.(\d{2})`)
	reBannerVideo    = regexp.MustCompile(`Stream #\d+:\d+.*: Video: .*?(\d{2,5})x(\d{2,5})`)
	reBannerFPS      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*fps`)
	reBannerAudio    = regexp.MustCompile(`Stream #\d+:\d+.*: Audio:`)
)

func (a *Analyzer) clipRead(ctx context.Context, path string) (*MediaAsset, error) {
	cmd := exec.CommandContext(ctx, a.cfg.FFmpegBin,
		"-hide_banner", "-nostdin",
		"-i", path,
		"-t", "0.1",
		"-f", "null", "-",
	)

	// The banner goes to stderr; the command may exit nonzero for files
	// ffmpeg can read but not fully decode, so the exit code is ignored
	// as long as a duration was printed.
	out, err := cmd.CombinedOutput()
	asset, parseErr := ParseBanner(path, string(out))
	if parseErr != nil {
		if err != nil {
			return nil, fmt.Errorf("ffmpeg open: %w", err)
		}
		return nil, parseErr
	}
	return asset, nil
}

// ParseBanner extracts a MediaAsset from ffmpeg banner output. Exported for
// testing without a real ffmpeg binary.
func ParseBanner(path, banner string) (*MediaAsset, error) {
	m := reBannerDuration.FindStringSubmatch(banner)
	if m == nil {
		return nil, fmt.Errorf("no duration in ffmpeg output for %q", path)
	}

	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.Atoi(m[3])
	cs, _ := strconv.Atoi(m[4])
	duration := float64(h)*3600 + float64(min)*60 + float64(sec) + float64(cs)/100
	if duration <= 0 {
		return nil, fmt.Errorf("zero duration in ffmpeg output for %q", path)
	}

	asset := &MediaAsset{
		Path:     path,
		Duration: duration,
		HasAudio: reBannerAudio.MatchString(banner),
	}

	if v := reBannerVideo.FindStringSubmatch(banner); v != nil {
		asset.Width, _ = strconv.Atoi(v[1])
		asset.Height, _ = strconv.Atoi(v[2])
		if f := reBannerFPS.FindStringSubmatch(banner); f != nil {
			asset.FPS, _ = strconv.ParseFloat(f[1], 64)
		}
	}

	return asset, nil
}
