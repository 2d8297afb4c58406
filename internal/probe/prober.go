package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/reelforge/reelforge/internal/config"
)

// Analyzer probes media files for the metadata the pipeline needs. It is
// read-only: analyzing a file never modifies it.
type Analyzer struct {
	cfg *config.Config
	log hclog.Logger
}

// NewAnalyzer returns an Analyzer using the configured ffprobe/ffmpeg
// binaries and probe timeout.
func NewAnalyzer(cfg *config.Config, log hclog.Logger) *Analyzer {
	return &Analyzer{cfg: cfg, log: log.Named("probe")}
}

// Analyze extracts duration, dimensions, frame rate, and audio presence for
// path. A single ffprobe JSON call is tried first; on failure the lightweight
// clip reader recovers what it can from the ffmpeg banner. Both failing
// yields an *AnalysisError. A missing audio stream is valid, not an error.
func (a *Analyzer) Analyze(ctx context.Context, path string) (*MediaAsset, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ProbeTimeout)
	defer cancel()

	asset, probeErr := a.ffprobe(ctx, path)
	if probeErr == nil {
		return asset, nil
	}
	a.log.Debug("ffprobe failed, trying clip reader", "path", path, "error", probeErr)

	asset, readErr := a.clipRead(ctx, path)
	if readErr == nil {
		return asset, nil
	}

	return nil, &AnalysisError{Path: path, Err: fmt.Errorf("%v; clip reader: %w", probeErr, readErr)}
}

// ffprobe runs a single ffprobe JSON call against path and converts the
// result to a MediaAsset.
func (a *Analyzer) ffprobe(ctx context.Context, path string) (*MediaAsset, error) {
	cmd := exec.CommandContext(ctx, a.cfg.FFprobeBin,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(path, out)
}

// ParseJSON converts raw ffprobe JSON output into a MediaAsset. Exported for
// testing without a real ffprobe binary.
func ParseJSON(path string, data []byte) (*MediaAsset, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildAsset(path, &raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	Duration     string         `json:"duration"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	RFrameRate   string         `json:"r_frame_rate"`
	Disposition  map[string]int `json:"disposition"`
}

// --- Conversion from wire types to the domain type ---

func buildAsset(path string, raw *ffprobeOutput) (*MediaAsset, error) {
	asset := &MediaAsset{
		Path:     path,
		Duration: parseFloat(raw.Format.Duration),
	}

	for i := range raw.Streams {
		s := &raw.Streams[i]
		switch s.CodecType {
		case "video":
			// Skip cover-art streams; they are stills, not the clip.
			if s.Disposition["attached_pic"] == 1 {
				continue
			}
			if asset.Width == 0 {
				asset.Width = s.Width
				asset.Height = s.Height
				asset.FPS = parseFrameRate(s.AvgFrameRate)
				if asset.FPS == 0 {
					asset.FPS = parseFrameRate(s.RFrameRate)
				}
			}
		case "audio":
			asset.HasAudio = true
			if asset.Duration == 0 {
				asset.Duration = parseFloat(s.Duration)
			}
		}
	}

	if asset.Duration <= 0 {
		return nil, fmt.Errorf("no usable duration in probe output for %q", path)
	}
	return asset, nil
}

// parseFrameRate converts ffprobe's fractional rate ("30000/1001") to a
// float. Returns 0 for empty, malformed, or zero-denominator values.
func parseFrameRate(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "0/0" {
		return 0
	}
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return parseFloat(s)
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// ffprobe returns numbers as strings.
func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
