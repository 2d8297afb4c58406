package planner

import "github.com/reelforge/reelforge/internal/config"

// Preset holds the resolved output geometry and rate-control hints for one
// quality tier. Immutable configuration, not tied to a job.
type Preset struct {
	Name    string
	Width   int
	Height  int
	FPS     int
	Bitrate string // Target bitrate hint, e.g. "2M".
	Maxrate string
	Bufsize string
	// QualityFactor is the constant-quality knob: CRF for libx264, CQ for
	// the hardware encoders. Lower is better quality.
	QualityFactor int
}

// presets is the static quality table: all vertical 9:16, stepping down
// resolution and frame rate.
var presets = map[config.Quality]Preset{
	config.QualityUltra:  {Name: "ultra", Width: 1080, Height: 1920, FPS: 60, Bitrate: "4M", Maxrate: "6M", Bufsize: "8M", QualityFactor: 18},
	config.QualityHigh:   {Name: "high", Width: 1080, Height: 1920, FPS: 30, Bitrate: "2M", Maxrate: "3M", Bufsize: "4M", QualityFactor: 23},
	config.QualityMedium: {Name: "medium", Width: 720, Height: 1280, FPS: 30, Bitrate: "1M", Maxrate: "1500k", Bufsize: "2M", QualityFactor: 28},
	config.QualityFast:   {Name: "fast", Width: 540, Height: 960, FPS: 24, Bitrate: "500k", Maxrate: "750k", Bufsize: "1M", QualityFactor: 32},
}

// PresetFor resolves a quality tier, falling back to "high" for unknown
// values (config validation normally rejects those first).
func PresetFor(q config.Quality) Preset {
	if p, ok := presets[q]; ok {
		return p
	}
	return presets[config.QualityHigh]
}
