package probe

import "fmt"

// MediaAsset holds the stream metadata the pipeline needs from one input
// file. Produced on demand by [Analyzer.Analyze]; never persisted.
type MediaAsset struct {
	Path     string
	Duration float64 // Seconds.
	Width    int     // 0 for audio-only files.
	Height   int
	FPS      float64 // 0 when unknown or audio-only.
	HasAudio bool
}

// IsPortrait reports whether the asset is taller than it is wide.
func (a *MediaAsset) IsPortrait() bool {
	return a.Height > a.Width
}

// HasVideo reports whether the asset carries a video stream.
func (a *MediaAsset) HasVideo() bool {
	return a.Width > 0 && a.Height > 0
}

// AnalysisError reports an input file that neither ffprobe nor the fallback
// clip reader could read. It is job-fatal: retrying with the same input
// cannot succeed.
type AnalysisError struct {
	Path string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analyze %s: %v", e.Path, e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
