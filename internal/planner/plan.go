package planner

import (
	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/filtergraph"
	"github.com/reelforge/reelforge/internal/probe"
)

// AssemblyPlan holds the complete set of decisions for assembling one
// output video. It is produced by BuildPlan and consumed by the ffmpeg
// package to construct command arguments. Encoder choice is deliberately
// not part of the plan: the orchestrator supplies it per attempt so the
// software fallback can replay the same plan with a different encoder.
type AssemblyPlan struct {
	// Inputs.
	BackgroundPath string
	NarrationPath  string
	MusicPath      string // "" when the job has no music.

	// Intermediates and output.
	TempVisualPath string
	SubtitlePath   string // "" when the script produced no chunks.
	OutputPath     string

	// Timing.
	Target float64 // Effective target duration in seconds.
	Loop   Reconciled

	// Rendering.
	Preset       Preset
	Filters      filtergraph.Spec
	AudioBitrate string
}

// HasMusic reports whether the assembly pass mixes a music track.
func (p *AssemblyPlan) HasMusic() bool { return p.MusicPath != "" }

// PlanInputs carries the per-job values BuildPlan cannot derive from config:
// probed assets, the reconciliation decision, and the pipeline's temp-file
// paths.
type PlanInputs struct {
	Background     *probe.MediaAsset
	Target         float64
	Loop           Reconciled
	TempVisualPath string
	SubtitlePath   string
	MusicPath      string
	NarrationPath  string
	OutputPath     string
}

// BuildPlan resolves the quality preset and composes the filter plan for
// both transcoding passes around the caller's reconciliation decision.
func BuildPlan(cfg *config.Config, in PlanInputs) *AssemblyPlan {
	preset := PresetFor(cfg.Quality)

	filters := filtergraph.Build(
		in.Background,
		preset.Width, preset.Height, preset.FPS,
		in.SubtitlePath,
		in.MusicPath != "",
		cfg.MusicGain,
	)

	return &AssemblyPlan{
		BackgroundPath: in.Background.Path,
		NarrationPath:  in.NarrationPath,
		MusicPath:      in.MusicPath,
		TempVisualPath: in.TempVisualPath,
		SubtitlePath:   in.SubtitlePath,
		OutputPath:     in.OutputPath,
		Target:         in.Target,
		Loop:           in.Loop,
		Preset:         preset,
		Filters:        filters,
		AudioBitrate:   cfg.AudioBitrate,
	}
}
