package pipeline

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/ffmpeg"
	"github.com/reelforge/reelforge/internal/planner"
	"github.com/reelforge/reelforge/internal/probe"
	"github.com/reelforge/reelforge/internal/subtitle"
)

// Analyzer is the media-probing dependency. Satisfied by *probe.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, path string) (*probe.MediaAsset, error)
}

// CapabilityService is the encoder-selection dependency. Satisfied by
// *encoder.Service.
type CapabilityService interface {
	Probe(ctx context.Context) (planner.EncoderProfile, error)
	Software(ctx context.Context) (planner.EncoderProfile, error)
}

// Orchestrator sequences the build stages for one job at a time. It holds
// no per-job state; a single Orchestrator serves concurrent Build calls
// from separate workers.
type Orchestrator struct {
	cfg      *config.Config
	analyzer Analyzer
	caps     CapabilityService
	runner   ffmpeg.Runner
	policy   ffmpeg.RetryPolicy
	log      hclog.Logger
}

// New wires an Orchestrator with the default single-fallback retry policy.
func New(cfg *config.Config, analyzer Analyzer, caps CapabilityService, runner ffmpeg.Runner, log hclog.Logger) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		analyzer: analyzer,
		caps:     caps,
		runner:   runner,
		policy:   ffmpeg.RetryPolicy{MaxFallbacks: 1, Retryable: retryable},
		log:      log.Named("pipeline"),
	}
}

// Build assembles one output video. It is synchronous and blocking; the
// caller owns worker dispatch. On success the returned Result carries the
// re-probed output duration; on failure the error is always a *Failure.
// Temp files are removed on every exit path.
func (o *Orchestrator) Build(ctx context.Context, job *BuildJob) (*Result, error) {
	start := time.Now()
	log := o.log.With("job", job.ID)
	job.stageTempPaths(o.cfg.TempDir)
	defer o.cleanup(job, log)

	// --- Analyzing ---
	log.Debug("state", "state", StateAnalyzing.String())
	narration, err := o.analyzer.Analyze(ctx, job.NarrationPath)
	if err != nil {
		return o.fail(job, err, log)
	}
	if !narration.HasAudio {
		return o.fail(job, &probe.AnalysisError{
			Path: job.NarrationPath,
			Err:  errors.New("narration has no audio stream"),
		}, log)
	}
	background, err := o.analyzer.Analyze(ctx, job.BackgroundPath)
	if err != nil {
		return o.fail(job, err, log)
	}
	if !background.HasVideo() {
		return o.fail(job, &probe.AnalysisError{
			Path: job.BackgroundPath,
			Err:  errors.New("background has no video stream"),
		}, log)
	}

	// Narration governs length; the caller's value is honored only when
	// explicitly set, and short targets floor at the configured minimum.
	target := job.TargetDuration
	if target <= 0 {
		target = narration.Duration
	}
	if target < o.cfg.MinDuration {
		target = o.cfg.MinDuration
	}
	log.Info("inputs analyzed",
		"narration_sec", narration.Duration,
		"background_sec", background.Duration,
		"target_sec", target)

	// --- Reconciling ---
	log.Debug("state", "state", StateReconciling.String())
	loop := planner.Reconcile(background, target, o.cfg.BufferSeconds)
	if loop.LoopCount > 1 {
		log.Info("background shorter than target, looping",
			"loops", loop.LoopCount, "trim_sec", loop.TrimTo)
	}

	// --- SubtitleBuilding ---
	log.Debug("state", "state", StateSubtitleBuilding.String())
	subtitlePath := ""
	chunks := subtitle.ComputeChunks(job.Script, target, job.StyleTag, o.cfg.ChunkWords)
	if len(chunks) > 0 {
		if err := subtitle.WriteASS(job.TempSubtitlePath, chunks[0].Style, chunks); err != nil {
			return o.fail(job, err, log)
		}
		subtitlePath = job.TempSubtitlePath
		log.Info("subtitles timed", "chunks", len(chunks), "style", chunks[0].Style.Name)
	} else {
		// An empty script is a job without captions, not a failed job.
		log.Info("no subtitle chunks, skipping burn-in")
	}

	// --- EncoderSelecting ---
	log.Debug("state", "state", StateEncoderSelecting.String())
	enc, err := o.caps.Probe(ctx)
	if err != nil {
		return o.fail(job, err, log)
	}

	fallbacks := 0
	for {
		// --- FilterBuilding ---
		log.Debug("state", "state", StateFilterBuilding.String())
		plan := planner.BuildPlan(o.cfg, planner.PlanInputs{
			Background:     background,
			Target:         target,
			Loop:           loop,
			TempVisualPath: job.TempVisualPath,
			SubtitlePath:   subtitlePath,
			MusicPath:      job.MusicPath,
			NarrationPath:  job.NarrationPath,
			OutputPath:     job.OutputPath,
		})

		// --- Transcoding ---
		log.Debug("state", "state", StateTranscoding.String())
		err = o.transcode(ctx, plan, enc, log)
		if err == nil {
			// --- Validating ---
			log.Debug("state", "state", StateValidating.String())
			result, verr := o.validate(ctx, job, enc, fallbacks > 0, start)
			if verr == nil {
				log.Info("build succeeded",
					"output", result.OutputPath,
					"duration_sec", result.ActualDuration,
					"encoder", result.Encoder.Name,
					"elapsed", result.Elapsed)
				return result, nil
			}
			err = verr
		}

		// Exactly one fallback: a failed hardware attempt is replayed on
		// the software encoder; everything else is terminal.
		if !o.policy.ShouldFallback(fallbacks, enc.Hardware, err) {
			return o.fail(job, err, log)
		}
		fallbacks++
		log.Warn("hardware transcode failed, retrying with software encoder", "error", err)
		removeIfExists(job.TempVisualPath)
		removeIfExists(job.OutputPath)

		enc, err = o.caps.Software(ctx)
		if err != nil {
			return o.fail(job, err, log)
		}
	}
}

// transcode runs both ffmpeg passes: visual track, then final assembly.
func (o *Orchestrator) transcode(ctx context.Context, plan *planner.AssemblyPlan, enc planner.EncoderProfile, log hclog.Logger) error {
	log.Debug("visual pass", "encoder", enc.Name, "loops", plan.Loop.LoopCount)
	if _, err := o.runner.Run(ctx, ffmpeg.BuildVisualArgs(plan, enc), o.cfg.TranscodeTimeout); err != nil {
		return err
	}

	log.Debug("assembly pass", "music", plan.HasMusic(), "subtitles", plan.SubtitlePath != "")
	if _, err := o.runner.Run(ctx, ffmpeg.BuildAssembleArgs(plan, enc), o.cfg.TranscodeTimeout); err != nil {
		return err
	}
	return nil
}

// fail classifies err, logs it with any diagnostic tail, removes a partial
// output, and returns the structured failure.
func (o *Orchestrator) fail(job *BuildJob, err error, log hclog.Logger) (*Result, error) {
	log.Debug("state", "state", StateFailed.String())
	f := classify(err)
	log.Error("build failed", "kind", string(f.Kind), "error", f.Message)
	for _, line := range f.DiagnosticTail {
		log.Error("  " + line)
	}
	removeIfExists(job.OutputPath)
	return nil, f
}

// cleanup removes the job's temp files. Removal failure is a warning, never
// a job failure; it runs on every exit path.
func (o *Orchestrator) cleanup(job *BuildJob, log hclog.Logger) {
	for _, path := range []string{job.TempVisualPath, job.TempSubtitlePath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Warn("temp cleanup failed", "path", path, "error", err)
		}
	}
}

func removeIfExists(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
