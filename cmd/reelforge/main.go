// Command reelforge is the entrypoint for the reelforge video assembler CLI.
// It layers config (defaults, YAML file, environment, flags), then either
// runs system diagnostics (--check) or assembles one video.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/reelforge/reelforge/internal/check"
	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/display"
	"github.com/reelforge/reelforge/internal/encoder"
	"github.com/reelforge/reelforge/internal/ffmpeg"
	"github.com/reelforge/reelforge/internal/logging"
	"github.com/reelforge/reelforge/internal/pipeline"
	"github.com/reelforge/reelforge/internal/planner"
	"github.com/reelforge/reelforge/internal/probe"
)

func main() {
	os.Exit(run())
}

func run() int {
	// 1. Layer config: defaults, then file, environment, and flags, in
	// ascending precedence.
	cfg := config.DefaultConfig()
	if path := config.FindConfigFile(); path != "" {
		if err := config.LoadYAML(path, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "reelforge: %v\n", err)
			return 1
		}
	}
	if err := config.LoadEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "reelforge: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg); err != nil {
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "reelforge: %v\n", err)
		return 1
	}

	log, closeLogs, err := logging.New(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reelforge: %v\n", err)
		return 1
	}
	defer closeLogs()

	// 2. Diagnostics mode runs without job inputs and always exits zero.
	if cfg.CheckOnly {
		check.RunCheck(&cfg, log)
		return 0
	}

	// 3. Validate the job inputs and fail fast on missing tools.
	if err := cfg.ValidateJob(); err != nil {
		log.Error(err.Error())
		log.Error("run with -h for usage")
		return 1
	}
	if err := cfg.ResolveScript(); err != nil {
		log.Error(err.Error())
		return 1
	}
	if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
		log.Error("cannot create output directory", "error", err)
		return 1
	}
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error(err.Error())
		return 1
	}

	// Ctrl-C cancels the in-flight ffmpeg process and lets the pipeline's
	// cleanup run before exit.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Wire the pipeline and run the single build job.
	limiter := ffmpeg.NewLimiter(cfg.MaxConcurrent)
	runner := ffmpeg.NewExecutor(&cfg, limiter, log)
	analyzer := probe.NewAnalyzer(&cfg, log)
	caps := encoder.NewService(&cfg, runner, log)
	orch := pipeline.New(&cfg, analyzer, caps, runner, log)

	job := pipeline.NewJob()
	job.BackgroundPath = cfg.BackgroundPath
	job.NarrationPath = cfg.NarrationPath
	job.MusicPath = cfg.MusicPath
	job.Script = cfg.Script
	job.StyleTag = cfg.StyleTag
	job.OutputPath = cfg.OutputPath
	job.TargetDuration = cfg.TargetDuration

	result, err := orch.Build(ctx, job)
	if err != nil {
		return 1
	}
	display.PrintSummary(os.Stdout, result)

	// 5. Optional platform pass: re-encode only when the output exceeds
	// the platform's size cap.
	if cfg.Platform != "" {
		optimized, err := orch.OptimizeForPlatform(ctx, result, cfg.Platform)
		if err != nil {
			log.Error("platform optimization failed", "error", err)
			return 1
		}
		if optimized != result.OutputPath {
			if info, err := os.Stat(optimized); err == nil {
				kbps := 0
				if p, ok := planner.PlatformFor(cfg.Platform); ok {
					kbps = p.TargetBitrateKbps(result.ActualDuration)
				}
				display.PrintOptimized(os.Stdout, optimized, result.OutputBytes, info.Size(), int64(kbps))
			}
		}
	}
	return 0
}
