package pipeline

import (
	"context"
	"os"
	"time"

	"github.com/reelforge/reelforge/internal/planner"
)

// validate confirms the finished output on disk and re-probes its actual
// duration. ffmpeg can exit zero and still leave a truncated file behind,
// so size is checked against the configured floor before the file is
// trusted.
func (o *Orchestrator) validate(ctx context.Context, job *BuildJob, enc planner.EncoderProfile, fellBack bool, start time.Time) (*Result, error) {
	info, err := os.Stat(job.OutputPath)
	if err != nil {
		return nil, &OutputValidationError{Path: job.OutputPath, Size: 0, Min: o.cfg.MinOutputBytes}
	}
	if info.Size() < o.cfg.MinOutputBytes {
		return nil, &OutputValidationError{Path: job.OutputPath, Size: info.Size(), Min: o.cfg.MinOutputBytes}
	}

	// Duration comes from the file itself, not from the plan. A probe
	// failure here means the container is unreadable, which is the same
	// defect as an undersized file.
	asset, err := o.analyzer.Analyze(ctx, job.OutputPath)
	if err != nil {
		return nil, &OutputValidationError{Path: job.OutputPath, Size: info.Size(), Min: o.cfg.MinOutputBytes}
	}

	return &Result{
		OutputPath:     job.OutputPath,
		ActualDuration: asset.Duration,
		OutputBytes:    info.Size(),
		Encoder:        enc,
		FellBack:       fellBack,
		Elapsed:        time.Since(start),
	}, nil
}
