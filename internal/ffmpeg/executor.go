package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/reelforge/reelforge/internal/config"
)

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	ExitCode   int
	StderrTail []string
}

// Runner abstracts ffmpeg invocation so the orchestrator and the capability
// prober can be tested against fakes.
type Runner interface {
	// Run executes ffmpeg with args under a hard wall-clock timeout.
	// A nil error means exit code zero; it is NOT proof of a usable
	// output file (callers must validate separately).
	Run(ctx context.Context, args []string, timeout time.Duration) (ExecResult, error)
	// Output executes ffmpeg and returns its stdout (capability listings).
	Output(ctx context.Context, args []string, timeout time.Duration) ([]byte, error)
}

// Executor is the production Runner. It launches the configured ffmpeg
// binary as a subprocess, enforces timeouts via context, and captures the
// stderr tail for error classification.
type Executor struct {
	bin     string
	verbose bool
	limiter *Limiter
	log     hclog.Logger
}

// NewExecutor builds an Executor from config. The limiter caps concurrent
// ffmpeg processes across jobs; pass nil to run uncapped.
func NewExecutor(cfg *config.Config, limiter *Limiter, log hclog.Logger) *Executor {
	return &Executor{
		bin:     cfg.FFmpegBin,
		verbose: cfg.Verbose,
		limiter: limiter,
		log:     log.Named("ffmpeg"),
	}
}

// Run implements Runner. In verbose mode stderr is tee'd to the terminal in
// real time; otherwise it is captured silently for classification.
func (e *Executor) Run(ctx context.Context, args []string, timeout time.Duration) (ExecResult, error) {
	if e.limiter != nil {
		if err := e.limiter.Acquire(ctx); err != nil {
			return ExecResult{ExitCode: -1}, err
		}
		defer e.limiter.Release()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	e.log.Debug("exec", "bin", e.bin, "args", args)

	cmd := exec.CommandContext(ctx, e.bin, args...)
	// Without a wait delay, Run blocks on the stderr pipe until every
	// descendant of a killed process exits, which unbounds the timeout.
	cmd.WaitDelay = time.Second
	var stderrBuf bytes.Buffer
	if e.verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	tail := Tail(stderrBuf.String(), TailLines)

	if err == nil {
		return ExecResult{ExitCode: 0, StderrTail: tail}, nil
	}

	// The context deadline firing means the process was killed at the
	// wall-clock limit, whatever exit code the kill produced.
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ExecResult{ExitCode: -1, StderrTail: tail},
			&TimeoutError{Timeout: timeout, StderrTail: tail}
	}

	// A parent-context cancel (interrupt) is neither a timeout nor an
	// encoder failure; surface it as-is so no fallback is attempted.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ExecResult{ExitCode: -1, StderrTail: tail}, ctxErr
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return ExecResult{ExitCode: code, StderrTail: tail},
		&FailedError{ExitCode: code, StderrTail: tail}
}

// Output implements Runner for invocations whose stdout matters (e.g. the
// encoder capability listing). Not limiter-gated: these are cheap.
func (e *Executor) Output(ctx context.Context, args []string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, e.bin, args...).Output()
	if err != nil {
		return nil, err
	}
	return out, nil
}
