package ffmpeg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelforge/reelforge/internal/config"
)

// shExecutor runs /bin/sh instead of ffmpeg so process handling, exit-code
// classification, and timeout kills can be exercised without media files.
func shExecutor(t *testing.T) *Executor {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.FFmpegBin = "sh"
	return NewExecutor(&cfg, nil, hclog.NewNullLogger())
}

func TestExecutorRunSuccess(t *testing.T) {
	e := shExecutor(t)
	res, err := e.Run(context.Background(), []string{"-c", "exit 0"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecutorRunFailure(t *testing.T) {
	e := shExecutor(t)
	_, err := e.Run(context.Background(), []string{"-c", "echo frame drop >&2; exit 3"}, 5*time.Second)
	require.Error(t, err)

	var failed *FailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 3, failed.ExitCode)
	require.NotEmpty(t, failed.StderrTail)
	assert.Equal(t, "frame drop", failed.StderrTail[len(failed.StderrTail)-1])
}

func TestExecutorRunTimeout(t *testing.T) {
	e := shExecutor(t)
	start := time.Now()
	_, err := e.Run(context.Background(), []string{"-c", "sleep 5"}, 150*time.Millisecond)
	require.Error(t, err)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 150*time.Millisecond, timeout.Timeout)
	assert.Less(t, time.Since(start), 3*time.Second, "process should be killed at the deadline")
}

func TestExecutorRunCanceled(t *testing.T) {
	e := shExecutor(t)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := e.Run(ctx, []string{"-c", "sleep 5"}, 30*time.Second)
	require.Error(t, err)

	// An interrupt is not an encoder failure: it must not classify as a
	// timeout or a failed transcode, and must never trigger the fallback.
	assert.ErrorIs(t, err, context.Canceled)
	var failed *FailedError
	assert.False(t, errors.As(err, &failed), "cancel misreported as transcode failure")
	assert.False(t, DefaultRetryable(err), "cancel must not be fallback-eligible")
	assert.Less(t, time.Since(start), 3*time.Second, "cancel should stop the run promptly")
}

func TestExecutorOutput(t *testing.T) {
	e := shExecutor(t)
	out, err := e.Output(context.Background(), []string{"-c", "echo listing"}, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "listing\n", string(out))
}

func TestExecutorLimiterGatesRuns(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FFmpegBin = "sh"
	limiter := NewLimiter(1)
	e := NewExecutor(&cfg, limiter, hclog.NewNullLogger())

	// Hold the only slot; a gated run on a canceled context must give up
	// rather than wait forever.
	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Run(ctx, []string{"-c", "exit 0"}, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
