package ffmpeg

import (
	"fmt"
	"strings"
	"time"
)

// TailLines is how many trailing stderr lines are kept for diagnostics.
const TailLines = 20

// TimeoutError reports an invocation that exceeded its wall-clock budget.
// The process was killed; there is no mid-transcode resume.
type TimeoutError struct {
	Timeout    time.Duration
	StderrTail []string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("ffmpeg timed out after %s", e.Timeout)
}

// FailedError reports a nonzero ffmpeg exit, carrying the captured
// diagnostic tail so the caller can surface it verbatim.
type FailedError struct {
	ExitCode   int
	StderrTail []string
}

func (e *FailedError) Error() string {
	if len(e.StderrTail) == 0 {
		return fmt.Sprintf("ffmpeg exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("ffmpeg exited with code %d: %s",
		e.ExitCode, e.StderrTail[len(e.StderrTail)-1])
}

// Tail returns the last n non-empty-trimmed lines of stderr output.
func Tail(stderr string, n int) []string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return nil
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
