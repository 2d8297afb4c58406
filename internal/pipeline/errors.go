package pipeline

import (
	"errors"
	"fmt"

	"github.com/reelforge/reelforge/internal/encoder"
	"github.com/reelforge/reelforge/internal/ffmpeg"
	"github.com/reelforge/reelforge/internal/probe"
)

// Kind classifies a build failure for the caller.
type Kind string

const (
	KindAnalysis           Kind = "analysis"            // Input unreadable/corrupt; fatal.
	KindEncoderUnavailable Kind = "encoder_unavailable" // No usable encoder at all; fatal.
	KindTranscodeTimeout   Kind = "transcode_timeout"   // Wall-clock exceeded; fatal.
	KindTranscodeFailed    Kind = "transcode_failed"    // Nonzero exit; one fallback attempt.
	KindOutputValidation   Kind = "output_validation"   // Zero exit but missing/undersized output.
	KindInternal           Kind = "internal"            // Anything else.
)

// Failure is the structured error a caller receives: a kind, a message, and
// (for transcode-stage failures) the engine's diagnostic tail, surfaced
// verbatim and never swallowed.
type Failure struct {
	Kind           Kind
	Message        string
	DiagnosticTail []string
	err            error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.err }

// OutputValidationError reports a transcode that exited zero but left a
// missing or undersized output file. A zero exit code alone is not proof of
// success.
type OutputValidationError struct {
	Path string
	Size int64
	Min  int64
}

func (e *OutputValidationError) Error() string {
	return fmt.Sprintf("output %s is %d bytes (minimum %d)", e.Path, e.Size, e.Min)
}

// classify maps a stage error onto the failure taxonomy.
func classify(err error) *Failure {
	var analysisErr *probe.AnalysisError
	if errors.As(err, &analysisErr) {
		return &Failure{Kind: KindAnalysis, Message: analysisErr.Error(), err: err}
	}
	if errors.Is(err, encoder.ErrEncoderUnavailable) {
		return &Failure{Kind: KindEncoderUnavailable, Message: err.Error(), err: err}
	}
	var timeoutErr *ffmpeg.TimeoutError
	if errors.As(err, &timeoutErr) {
		return &Failure{
			Kind:           KindTranscodeTimeout,
			Message:        timeoutErr.Error(),
			DiagnosticTail: timeoutErr.StderrTail,
			err:            err,
		}
	}
	var failedErr *ffmpeg.FailedError
	if errors.As(err, &failedErr) {
		return &Failure{
			Kind:           KindTranscodeFailed,
			Message:        failedErr.Error(),
			DiagnosticTail: failedErr.StderrTail,
			err:            err,
		}
	}
	var validationErr *OutputValidationError
	if errors.As(err, &validationErr) {
		return &Failure{Kind: KindOutputValidation, Message: validationErr.Error(), err: err}
	}
	return &Failure{Kind: KindInternal, Message: err.Error(), err: err}
}

// retryable classifies errors for the fallback policy: plain transcode
// failures and output-validation failures are worth one software retry;
// timeouts and everything else are not.
func retryable(err error) bool {
	if ffmpeg.DefaultRetryable(err) {
		return true
	}
	var validationErr *OutputValidationError
	return errors.As(err, &validationErr)
}
