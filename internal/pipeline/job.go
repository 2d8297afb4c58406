package pipeline

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/reelforge/reelforge/internal/planner"
)

// BuildJob is one request to assemble a single output video. Created at
// invocation, mutated only by the owning Build call, and destroyed (temp
// files removed) on every exit path.
type BuildJob struct {
	ID             string
	BackgroundPath string
	NarrationPath  string
	Script         string
	StyleTag       string
	MusicPath      string // "" for no music.
	OutputPath     string
	// TargetDuration in seconds; <= 0 means derive from the narration
	// track (the pipeline re-probes narration rather than trusting a
	// caller-supplied duration either way).
	TargetDuration float64

	// Derived working state, set by pipeline stages. Temp paths are
	// ID-qualified so concurrent jobs never share a path.
	TempVisualPath   string
	TempSubtitlePath string
}

// NewJob assigns a fresh job ID. Callers populate the input fields.
func NewJob() *BuildJob {
	return &BuildJob{ID: uuid.NewString()}
}

// stageTempPaths derives the job's temp file paths under dir.
func (j *BuildJob) stageTempPaths(dir string) {
	j.TempVisualPath = filepath.Join(dir, "reelforge_visual_"+j.ID+".mp4")
	j.TempSubtitlePath = filepath.Join(dir, "reelforge_subs_"+j.ID+".ass")
}

// Result is the successful outcome of a build.
type Result struct {
	OutputPath     string
	ActualDuration float64 // Re-probed from the finished file.
	OutputBytes    int64
	Encoder        planner.EncoderProfile
	FellBack       bool // True when the software fallback produced the output.
	Elapsed        time.Duration
}
