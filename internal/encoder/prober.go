// Package encoder discovers which video encoders are usable on the current
// machine. Hardware candidates are tried first; the probe is memoized for
// the process lifetime so concurrent jobs share one answer.
package encoder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/ffmpeg"
	"github.com/reelforge/reelforge/internal/planner"
)

// ErrEncoderUnavailable means no encoder works at all, including the
// software baseline. Job-fatal and not retryable.
var ErrEncoderUnavailable = errors.New("no usable video encoder found")

// softwareEncoder is the baseline that ships with every ffmpeg build.
const softwareEncoder = "libx264"

// candidates in priority order: vendor hardware encoders first, software
// last. A candidate is selected only if it appears in the engine's
// capability listing AND survives a synthetic test encode.
var candidates = []planner.EncoderProfile{
	{Name: "h264_nvenc", Hardware: true},
	{Name: "h264_amf", Hardware: true},
	{Name: "h264_qsv", Hardware: true},
	{Name: "h264_videotoolbox", Hardware: true},
	{Name: softwareEncoder, Hardware: false},
}

// Candidates returns a copy of the candidate list in probe priority order.
func Candidates() []planner.EncoderProfile {
	out := make([]planner.EncoderProfile, len(candidates))
	copy(out, candidates)
	return out
}

// Service probes encoder capabilities. Inject one Service into the
// orchestrator; the first Probe call blocks others only during the one-time
// test, then all reads are lock-free via the Once.
type Service struct {
	runner        ffmpeg.Runner
	log           hclog.Logger
	probeTimeout  time.Duration
	forceSoftware bool

	once    sync.Once
	profile planner.EncoderProfile
	err     error

	softwareOnce    sync.Once
	softwareProfile planner.EncoderProfile
	softwareErr     error
}

// NewService builds a capability service on top of a Runner.
func NewService(cfg *config.Config, runner ffmpeg.Runner, log hclog.Logger) *Service {
	return &Service{
		runner:        runner,
		probeTimeout:  cfg.ProbeTimeout,
		forceSoftware: cfg.ForceSoftware,
		log:           log.Named("encoder"),
	}
}

// Probe returns the best usable encoder profile. The candidate sweep runs at
// most once per process; later calls return the memoized result without
// re-testing.
func (s *Service) Probe(ctx context.Context) (planner.EncoderProfile, error) {
	s.once.Do(func() {
		s.profile, s.err = s.sweep(ctx)
	})
	return s.profile, s.err
}

// Software returns the software baseline profile, verified by its own
// synthetic test. Used by the fallback retry, which must not inherit the
// memoized hardware answer.
func (s *Service) Software(ctx context.Context) (planner.EncoderProfile, error) {
	s.softwareOnce.Do(func() {
		profile := planner.EncoderProfile{Name: softwareEncoder, Threads: softwareThreads()}
		if err := s.testEncode(ctx, profile.Name); err != nil {
			s.log.Error("software encoder test failed", "error", err)
			s.softwareErr = ErrEncoderUnavailable
			return
		}
		s.softwareProfile = profile
	})
	return s.softwareProfile, s.softwareErr
}

// sweep walks the candidate list: capability listing first, then a
// synthetic test encode per listed candidate.
func (s *Service) sweep(ctx context.Context) (planner.EncoderProfile, error) {
	if s.forceSoftware {
		return s.Software(ctx)
	}

	listing, err := s.listEncoders(ctx)
	if err != nil {
		s.log.Warn("encoder listing failed, trying software baseline", "error", err)
		return s.Software(ctx)
	}

	for _, cand := range candidates {
		if !strings.Contains(listing, cand.Name) {
			continue
		}
		if err := s.testEncode(ctx, cand.Name); err != nil {
			s.log.Debug("encoder failed synthetic test", "encoder", cand.Name, "error", err)
			continue
		}

		profile := cand
		if !profile.Hardware {
			profile.Threads = softwareThreads()
		}
		s.log.Info("selected encoder", "encoder", profile.Name, "hardware", profile.Hardware)
		return profile, nil
	}

	return planner.EncoderProfile{}, ErrEncoderUnavailable
}

func (s *Service) listEncoders(ctx context.Context) (string, error) {
	out, err := s.runner.Output(ctx, ffmpeg.BuildListEncodersArgs(), s.probeTimeout)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Service) testEncode(ctx context.Context, name string) error {
	_, err := s.runner.Run(ctx, ffmpeg.BuildSyntheticTestArgs(name), s.probeTimeout)
	return err
}

// softwareThreads derives the x264 thread hint from the logical CPU count,
// capped so one job cannot monopolize a large host.
func softwareThreads() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return 0
	}
	if n > 16 {
		n = 16
	}
	return n
}
