package encoder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/ffmpeg"
)

// fakeRunner scripts the capability listing and per-encoder test results.
type fakeRunner struct {
	listing     string
	listingErr  error
	failing     map[string]bool // encoder name -> synthetic test fails
	listCalls   int
	testedNames []string
}

func (f *fakeRunner) Run(ctx context.Context, args []string, timeout time.Duration) (ffmpeg.ExecResult, error) {
	// Synthetic test args carry the encoder name after -c:v.
	name := ""
	for i, a := range args {
		if a == "-c:v" && i+1 < len(args) {
			name = args[i+1]
		}
	}
	f.testedNames = append(f.testedNames, name)
	if f.failing[name] {
		return ffmpeg.ExecResult{ExitCode: 1}, &ffmpeg.FailedError{ExitCode: 1}
	}
	return ffmpeg.ExecResult{}, nil
}

func (f *fakeRunner) Output(ctx context.Context, args []string, timeout time.Duration) ([]byte, error) {
	f.listCalls++
	if f.listingErr != nil {
		return nil, f.listingErr
	}
	return []byte(f.listing), nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	return &cfg
}

func newTestService(cfg *config.Config, runner ffmpeg.Runner) *Service {
	return NewService(cfg, runner, hclog.NewNullLogger())
}

const fullListing = `Encoders:
 V....D h264_nvenc           NVIDIA NVENC H.264 encoder (codec h264)
 V....D h264_qsv             H.264 / AVC / MPEG-4 AVC (Intel Quick Sync Video acceleration) (codec h264)
 V..... libx264              libx264 H.264 / AVC / MPEG-4 AVC / MPEG-4 part 10 (codec h264)`

func TestProbeSelectsHardware(t *testing.T) {
	runner := &fakeRunner{listing: fullListing}
	svc := newTestService(testConfig(), runner)

	profile, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if profile.Name != "h264_nvenc" || !profile.Hardware {
		t.Errorf("profile = %+v, want hardware h264_nvenc", profile)
	}
}

func TestProbeSkipsFailingCandidate(t *testing.T) {
	// nvenc appears in the listing but the synthetic encode fails; the probe
	// moves on instead of trusting the listing.
	runner := &fakeRunner{
		listing: fullListing,
		failing: map[string]bool{"h264_nvenc": true, "h264_qsv": true},
	}
	svc := newTestService(testConfig(), runner)

	profile, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if profile.Name != "libx264" || profile.Hardware {
		t.Errorf("profile = %+v, want software libx264", profile)
	}
	if profile.Threads <= 0 {
		t.Errorf("software profile missing thread hint: %+v", profile)
	}
}

func TestProbeMemoized(t *testing.T) {
	runner := &fakeRunner{listing: fullListing}
	svc := newTestService(testConfig(), runner)

	first, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("first Probe: %v", err)
	}
	second, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("second Probe: %v", err)
	}
	if first != second {
		t.Errorf("memoized probe diverged: %+v vs %+v", first, second)
	}
	if runner.listCalls != 1 {
		t.Errorf("capability listing ran %d times, want 1", runner.listCalls)
	}
}

func TestProbeForceSoftware(t *testing.T) {
	cfg := testConfig()
	cfg.ForceSoftware = true
	runner := &fakeRunner{listing: fullListing}
	svc := newTestService(cfg, runner)

	profile, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if profile.Name != "libx264" {
		t.Errorf("forced software got %+v", profile)
	}
	if runner.listCalls != 0 {
		t.Errorf("forced software still listed encoders %d times", runner.listCalls)
	}
}

func TestProbeListingFailureFallsToSoftware(t *testing.T) {
	runner := &fakeRunner{listingErr: errors.New("boom")}
	svc := newTestService(testConfig(), runner)

	profile, err := svc.Probe(context.Background())
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if profile.Name != "libx264" {
		t.Errorf("got %+v, want software baseline", profile)
	}
}

func TestNothingUsable(t *testing.T) {
	runner := &fakeRunner{
		listingErr: errors.New("boom"),
		failing:    map[string]bool{"libx264": true},
	}
	svc := newTestService(testConfig(), runner)

	if _, err := svc.Probe(context.Background()); !errors.Is(err, ErrEncoderUnavailable) {
		t.Errorf("Probe err = %v, want ErrEncoderUnavailable", err)
	}
	if _, err := svc.Software(context.Background()); !errors.Is(err, ErrEncoderUnavailable) {
		t.Errorf("Software err = %v, want ErrEncoderUnavailable", err)
	}
}
