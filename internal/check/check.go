// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe, and the H.264
// encoder candidates.
package check

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/reelforge/reelforge/internal/config"
	"github.com/reelforge/reelforge/internal/encoder"
	"github.com/reelforge/reelforge/internal/ffmpeg"
)

// Sentinel errors returned by CheckDeps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound       = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound      = errors.New("ffprobe not found on PATH")
	ErrSoftwareEncodeFailed = errors.New("libx264 test encode failed")
)

// RunCheck runs the interactive --check flow: prints availability of ffmpeg
// and ffprobe, the H.264 encoder candidates with a synthetic test encode for
// each, the AAC audio encoder, and a short CPU report. Informational only;
// it does not stop on failure.
func RunCheck(cfg *config.Config, log hclog.Logger) {
	log.Info("=== System Check ===")

	checkTool(cfg.FFmpegBin, log)
	checkTool(cfg.FFprobeBin, log)
	checkEncoders(cfg, log)
	checkAAC(cfg, log)
	checkCPU(log)
}

// checkTool verifies a binary is on PATH and logs its version line.
func checkTool(bin string, log hclog.Logger) {
	if _, err := exec.LookPath(bin); err != nil {
		log.Error("tool not found", "bin", bin)
		return
	}
	out, err := exec.Command(bin, "-version").Output()
	if err != nil {
		log.Warn("tool found but -version failed", "bin", bin, "error", err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Info("tool available", "version", firstLine)
}

// checkEncoders walks the candidate list and reports which encoders appear
// in the capability listing and which survive a synthetic test encode.
func checkEncoders(cfg *config.Config, log hclog.Logger) {
	log.Info("H.264 encoder candidates:")
	out, err := exec.Command(cfg.FFmpegBin, ffmpeg.BuildListEncodersArgs()...).Output()
	if err != nil {
		log.Warn("could not list encoders", "error", err)
		return
	}
	listing := string(out)

	for _, cand := range encoder.Candidates() {
		if !strings.Contains(listing, cand.Name) {
			log.Info(fmt.Sprintf("  %-20s not in capability listing", cand.Name))
			continue
		}
		if runSilent(cfg.FFmpegBin, ffmpeg.BuildSyntheticTestArgs(cand.Name)...) {
			log.Info(fmt.Sprintf("  %-20s works (hardware=%t)", cand.Name, cand.Hardware))
		} else {
			log.Warn(fmt.Sprintf("  %-20s listed but failed test encode", cand.Name))
		}
	}
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(cfg *config.Config, log hclog.Logger) {
	if runSilent(cfg.FFmpegBin,
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	) {
		log.Info("AAC encoder works")
	} else {
		log.Error("AAC encoder test failed")
	}
}

// checkCPU reports logical core count and the first CPU model string, which
// sets expectations for software encode throughput.
func checkCPU(log hclog.Logger) {
	n, err := cpu.Counts(true)
	if err != nil {
		log.Warn("could not read CPU count", "error", err)
		return
	}
	model := ""
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		model = infos[0].ModelName
	}
	log.Info("CPU", "logical_cores", n, "model", model)
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe must be on
// PATH and the software baseline encoder must pass a short synthetic encode.
// Hardware availability is not required here; the capability probe handles
// that per process with its own fallback.
func CheckDeps(cfg *config.Config) error {
	if _, err := exec.LookPath(cfg.FFmpegBin); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath(cfg.FFprobeBin); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent(cfg.FFmpegBin, ffmpeg.BuildSyntheticTestArgs("libx264")...) {
		return ErrSoftwareEncodeFailed
	}
	return nil
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
