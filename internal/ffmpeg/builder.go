package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/reelforge/reelforge/internal/planner"
)

// This file constructs the argument lists for every ffmpeg invocation the
// pipeline makes. The binary name itself is supplied by the Executor; these
// functions return everything after it.

// BuildVisualArgs builds the first-pass command: loop, crop/scale, and trim
// the background clip into a silent visual track at the preset's geometry.
func BuildVisualArgs(plan *planner.AssemblyPlan, enc planner.EncoderProfile) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Input (loop count precedes its input declaration) ---
	// -stream_loop counts additional plays beyond the first, so a plan
	// calling for N total plays emits N-1.
	if plan.Loop.LoopCount > 1 {
		args = append(args, "-stream_loop", strconv.Itoa(plan.Loop.LoopCount-1))
	}
	args = append(args, "-i", plan.BackgroundPath)

	// --- Filter chain ---
	if plan.Filters.VisualFilter != "" {
		args = append(args, "-vf", plan.Filters.VisualFilter)
	}

	// --- Video codec ---
	args = appendVideoCodec(args, plan.Preset, enc)

	// --- Duration trim and audio strip ---
	args = append(args,
		"-r", strconv.Itoa(plan.Preset.FPS),
		"-t", formatSeconds(plan.Loop.TrimTo),
		"-an",
		plan.TempVisualPath,
	)
	return args
}

// BuildAssembleArgs builds the second-pass command: burn subtitles onto the
// visual track and mux it with narration (and optionally music) into the
// final output. Music is declared with an infinite stream loop so a short
// track covers the narration; the mix's duration=first policy keeps the
// narration governing total length.
func BuildAssembleArgs(plan *planner.AssemblyPlan, enc planner.EncoderProfile) []string {
	args := make([]string, 0, 40)

	// --- Preamble ---
	args = append(args, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Inputs: 0 = visual track, 1 = narration, 2 = music (optional) ---
	args = append(args, "-i", plan.TempVisualPath, "-i", plan.NarrationPath)
	if plan.HasMusic() {
		args = append(args, "-stream_loop", "-1", "-i", plan.MusicPath)
	}

	// --- Filter graph and stream maps ---
	if plan.Filters.HasComplex() {
		args = append(args, "-filter_complex", plan.Filters.Assemble)
	}
	args = append(args, "-map", plan.Filters.VideoMap, "-map", plan.Filters.AudioMap)

	// --- Codecs ---
	args = appendVideoCodec(args, plan.Preset, enc)
	args = append(args, "-c:a", "aac", "-b:a", plan.AudioBitrate)

	// --- Container ---
	args = append(args,
		"-shortest",
		"-movflags", "+faststart",
		plan.OutputPath,
	)
	return args
}

// BuildSyntheticTestArgs builds the ~1 second test-pattern encode used to
// verify an encoder actually works (appearing in the capability listing is
// not enough; drivers lie).
func BuildSyntheticTestArgs(encoderName string) []string {
	return []string{
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "testsrc=duration=1:size=320x240:rate=30",
		"-c:v", encoderName,
		"-f", "null", "-",
	}
}

// BuildListEncodersArgs builds the capability-listing invocation.
func BuildListEncodersArgs() []string {
	return []string{"-hide_banner", "-encoders"}
}

// BuildOptimizeArgs builds the platform-optimization re-encode: cap the
// video bitrate so the file fits a platform's size limit.
func BuildOptimizeArgs(inputPath, outputPath, encoderName string, bitrateKbps int) []string {
	return []string{
		"-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-i", inputPath,
		"-c:v", encoderName,
		"-b:v", fmt.Sprintf("%dk", bitrateKbps),
		"-maxrate", fmt.Sprintf("%dk", bitrateKbps*12/10),
		"-bufsize", fmt.Sprintf("%dk", bitrateKbps*2),
		"-c:a", "aac", "-b:a", "96k",
		outputPath,
	}
}

// appendVideoCodec adds the encoder name and rate-control arguments.
// Hardware encoders run VBR against the preset's bitrate envelope with a
// constant-quality target; software x264 uses plain CRF plus the capability
// service's thread hint.
func appendVideoCodec(args []string, preset planner.Preset, enc planner.EncoderProfile) []string {
	args = append(args, "-c:v", enc.Name)

	if enc.Hardware {
		args = append(args,
			"-preset", "fast",
			"-rc", "vbr",
			"-cq", strconv.Itoa(preset.QualityFactor),
			"-b:v", preset.Bitrate,
			"-maxrate", preset.Maxrate,
			"-bufsize", preset.Bufsize,
		)
		return args
	}

	args = append(args,
		"-preset", "medium",
		"-crf", strconv.Itoa(preset.QualityFactor),
	)
	if enc.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(enc.Threads))
	}
	return args
}

// formatSeconds renders a duration argument without scientific notation.
func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', 3, 64)
}
