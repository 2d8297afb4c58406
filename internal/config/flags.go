package config

// This file implements CLI flag parsing and help text. Flags are grouped
// into job inputs, assembly tuning, encoder/executor, and display/utility.

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X ...config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and
// exits. On error it returns non-nil (e.g. unknown flag).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("reelforge", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var showVersion bool
	var quality, colorMode string
	var transcodeTimeout, probeTimeout int

	// Job inputs.
	fs.StringVar(&cfg.BackgroundPath, "background", cfg.BackgroundPath, "background video file")
	fs.StringVar(&cfg.NarrationPath, "narration", cfg.NarrationPath, "narration audio file")
	fs.StringVar(&cfg.MusicPath, "music", cfg.MusicPath, "background music file (optional)")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "subtitle script text")
	fs.StringVar(&cfg.ScriptFile, "script-file", cfg.ScriptFile, "read subtitle script from file")
	fs.StringVar(&cfg.StyleTag, "style", cfg.StyleTag, "subtitle style tag (motivation, finance, facts)")
	fs.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "output video path")
	fs.StringVar(&cfg.Platform, "platform", cfg.Platform, "optimize output for a platform (youtube_shorts, instagram_reels, tiktok, facebook_reels)")

	// Assembly tuning.
	fs.StringVar(&quality, "quality", string(cfg.Quality), "quality preset: ultra, high, medium, fast")
	fs.Float64Var(&cfg.TargetDuration, "duration", cfg.TargetDuration, "target duration in seconds (0 = derive from narration)")
	fs.Float64Var(&cfg.MusicGain, "music-gain", cfg.MusicGain, "music volume multiplier (0..1)")
	fs.IntVar(&cfg.ChunkWords, "chunk-words", cfg.ChunkWords, "words per subtitle chunk")

	// Encoder and executor.
	fs.BoolVar(&cfg.ForceSoftware, "software", cfg.ForceSoftware, "skip hardware encoders, use libx264")
	fs.IntVar(&transcodeTimeout, "timeout", int(cfg.TranscodeTimeout/time.Second), "per-pass transcode timeout in seconds")
	fs.IntVar(&probeTimeout, "probe-timeout", int(cfg.ProbeTimeout/time.Second), "probe and test-encode timeout in seconds")
	fs.IntVar(&cfg.MaxConcurrent, "max-concurrent", cfg.MaxConcurrent, "max concurrent ffmpeg processes")
	fs.StringVar(&cfg.FFmpegBin, "ffmpeg", cfg.FFmpegBin, "ffmpeg binary")
	fs.StringVar(&cfg.FFprobeBin, "ffprobe", cfg.FFprobeBin, "ffprobe binary")
	fs.StringVar(&cfg.TempDir, "temp-dir", cfg.TempDir, "directory for per-job temp files")

	// Display and utility.
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "verbose logging")
	fs.StringVar(&colorMode, "color", string(cfg.ColorMode), "color output: auto, always, never")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "also write logs to this file")
	fs.BoolVar(&cfg.CheckOnly, "check", cfg.CheckOnly, "run system diagnostics and exit")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, "reelforge v"+version)
		os.Exit(0)
	}

	cfg.Quality = Quality(quality)
	cfg.ColorMode = ColorMode(colorMode)
	cfg.TranscodeTimeout = time.Duration(transcodeTimeout) * time.Second
	cfg.ProbeTimeout = time.Duration(probeTimeout) * time.Second
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `reelforge v%s - short vertical video assembler

Usage:
  reelforge -background BG.mp4 -narration VOICE.wav -script "..." -output OUT.mp4 [options]
  reelforge -check

Options:
`, version)
	fs.PrintDefaults()
}
