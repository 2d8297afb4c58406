package display

import (
	"fmt"
	"io"

	"github.com/reelforge/reelforge/internal/pipeline"
)

// PrintSummary writes the human-facing build summary. This is CLI output,
// not logging; it always goes to the given writer regardless of log level.
func PrintSummary(w io.Writer, res *pipeline.Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Build Complete ===")
	fmt.Fprintf(w, "  Output:   %s\n", res.OutputPath)
	fmt.Fprintf(w, "  Duration: %s\n", FormatSeconds(res.ActualDuration))
	fmt.Fprintf(w, "  Size:     %s\n", FormatBytes(res.OutputBytes))
	encoderLine := res.Encoder.Name
	if res.FellBack {
		encoderLine += " (software fallback)"
	}
	fmt.Fprintf(w, "  Encoder:  %s\n", encoderLine)
	fmt.Fprintf(w, "  Elapsed:  %s\n", FormatElapsed(res.Elapsed))
}

// PrintOptimized reports a platform re-encode: the new file, its size delta
// against the original, and the video bitrate the re-encode targeted.
func PrintOptimized(w io.Writer, path string, before, after, kbps int64) {
	fmt.Fprintf(w, "  Platform: %s (%s, %s at %s)\n",
		path, FormatBytes(after), FormatBytesWithSign(after-before), FormatBitrateLabel(kbps))
}
