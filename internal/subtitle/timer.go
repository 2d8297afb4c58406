// Package subtitle converts a script into timed caption chunks and writes
// the ASS artifact the filter graph burns into the video.
package subtitle

import "strings"

// Chunk is one time-bounded span of caption text. Chunks produced by
// ComputeChunks are contiguous and non-overlapping, the first starts at 0,
// and the last ends at or before the target duration.
type Chunk struct {
	Text  string
	Start float64 // Seconds.
	End   float64
	Style StyleSpec
}

// ComputeChunks splits script into whitespace-delimited words, groups them
// chunkWords at a time, and assigns each group a start/end from the style's
// speaking rate. The script is treated as a flat token stream; newlines are
// not significant. An empty script returns nil, which is valid: a job
// without subtitles is still a job.
//
// Chunks that would begin at or after the target duration are dropped; they
// could never be displayed.
func ComputeChunks(script string, target float64, styleTag string, chunkWords int) []Chunk {
	words := strings.Fields(script)
	if len(words) == 0 || target <= 0 {
		return nil
	}
	if chunkWords <= 0 {
		chunkWords = 4
	}

	style := StyleFor(styleTag)
	rate := style.WordsPerSecond

	var chunks []Chunk
	for i := 0; i < len(words); i += chunkWords {
		end := i + chunkWords
		if end > len(words) {
			end = len(words)
		}

		start := float64(i) / rate
		if start >= target {
			break
		}
		stop := float64(end) / rate
		if stop > target {
			stop = target
		}

		chunks = append(chunks, Chunk{
			Text:  strings.Join(words[i:end], " "),
			Start: start,
			End:   stop,
			Style: style,
		})
	}
	return chunks
}
