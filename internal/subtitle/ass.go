package subtitle

import (
	"fmt"
	"os"
	"strings"
)

// WriteASS writes chunks as a time-coded ASS caption file: one style header
// block plus one Dialogue event per chunk. The file is consumed by the
// filter graph's subtitle burn-in, so the format must stay in lockstep with
// what the engine's subtitles filter accepts.
func WriteASS(path string, style StyleSpec, chunks []Chunk) error {
	var b strings.Builder

	b.WriteString("[Script Info]\n")
	b.WriteString("Title: ReelForge Captions\n")
	b.WriteString("ScriptType: v4.00+\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, " +
		"OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, " +
		"Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	fmt.Fprintf(&b, "Style: Default,%s,%d,%s,&H000000FF,%s,&H80000000,%d,0,0,0,100,100,0,0,1,%d,0,2,10,10,10,1\n\n",
		style.FontName, style.FontSize, style.PrimaryColour, style.OutlineColour, style.Bold, style.Outline)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, c := range chunks {
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			FormatTimestamp(c.Start), FormatTimestamp(c.End), escapeEventText(c.Text))
	}

	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// FormatTimestamp renders seconds as the ASS H:MM:SS.CC event time.
// Rounding to centiseconds happens before the field split so a value just
// under a minute boundary carries into the next minute instead of
// rendering as second 60.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	cs := int(seconds*100 + 0.5)
	h := cs / 360000
	m := (cs % 360000) / 6000
	s := float64(cs%6000) / 100
	return fmt.Sprintf("%d:%02d:%05.2f", h, m, s)
}

// escapeEventText collapses newlines to the ASS single-line break token so
// an event always occupies one line in the file.
func escapeEventText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\n", `\N`)
}
