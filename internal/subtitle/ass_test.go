package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00:00.00"},
		{"sub-second", 1.6, "0:00:01.60"},
		{"seconds", 21.5, "0:00:21.50"},
		{"minute boundary", 60, "0:01:00.00"},
		{"minutes and fraction", 83.25, "0:01:23.25"},
		{"hour", 3723.5, "1:02:03.50"},
		{"negative clamps to zero", -2, "0:00:00.00"},
		{"rounds up into the next minute", 59.996, "0:01:00.00"},
		{"stays below the boundary", 59.99, "0:00:59.99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.seconds); got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestWriteASS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subs.ass")
	style := StyleFor("finance")
	chunks := []Chunk{
		{Text: "markets never sleep", Start: 0, End: 1.6, Style: style},
		{Text: "but you\nshould", Start: 1.6, End: 3.2, Style: style},
	}

	if err := WriteASS(path, style, chunks); err != nil {
		t.Fatalf("WriteASS: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"[Script Info]",
		"[V4+ Styles]",
		"[Events]",
		"Style: Default,Arial Bold,18,&H0000FFFF,",
		"Dialogue: 0,0:00:00.00,0:00:01.60,Default,,0,0,0,,markets never sleep",
		`Dialogue: 0,0:00:01.60,0:00:03.20,Default,,0,0,0,,but you\Nshould`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("output missing %q\n---\n%s", want, content)
		}
	}

	// Events must be single lines; a raw newline inside one would corrupt
	// the file for the burn-in filter.
	if strings.Contains(content, "but you\nshould") {
		t.Error("event text contains an unescaped newline")
	}
}
