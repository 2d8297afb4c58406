package filtergraph

import (
	"testing"
)

func TestNodeRender(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"crop", Crop{Width: 1080, Height: 1920, X: 420, Y: 0}, "crop=1080:1920:420:0"},
		{"scale", Scale{Width: 1080, Height: 1920}, "scale=1080:1920"},
		{"fps", FPS{Rate: 30}, "fps=30"},
		{"volume", Volume{Gain: 0.1}, "volume=0.10"},
		{"amix first", AMix{Inputs: 2, DurationFirst: true}, "amix=inputs=2:duration=first"},
		{"amix longest", AMix{Inputs: 3}, "amix=inputs=3:duration=longest"},
		{"subtitles", SubtitleBurn{Path: "/tmp/subs.ass"}, "subtitles='/tmp/subs.ass'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Render(); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChainRender(t *testing.T) {
	c := Chain{
		Inputs: []string{"0:v"},
		Nodes:  []Node{Crop{Width: 608, Height: 1080, X: 656, Y: 0}, Scale{Width: 1080, Height: 1920}},
		Output: "vout",
	}
	want := "[0:v]crop=608:1080:656:0,scale=1080:1920[vout]"
	if got := c.Render(); got != want {
		t.Errorf("Chain.Render() = %q, want %q", got, want)
	}
}

func TestGraphRender(t *testing.T) {
	g := Graph{Chains: []Chain{
		{Inputs: []string{"2:a"}, Nodes: []Node{Volume{Gain: 0.1}}, Output: "music"},
		{Inputs: []string{"1:a", "music"}, Nodes: []Node{AMix{Inputs: 2, DurationFirst: true}}, Output: "aout"},
	}}
	want := "[2:a]volume=0.10[music];[1:a][music]amix=inputs=2:duration=first[aout]"
	if got := g.Render(); got != want {
		t.Errorf("Graph.Render() = %q, want %q", got, want)
	}
}

func TestEscapePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain unix path", "/tmp/subs.ass", "/tmp/subs.ass"},
		{"windows path", `C:\media\subs.ass`, `C\:/media/subs.ass`},
		{"colon in name", "/tmp/job:42.ass", `/tmp/job\:42.ass`},
		{"quote in name", "/tmp/it's.ass", `/tmp/it\'s.ass`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapePath(tt.in); got != tt.want {
				t.Errorf("EscapePath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
