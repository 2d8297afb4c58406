// Package filtergraph represents ffmpeg filter expressions as a small typed
// AST and renders them to the engine's textual syntax in one place, so
// escaping rules are centralized and testable independently of the rest of
// the pipeline.
package filtergraph

import (
	"fmt"
	"strings"
)

// Node is one filter in a chain (crop, scale, subtitle burn, mix, ...).
type Node interface {
	Render() string
}

// Crop selects a w:h region at offset x:y.
type Crop struct {
	Width, Height, X, Y int
}

func (c Crop) Render() string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", c.Width, c.Height, c.X, c.Y)
}

// Scale resizes to the target dimensions.
type Scale struct {
	Width, Height int
}

func (s Scale) Render() string {
	return fmt.Sprintf("scale=%d:%d", s.Width, s.Height)
}

// FPS resamples to a constant frame rate.
type FPS struct {
	Rate int
}

func (f FPS) Render() string {
	return fmt.Sprintf("fps=%d", f.Rate)
}

// SubtitleBurn renders a caption file onto the video stream. The path is
// escaped per the engine's filter-argument rules.
type SubtitleBurn struct {
	Path string
}

func (s SubtitleBurn) Render() string {
	return fmt.Sprintf("subtitles='%s'", EscapePath(s.Path))
}

// Volume scales a stream's amplitude by a linear factor.
type Volume struct {
	Gain float64
}

func (v Volume) Render() string {
	return fmt.Sprintf("volume=%.2f", v.Gain)
}

// AMix mixes N audio inputs. DurationFirst makes the first input govern the
// output length (narration, not music).
type AMix struct {
	Inputs        int
	DurationFirst bool
}

func (a AMix) Render() string {
	dur := "longest"
	if a.DurationFirst {
		dur = "first"
	}
	return fmt.Sprintf("amix=inputs=%d:duration=%s", a.Inputs, dur)
}

// Chain is a linear filter sequence from labeled inputs to one labeled
// output, e.g. [0:v]crop=...,scale=...[vout].
type Chain struct {
	Inputs []string // Stream selectors or pad labels, e.g. "0:v", "music".
	Nodes  []Node
	Output string // Pad label without brackets, e.g. "vout".
}

func (c Chain) Render() string {
	var b strings.Builder
	for _, in := range c.Inputs {
		b.WriteString("[" + in + "]")
	}
	parts := make([]string, len(c.Nodes))
	for i, n := range c.Nodes {
		parts[i] = n.Render()
	}
	b.WriteString(strings.Join(parts, ","))
	if c.Output != "" {
		b.WriteString("[" + c.Output + "]")
	}
	return b.String()
}

// Graph is a set of chains rendered as a single -filter_complex expression.
type Graph struct {
	Chains []Chain
}

func (g Graph) Render() string {
	parts := make([]string, len(g.Chains))
	for i, c := range g.Chains {
		parts[i] = c.Render()
	}
	return strings.Join(parts, ";")
}

// RenderLinear renders nodes as a plain -vf chain (no stream labels).
func RenderLinear(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.Render()
	}
	return strings.Join(parts, ",")
}

// EscapePath rewrites a filesystem path for use inside a quoted filter
// argument. Backslashes become forward slashes (ffmpeg accepts them on all
// platforms), and the filter-syntax reserved characters colon and single
// quote are escaped. A malformed escape here silently produces an
// invocation the engine rejects at runtime, so this is the one place the
// rewrite is allowed to live.
func EscapePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.ReplaceAll(p, `'`, `\'`)
	p = strings.ReplaceAll(p, `:`, `\:`)
	return p
}
