package filtergraph

import "github.com/reelforge/reelforge/internal/probe"

// Spec is the rendered filter plan for one build job: the -vf chain for the
// visual pass plus the -filter_complex expression and stream maps for the
// assembly pass. In the assembly pass input 0 is the processed visual track,
// input 1 is narration, input 2 (when present) is music.
type Spec struct {
	VisualFilter string // -vf chain applied while looping/cropping the background.
	Assemble     string // -filter_complex for the assembly pass; "" when none is needed.
	VideoMap     string // -map selector for the output video stream.
	AudioMap     string // -map selector for the output audio stream.
}

// HasComplex reports whether the assembly pass needs a -filter_complex.
func (s Spec) HasComplex() bool { return s.Assemble != "" }

// Build composes the filter plan. Landscape sources get a centered
// height*9/16 crop before scaling; portrait sources scale directly. The
// assembly topology branches on subtitle and music presence: subtitles are
// burned onto the video, music is attenuated and mixed under the narration
// with the narration's duration governing the result.
func Build(asset *probe.MediaAsset, targetW, targetH, fps int, subtitlePath string, hasMusic bool, musicGain float64) Spec {
	spec := Spec{
		VisualFilter: RenderLinear(visualNodes(asset, targetW, targetH, fps)),
	}

	var chains []Chain
	videoMap := "0:v"
	audioMap := "1:a"

	if subtitlePath != "" {
		chains = append(chains, Chain{
			Inputs: []string{"0:v"},
			Nodes:  []Node{SubtitleBurn{Path: subtitlePath}},
			Output: "vout",
		})
		videoMap = "[vout]"
	}

	if hasMusic {
		chains = append(chains,
			Chain{
				Inputs: []string{"2:a"},
				Nodes:  []Node{Volume{Gain: musicGain}},
				Output: "music",
			},
			Chain{
				Inputs: []string{"1:a", "music"},
				Nodes:  []Node{AMix{Inputs: 2, DurationFirst: true}},
				Output: "aout",
			},
		)
		audioMap = "[aout]"
	}

	spec.Assemble = Graph{Chains: chains}.Render()
	spec.VideoMap = videoMap
	spec.AudioMap = audioMap
	return spec
}

// visualNodes computes the crop/scale/fps chain for the background clip.
func visualNodes(asset *probe.MediaAsset, targetW, targetH, fps int) []Node {
	var nodes []Node

	if !asset.IsPortrait() && asset.Width > 0 {
		// Landscape to portrait: crop a centered 9:16 region at source
		// height, then scale to the target.
		cropW := asset.Height * 9 / 16
		cropX := (asset.Width - cropW) / 2
		nodes = append(nodes, Crop{Width: cropW, Height: asset.Height, X: cropX, Y: 0})
	}

	nodes = append(nodes, Scale{Width: targetW, Height: targetH})
	if fps > 0 {
		nodes = append(nodes, FPS{Rate: fps})
	}
	return nodes
}
