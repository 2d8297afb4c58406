package planner

import "github.com/reelforge/reelforge/internal/probe"

// Reconciled is the loop/trim decision for the background track.
type Reconciled struct {
	// LoopCount is the total number of times the background clip plays.
	// 1 means play once. Note -stream_loop counts extra plays, so the
	// builder emits LoopCount-1.
	LoopCount int
	// TrimTo is the duration in seconds the looped track is cut to.
	TrimTo float64
}

// Reconcile decides how the background clip covers the target duration.
// A clip at least as long as the target plays once and is trimmed to the
// target. A shorter clip is looped and trimmed to target+buffer after
// looping; looping first and trimming after avoids drift from
// fractional-loop rounding. The buffer keeps the tail from being truncated
// during muxing, so the loop count must cover the buffered trim point, not
// just the target.
//
// The result always covers the trim: LoopCount * clip duration >= TrimTo.
func Reconcile(asset *probe.MediaAsset, target, buffer float64) Reconciled {
	if asset.Duration >= target {
		return Reconciled{LoopCount: 1, TrimTo: target}
	}
	trimTo := target + buffer
	loops := int(trimTo/asset.Duration) + 1
	return Reconciled{LoopCount: loops, TrimTo: trimTo}
}
