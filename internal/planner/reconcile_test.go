package planner

import (
	"math"
	"testing"

	"github.com/reelforge/reelforge/internal/probe"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		target   float64
		buffer   float64
		want     Reconciled
	}{
		{"short clip loops with headroom", 8, 20, 1.5, Reconciled{LoopCount: 3, TrimTo: 21.5}},
		{"clip longer than target plays once", 30, 20, 1.5, Reconciled{LoopCount: 1, TrimTo: 20}},
		{"clip exactly at target plays once", 20, 20, 1.5, Reconciled{LoopCount: 1, TrimTo: 20}},
		{"exact multiple still gets extra pass", 10, 20, 1.5, Reconciled{LoopCount: 3, TrimTo: 21.5}},
		{"barely short", 19.9, 20, 1.5, Reconciled{LoopCount: 2, TrimTo: 21.5}},
		{"tiny clip many loops", 2, 20, 1.5, Reconciled{LoopCount: 11, TrimTo: 21.5}},
		// A one-second clip needs 22 plays to cover 21.5s; counting loops
		// against the bare target would leave the buffered tail frozen.
		{"one-second clip covers the buffer", 1, 20, 1.5, Reconciled{LoopCount: 22, TrimTo: 21.5}},
		{"half-second clip covers the buffer", 0.5, 20, 1.5, Reconciled{LoopCount: 44, TrimTo: 21.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &probe.MediaAsset{Duration: tt.duration}
			got := Reconcile(asset, tt.target, tt.buffer)
			if got != tt.want {
				t.Errorf("Reconcile(%v, %v, %v) = %+v, want %+v",
					tt.duration, tt.target, tt.buffer, got, tt.want)
			}
		})
	}
}

// Looped coverage must always reach the trim point, or the output would
// freeze on the last frame.
func TestReconcileCoversTrim(t *testing.T) {
	durations := []float64{0.5, 1, 3, 7.9, 8, 12.4, 19.99, 20, 45}
	for _, d := range durations {
		asset := &probe.MediaAsset{Duration: d}
		got := Reconcile(asset, 20, 1.5)
		covered := float64(got.LoopCount) * d
		if covered+1e-9 < got.TrimTo {
			t.Errorf("duration %v: %d loops cover %.2fs, trim wants %.2fs",
				d, got.LoopCount, covered, got.TrimTo)
		}
		if math.Abs(got.TrimTo-20) > 1.5 {
			t.Errorf("duration %v: trim %.2fs strays from target 20s by more than the buffer", d, got.TrimTo)
		}
	}
}
