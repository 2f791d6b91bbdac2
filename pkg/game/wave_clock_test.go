package game

import (
	"math"
	"testing"
)

func TestWaveClock_Advance(t *testing.T) {
	clock := NewWaveClock()

	clock.Advance(0.5)
	clock.Advance(0.25)
	if got := clock.Elapsed(); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("Elapsed() = %v, want 0.75", got)
	}
}

func TestWaveClock_Monotonic(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *WaveClock)
		delta float64
	}{
		{"负的帧间隔", func(c *WaveClock) {}, -1},
		{"暂停", func(c *WaveClock) { c.SetPaused(true) }, 1},
		{"负倍速按0处理", func(c *WaveClock) { c.SetTimeScale(-3) }, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewWaveClock()
			clock.Advance(2)
			tt.setup(clock)

			before := clock.Elapsed()
			clock.Advance(tt.delta)
			if clock.Elapsed() != before {
				t.Errorf("Elapsed changed from %v to %v", before, clock.Elapsed())
			}
		})
	}
}

func TestWaveClock_TimeScale(t *testing.T) {
	clock := NewWaveClock()
	clock.SetTimeScale(2)
	clock.Advance(0.5)

	if clock.Elapsed() != 1 {
		t.Errorf("Elapsed() = %v, want 1", clock.Elapsed())
	}
	if clock.TimeScale() != 2 {
		t.Errorf("TimeScale() = %v, want 2", clock.TimeScale())
	}
}

func TestWaveClock_TogglePause(t *testing.T) {
	clock := NewWaveClock()
	if !clock.TogglePause() || !clock.IsPaused() {
		t.Error("first toggle should pause")
	}
	if clock.TogglePause() || clock.IsPaused() {
		t.Error("second toggle should resume")
	}
}
