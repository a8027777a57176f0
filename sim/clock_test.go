package sim

import "testing"

func TestClockConsumesWholeSteps(t *testing.T) {
	c := NewClock(0.05, 0.25)

	tests := []struct {
		name    string
		elapsed float64
		scale   float64
		want    int
	}{
		{"exact step", 0.05, 1, 1},
		{"two steps", 0.10, 1, 2},
		{"under one step", 0.03, 1, 0},
		{"remainder completes", 0.02, 1, 1}, // 0.03 carried + 0.02 = 0.05
		{"scaled up", 0.05, 2, 2},
		{"scaled down", 0.05, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Advance(tt.elapsed, tt.scale); got != tt.want {
				t.Errorf("Advance(%v, %v) = %d steps, want %d", tt.elapsed, tt.scale, got, tt.want)
			}
		})
	}
}

func TestClockCarriesRemainder(t *testing.T) {
	c := NewClock(0.05, 0.25)

	// 60 fps frames: 1/60 s each. Over 3 frames that is 0.05 s.
	total := 0
	for i := 0; i < 60; i++ {
		total += c.Advance(1.0/60.0, 1)
	}
	// One second of frames at dt=0.05 must yield exactly 20 steps
	if total != 20 {
		t.Errorf("one second of 60fps frames ran %d steps, want 20", total)
	}
}

func TestClockClampsRunawayFrames(t *testing.T) {
	c := NewClock(0.05, 0.25)

	// A 10-second stall must not trigger 200 catch-up steps
	if got := c.Advance(10, 1); got != 5 {
		t.Errorf("stalled frame ran %d steps, want 5 (max_frame_time / fixed_step)", got)
	}
}

func TestClockNegativeElapsedIgnored(t *testing.T) {
	c := NewClock(0.05, 0.25)
	if got := c.Advance(-1, 1); got != 0 {
		t.Errorf("negative elapsed ran %d steps, want 0", got)
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock(0.05, 0.25)
	c.Advance(0.04, 1)
	c.Reset()
	if got := c.Advance(0.04, 1); got != 0 {
		t.Errorf("remainder survived reset: got %d steps", got)
	}
}
