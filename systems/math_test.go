package systems

import (
	"math"
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"zero", 0, 0},
		{"in range", 1.5, 1.5},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"two pi", 2 * math.Pi, 0},
		{"over", 2*math.Pi + 0.5, 0.5},
		{"deep negative", -5 * math.Pi, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeHeading(tt.in)
			if got < 0 || got >= 2*math.Pi {
				t.Fatalf("NormalizeHeading(%v) = %v, outside [0, 2pi)", tt.in, got)
			}
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("NormalizeHeading(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBlendAngle(t *testing.T) {
	// Halfway between 0 and pi/2 along the short arc
	got := blendAngle(0, math.Pi/2, 0.5)
	if math.Abs(float64(got)-math.Pi/4) > 1e-5 {
		t.Errorf("blendAngle(0, pi/2, 0.5) = %v, want pi/4", got)
	}

	// Short arc across the wrap point: 0.1 toward 2pi-0.1 should move
	// backwards through zero, not the long way around.
	got = blendAngle(0.1, float32(2*math.Pi-0.1), 0.5)
	if math.Abs(float64(got)) > 1e-5 && math.Abs(float64(got)-2*math.Pi) > 1e-5 {
		t.Errorf("blendAngle across wrap = %v, want ~0", got)
	}

	// Full blend lands on the target
	got = blendAngle(1.0, 2.5, 1.0)
	if math.Abs(float64(got)-2.5) > 1e-5 {
		t.Errorf("blendAngle(1.0, 2.5, 1.0) = %v, want 2.5", got)
	}
}

func TestClamp01(t *testing.T) {
	if clamp01(-0.5) != 0 {
		t.Error("negative not clamped to 0")
	}
	if clamp01(1.5) != 1 {
		t.Error("overflow not clamped to 1")
	}
	if clamp01(0.42) != 0.42 {
		t.Error("in-range value changed")
	}
}
