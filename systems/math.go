package systems

import "math"

// Clamp and angle helpers shared by the simulation systems.

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizeAngle wraps an angle difference to [-Pi, Pi].
func normalizeAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// NormalizeHeading wraps a heading to [0, 2*Pi).
func NormalizeHeading(h float32) float32 {
	const twoPi = 2 * math.Pi
	for h < 0 {
		h += twoPi
	}
	for h >= twoPi {
		h -= twoPi
	}
	return h
}

// blendAngle rotates heading a toward b by fraction t along the shorter arc.
// The result is normalized to [0, 2*Pi).
func blendAngle(a, b, t float32) float32 {
	return NormalizeHeading(a + normalizeAngle(b-a)*t)
}

// distanceSq returns the squared distance between two points.
func distanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(x1, y1, x2, y2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, y1, x2, y2))))
}

// sincos returns sin and cos of the angle as float32.
func sincos(a float32) (sin, cos float32) {
	s, c := math.Sincos(float64(a))
	return float32(s), float32(c)
}

// atan2 is a float32 wrapper for math.Atan2.
func atan2(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}
