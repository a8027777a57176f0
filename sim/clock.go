package sim

// stepEpsilon absorbs float error when the accumulator lands a hair under a
// step boundary (0.03 + 0.02 sums just below 0.05 in floating point).
const stepEpsilon = 1e-9

// Clock is the fixed-step integrator. Variable wall-clock frame durations,
// scaled by the user time factor, accumulate into whole simulation steps;
// the fractional remainder carries over to the next tick. This keeps
// simulation behavior independent of rendering frame rate.
type Clock struct {
	fixedStep float64
	maxFrame  float64 // scaled per-tick cap, avoids runaway catch-up after a stall
	accum     float64
}

// NewClock creates a clock consuming fixedStep-second steps.
func NewClock(fixedStep, maxFrame float64) *Clock {
	return &Clock{fixedStep: fixedStep, maxFrame: maxFrame}
}

// Advance feeds a raw elapsed frame duration (seconds) into the accumulator
// and returns the number of whole fixed steps to run.
func (c *Clock) Advance(elapsed, timeScale float64) int {
	scaled := elapsed * timeScale
	if scaled < 0 {
		scaled = 0
	}
	if scaled > c.maxFrame {
		scaled = c.maxFrame
	}
	c.accum += scaled

	steps := int((c.accum + stepEpsilon) / c.fixedStep)
	c.accum -= float64(steps) * c.fixedStep
	if c.accum < 0 {
		c.accum = 0
	}
	return steps
}

// FixedStep returns the step size in seconds.
func (c *Clock) FixedStep() float32 {
	return float32(c.fixedStep)
}

// Reset discards any accumulated remainder.
func (c *Clock) Reset() {
	c.accum = 0
}
