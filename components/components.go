// Package components defines ECS components for ant agents.
package components

// Position represents an agent's world position.
type Position struct {
	X, Y float32
}

// Heading represents an agent's travel direction in radians.
// Kept normalized to [0, 2*Pi) after every update.
type Heading struct {
	Angle float32
}

// Navigation holds the dead-reckoning and timing state used by the
// decision algorithm.
type Navigation struct {
	// Path integration: net displacement since the last nest visit.
	// The negated vector points home and serves as a fallback cue when
	// no trail is sensed. Magnitude is bounded by the engine.
	PathX, PathY float32

	StalledTime float32 // seconds with near-zero realized displacement
	TripTime    float32 // seconds since the current unit was picked up

	DepositAccum    float32 // elapsed time toward the next trail deposit
	NestSignalTimer float32 // remaining beacon emission time after a delivery
	NestSignalAccum float32 // elapsed time toward the next beacon deposit
}
