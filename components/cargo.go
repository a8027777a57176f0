package components

// Mode is the agent's logical behavior state, derived from Cargo.
// Representing it as an explicit variant keeps the decision algorithm
// exhaustive instead of branching on flag combinations.
type Mode uint8

const (
	ModeForaging     Mode = iota // searching for food
	ModeReturning                // carrying food toward the nest
	ModeForcedReturn             // carried too long; widened homeward search
)

// String returns the display name for a Mode.
func (m Mode) String() string {
	switch m {
	case ModeForaging:
		return "Foraging"
	case ModeReturning:
		return "Returning"
	case ModeForcedReturn:
		return "ForcedReturn"
	default:
		return "Unknown"
	}
}

// Cargo tracks what an agent carries and for how long.
// ForceReturn is only ever true while Carrying is true; all transitions go
// through the methods below so the two flags cannot drift apart.
type Cargo struct {
	Carrying     bool
	ForceReturn  bool
	CarryingTime float32 // seconds carrying the current unit
}

// Mode derives the logical state from the cargo flags.
func (c *Cargo) Mode() Mode {
	switch {
	case c.Carrying && c.ForceReturn:
		return ModeForcedReturn
	case c.Carrying:
		return ModeReturning
	default:
		return ModeForaging
	}
}

// PickUp transitions Foraging -> Returning.
func (c *Cargo) PickUp() {
	c.Carrying = true
	c.ForceReturn = false
	c.CarryingTime = 0
}

// StartForcedReturn transitions Returning -> ForcedReturn. The carry timer
// resets; it only gates this transition and is not counted further.
func (c *Cargo) StartForcedReturn() {
	if !c.Carrying {
		return
	}
	c.ForceReturn = true
	c.CarryingTime = 0
}

// Deliver transitions Returning/ForcedReturn -> Foraging.
func (c *Cargo) Deliver() {
	c.Carrying = false
	c.ForceReturn = false
	c.CarryingTime = 0
}
