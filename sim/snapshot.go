package sim

import "github.com/pthm-cable/forage/systems"

// AntState is one agent's externally visible state.
type AntState struct {
	X, Y        float32
	Heading     float32
	Carrying    bool
	ForceReturn bool
}

// Snapshot is a deep copy of the observable world state at one tick. It
// shares no memory with the engine, so callers may retain it freely.
type Snapshot struct {
	WorldWidth  float32
	WorldHeight float32
	NestX       float32
	NestY       float32
	NestRadius  float32

	Ants []AntState
	Food []systems.FoodSource

	HomeTrail  *systems.Field
	FoodTrail  *systems.Field
	NestSignal *systems.Field

	Stats Stats
	Tick  int64
}

// Snapshot captures the current world state.
func (e *Engine) Snapshot() Snapshot {
	ants := make([]AntState, len(e.ants))
	for i, ent := range e.ants {
		pos := e.posMap.Get(ent)
		heading := e.headingMap.Get(ent)
		cargo := e.cargoMap.Get(ent)
		ants[i] = AntState{
			X:           pos.X,
			Y:           pos.Y,
			Heading:     heading.Angle,
			Carrying:    cargo.Carrying,
			ForceReturn: cargo.ForceReturn,
		}
	}

	food := make([]systems.FoodSource, len(e.food.Sources()))
	copy(food, e.food.Sources())

	return Snapshot{
		WorldWidth:  e.geom.Width,
		WorldHeight: e.geom.Height,
		NestX:       e.geom.NestX,
		NestY:       e.geom.NestY,
		NestRadius:  e.geom.NestRadius,
		Ants:        ants,
		Food:        food,
		HomeTrail:   e.homeTrail.Clone(),
		FoodTrail:   e.foodTrail.Clone(),
		NestSignal:  e.nestSignal.Clone(),
		Stats:       e.stats,
		Tick:        e.tick,
	}
}
