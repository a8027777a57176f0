package sim

import (
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
)

// Settings is the runtime-adjustable parameter set. Changes are staged via
// Apply and take effect at the start of the next fixed step, never mid-step.
type Settings struct {
	AntCount            int
	AntSpeed            float64
	PheromoneInfluence  float64
	Randomness          float64
	EvaporationRate     float64
	DepositionRate      float64
	TimeScale           float64
	AllowFoodDepletion  bool
	DepletionMultiplier float64
	AutoSpawnFood       bool
}

// SettingsFromConfig derives the initial runtime settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		AntCount:            cfg.Colony.AntCount,
		AntSpeed:            cfg.Colony.AntSpeed,
		PheromoneInfluence:  cfg.Pheromone.Influence,
		Randomness:          cfg.Pheromone.Randomness,
		EvaporationRate:     cfg.Pheromone.EvaporationRate,
		DepositionRate:      cfg.Pheromone.DepositionRate,
		TimeScale:           cfg.Clock.TimeScale,
		AllowFoodDepletion:  cfg.Food.AllowDepletion,
		DepletionMultiplier: cfg.Food.DepletionMultiplier,
		AutoSpawnFood:       cfg.Food.AutoSpawn,
	}
}

// clamp forces staged settings into their working ranges, mirroring config
// validation so a UI slider or tuner cannot inject corrupting values.
func (s *Settings) clamp() {
	if s.AntCount < 0 {
		s.AntCount = 0
	}
	if s.AntSpeed < 0 {
		s.AntSpeed = 0
	}
	if s.PheromoneInfluence < 0 {
		s.PheromoneInfluence = 0
	}
	if s.Randomness < 0 {
		s.Randomness = 0
	}
	if s.EvaporationRate < 0 {
		s.EvaporationRate = 0
	}
	if s.DepositionRate < 0 {
		s.DepositionRate = 0
	}
	if s.TimeScale <= 0 {
		s.TimeScale = 1
	}
	if s.DepletionMultiplier < 0 {
		s.DepletionMultiplier = 0
	}
}

// Start begins a run. Food placed before Start survives; a running engine
// restarts from a clean state.
func (e *Engine) Start() {
	if e.running {
		e.Reset()
	}
	e.resizeTo(e.settings.AntCount)
	e.running = true
	e.paused = false
}

// Pause suspends stepping; Tick becomes a no-op until Resume.
func (e *Engine) Pause() {
	e.paused = true
}

// Resume continues a paused run.
func (e *Engine) Resume() {
	e.paused = false
}

// Reset discards all run state: agents, fields, food, stats, and any clock
// remainder. Settings and the RNG stream are kept so a restarted run
// continues the same random sequence.
func (e *Engine) Reset() {
	e.initWorld()
	e.running = false
	e.paused = false
}

// Apply stages a settings change for the start of the next fixed step.
func (e *Engine) Apply(s Settings) {
	e.pending = &s
}

// PlaceFood creates a food source at the given point, clamped to world
// bounds. Zero override fields use configured defaults.
func (e *Engine) PlaceFood(x, y float32, o systems.PlaceOverrides) systems.FoodSource {
	if x < 0 {
		x = 0
	}
	if x > e.geom.Width {
		x = e.geom.Width
	}
	if y < 0 {
		y = 0
	}
	if y > e.geom.Height {
		y = e.geom.Height
	}
	return e.food.Place(x, y, o)
}

// Running reports whether the engine has been started and not reset.
func (e *Engine) Running() bool {
	return e.running
}

// Paused reports whether stepping is suspended.
func (e *Engine) Paused() bool {
	return e.paused
}

// Settings returns the active settings (staged changes excluded).
func (e *Engine) Settings() Settings {
	return e.settings
}

// Stats returns cumulative run counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// TickCount returns the number of fixed steps run since Start or Reset.
func (e *Engine) TickCount() int64 {
	return e.tick
}

// AntCount returns the live population size.
func (e *Engine) AntCount() int {
	return len(e.ants)
}

// FoodCount returns the number of active food sources.
func (e *Engine) FoodCount() int {
	return e.food.Count()
}
