// Package sim owns the simulation engine: the ECS world, the fixed-step
// clock, the pheromone fields, the food lifecycle, and the population.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/systems"
	"github.com/pthm-cable/forage/telemetry"
)

// Stats holds cumulative run counters.
type Stats struct {
	DeliveredFood  int
	Pickups        int
	ForcedReturns  int
	ElapsedSeconds float64
}

// Engine is the headless simulation core. It advances in fixed steps fed by
// Tick; all mutation happens on the calling goroutine.
type Engine struct {
	cfg *config.Config
	rng *rand.Rand

	world     *ecs.World
	antMapper *ecs.Map4[
		components.Position,
		components.Heading,
		components.Cargo,
		components.Navigation,
	]

	// Individual component mappers for lookups
	posMap     *ecs.Map1[components.Position]
	headingMap *ecs.Map1[components.Heading]
	cargoMap   *ecs.Map1[components.Cargo]
	navMap     *ecs.Map1[components.Navigation]

	// Spawn-ordered entity list. Agents are advanced strictly in this order
	// so same-seed runs replay identically.
	ants []ecs.Entity

	homeTrail  *systems.Field
	foodTrail  *systems.Field
	nestSignal *systems.Field

	food *systems.FoodManager
	geom systems.WorldGeom

	clock     *Clock
	collector *telemetry.Collector

	settings Settings
	pending  *Settings

	stats   Stats
	tick    int64
	running bool
	paused  bool
}

// New creates an engine from a finalized config and a deterministic seed.
func New(cfg *config.Config, seed int64) (*Engine, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		settings: SettingsFromConfig(cfg),
		geom: systems.WorldGeom{
			Width:      cfg.Derived.WorldW32,
			Height:     cfg.Derived.WorldH32,
			NestX:      cfg.Derived.NestX32,
			NestY:      cfg.Derived.NestY32,
			NestRadius: float32(cfg.Nest.Radius),
		},
	}
	e.initWorld()
	return e, nil
}

// initWorld builds a fresh ECS world, fields, food manager, clock, and
// collector. Used by New and Reset.
func (e *Engine) initWorld() {
	world := ecs.NewWorld()
	e.world = world
	e.antMapper = ecs.NewMap4[
		components.Position,
		components.Heading,
		components.Cargo,
		components.Navigation,
	](world)
	e.posMap = ecs.NewMap1[components.Position](world)
	e.headingMap = ecs.NewMap1[components.Heading](world)
	e.cargoMap = ecs.NewMap1[components.Cargo](world)
	e.navMap = ecs.NewMap1[components.Navigation](world)
	e.ants = nil

	cellSize := float32(e.cfg.Pheromone.CellSize)
	e.homeTrail = systems.NewField(e.geom.Width, e.geom.Height, cellSize)
	e.foodTrail = systems.NewField(e.geom.Width, e.geom.Height, cellSize)
	e.nestSignal = systems.NewField(e.geom.Width, e.geom.Height, cellSize)

	e.food = systems.NewFoodManager(systems.FoodParams{
		MaxSources:           e.cfg.Food.MaxSources,
		RespawnMinSec:        float32(e.cfg.Food.RespawnMinSec),
		RespawnMaxSec:        float32(e.cfg.Food.RespawnMaxSec),
		NestExclusionRadius:  float32(e.cfg.Food.NestExclusionRadius),
		DefaultCapacity:      float32(e.cfg.Food.DefaultCapacity),
		DefaultRadius:        float32(e.cfg.Food.DefaultRadius),
		DefaultDepletionRate: float32(e.cfg.Food.DefaultDepletionRate),
	}, e.rng)

	e.clock = NewClock(e.cfg.Clock.FixedStep, e.cfg.Clock.MaxFrameTime)
	e.collector = telemetry.NewCollector(e.cfg.Telemetry.StatsWindow, e.cfg.Derived.FixedStep32)

	e.stats = Stats{}
	e.tick = 0
}

// Tick feeds a frame's elapsed wall time (seconds) into the clock and runs
// the resulting whole fixed steps. Returns the number of steps run.
func (e *Engine) Tick(elapsed float64) int {
	if !e.running || e.paused {
		return 0
	}
	steps := e.clock.Advance(elapsed, e.settings.TimeScale)
	for i := 0; i < steps; i++ {
		e.step()
	}
	return steps
}

// Step runs exactly one fixed step, bypassing the clock. Intended for
// headless drivers and tests that want step-precise control.
func (e *Engine) Step() {
	e.step()
}

// step runs one fixed simulation step: settings swap, field evaporation,
// population resize, sequential agent advancement, then the food lifecycle.
func (e *Engine) step() {
	if e.pending != nil {
		e.settings = *e.pending
		e.settings.clamp()
		e.pending = nil
	}

	dt := e.clock.FixedStep()
	evap := float32(e.settings.EvaporationRate)
	e.homeTrail.Evaporate(evap, dt)
	e.foodTrail.Evaporate(evap, dt)
	e.nestSignal.Evaporate(evap, dt)

	e.resizeTo(e.settings.AntCount)

	in := systems.AntStepInput{
		DT:             dt,
		Speed:          float32(e.settings.AntSpeed),
		Influence:      float32(e.settings.PheromoneInfluence),
		Randomness:     float32(e.settings.Randomness),
		DepositionRate: float32(e.settings.DepositionRate),
	}
	fields := systems.Fields{
		HomeTrail:  e.homeTrail,
		FoodTrail:  e.foodTrail,
		NestSignal: e.nestSignal,
	}

	for _, ent := range e.ants {
		out := systems.AdvanceAnt(
			e.posMap.Get(ent),
			e.headingMap.Get(ent),
			e.cargoMap.Get(ent),
			e.navMap.Get(ent),
			fields, e.food, e.geom, in, e.rng,
		)
		if out.PickedUp {
			e.stats.Pickups++
			e.collector.RecordPickup()
		}
		if out.Delivered {
			e.stats.DeliveredFood++
			e.collector.RecordDelivery(out.TripSeconds)
		}
		if out.ForcedReturn {
			e.stats.ForcedReturns++
			e.collector.RecordForcedReturn()
		}
	}

	events := e.food.Step(dt, e.foodTrail, systems.FoodStepInput{
		AllowDepletion:      e.settings.AllowFoodDepletion,
		DepletionMultiplier: float32(e.settings.DepletionMultiplier),
		AutoSpawn:           e.settings.AutoSpawnFood,
		NestX:               e.geom.NestX,
		NestY:               e.geom.NestY,
		WorldW:              e.geom.Width,
		WorldH:              e.geom.Height,
	})
	if events.Spawned > 0 {
		e.collector.RecordFoodSpawned(events.Spawned)
	}
	if events.Depleted > 0 {
		e.collector.RecordFoodDepleted(events.Depleted)
	}

	e.stats.ElapsedSeconds += float64(dt)
	e.tick++
}

// WindowReady reports whether the current stats window has elapsed.
func (e *Engine) WindowReady() bool {
	return e.collector.ShouldFlush(e.tick)
}

// FlushWindow closes the current stats window and returns its aggregate.
func (e *Engine) FlushWindow() telemetry.WindowStats {
	carrying := 0
	for _, ent := range e.ants {
		if e.cargoMap.Get(ent).Carrying {
			carrying++
		}
	}

	var foodCapacity float64
	for _, s := range e.food.Sources() {
		foodCapacity += float64(s.Capacity)
	}

	return e.collector.Flush(e.tick, telemetry.Snapshot{
		AntCount:       len(e.ants),
		CarryingAnts:   carrying,
		DeliveredTotal: e.stats.DeliveredFood,
		HomeTrail:      e.homeTrail.Total(),
		FoodTrail:      e.foodTrail.Total(),
		NestSignal:     e.nestSignal.Total(),
		FoodSources:    e.food.Count(),
		FoodCapacity:   foodCapacity,
	})
}
