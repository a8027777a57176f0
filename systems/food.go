package systems

import (
	"math"
	"math/rand"
)

// capacityEpsilon is the capacity below which a food source is destroyed.
const capacityEpsilon = 0.1

// placementAttempts bounds the rejection-sampling retries per respawned source.
const placementAttempts = 12

// FoodSource is a depletable food deposit in the world.
// Capacity stays within [0, MaxCapacity] for the source's whole lifetime.
type FoodSource struct {
	ID            uint32
	X, Y          float32
	Radius        float32
	Capacity      float32
	MaxCapacity   float32
	DepletionRate float32 // passive depletion per second, when enabled
}

// FoodParams holds the static food lifecycle tunables.
type FoodParams struct {
	MaxSources           int
	RespawnMinSec        float32
	RespawnMaxSec        float32
	NestExclusionRadius  float32
	DefaultCapacity      float32
	DefaultRadius        float32
	DefaultDepletionRate float32
}

// PlaceOverrides carries optional per-placement values; zero means "use the
// configured default".
type PlaceOverrides struct {
	Capacity      float32
	Radius        float32
	DepletionRate float32
}

// FoodStepInput carries the per-step settings the manager re-reads each step.
type FoodStepInput struct {
	AllowDepletion      bool
	DepletionMultiplier float32
	AutoSpawn           bool
	NestX, NestY        float32
	WorldW, WorldH      float32
}

// FoodStepEvents reports what happened during a lifecycle step, for telemetry.
type FoodStepEvents struct {
	Spawned  int // sources created by the respawn timer
	Depleted int // sources removed after dropping below the epsilon
}

// FoodManager owns the set of active food sources: placement, depletion,
// scent reinforcement, and randomized respawn.
type FoodManager struct {
	params  FoodParams
	rng     *rand.Rand
	sources []FoodSource
	nextID  uint32

	respawnTimer float32
}

// NewFoodManager creates a manager with an armed respawn countdown.
func NewFoodManager(params FoodParams, rng *rand.Rand) *FoodManager {
	m := &FoodManager{
		params: params,
		rng:    rng,
		nextID: 1,
	}
	m.respawnTimer = m.drawRespawnDelay()
	return m
}

// drawRespawnDelay samples a fresh countdown uniformly between the bounds.
func (m *FoodManager) drawRespawnDelay() float32 {
	lo, hi := m.params.RespawnMinSec, m.params.RespawnMaxSec
	if hi <= lo {
		return lo
	}
	return lo + m.rng.Float32()*(hi-lo)
}

// Place creates a food source at a caller-supplied point (already clamped to
// world bounds by the caller). Zero override fields fall back to defaults.
func (m *FoodManager) Place(x, y float32, o PlaceOverrides) FoodSource {
	capacity := o.Capacity
	if capacity <= 0 {
		capacity = m.params.DefaultCapacity
	}
	radius := o.Radius
	if radius <= 0 {
		radius = m.params.DefaultRadius
	}
	depletion := o.DepletionRate
	if depletion <= 0 {
		depletion = m.params.DefaultDepletionRate
	}

	s := FoodSource{
		ID:            m.nextID,
		X:             x,
		Y:             y,
		Radius:        radius,
		Capacity:      capacity,
		MaxCapacity:   capacity,
		DepletionRate: depletion,
	}
	m.nextID++
	m.sources = append(m.sources, s)
	return s
}

// PickupAt attempts an active pickup at the agent's position: if the point is
// inside a source's radius and that source has capacity, exactly one unit is
// removed and the pickup succeeds.
func (m *FoodManager) PickupAt(x, y float32) bool {
	for i := range m.sources {
		s := &m.sources[i]
		if s.Capacity <= 0 {
			continue
		}
		if distanceSq(x, y, s.X, s.Y) <= s.Radius*s.Radius {
			s.Capacity--
			if s.Capacity < 0 {
				s.Capacity = 0
			}
			return true
		}
	}
	return false
}

// Step runs one lifecycle pass: passive depletion, removal of exhausted
// sources, scent reinforcement into the food-trail field, and the respawn
// countdown.
func (m *FoodManager) Step(dt float32, foodTrail *Field, in FoodStepInput) FoodStepEvents {
	var events FoodStepEvents

	// Passive depletion
	if in.AllowDepletion && in.DepletionMultiplier > 0 {
		for i := range m.sources {
			s := &m.sources[i]
			s.Capacity -= s.DepletionRate * in.DepletionMultiplier * dt
			if s.Capacity < 0 {
				s.Capacity = 0
			}
		}
	}

	// Remove exhausted sources, preserving order
	kept := m.sources[:0]
	for _, s := range m.sources {
		if s.Capacity < capacityEpsilon {
			events.Depleted++
			continue
		}
		kept = append(kept, s)
	}
	m.sources = kept

	// Reinforcement: every active source keeps a standing gradient alive in
	// the food-trail field so foragers can find it from nearby.
	base := 4 * dt
	if base < 0.08 {
		base = 0.08
	}
	for i := range m.sources {
		m.reinforce(&m.sources[i], foodTrail, base)
	}

	// Respawn countdown. The timer re-arms after every attempt, whether or
	// not anything was spawned.
	m.respawnTimer -= dt
	if m.respawnTimer <= 0 {
		if in.AutoSpawn && len(m.sources) < m.params.MaxSources {
			events.Spawned = m.respawn(in)
		}
		m.respawnTimer = m.drawRespawnDelay()
	}

	return events
}

// reinforce deposits a center point plus two rings of samples around the
// source: inner at 0.45r carrying 60% of the base weight, outer at 0.9r
// carrying 40%.
func (m *FoodManager) reinforce(s *FoodSource, foodTrail *Field, base float32) {
	foodTrail.Deposit(s.X, s.Y, base)

	n := 8 + int(s.Radius)
	step := float32(2 * math.Pi / float64(n))
	for k := 0; k < n; k++ {
		sin, cos := sincos(float32(k) * step)
		foodTrail.Deposit(s.X+cos*s.Radius*0.45, s.Y+sin*s.Radius*0.45, base*0.6)
		foodTrail.Deposit(s.X+cos*s.Radius*0.9, s.Y+sin*s.Radius*0.9, base*0.4)
	}
}

// respawn spawns 2-3 new sources (capped by free slots) at rejected-and-
// retried positions away from the nest and from existing sources.
func (m *FoodManager) respawn(in FoodStepInput) int {
	count := 2 + m.rng.Intn(2)
	if free := m.params.MaxSources - len(m.sources); count > free {
		count = free
	}

	spawned := 0
	for i := 0; i < count; i++ {
		x, y, ok := m.findSpawnPosition(in)
		if !ok {
			continue
		}
		m.Place(x, y, PlaceOverrides{})
		spawned++
	}
	return spawned
}

// findSpawnPosition rejection-samples a position outside the nest exclusion
// zone and clear of existing sources. Attempts are bounded; a crowded world
// simply skips the spawn.
func (m *FoodManager) findSpawnPosition(in FoodStepInput) (float32, float32, bool) {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		x := m.rng.Float32() * in.WorldW
		y := m.rng.Float32() * in.WorldH

		if distance(x, y, in.NestX, in.NestY) < m.params.NestExclusionRadius {
			continue
		}

		clear := true
		for j := range m.sources {
			s := &m.sources[j]
			if distance(x, y, s.X, s.Y) < s.Radius+2 {
				clear = false
				break
			}
		}
		if clear {
			return x, y, true
		}
	}
	return 0, 0, false
}

// Sources returns the live source slice. Callers must copy before retaining.
func (m *FoodManager) Sources() []FoodSource {
	return m.sources
}

// Count returns the number of active sources.
func (m *FoodManager) Count() int {
	return len(m.sources)
}

// Reset discards all sources and re-arms the respawn countdown.
func (m *FoodManager) Reset() {
	m.sources = m.sources[:0]
	m.respawnTimer = m.drawRespawnDelay()
}
