package systems

import (
	"math"
	"math/rand"
	"testing"
)

func testFoodParams() FoodParams {
	return FoodParams{
		MaxSources:           5,
		RespawnMinSec:        18,
		RespawnMaxSec:        32,
		NestExclusionRadius:  24,
		DefaultCapacity:      250,
		DefaultRadius:        3,
		DefaultDepletionRate: 1.0,
	}
}

func TestPlaceUsesDefaultsAndOverrides(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(1)))

	s := m.Place(50, 50, PlaceOverrides{})
	if s.Capacity != 250 || s.Radius != 3 || s.DepletionRate != 1.0 {
		t.Errorf("defaults not applied: %+v", s)
	}
	if s.MaxCapacity != s.Capacity {
		t.Errorf("MaxCapacity = %v, want %v", s.MaxCapacity, s.Capacity)
	}

	s = m.Place(60, 60, PlaceOverrides{Capacity: 40, Radius: 5, DepletionRate: 2})
	if s.Capacity != 40 || s.Radius != 5 || s.DepletionRate != 2 {
		t.Errorf("overrides not applied: %+v", s)
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}
}

func TestPickupDecrementsExactlyOne(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(1)))
	m.Place(100, 40, PlaceOverrides{Capacity: 250})

	if !m.PickupAt(101, 41) {
		t.Fatal("pickup inside radius failed")
	}
	if got := m.Sources()[0].Capacity; got != 249 {
		t.Errorf("capacity after pickup = %v, want 249", got)
	}

	// Outside the radius
	if m.PickupAt(110, 40) {
		t.Error("pickup outside radius succeeded")
	}
}

func TestPickupFailsOnEmptySource(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(1)))
	m.Place(50, 50, PlaceOverrides{Capacity: 1})

	if !m.PickupAt(50, 50) {
		t.Fatal("first pickup failed")
	}
	if m.PickupAt(50, 50) {
		t.Error("pickup from empty source succeeded")
	}
}

func TestPassiveDepletionRemovesSource(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(1)))
	m.Place(50, 50, PlaceOverrides{Capacity: 10, DepletionRate: 1})
	field := NewField(240, 160, 2)

	in := FoodStepInput{
		AllowDepletion:      true,
		DepletionMultiplier: 1,
		NestX:               120, NestY: 80,
		WorldW: 240, WorldH: 160,
	}

	// capacity/rate = 10 seconds of simulated time at dt=0.05
	dt := float32(0.05)
	steps := int(10.0/0.05) + 2
	removedAt := -1
	for i := 0; i < steps; i++ {
		ev := m.Step(dt, field, in)
		if ev.Depleted > 0 {
			removedAt = i
			break
		}
	}

	if removedAt < 0 {
		t.Fatal("source never removed by passive depletion")
	}
	if m.Count() != 0 {
		t.Errorf("Count after removal = %d, want 0", m.Count())
	}

	// Removed close to the analytic time (capacity drops below 0.1 just
	// before the 10 s mark).
	elapsed := float64(removedAt) * 0.05
	if math.Abs(elapsed-9.9) > 0.5 {
		t.Errorf("removed at %.2fs, want ~9.9s", elapsed)
	}
}

func TestCapacityNeverLeavesRange(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(3)))
	m.Place(50, 50, PlaceOverrides{Capacity: 3, DepletionRate: 5})
	field := NewField(240, 160, 2)

	in := FoodStepInput{
		AllowDepletion:      true,
		DepletionMultiplier: 4,
		NestX:               120, NestY: 80,
		WorldW: 240, WorldH: 160,
	}

	for i := 0; i < 100 && m.Count() > 0; i++ {
		m.PickupAt(50, 50)
		m.Step(0.05, field, in)
		for _, s := range m.Sources() {
			if s.Capacity < 0 || s.Capacity > s.MaxCapacity {
				t.Fatalf("capacity %v outside [0, %v]", s.Capacity, s.MaxCapacity)
			}
		}
	}
}

func TestReinforcementBuildsGradient(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(1)))
	m.Place(100, 40, PlaceOverrides{Radius: 3})
	field := NewField(240, 160, 2)

	m.Step(0.05, field, FoodStepInput{NestX: 120, NestY: 80, WorldW: 240, WorldH: 160})

	if got := field.Sample(100, 40); got <= 0 {
		t.Errorf("no center deposit after reinforcement, sample = %v", got)
	}
	if field.Total() <= 0 {
		t.Error("reinforcement deposited nothing")
	}
}

func TestRespawnSpawnsWithinConstraints(t *testing.T) {
	p := testFoodParams()
	m := NewFoodManager(p, rand.New(rand.NewSource(9)))
	field := NewField(240, 160, 2)

	in := FoodStepInput{
		AutoSpawn: true,
		NestX:     120, NestY: 80,
		WorldW: 240, WorldH: 160,
	}

	// Force the countdown to elapse on the next step
	m.respawnTimer = 0.01

	ev := m.Step(0.05, field, in)
	if ev.Spawned < 2 || ev.Spawned > 3 {
		t.Fatalf("spawned %d sources, want 2-3", ev.Spawned)
	}

	sources := m.Sources()
	for i, s := range sources {
		if d := distance(s.X, s.Y, in.NestX, in.NestY); d < p.NestExclusionRadius {
			t.Errorf("source %d at distance %.1f from nest, want >= %.1f", i, d, p.NestExclusionRadius)
		}
		for j := 0; j < i; j++ {
			o := sources[j]
			if d := distance(s.X, s.Y, o.X, o.Y); d < o.Radius+2 {
				t.Errorf("sources %d and %d only %.1f apart, want >= %.1f", i, j, d, o.Radius+2)
			}
		}
	}

	// Timer re-armed to a fresh draw within bounds
	if m.respawnTimer < p.RespawnMinSec || m.respawnTimer > p.RespawnMaxSec {
		t.Errorf("respawn timer = %v, want within [%v, %v]", m.respawnTimer, p.RespawnMinSec, p.RespawnMaxSec)
	}
}

func TestRespawnDisabledWithoutAutoSpawn(t *testing.T) {
	m := NewFoodManager(testFoodParams(), rand.New(rand.NewSource(9)))
	field := NewField(240, 160, 2)

	m.respawnTimer = 0.01
	ev := m.Step(0.05, field, FoodStepInput{
		AutoSpawn: false,
		NestX:     120, NestY: 80,
		WorldW: 240, WorldH: 160,
	})

	if ev.Spawned != 0 || m.Count() != 0 {
		t.Errorf("spawned %d sources with auto-spawn off", ev.Spawned)
	}
	// Timer still re-armed
	if m.respawnTimer <= 1 {
		t.Errorf("respawn timer not re-armed, got %v", m.respawnTimer)
	}
}

func TestRespawnRespectsCap(t *testing.T) {
	p := testFoodParams()
	p.MaxSources = 3
	m := NewFoodManager(p, rand.New(rand.NewSource(4)))
	field := NewField(240, 160, 2)

	m.Place(30, 30, PlaceOverrides{})
	m.Place(200, 130, PlaceOverrides{})

	m.respawnTimer = 0.01
	m.Step(0.05, field, FoodStepInput{
		AutoSpawn: true,
		NestX:     120, NestY: 80,
		WorldW: 240, WorldH: 160,
	})

	if m.Count() > p.MaxSources {
		t.Errorf("source count %d exceeds cap %d", m.Count(), p.MaxSources)
	}
}
