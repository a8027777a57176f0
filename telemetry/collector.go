package telemetry

import "math"

// Snapshot carries the world-level values sampled at window end; the
// collector only accumulates events and cannot read the world itself.
type Snapshot struct {
	AntCount       int
	CarryingAnts   int
	DeliveredTotal int
	HomeTrail      float64
	FoodTrail      float64
	NestSignal     float64
	FoodSources    int
	FoodCapacity   float64
}

// Collector accumulates foraging events within stats windows and produces
// WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int64
	dt                  float32

	windowStartTick int64

	pickups         int
	deliveries      int
	forcedReturns   int
	sourcesSpawned  int
	sourcesDepleted int
	trips           []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: simulation seconds per window.
// dt: seconds per fixed step, for tick-to-time conversion.
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// Round, don't truncate: float32 dt makes the quotient land a hair
	// under the whole tick count (1.0 / float32(0.05) is ~19.9999997).
	ticksPerWindow := int64(math.Round(windowDurationSec / float64(dt)))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordPickup records a successful food pickup.
func (c *Collector) RecordPickup() {
	c.pickups++
}

// RecordDelivery records a completed delivery and its trip duration.
func (c *Collector) RecordDelivery(tripSeconds float32) {
	c.deliveries++
	c.trips = append(c.trips, float64(tripSeconds))
}

// RecordForcedReturn records an agent entering forced-return mode.
func (c *Collector) RecordForcedReturn() {
	c.forcedReturns++
}

// RecordFoodSpawned records respawned food sources.
func (c *Collector) RecordFoodSpawned(n int) {
	c.sourcesSpawned += n
}

// RecordFoodDepleted records removed food sources.
func (c *Collector) RecordFoodDepleted(n int) {
	c.sourcesDepleted += n
}

// ShouldFlush returns true once enough ticks have passed to close the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int64, snap Snapshot) WindowStats {
	tripMean, tripStd, tripP50, tripP90 := ComputeTripStats(c.trips)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		AntCount:     snap.AntCount,
		CarryingAnts: snap.CarryingAnts,

		Pickups:         c.pickups,
		Deliveries:      c.deliveries,
		ForcedReturns:   c.forcedReturns,
		SourcesSpawned:  c.sourcesSpawned,
		SourcesDepleted: c.sourcesDepleted,

		DeliveredTotal: snap.DeliveredTotal,

		TripMean: tripMean,
		TripStd:  tripStd,
		TripP50:  tripP50,
		TripP90:  tripP90,

		HomeTrailTotal:  snap.HomeTrail,
		FoodTrailTotal:  snap.FoodTrail,
		NestSignalTotal: snap.NestSignal,

		FoodSources:  snap.FoodSources,
		FoodCapacity: snap.FoodCapacity,
	}

	c.windowStartTick = currentTick
	c.pickups = 0
	c.deliveries = 0
	c.forcedReturns = 0
	c.sourcesSpawned = 0
	c.sourcesDepleted = 0
	c.trips = c.trips[:0]

	return stats
}
