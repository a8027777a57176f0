// Package telemetry collects windowed foraging statistics and writes them
// to structured logs and CSV files.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population at window end
	AntCount     int `csv:"ants"`
	CarryingAnts int `csv:"carrying"`

	// Events during the window
	Pickups         int `csv:"pickups"`
	Deliveries      int `csv:"deliveries"`
	ForcedReturns   int `csv:"forced_returns"`
	SourcesSpawned  int `csv:"sources_spawned"`
	SourcesDepleted int `csv:"sources_depleted"`

	// Cumulative
	DeliveredTotal int `csv:"delivered_total"`

	// Pickup-to-delivery durations for trips completed in the window
	TripMean float64 `csv:"trip_mean"`
	TripStd  float64 `csv:"trip_std"`
	TripP50  float64 `csv:"trip_p50"`
	TripP90  float64 `csv:"trip_p90"`

	// Field totals at window end
	HomeTrailTotal  float64 `csv:"home_trail_total"`
	FoodTrailTotal  float64 `csv:"food_trail_total"`
	NestSignalTotal float64 `csv:"nest_signal_total"`

	// Active food at window end
	FoodSources  int     `csv:"food_sources"`
	FoodCapacity float64 `csv:"food_capacity"`
}

// ComputeTripStats calculates mean, standard deviation, and percentiles of
// trip durations.
func ComputeTripStats(trips []float64) (mean, std, p50, p90 float64) {
	if len(trips) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(trips))
	copy(sorted, trips)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		std = stat.StdDev(sorted, nil)
	}
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, std, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ants", s.AntCount),
		slog.Int("carrying", s.CarryingAnts),
		slog.Int("pickups", s.Pickups),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("forced_returns", s.ForcedReturns),
		slog.Int("sources_spawned", s.SourcesSpawned),
		slog.Int("sources_depleted", s.SourcesDepleted),
		slog.Int("delivered_total", s.DeliveredTotal),
		slog.Float64("trip_mean", s.TripMean),
		slog.Float64("trip_std", s.TripStd),
		slog.Float64("trip_p50", s.TripP50),
		slog.Float64("trip_p90", s.TripP90),
		slog.Float64("home_trail_total", s.HomeTrailTotal),
		slog.Float64("food_trail_total", s.FoodTrailTotal),
		slog.Float64("nest_signal_total", s.NestSignalTotal),
		slog.Int("food_sources", s.FoodSources),
		slog.Float64("food_capacity", s.FoodCapacity),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
