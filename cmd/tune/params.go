// Package main provides CMA-ES tuning for foraging simulation parameters.
package main

import (
	"github.com/pthm-cable/forage/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters. Cell size
// is locked: changing grid resolution mid-search makes runs incomparable.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "influence", Path: "pheromone.influence", Min: 0.1, Max: 3.0, Default: 0.8},
			{Name: "randomness", Path: "pheromone.randomness", Min: 0.05, Max: 1.0, Default: 0.3},
			{Name: "evaporation_rate", Path: "pheromone.evaporation_rate", Min: 0.02, Max: 1.0, Default: 0.15},
			{Name: "deposition_rate", Path: "pheromone.deposition_rate", Min: 0.1, Max: 1.0, Default: 0.55},
			{Name: "ant_speed", Path: "colony.ant_speed", Min: 10.0, Max: 60.0, Default: 28.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Pheromone.Influence = clamped[0]
	cfg.Pheromone.Randomness = clamped[1]
	cfg.Pheromone.EvaporationRate = clamped[2]
	cfg.Pheromone.DepositionRate = clamped[3]
	cfg.Colony.AntSpeed = clamped[4]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Pheromone.Influence,
		cfg.Pheromone.Randomness,
		cfg.Pheromone.EvaporationRate,
		cfg.Pheromone.DepositionRate,
		cfg.Colony.AntSpeed,
	}
}
