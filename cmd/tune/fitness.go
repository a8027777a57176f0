package main

import (
	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/sim"
)

// FitnessEvaluator runs headless simulations and scores parameter vectors.
// Fitness is negated mean delivered food across seeds, so the minimizer
// maximizes colony throughput.
type FitnessEvaluator struct {
	params   *ParamVector
	maxSteps int64
	seeds    []int64
	baseCfg  *config.Config

	lastDelivered float64
	lastForced    float64
}

// NewFitnessEvaluator creates an evaluator.
func NewFitnessEvaluator(params *ParamVector, maxSteps int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		maxSteps: maxSteps,
		seeds:    seeds,
		baseCfg:  baseCfg,
	}
}

// Evaluate scores one raw parameter vector.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	var deliveredSum, forcedSum float64

	for _, seed := range fe.seeds {
		delivered, forced := fe.runOne(raw, seed)
		deliveredSum += float64(delivered)
		forcedSum += float64(forced)
	}

	n := float64(len(fe.seeds))
	meanDelivered := deliveredSum / n
	meanForced := forcedSum / n

	fe.lastDelivered = meanDelivered
	fe.lastForced = meanForced

	// Forced returns are wasted trips; penalize them lightly so the search
	// does not favor configurations that strand carriers.
	return -(meanDelivered - 0.25*meanForced)
}

// runOne runs a single headless simulation and returns its counters.
func (fe *FitnessEvaluator) runOne(raw []float64, seed int64) (delivered, forced int) {
	cfg := *fe.baseCfg
	fe.params.ApplyToConfig(&cfg, raw)

	engine, err := sim.New(&cfg, seed)
	if err != nil {
		return 0, 0
	}
	engine.Start()

	for engine.TickCount() < fe.maxSteps {
		engine.Step()
	}

	stats := engine.Stats()
	return stats.DeliveredFood, stats.ForcedReturns
}

// LastDelivered returns the mean delivered food of the most recent evaluation.
func (fe *FitnessEvaluator) LastDelivered() float64 {
	return fe.lastDelivered
}

// LastForced returns the mean forced returns of the most recent evaluation.
func (fe *FitnessEvaluator) LastForced() float64 {
	return fe.lastForced
}
