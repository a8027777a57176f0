package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/forage/config"
)

// evalLog records every evaluation to CSV and tracks the best vector seen.
// CMA-ES only reports the final mean, so the best clamped vector from any
// evaluation is what gets written out.
type evalLog struct {
	w      *csv.Writer
	params *ParamVector

	count   int
	best    float64
	bestVec []float64
	started time.Time
}

func newEvalLog(path string, params *ParamVector) (*evalLog, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := csv.NewWriter(f)

	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	w.Write(header)

	return &evalLog{
		w:       w,
		params:  params,
		best:    1e9,
		started: time.Now(),
	}, f, nil
}

// record logs one evaluation and returns true when it is the best so far.
func (l *evalLog) record(fitness float64, clamped []float64) bool {
	l.count++

	row := []string{strconv.Itoa(l.count), fmt.Sprintf("%.6f", fitness)}
	for _, v := range clamped {
		row = append(row, fmt.Sprintf("%.6f", v))
	}
	l.w.Write(row)
	l.w.Flush()

	if fitness < l.best {
		l.best = fitness
		l.bestVec = append(l.bestVec[:0], clamped...)
		return true
	}
	return false
}

func (l *evalLog) elapsed() time.Duration {
	return time.Since(l.started).Round(time.Second)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxSteps := flag.Int64("max-steps", 36000, "Simulation steps per run (36000 = 30 sim-minutes at dt=0.05)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, *maxSteps, evalSeeds, baseCfg)

	logger, logFile, err := newEvalLog(filepath.Join(*outputDir, "tune_log.csv"), params)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)

			improved := logger.record(fitness, params.Clamp(raw))
			marker := ""
			if improved {
				marker = " *"
			}
			fmt.Printf("eval %d/%d: delivered=%.1f forced=%.1f fitness=%.2f%s [%s]\n",
				logger.count, *maxEvals,
				evaluator.LastDelivered(), evaluator.LastForced(), fitness,
				marker, logger.elapsed())

			return fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(params.Dim())/2.0)
	}

	fmt.Printf("tuning %d parameters: population=%d, max_evals=%d, seeds=%d, steps/run=%d\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxSteps)

	_, err = optimize.Minimize(
		problem,
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if logger.bestVec == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\ndone: %d evaluations in %s, best fitness %.2f\n",
		logger.count, logger.elapsed(), logger.best)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, logger.bestVec[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, logger.bestVec)

	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		log.Fatalf("failed to write best config: %v", err)
	}
	fmt.Printf("best config saved to %s\n", outPath)
}
