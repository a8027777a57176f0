package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/forage/config"
	"github.com/pthm-cable/forage/sim"
	"github.com/pthm-cable/forage/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	ants := flag.Int("ants", 0, "Ant count override (0 = use config)")
	timeScale := flag.Float64("time-scale", 0, "Time scale override (0 = use config)")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	maxSteps := flag.Int64("max-steps", 0, "Stop after N fixed steps (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *ants > 0 {
		cfg.Colony.AntCount = *ants
	}
	if *timeScale > 0 {
		cfg.Clock.TimeScale = *timeScale
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	engine, err := sim.New(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"ants", cfg.Colony.AntCount,
		"world", cfg.World,
		"stats_window", cfg.Telemetry.StatsWindow,
		"max_steps", *maxSteps,
	)

	engine.Start()

	// Synthetic 60fps frames drive the fixed-step clock, so time_scale
	// behaves the same headless as it would under a renderer.
	const frame = 1.0 / 60.0
	for {
		engine.Tick(frame)

		if engine.WindowReady() {
			stats := engine.FlushWindow()
			if *logStats {
				stats.LogStats()
			}
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("failed to write telemetry", "error", err)
			}
		}

		if *maxSteps > 0 && engine.TickCount() >= *maxSteps {
			break
		}
	}

	final := engine.Stats()
	slog.Info("simulation complete",
		"steps", engine.TickCount(),
		"sim_seconds", final.ElapsedSeconds,
		"delivered", final.DeliveredFood,
		"pickups", final.Pickups,
		"forced_returns", final.ForcedReturns,
	)
}
