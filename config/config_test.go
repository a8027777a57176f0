package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		t.Errorf("defaults have invalid world: %vx%v", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Clock.FixedStep <= 0 {
		t.Errorf("defaults have invalid fixed_step: %v", cfg.Clock.FixedStep)
	}

	// Nest is always at world center
	if cfg.Derived.NestX32 != float32(cfg.World.Width/2) {
		t.Errorf("nest X = %v, want %v", cfg.Derived.NestX32, cfg.World.Width/2)
	}
	if cfg.Derived.NestY32 != float32(cfg.World.Height/2) {
		t.Errorf("nest Y = %v, want %v", cfg.Derived.NestY32, cfg.World.Height/2)
	}
}

func TestValidateRejectsFatal(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"negative height", func(c *Config) { c.World.Height = -10 }},
		{"zero time scale", func(c *Config) { c.Clock.TimeScale = 0 }},
		{"zero fixed step", func(c *Config) { c.Clock.FixedStep = 0 }},
		{"zero cell size", func(c *Config) { c.Pheromone.CellSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("loading defaults: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted a fatal config")
			}
		})
	}
}

func TestValidateClampsSoftValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	cfg.Colony.AntCount = -5
	cfg.Pheromone.Influence = -1
	cfg.Food.RespawnMinSec = 20
	cfg.Food.RespawnMaxSec = 10

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate rejected a clampable config: %v", err)
	}
	if cfg.Colony.AntCount != 0 {
		t.Errorf("ant_count = %d, want 0", cfg.Colony.AntCount)
	}
	if cfg.Pheromone.Influence != 0 {
		t.Errorf("influence = %v, want 0", cfg.Pheromone.Influence)
	}
	if cfg.Food.RespawnMaxSec != 20 {
		t.Errorf("respawn_max = %v, want raised to respawn_min 20", cfg.Food.RespawnMaxSec)
	}
}
