// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Nest      NestConfig      `yaml:"nest"`
	Colony    ColonyConfig    `yaml:"colony"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Food      FoodConfig      `yaml:"food"`
	Clock     ClockConfig     `yaml:"clock"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the simulation world dimensions in world units.
// Both must be positive; the world is immutable for a run.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// NestConfig holds nest parameters. The nest always sits at world center.
type NestConfig struct {
	Radius float64 `yaml:"radius"`
}

// ColonyConfig holds ant population parameters.
type ColonyConfig struct {
	AntCount      int     `yaml:"ant_count"`      // target population, resized toward each step
	AntSpeed      float64 `yaml:"ant_speed"`      // world units per second
	HeadingJitter float64 `yaml:"heading_jitter"` // spawn heading jitter in radians
}

// PheromoneConfig holds scent field parameters shared by all three fields.
type PheromoneConfig struct {
	CellSize        float64 `yaml:"cell_size"`        // grid cell size in world units
	Influence       float64 `yaml:"influence"`        // trail-following strength
	Randomness      float64 `yaml:"randomness"`       // heading jitter scale when no trail is sensed
	EvaporationRate float64 `yaml:"evaporation_rate"` // per second
	DepositionRate  float64 `yaml:"deposition_rate"`  // per deposit interval
}

// FoodConfig holds food source lifecycle parameters.
type FoodConfig struct {
	AllowDepletion       bool    `yaml:"allow_depletion"`        // enable passive depletion
	DepletionMultiplier  float64 `yaml:"depletion_multiplier"`   // scales passive depletion
	AutoSpawn            bool    `yaml:"auto_spawn"`             // enable randomized respawn
	MaxSources           int     `yaml:"max_sources"`            // active source cap
	RespawnMinSec        float64 `yaml:"respawn_min_sec"`        // respawn countdown lower bound
	RespawnMaxSec        float64 `yaml:"respawn_max_sec"`        // respawn countdown upper bound
	NestExclusionRadius  float64 `yaml:"nest_exclusion_radius"`  // min distance from nest for respawns
	DefaultCapacity      float64 `yaml:"default_capacity"`       // units of food per placed source
	DefaultRadius        float64 `yaml:"default_radius"`         // pickup radius in world units
	DefaultDepletionRate float64 `yaml:"default_depletion_rate"` // passive depletion per second
}

// ClockConfig holds fixed-step integrator parameters.
type ClockConfig struct {
	TimeScale    float64 `yaml:"time_scale"`     // user speed factor, must be > 0
	FixedStep    float64 `yaml:"fixed_step"`     // seconds per simulation step
	MaxFrameTime float64 `yaml:"max_frame_time"` // scaled per-tick cap to avoid runaway catch-up
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // simulation seconds per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32    float32 // World.Width as float32
	WorldH32    float32 // World.Height as float32
	NestX32     float32 // nest center X (world center)
	NestY32     float32 // nest center Y (world center)
	FixedStep32 float32 // Clock.FixedStep as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Finalize validates the configuration and computes derived values. Load
// calls this automatically; callers that build or mutate a Config directly
// must call it before use.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate rejects configurations the simulation must not run with and
// clamps soft values into their working ranges. Non-positive world
// dimensions and time scale are fatal; everything else degrades gracefully
// so malformed inputs cannot corrupt direction math.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world dimensions must be positive, got %.2fx%.2f", c.World.Width, c.World.Height)
	}
	if c.Clock.TimeScale <= 0 {
		return fmt.Errorf("config: time_scale must be positive, got %.3f", c.Clock.TimeScale)
	}
	if c.Clock.FixedStep <= 0 {
		return fmt.Errorf("config: fixed_step must be positive, got %.3f", c.Clock.FixedStep)
	}
	if c.Pheromone.CellSize <= 0 {
		return fmt.Errorf("config: pheromone cell_size must be positive, got %.3f", c.Pheromone.CellSize)
	}

	if c.Colony.AntCount < 0 {
		c.Colony.AntCount = 0
	}
	if c.Colony.AntSpeed < 0 {
		c.Colony.AntSpeed = 0
	}
	if c.Pheromone.Influence < 0 {
		c.Pheromone.Influence = 0
	}
	if c.Pheromone.Randomness < 0 {
		c.Pheromone.Randomness = 0
	}
	if c.Pheromone.EvaporationRate < 0 {
		c.Pheromone.EvaporationRate = 0
	}
	if c.Pheromone.DepositionRate < 0 {
		c.Pheromone.DepositionRate = 0
	}
	if c.Food.DepletionMultiplier < 0 {
		c.Food.DepletionMultiplier = 0
	}
	if c.Food.MaxSources < 0 {
		c.Food.MaxSources = 0
	}
	if c.Food.RespawnMaxSec < c.Food.RespawnMinSec {
		c.Food.RespawnMaxSec = c.Food.RespawnMinSec
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.NestX32 = float32(c.World.Width / 2)
	c.Derived.NestY32 = float32(c.World.Height / 2)
	c.Derived.FixedStep32 = float32(c.Clock.FixedStep)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
