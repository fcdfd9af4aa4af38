// Package config provides the tunables of the simulation core, loaded from YAML.
package config

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds every tunable of the simulation core
type Config struct {
	Grid       GridConfig       `yaml:"grid"`
	Arena      ArenaConfig      `yaml:"arena"`
	Archetypes ArchetypesConfig `yaml:"archetypes"`
	Rammer     RammerConfig     `yaml:"rammer"`
	Zombie     ZombieConfig     `yaml:"zombie"`
}

// GridConfig holds spatial grid parameters
type GridConfig struct {
	CellSize float64 `yaml:"cell_size"`
}

// ArenaConfig is the default arena used when a host does not pass one
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ArchetypesConfig holds the simple archetypes' movement parameters
type ArchetypesConfig struct {
	Basic    BasicConfig    `yaml:"basic"`
	Elite    EliteConfig    `yaml:"elite"`
	Exploder ExploderConfig `yaml:"exploder"`
}

// BasicConfig tunes the wandering archetype
type BasicConfig struct {
	TurnRate    float64 `yaml:"turn_rate"`
	SpeedFactor float64 `yaml:"speed_factor"`
}

// EliteConfig tunes the pursuing archetype
type EliteConfig struct {
	EngageDistance float64 `yaml:"engage_distance"`
	SpeedFactor    float64 `yaml:"speed_factor"`
}

// ExploderConfig tunes the homing exploder
type ExploderConfig struct {
	SpeedFactor float64 `yaml:"speed_factor"`
	PulseRate   float64 `yaml:"pulse_rate"`
}

// ZombieConfig tunes converted enemies
type ZombieConfig struct {
	Lifetime float64 `yaml:"lifetime"`
}

// RammerConfig tunes the rammer state machine
type RammerConfig struct {
	BaseMax              float64 `yaml:"base_max"`
	BoostMax             float64 `yaml:"boost_max"`
	Restitution          float64 `yaml:"restitution"`
	Damping              float64 `yaml:"damping"`
	BoostFrames          float64 `yaml:"boost_frames"`
	HitCooldown          float64 `yaml:"hit_cooldown"`
	Steer                float64 `yaml:"steer"`
	Thrust               float64 `yaml:"thrust"`
	ChargeThrust         float64 `yaml:"charge_thrust"`
	ChargeDistance       float64 `yaml:"charge_distance"`
	ChargeProbability    float64 `yaml:"charge_probability"`
	ChargeFrames         float64 `yaml:"charge_frames"`
	ChargeSpeedBonus     float64 `yaml:"charge_speed_bonus"`
	ChargeCooldownMin    float64 `yaml:"charge_cooldown_min"`
	ChargeCooldownSpread float64 `yaml:"charge_cooldown_spread"`
	DodgeDistance        float64 `yaml:"dodge_distance"`
	DodgeForce           float64 `yaml:"dodge_force"`
	DodgeClosingLimit    float64 `yaml:"dodge_closing_limit"`
	OrbitBreakRadius     float64 `yaml:"orbit_break_radius"`
	OrbitTangentDamp     float64 `yaml:"orbit_tangent_damp"`
	OrbitInwardNudge     float64 `yaml:"orbit_inward_nudge"`
	CloseSteer           float64 `yaml:"close_steer"`
	MinForward           float64 `yaml:"min_forward"`
	MinForwardDistance   float64 `yaml:"min_forward_distance"`
	PredictFactor        float64 `yaml:"predict_factor"`
}

// Export returns the rammer tunables keyed by their host-side names
func (r RammerConfig) Export() map[string]float64 {
	return map[string]float64{
		"BASE_MAX":           r.BaseMax,
		"BOOST_MAX":          r.BoostMax,
		"REST":               r.Restitution,
		"DAMP":               r.Damping,
		"BOOST_FRAMES":       r.BoostFrames,
		"HIT_CD":             r.HitCooldown,
		"STEER":              r.Steer,
		"THRUST":             r.Thrust,
		"CHARGE_DIST":        r.ChargeDistance,
		"CHARGE_PROB":        r.ChargeProbability,
		"CHARGE_FRAMES":      r.ChargeFrames,
		"CHARGE_SPEED_BONUS": r.ChargeSpeedBonus,
		"DODGE_DIST":         r.DodgeDistance,
		"DODGE_FORCE":        r.DodgeForce,
		"ORBIT_BREAK_RADIUS": r.OrbitBreakRadius,
		"ORBIT_TANGENT_DAMP": r.OrbitTangentDamp,
		"CLOSE_STEER":        r.CloseSteer,
		"MIN_FWD":            r.MinForward,
	}
}

// Default returns the embedded defaults.
// It panics if the embedded file is broken, which only a bad build can cause.
func Default() *Config {
	cfg, err := parse(defaultsYAML)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads a YAML file over the defaults. Keys missing from the file keep their default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing embedded defaults")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the core cannot run with
func (c *Config) Validate() error {
	switch {
	case c.Grid.CellSize <= 0:
		return errors.Errorf("grid.cell_size must be positive, got %g", c.Grid.CellSize)
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return errors.Errorf("arena must be positive, got %gx%g", c.Arena.Width, c.Arena.Height)
	case c.Rammer.BaseMax <= 0 || c.Rammer.BoostMax < c.Rammer.BaseMax:
		return errors.Errorf("rammer speed caps need 0 < base_max <= boost_max, got %g and %g",
			c.Rammer.BaseMax, c.Rammer.BoostMax)
	case c.Zombie.Lifetime <= 0:
		return errors.Errorf("zombie.lifetime must be positive, got %g", c.Zombie.Lifetime)
	case c.Rammer.ChargeProbability < 0 || c.Rammer.ChargeProbability > 1:
		return errors.Errorf("rammer.charge_probability must be in [0, 1], got %g", c.Rammer.ChargeProbability)
	}
	return nil
}

// WriteYAML saves the configuration to path
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing config %s", path)
}
