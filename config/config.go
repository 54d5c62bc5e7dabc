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
	Screen      ScreenConfig      `yaml:"screen"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Player      PlayerConfig      `yaml:"player"`
	Consumption ConsumptionConfig `yaml:"consumption"`
	Gravity     GravityConfig     `yaml:"gravity"`
	Population  PopulationConfig  `yaml:"population"`
	Events      EventsConfig      `yaml:"events"`
	Progression ProgressionConfig `yaml:"progression"`
	Transition  TransitionConfig  `yaml:"transition"`
	Effects     EffectsConfig     `yaml:"effects"`
	Save        SaveConfig        `yaml:"save"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

// ScreenConfig holds display settings for the graphical host.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds drifting-entity integration parameters.
// All rates are per nominal frame; dt scales them.
type PhysicsConfig struct {
	MaxDT        float64 `yaml:"max_dt"`         // dt clamp after a stall
	Jitter       float64 `yaml:"jitter"`         // random acceleration bound per axis
	SpeedCapMult float64 `yaml:"speed_cap_mult"` // max speed = base speed * this
	WallInset    float64 `yaml:"wall_inset"`     // clamp distance inside the wall after a bounce
}

// PlayerConfig holds black hole motion parameters.
type PlayerConfig struct {
	StartMass       float64 `yaml:"start_mass"`
	BaseSpeed       float64 `yaml:"base_speed"`
	MinSpeedFactor  float64 `yaml:"min_speed_factor"` // floor of the size slowdown
	SpeedShrink     float64 `yaml:"speed_shrink"`     // slowdown per unit radius
	Accel           float64 `yaml:"accel"`
	Friction        float64 `yaml:"friction"`
	IntentDeadzone  float64 `yaml:"intent_deadzone"`
	BounceDamping   float64 `yaml:"bounce_damping"` // fraction of the elastic reflection applied
	WallInset       float64 `yaml:"wall_inset"`
	CameraSmoothing float64 `yaml:"camera_smoothing"`
	SpawnSpread     float64 `yaml:"spawn_spread"` // start position is uniform in +-spread/2
	MinRadius       float64 `yaml:"min_radius"`
	RadiusBase      float64 `yaml:"radius_base"`
	RadiusScale     float64 `yaml:"radius_scale"`
}

// ConsumptionConfig holds eat rule and growth parameters.
type ConsumptionConfig struct {
	EatRatio       float64 `yaml:"eat_ratio"`       // player radius must exceed entity radius * this
	TouchRatio     float64 `yaml:"touch_ratio"`     // touch distance = player radius + entity radius * this
	ProgressRate   float64 `yaml:"progress_rate"`   // shrink animation progress per tick
	GrowthFraction float64 `yaml:"growth_fraction"` // share of eaten mass credited to the player
	ComboWindow    float64 `yaml:"combo_window"`
	ComboDecay     float64 `yaml:"combo_decay"` // combo timer drain per tick
	ChimeEvery     int     `yaml:"chime_every"`
	MassRatioNorm  float64 `yaml:"mass_ratio_norm"` // normalizer for the batched consume signal
}

// GravityConfig holds gravity well parameters.
type GravityConfig struct {
	G           float64 `yaml:"g"`
	AttractBase float64 `yaml:"attract_base"`
	AttractMult float64 `yaml:"attract_mult"`
	MinDistance float64 `yaml:"min_distance"`
	CoreMult    float64 `yaml:"core_mult"`    // effective distance floor = radius * this
	StrengthCap float64 `yaml:"strength_cap"` // cap = entity base speed * this
}

// PopulationConfig holds dynamic spawning parameters.
type PopulationConfig struct {
	CapRatio      float64 `yaml:"cap_ratio"`
	FloorMin      int     `yaml:"floor_min"`
	FloorRatio    float64 `yaml:"floor_ratio"`
	DepletionBase float64 `yaml:"depletion_base"`
	DepletionMin  float64 `yaml:"depletion_min"`
	DepletionStep float64 `yaml:"depletion_step"` // interval shrink per missing entity
	AmbientMin    float64 `yaml:"ambient_min"`
	AmbientRange  float64 `yaml:"ambient_range"`
	EdgeInset     float64 `yaml:"edge_inset"`
	InwardSpread  float64 `yaml:"inward_spread"`
	FadeWindow    float64 `yaml:"fade_window"`
}

// EventsConfig holds procedural event scheduling parameters.
type EventsConfig struct {
	EvalInterval   float64     `yaml:"eval_interval"`
	GlobalCooldown float64     `yaml:"global_cooldown"`
	GracePeriod    float64     `yaml:"grace_period"`
	HazardScript   string      `yaml:"hazard_script"` // optional Lua file overriding hazards
	Kinds          KindTunings `yaml:"kinds"`
}

// KindTunings maps an event kind name to its tuning.
type KindTunings map[string]EventTuning

// EventTuning holds per-event gates and cooldown.
type EventTuning struct {
	Cooldown  float64 `yaml:"cooldown"`
	MinGalaxy int     `yaml:"min_galaxy"`
	MinMass   float64 `yaml:"min_mass"`
	Disabled  bool    `yaml:"disabled"`
}

// UnmarshalYAML decodes each kind onto its existing tuning so an overlay
// that names one field keeps the rest.
func (k *KindTunings) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("events.kinds: line %d: expected a mapping", node.Line)
	}
	if *k == nil {
		*k = make(KindTunings)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		t := (*k)[name]
		if err := node.Content[i+1].Decode(&t); err != nil {
			return fmt.Errorf("events.kinds.%s: %w", name, err)
		}
		(*k)[name] = t
	}
	return nil
}

// ProgressionConfig holds the per-galaxy mass target and game phase thresholds.
// Target mass = Base + PerGalaxy*g + PerGalaxySq*g^2.
type ProgressionConfig struct {
	TargetMassBase        float64 `yaml:"target_mass_base"`
	TargetMassPerGalaxy   float64 `yaml:"target_mass_per_galaxy"`
	TargetMassPerGalaxySq float64 `yaml:"target_mass_per_galaxy_sq"`
	EarlyMass             float64 `yaml:"early_mass"`
	LateRatio             float64 `yaml:"late_ratio"`
}

// TransitionConfig holds galaxy transition phase lengths in ticks.
type TransitionConfig struct {
	Implode float64 `yaml:"implode"`
	Warp    float64 `yaml:"warp"`
	FadeIn  float64 `yaml:"fade_in"`
}

// EffectsConfig holds cosmetic effect limits.
type EffectsConfig struct {
	MaxParticles int     `yaml:"max_particles"`
	RippleAge    float64 `yaml:"ripple_age"`
	Ambient      bool    `yaml:"ambient"`
}

// SaveConfig holds persistence parameters.
type SaveConfig struct {
	Path     string  `yaml:"path"`
	Interval float64 `yaml:"interval"` // autosave cadence in ticks
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // window length in ticks
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

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

	cfg.computeDerived()

	return cfg, nil
}

// TargetMass returns the mass goal used by event metrics for the given galaxy.
func (c *Config) TargetMass(galaxy int) float64 {
	g := float64(galaxy)
	p := c.Progression
	target := p.TargetMassBase + p.TargetMassPerGalaxy*g + p.TargetMassPerGalaxySq*g*g
	if target <= 0 {
		return 1
	}
	return target
}

// computeDerived fills in fallbacks for values a config left unusable.
func (c *Config) computeDerived() {
	if c.Physics.MaxDT <= 0 {
		c.Physics.MaxDT = 3
	}
	if c.Events.Kinds == nil {
		c.Events.Kinds = make(KindTunings)
	}
	if c.Consumption.ChimeEvery <= 0 {
		c.Consumption.ChimeEvery = 3
	}
	if c.Consumption.MassRatioNorm <= 0 {
		c.Consumption.MassRatioNorm = 400
	}
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
