// Package main provides CMA-ES tuning of the pacing parameters.
package main

import (
	"github.com/pthm-cable/horizon/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Player motion
			{Name: "player_base_speed", Path: "player.base_speed", Min: 2.0, Max: 6.0, Default: 3.8},
			{Name: "player_accel", Path: "player.accel", Min: 0.08, Max: 0.4, Default: 0.18},
			// Gravity well
			{Name: "gravity_g", Path: "gravity.g", Min: 0.0001, Max: 0.002, Default: 0.0004},
			{Name: "gravity_attract_mult", Path: "gravity.attract_mult", Min: 6, Max: 20, Default: 12},
			// Growth
			{Name: "growth_fraction", Path: "consumption.growth_fraction", Min: 0.2, Max: 1.0, Default: 0.5},
			// Respawn pacing
			{Name: "depletion_base", Path: "population.depletion_base", Min: 30, Max: 400, Default: 120},
			{Name: "ambient_min", Path: "population.ambient_min", Min: 120, Max: 1200, Default: 300},
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
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Player.BaseSpeed = c[0]
	cfg.Player.Accel = c[1]
	cfg.Gravity.G = c[2]
	cfg.Gravity.AttractMult = c[3]
	cfg.Consumption.GrowthFraction = c[4]
	cfg.Population.DepletionBase = c[5]
	cfg.Population.AmbientMin = c[6]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Player.BaseSpeed,
		cfg.Player.Accel,
		cfg.Gravity.G,
		cfg.Gravity.AttractMult,
		cfg.Consumption.GrowthFraction,
		cfg.Population.DepletionBase,
		cfg.Population.AmbientMin,
	}
}
