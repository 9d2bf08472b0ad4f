// Package main provides CMA-ES tuning for jar parameters that keep the
// sealed ecosystem from collapsing.
package main

import (
	"github.com/pthm-cable/biojar/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	// Apply writes the value into a loaded config.
	Apply func(cfg *config.Config, v float64)
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

func speciesParam(name string, set func(*config.SpeciesConfig, float64)) func(*config.Config, float64) {
	return func(cfg *config.Config, v float64) {
		if sp := cfg.SpeciesByName(name); sp != nil {
			set(sp, v)
		}
	}
}

func edgeParam(predator, prey string) func(*config.Config, float64) {
	return func(cfg *config.Config, v float64) {
		for i := range cfg.FoodWeb {
			if cfg.FoodWeb[i].Predator == predator && cfg.FoodWeb[i].Prey == prey {
				cfg.FoodWeb[i].Rate = v
			}
		}
	}
}

// NewParamVector creates the standard set of tunable jar parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "algae_uptake_rate", Min: 0.005, Max: 0.08, Default: 0.02,
				Apply: speciesParam("algae", func(sp *config.SpeciesConfig, v float64) { sp.Photosynthesis.UptakeRate = v })},
			{Name: "algae_death_rate", Min: 0.0005, Max: 0.01, Default: 0.002,
				Apply: speciesParam("algae", func(sp *config.SpeciesConfig, v float64) { sp.DeathRate = v })},
			{Name: "daphnia_growth_rate", Min: 0.0005, Max: 0.01, Default: 0.002,
				Apply: speciesParam("daphnia", func(sp *config.SpeciesConfig, v float64) { sp.GrowthRate = v })},
			{Name: "daphnia_algae_rate", Min: 0.0001, Max: 0.002, Default: 0.0004,
				Apply: edgeParam("daphnia", "algae")},
			{Name: "hydra_daphnia_rate", Min: 0.0002, Max: 0.005, Default: 0.0015,
				Apply: edgeParam("hydra", "daphnia")},
			{Name: "bacteria_breakdown_rate", Min: 0.001, Max: 0.02, Default: 0.004,
				Apply: speciesParam("bacteria", func(sp *config.SpeciesConfig, v float64) { sp.Decomposer.BreakdownRate = v })},
			{Name: "bacteria_detox_rate", Min: 0.001, Max: 0.03, Default: 0.006,
				Apply: speciesParam("bacteria", func(sp *config.SpeciesConfig, v float64) { sp.Decomposer.DetoxRate = v })},
			{Name: "toxin_fraction", Min: 0.05, Max: 0.6, Default: 0.3,
				Apply: speciesParam("bacteria", func(sp *config.SpeciesConfig, v float64) { sp.Decomposer.ToxinFraction = v })},
			{Name: "toxicity_threshold", Min: 100, Max: 2000, Default: 500,
				Apply: func(cfg *config.Config, v float64) { cfg.Engine.ToxicityThreshold = v }},
			{Name: "hard_decay_rate", Min: 0.00005, Max: 0.001, Default: 0.0002,
				Apply: func(cfg *config.Config, v float64) { cfg.Engine.HardDecayRate = v }},
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

// Clamp bounds raw values to each parameter's [Min, Max].
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		clamped[i] = v
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into the config.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, raw []float64) {
	clamped := pv.Clamp(raw)
	for i, spec := range pv.Specs {
		spec.Apply(cfg, clamped[i])
	}
}
