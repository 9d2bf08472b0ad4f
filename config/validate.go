package config

import (
	"fmt"
	"strings"
)

// ValidationError collects multiple validation issues so a broken config
// reports everything wrong at once.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid config: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0]
	}
	return "config validation errors: " + strings.Join(e.Issues, "; ")
}

func (e *ValidationError) Add(format string, args ...any) {
	e.Issues = append(e.Issues, fmt.Sprintf(format, args...))
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Non-living sources a food-web edge may name as prey.
var edgePools = map[string]bool{
	PoolSoftDetritus: true,
	PoolToxicWaste:   true,
}

// Validate performs load-time validation of the full configuration.
// The step engine assumes a validated config; nothing here is re-checked at
// runtime.
func (c *Config) Validate() error {
	err := &ValidationError{}

	if c.Tank.Volume <= 0 {
		err.Add("tank volume must be positive, got %g", c.Tank.Volume)
	}
	if c.Tank.LightIntensity < 0 {
		err.Add("light intensity must be non-negative, got %g", c.Tank.LightIntensity)
	}
	if c.Tank.SecondsPerDay <= 0 {
		err.Add("seconds_per_day must be positive, got %g", c.Tank.SecondsPerDay)
	}

	c.validateEngine(err)

	if c.Pools.Oxygen < 0 || c.Pools.CO2 < 0 || c.Pools.NutrientPool < 0 ||
		c.Pools.SoftDetritus < 0 || c.Pools.HardDetritus < 0 || c.Pools.ToxicWaste < 0 {
		err.Add("pool defaults must be non-negative")
	}

	species := make(map[string]bool, len(c.Species))
	for _, sp := range c.Species {
		c.validateSpecies(sp, species, err)
	}

	for _, edge := range c.FoodWeb {
		if !species[edge.Predator] {
			err.Add("food web edge %s->%s: predator is not a configured species", edge.Predator, edge.Prey)
		}
		if !species[edge.Prey] && !edgePools[edge.Prey] {
			err.Add("food web edge %s->%s: prey is neither a species nor soft_detritus/toxic_waste", edge.Predator, edge.Prey)
		}
		if edge.Rate < 0 {
			err.Add("food web edge %s->%s: negative rate %g", edge.Predator, edge.Prey, edge.Rate)
		}
	}

	for _, cp := range c.Couplings {
		if cp.Name == "" {
			err.Add("coupling with empty name")
		}
		switch cp.Kind {
		case CouplingSuppressGrowth:
			if !species[cp.Source] {
				err.Add("coupling %s: source %q is not a configured species", cp.Name, cp.Source)
			}
		case CouplingBonusGrowth:
			if !species[cp.Source] && !IsPool(cp.Source) {
				err.Add("coupling %s: source %q is neither a species nor a pool", cp.Name, cp.Source)
			}
		default:
			err.Add("coupling %s: unknown kind %q", cp.Name, cp.Kind)
		}
		if !species[cp.Target] {
			err.Add("coupling %s: target %q is not a configured species", cp.Name, cp.Target)
		}
		if cp.Rate < 0 {
			err.Add("coupling %s: negative rate %g", cp.Name, cp.Rate)
		}
	}

	if err.HasIssues() {
		return err
	}
	return nil
}

func (c *Config) validateEngine(err *ValidationError) {
	e := &c.Engine
	if e.TickSeconds <= 0 {
		err.Add("tick_seconds must be positive, got %g", e.TickSeconds)
	}
	if e.CO2Saturation <= 0 || e.NutrientSaturation <= 0 {
		err.Add("producer saturation constants must be positive")
	}
	if e.DecompositionCeiling <= 0 || e.DecompositionCeiling > 1 {
		err.Add("decomposition_ceiling must be in (0,1], got %g", e.DecompositionCeiling)
	}
	if e.HardDecayRate < 0 {
		err.Add("hard_decay_rate must be non-negative, got %g", e.HardDecayRate)
	}
	if e.HardDecaySoftFraction < 0 || e.HardDecaySoftFraction > 1 {
		err.Add("hard_decay_soft_fraction must be in [0,1], got %g", e.HardDecaySoftFraction)
	}
	if e.PreyCapFraction <= 0 || e.PreyCapFraction > 1 {
		err.Add("prey_cap_fraction must be in (0,1], got %g", e.PreyCapFraction)
	}
	if e.PoolCapFraction <= 0 || e.PoolCapFraction > 1 {
		err.Add("pool_cap_fraction must be in (0,1], got %g", e.PoolCapFraction)
	}
	if e.TrophicEfficiency < 0 || e.TrophicEfficiency > 1 {
		err.Add("trophic_efficiency must be in [0,1], got %g", e.TrophicEfficiency)
	}
	if e.ScavengeEfficiency < 0 || e.ScavengeEfficiency > 1 {
		err.Add("scavenge_efficiency must be in [0,1], got %g", e.ScavengeEfficiency)
	}
	if e.ToxicityThreshold <= 0 {
		err.Add("toxicity_threshold must be positive, got %g", e.ToxicityThreshold)
	}
	if e.ToxicityMortality < 0 {
		err.Add("toxicity_mortality must be non-negative, got %g", e.ToxicityMortality)
	}
}

func (c *Config) validateSpecies(sp SpeciesConfig, seen map[string]bool, err *ValidationError) {
	if sp.Name == "" {
		err.Add("species with empty name")
		return
	}
	if IsPool(sp.Name) {
		err.Add("species %s: name collides with a resource pool", sp.Name)
	}
	if seen[sp.Name] {
		err.Add("duplicate species name: %s", sp.Name)
	}
	seen[sp.Name] = true

	if sp.UnitBiomass <= 0 {
		err.Add("species %s: unit_biomass must be positive, got %g", sp.Name, sp.UnitBiomass)
	}
	if sp.InitialBiomass < 0 {
		err.Add("species %s: initial_biomass must be non-negative, got %g", sp.Name, sp.InitialBiomass)
	}
	if sp.SoftBiomass < 0 || sp.HardBiomass < 0 {
		err.Add("species %s: detritus fractions must be non-negative", sp.Name)
	}
	if sp.Respiration < 0 || sp.DeathRate < 0 || sp.WasteRate < 0 ||
		sp.ToxicitySensitivity < 0 || sp.GrowthRate < 0 {
		err.Add("species %s: metabolic rates must be non-negative", sp.Name)
	}

	if ph := sp.Photosynthesis; ph != nil {
		if ph.UptakeRate < 0 || ph.CO2PerGrowth < 0 || ph.NutrientPerGrowth < 0 || ph.O2PerGrowth < 0 {
			err.Add("species %s: photosynthesis coefficients must be non-negative", sp.Name)
		}
	}
	if d := sp.Decomposer; d != nil {
		if d.BreakdownRate < 0 || d.DetoxRate < 0 || d.GrowthYield < 0 {
			err.Add("species %s: decomposer rates must be non-negative", sp.Name)
		}
		if d.ToxinFraction < 0 || d.ToxinFraction > 1 {
			err.Add("species %s: toxin_fraction must be in [0,1], got %g", sp.Name, d.ToxinFraction)
		}
	}
}
