// Package config provides configuration loading and access for the jar simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Pool names accepted wherever a configuration entry refers to a resource
// pool (food-web prey slots, coupling sources, setup mutators).
const (
	PoolOxygen       = "oxygen"
	PoolCO2          = "co2"
	PoolNutrient     = "nutrient_pool"
	PoolSoftDetritus = "soft_detritus"
	PoolHardDetritus = "hard_detritus"
	PoolToxicWaste   = "toxic_waste"
)

// Coupling kinds for auxiliary density-dependent rules.
const (
	CouplingSuppressGrowth = "suppress_growth"
	CouplingBonusGrowth    = "bonus_growth"
)

// Config holds all simulation configuration tables.
// Loaded once at session start and read-only afterwards.
type Config struct {
	Tank      TankConfig       `yaml:"tank"`
	Engine    EngineConfig     `yaml:"engine"`
	Pools     PoolDefaults     `yaml:"pools"`
	Species   []SpeciesConfig  `yaml:"species"`
	FoodWeb   []EdgeConfig     `yaml:"food_web"`
	Couplings []CouplingConfig `yaml:"couplings"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TankConfig holds jar-level constants. Volume is a scaling divisor for
// concentration-dependent effects, not a hard cap.
type TankConfig struct {
	Volume         float64 `yaml:"volume"`
	LightIntensity float64 `yaml:"light_intensity"`
	SecondsPerDay  float64 `yaml:"seconds_per_day"`
}

// EngineConfig holds step-engine rate constants. All rates are per second of
// simulated time, never per tick, so changing the tick length does not change
// physical behavior.
type EngineConfig struct {
	TickSeconds float64 `yaml:"tick_seconds"` // fixed step duration

	// Producer limiting (Liebig): growth scales by the scarcer of
	// co2/(co2_saturation*volume) and nutrient/(nutrient_saturation*volume).
	CO2Saturation      float64 `yaml:"co2_saturation"`
	NutrientSaturation float64 `yaml:"nutrient_saturation"`

	// Decomposer conversions are capped at source*decomposition_ceiling per
	// step so a warp-sized step cannot drain a pool it samples.
	DecompositionCeiling float64 `yaml:"decomposition_ceiling"`

	// Abiotic hard detritus weathering.
	HardDecayRate         float64 `yaml:"hard_decay_rate"`
	HardDecaySoftFraction float64 `yaml:"hard_decay_soft_fraction"` // rest goes to nutrient

	// Predation caps and efficiencies.
	PreyCapFraction    float64 `yaml:"prey_cap_fraction"` // max fraction of prey biomass per step
	PoolCapFraction    float64 `yaml:"pool_cap_fraction"` // max fraction of a scavenged pool per step
	TrophicEfficiency  float64 `yaml:"trophic_efficiency"`
	ScavengeEfficiency float64 `yaml:"scavenge_efficiency"`

	// Toxicity feedback. Level = toxic_waste / (toxicity_threshold*volume);
	// excess above 1.0 drives extra mortality.
	ToxicityThreshold float64 `yaml:"toxicity_threshold"`
	ToxicityMortality float64 `yaml:"toxicity_mortality"`
}

// PoolDefaults holds the session-default resource pool levels.
type PoolDefaults struct {
	Oxygen       float64 `yaml:"oxygen"`
	CO2          float64 `yaml:"co2"`
	NutrientPool float64 `yaml:"nutrient_pool"`
	SoftDetritus float64 `yaml:"soft_detritus"`
	HardDetritus float64 `yaml:"hard_detritus"`
	ToxicWaste   float64 `yaml:"toxic_waste"`
}

// SpeciesConfig is the fixed parameter record for one species. Missing or
// out-of-range fields are rejected at load time rather than defaulted at
// every read.
type SpeciesConfig struct {
	Name           string  `yaml:"name"`
	InitialBiomass float64 `yaml:"initial_biomass"`
	UnitBiomass    float64 `yaml:"unit_biomass"` // mass per setup add/remove action

	// Fractions of a dying unit routed to detritus, normalized against
	// unit_biomass. They need not sum to unit_biomass.
	SoftBiomass float64 `yaml:"soft_biomass"`
	HardBiomass float64 `yaml:"hard_biomass"`

	Respiration         float64 `yaml:"respiration"` // O2 debit / CO2 credit per biomass per second
	DeathRate           float64 `yaml:"death_rate"`  // biomass loss per biomass per second
	WasteRate           float64 `yaml:"waste_rate"`  // toxic waste credit per biomass per second
	ToxicitySensitivity float64 `yaml:"toxicity_sensitivity"`
	GrowthRate          float64 `yaml:"growth_rate"` // baseline reproduction per biomass per second

	Photosynthesis *PhotosynthesisConfig `yaml:"photosynthesis,omitempty"`
	Decomposer     *DecomposerConfig     `yaml:"decomposer,omitempty"`
}

// PhotosynthesisConfig marks a species as a producer and holds its
// stoichiometric coefficients per unit of growth.
type PhotosynthesisConfig struct {
	UptakeRate        float64 `yaml:"uptake_rate"` // growth per biomass per second at full light
	CO2PerGrowth      float64 `yaml:"co2_per_growth"`
	NutrientPerGrowth float64 `yaml:"nutrient_per_growth"`
	O2PerGrowth       float64 `yaml:"o2_per_growth"`
}

// DecomposerConfig marks a species as a decomposer. Breakdown converts soft
// detritus into toxic waste plus nutrient; detox converts toxic waste into
// nutrient with decomposer growth as a byproduct of the detox path only.
type DecomposerConfig struct {
	BreakdownRate float64 `yaml:"breakdown_rate"` // soft detritus per biomass per second
	DetoxRate     float64 `yaml:"detox_rate"`     // toxic waste per biomass per second
	ToxinFraction float64 `yaml:"toxin_fraction"` // fraction of breakdown that becomes toxic waste
	GrowthYield   float64 `yaml:"growth_yield"`   // biomass gained per unit detoxed
}

// EdgeConfig is one directed food-web edge. Prey may be a species name or
// one of the non-living sources soft_detritus / toxic_waste.
type EdgeConfig struct {
	Predator string  `yaml:"predator"`
	Prey     string  `yaml:"prey"`
	Rate     float64 `yaml:"rate"` // per unit predator biomass per unit prey per second
}

// CouplingConfig is one named auxiliary density-dependent rule. Couplings
// adjust growth terms only ("fewer births"), never existing biomass.
type CouplingConfig struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`   // suppress_growth or bonus_growth
	Source string  `yaml:"source"` // species (suppress) or species/pool (bonus)
	Target string  `yaml:"target"` // species whose growth term is adjusted
	Rate   float64 `yaml:"rate"`
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	SpeciesIndex map[string]int // name -> index into Species
	SpeciesOrder []string       // config order, fixes iteration for determinism
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then validates. If path is empty, only embedded defaults are used.
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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.SpeciesIndex = make(map[string]int, len(c.Species))
	c.Derived.SpeciesOrder = make([]string, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = i
		c.Derived.SpeciesOrder[i] = sp.Name
	}
}

// SpeciesByName returns the parameter record for the named species, or nil.
func (c *Config) SpeciesByName(name string) *SpeciesConfig {
	i, ok := c.Derived.SpeciesIndex[name]
	if !ok {
		return nil
	}
	return &c.Species[i]
}

// IsPool reports whether name refers to one of the six resource pools.
func IsPool(name string) bool {
	switch name {
	case PoolOxygen, PoolCO2, PoolNutrient, PoolSoftDetritus, PoolHardDetritus, PoolToxicWaste:
		return true
	}
	return false
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
