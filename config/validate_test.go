package config

import (
	"strings"
	"testing"
)

// validBase returns a loaded default config for mutation in each case.
func validBase(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"zero volume", func(c *Config) { c.Tank.Volume = 0 }, "tank volume"},
		{"negative light", func(c *Config) { c.Tank.LightIntensity = -1 }, "light intensity"},
		{"zero seconds per day", func(c *Config) { c.Tank.SecondsPerDay = 0 }, "seconds_per_day"},
		{"zero tick", func(c *Config) { c.Engine.TickSeconds = 0 }, "tick_seconds"},
		{"zero saturation", func(c *Config) { c.Engine.CO2Saturation = 0 }, "saturation"},
		{"ceiling above one", func(c *Config) { c.Engine.DecompositionCeiling = 1.5 }, "decomposition_ceiling"},
		{"negative hard decay", func(c *Config) { c.Engine.HardDecayRate = -0.1 }, "hard_decay_rate"},
		{"prey cap zero", func(c *Config) { c.Engine.PreyCapFraction = 0 }, "prey_cap_fraction"},
		{"trophic efficiency above one", func(c *Config) { c.Engine.TrophicEfficiency = 1.2 }, "trophic_efficiency"},
		{"zero toxicity threshold", func(c *Config) { c.Engine.ToxicityThreshold = 0 }, "toxicity_threshold"},
		{"negative pool default", func(c *Config) { c.Pools.Oxygen = -1 }, "pool defaults"},
		{"empty species name", func(c *Config) { c.Species[0].Name = "" }, "empty name"},
		{"duplicate species", func(c *Config) { c.Species[1].Name = c.Species[0].Name }, "duplicate species"},
		{"species named like pool", func(c *Config) { c.Species[0].Name = PoolToxicWaste }, "collides"},
		{"zero unit biomass", func(c *Config) { c.Species[0].UnitBiomass = 0 }, "unit_biomass"},
		{"negative initial biomass", func(c *Config) { c.Species[0].InitialBiomass = -5 }, "initial_biomass"},
		{"negative death rate", func(c *Config) { c.Species[0].DeathRate = -1 }, "metabolic rates"},
		{"negative photosynthesis coefficient", func(c *Config) { c.Species[0].Photosynthesis.CO2PerGrowth = -1 }, "photosynthesis"},
		{"toxin fraction above one", func(c *Config) {
			c.SpeciesByName("bacteria").Decomposer.ToxinFraction = 2
		}, "toxin_fraction"},
		{"edge with unknown predator", func(c *Config) { c.FoodWeb[0].Predator = "ghost" }, "predator"},
		{"edge with unknown prey", func(c *Config) { c.FoodWeb[0].Prey = "ghost" }, "prey"},
		{"edge preying on oxygen", func(c *Config) { c.FoodWeb[0].Prey = PoolOxygen }, "prey"},
		{"edge with negative rate", func(c *Config) { c.FoodWeb[0].Rate = -1 }, "negative rate"},
		{"coupling unknown kind", func(c *Config) { c.Couplings[0].Kind = "mind_control" }, "unknown kind"},
		{"coupling unknown target", func(c *Config) { c.Couplings[0].Target = "ghost" }, "target"},
		{"suppress coupling with pool source", func(c *Config) {
			c.Couplings[0].Kind = CouplingSuppressGrowth
			c.Couplings[0].Source = PoolSoftDetritus
		}, "source"},
		{"coupling negative rate", func(c *Config) { c.Couplings[0].Rate = -1 }, "negative rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validBase(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	cfg := validBase(t)
	cfg.Tank.Volume = 0
	cfg.Engine.TickSeconds = -1
	cfg.Species[0].UnitBiomass = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Issues) < 3 {
		t.Errorf("expected at least 3 collected issues, got %d: %v", len(verr.Issues), verr.Issues)
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	cfg := validBase(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}
