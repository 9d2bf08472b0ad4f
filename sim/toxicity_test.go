package sim

import "testing"

// Minimal two-species jar for differential toxicity checks: identical
// metabolic parameters except toxicity sensitivity.
const toxicityPairYAML = `
species:
  - name: canary
    initial_biomass: 50.0
    unit_biomass: 5.0
    soft_biomass: 3.0
    hard_biomass: 1.0
    respiration: 0.001
    death_rate: 0.001
    waste_rate: 0.0
    toxicity_sensitivity: 2.0
    growth_rate: 0.0
  - name: tardigrade
    initial_biomass: 50.0
    unit_biomass: 5.0
    soft_biomass: 3.0
    hard_biomass: 1.0
    respiration: 0.001
    death_rate: 0.001
    waste_rate: 0.0
    toxicity_sensitivity: 0.0
    growth_rate: 0.0
food_web: []
couplings: []
`

// Forcing the toxicity level above 2.0 must cost a sensitive species
// strictly more biomass than its ordinary death-rate loss, while a
// zero-sensitivity species loses only the ordinary amount.
func TestToxicityDifferentialMortality(t *testing.T) {
	cfg := loadConfigYAML(t, toxicityPairYAML)
	s := newState(cfg)
	e := NewEngine(cfg)

	s.Pools.ToxicWaste = 2.2 * cfg.Engine.ToxicityThreshold * s.TankVolume

	e.Step(s, 1.0)

	ordinaryLoss := 50.0 * 0.001 // death rate only
	canaryLoss := 50.0 - s.Biomass("canary")
	tardigradeLoss := 50.0 - s.Biomass("tardigrade")

	if canaryLoss <= tardigradeLoss {
		t.Errorf("sensitive species should lose more: canary=%g tardigrade=%g",
			canaryLoss, tardigradeLoss)
	}
	if canaryLoss <= ordinaryLoss {
		t.Errorf("canary loss %g should exceed ordinary death loss %g", canaryLoss, ordinaryLoss)
	}
	if !closeTo(tardigradeLoss, ordinaryLoss, 1e-9) {
		t.Errorf("tardigrade loss = %g, want ordinary death loss %g", tardigradeLoss, ordinaryLoss)
	}
}

// Below level 1.0 the feedback stage contributes nothing.
func TestToxicityBelowThresholdIsInert(t *testing.T) {
	cfg := loadConfigYAML(t, toxicityPairYAML)
	s := newState(cfg)
	e := NewEngine(cfg)

	s.Pools.ToxicWaste = 0.9 * cfg.Engine.ToxicityThreshold * s.TankVolume

	d := newDelta(s.order)
	e.toxicity(s, d, 1.0)

	if d.Biomass["canary"] != 0 || d.Biomass["tardigrade"] != 0 {
		t.Errorf("sub-threshold toxicity must not kill: canary=%g tardigrade=%g",
			d.Biomass["canary"], d.Biomass["tardigrade"])
	}
}

// Toxicity mortality is capped at the species' whole biomass so the delta
// can never drive a population negative before the clamp.
func TestToxicityMortalityCappedAtBiomass(t *testing.T) {
	cfg := loadConfigYAML(t, toxicityPairYAML)
	s := newState(cfg)
	e := NewEngine(cfg)

	s.Pools.ToxicWaste = 1e9 // absurd spike

	e.Step(s, 1.0)

	if b := s.Biomass("canary"); b != 0 {
		t.Errorf("canary should be wiped to exactly zero, got %g", b)
	}
	// Immune species only pays its death rate.
	if b := s.Biomass("tardigrade"); !closeTo(b, 50.0-0.05, 1e-9) {
		t.Errorf("tardigrade = %g, want ~%g", b, 50.0-0.05)
	}
	requireNonNegative(t, s)
}
