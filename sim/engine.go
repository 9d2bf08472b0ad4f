package sim

import "github.com/pthm-cable/biojar/config"

// minDivisor guards divisions by near-zero tank volumes and unit biomasses.
const minDivisor = 1e-9

// safeDiv divides with the denominator floored at minDivisor.
func safeDiv(num, den float64) float64 {
	if den < minDivisor {
		den = minDivisor
	}
	return num / den
}

// Engine is the simulation step engine: a pure function of (state, config,
// duration). It assumes a validated configuration and a fixed, positive step
// duration; irregular durations are the scheduler's concern.
type Engine struct {
	cfg *config.Config
}

// NewEngine creates a step engine over the given configuration tables.
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Step advances the state by one fixed-duration step.
//
// The stage order is fixed and correctness-relevant: every stage reads the
// start-of-step snapshot and writes only into the delta batch, so no stage
// observes a quantity already consumed by an earlier stage. The batch is
// applied atomically at the end with every value clamped to zero.
func (e *Engine) Step(s *State, duration float64) {
	d := newDelta(s.order)

	e.producers(s, d, duration)
	e.decomposers(s, d, duration)
	e.hardDetritusDecay(s, d, duration)
	e.predation(s, d, duration)
	adjust := e.couplings(s, duration)
	e.metabolism(s, d, adjust, duration)
	e.toxicity(s, d, duration)

	s.Commit(d, duration)
}

// routeDeath credits soft and hard detritus with dead mass, split by the
// species' fixed fractions normalized against its unit biomass so death-rate
// mass and setup-unit mass use a consistent ratio.
func routeDeath(d *Delta, sp *config.SpeciesConfig, dead float64) {
	d.Pools.SoftDetritus += dead * safeDiv(sp.SoftBiomass, sp.UnitBiomass)
	d.Pools.HardDetritus += dead * safeDiv(sp.HardBiomass, sp.UnitBiomass)
}
