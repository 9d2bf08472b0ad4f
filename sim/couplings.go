package sim

import "github.com/pthm-cable/biojar/config"

// couplings evaluates the named auxiliary density-dependent rules and
// returns per-species growth adjustments for the metabolism stage. These
// model effects like egg predation that mean "fewer births", not "more
// deaths": they never debit existing biomass directly.
func (e *Engine) couplings(s *State, duration float64) map[string]float64 {
	if len(e.cfg.Couplings) == 0 {
		return nil
	}

	adjust := make(map[string]float64, len(e.cfg.Couplings))
	for _, cp := range e.cfg.Couplings {
		target := s.Biomass(cp.Target)
		if target <= 0 {
			continue
		}
		level := e.sourceLevel(s, cp.Source)
		if level <= 0 {
			continue
		}

		term := level * target * cp.Rate * duration
		switch cp.Kind {
		case config.CouplingSuppressGrowth:
			adjust[cp.Target] -= term
		case config.CouplingBonusGrowth:
			adjust[cp.Target] += term
		}
	}
	return adjust
}

// sourceLevel resolves a coupling source as either a species biomass or a
// resource pool value.
func (e *Engine) sourceLevel(s *State, source string) float64 {
	if e.cfg.SpeciesByName(source) != nil {
		return s.Biomass(source)
	}
	v, _ := s.Pools.Get(source)
	return v
}
