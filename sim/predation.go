package sim

import "github.com/pthm-cable/biojar/config"

// predation iterates every food-web edge in table order. Living prey loses
// intake capped at a fixed fraction of its current biomass, so one step can
// never annihilate a prey species outright; the predator is credited at the
// trophic-efficiency fraction and the remainder is metabolic transfer loss,
// credited nowhere. Non-living prey (soft detritus, toxic waste) drains as a
// bulk pool with its own cap and a lower scavenging efficiency.
//
// All intakes read the start-of-step snapshot, so edge order only affects
// floating-point summation order; table order fixes that deterministically.
func (e *Engine) predation(s *State, d *Delta, duration float64) {
	eng := &e.cfg.Engine

	for _, edge := range e.cfg.FoodWeb {
		pred := s.Biomass(edge.Predator)
		if pred <= 0 {
			continue
		}

		if e.cfg.SpeciesByName(edge.Prey) != nil {
			prey := s.Biomass(edge.Prey)
			if prey <= 0 {
				continue
			}
			intake := pred * prey * edge.Rate * duration
			if cap := prey * eng.PreyCapFraction; intake > cap {
				intake = cap
			}
			d.Biomass[edge.Prey] -= intake
			d.Biomass[edge.Predator] += intake * eng.TrophicEfficiency
			continue
		}

		// Validated config: non-species prey is soft_detritus or toxic_waste.
		pool, _ := s.Pools.Get(edge.Prey)
		if pool <= 0 {
			continue
		}
		intake := pred * pool * edge.Rate * duration
		if cap := pool * eng.PoolCapFraction; intake > cap {
			intake = cap
		}
		s.poolDebit(d, edge.Prey, intake)
		d.Biomass[edge.Predator] += intake * eng.ScavengeEfficiency
	}
}

// poolDebit subtracts intake from the named pool's delta accumulator.
func (s *State) poolDebit(d *Delta, name string, intake float64) {
	switch name {
	case config.PoolSoftDetritus:
		d.Pools.SoftDetritus -= intake
	case config.PoolToxicWaste:
		d.Pools.ToxicWaste -= intake
	}
}
