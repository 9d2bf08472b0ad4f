package sim

// metabolism runs respiration, waste production, death, and reproduction for
// every species with positive biomass. Dead mass routes into soft and hard
// detritus by the species' fixed fractions; the growth term is baseline
// reproduction adjusted by the coupling stage and floored at zero.
func (e *Engine) metabolism(s *State, d *Delta, adjust map[string]float64, duration float64) {
	for i := range e.cfg.Species {
		sp := &e.cfg.Species[i]
		b := s.Biomass(sp.Name)
		if b <= 0 {
			continue
		}

		resp := b * sp.Respiration * duration
		d.Pools.Oxygen -= resp
		d.Pools.CO2 += resp

		d.Pools.ToxicWaste += b * sp.WasteRate * duration

		dead := b * sp.DeathRate * duration
		if dead > 0 {
			d.Biomass[sp.Name] -= dead
			routeDeath(d, sp, dead)
		}

		growth := b*sp.GrowthRate*duration + adjust[sp.Name]
		if growth > 0 {
			d.Biomass[sp.Name] += growth
		}
	}
}

// toxicity applies the collapse feedback. The toxicity level is toxic waste
// over a volume-scaled threshold; excess above 1.0 drives extra mortality
// scaled by each species' sensitivity. This cascade is the designed
// fragility of the jar, not a condition to smooth away.
func (e *Engine) toxicity(s *State, d *Delta, duration float64) {
	eng := &e.cfg.Engine
	level := safeDiv(s.Pools.ToxicWaste, eng.ToxicityThreshold*s.TankVolume)
	if level <= 1 {
		return
	}
	excess := level - 1

	for i := range e.cfg.Species {
		sp := &e.cfg.Species[i]
		b := s.Biomass(sp.Name)
		if b <= 0 || sp.ToxicitySensitivity <= 0 {
			continue
		}

		extra := b * sp.ToxicitySensitivity * excess * eng.ToxicityMortality * duration
		if extra > b {
			extra = b
		}
		d.Biomass[sp.Name] -= extra
		routeDeath(d, sp, extra)
	}
}
