package sim

// producers runs photosynthetic uptake. Growth is proportional to biomass,
// light intensity, and duration, then scaled by the scarcer of CO2 and
// nutrient expressed against volume-scaled saturation constants (Liebig's
// law: the scarcest input bounds growth, never their sum or product).
func (e *Engine) producers(s *State, d *Delta, duration float64) {
	eng := &e.cfg.Engine

	co2Ratio := safeDiv(s.Pools.CO2, eng.CO2Saturation*s.TankVolume)
	nutrientRatio := safeDiv(s.Pools.NutrientPool, eng.NutrientSaturation*s.TankVolume)
	limit := co2Ratio
	if nutrientRatio < limit {
		limit = nutrientRatio
	}
	if limit > 1 {
		limit = 1
	}

	for i := range e.cfg.Species {
		sp := &e.cfg.Species[i]
		ph := sp.Photosynthesis
		if ph == nil {
			continue
		}
		b := s.Biomass(sp.Name)
		if b <= 0 {
			continue
		}

		growth := b * ph.UptakeRate * s.LightIntensity * duration * limit
		if growth <= 0 {
			continue
		}

		d.Pools.CO2 -= growth * ph.CO2PerGrowth
		d.Pools.NutrientPool -= growth * ph.NutrientPerGrowth
		d.Pools.Oxygen += growth * ph.O2PerGrowth
		d.Biomass[sp.Name] += growth
	}
}
