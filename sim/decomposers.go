package sim

// decomposers runs the two capped conversions driven by decomposer biomass:
// soft detritus -> toxic waste + nutrient, and toxic waste -> nutrient with
// decomposer growth as a byproduct of the detox path only. Each conversion
// is capped at the smaller of capacity*duration and source*ceiling so a
// single warp-sized step cannot drain a pool it samples as if it were
// instantaneously replenished.
func (e *Engine) decomposers(s *State, d *Delta, duration float64) {
	ceiling := e.cfg.Engine.DecompositionCeiling

	for i := range e.cfg.Species {
		sp := &e.cfg.Species[i]
		dec := sp.Decomposer
		if dec == nil {
			continue
		}
		b := s.Biomass(sp.Name)
		if b <= 0 {
			continue
		}

		breakdown := b * dec.BreakdownRate * duration
		if cap := s.Pools.SoftDetritus * ceiling; breakdown > cap {
			breakdown = cap
		}
		if breakdown > 0 {
			d.Pools.SoftDetritus -= breakdown
			d.Pools.ToxicWaste += breakdown * dec.ToxinFraction
			d.Pools.NutrientPool += breakdown * (1 - dec.ToxinFraction)
		}

		detox := b * dec.DetoxRate * duration
		if cap := s.Pools.ToxicWaste * ceiling; detox > cap {
			detox = cap
		}
		if detox > 0 {
			d.Pools.ToxicWaste -= detox
			d.Pools.NutrientPool += detox * (1 - dec.GrowthYield)
			d.Biomass[sp.Name] += detox * dec.GrowthYield
		}
	}
}

// hardDetritusDecay leaks hard detritus into soft detritus and nutrient,
// proportional to the current hard-detritus mass. Abiotic weathering: it
// needs no living decomposer.
func (e *Engine) hardDetritusDecay(s *State, d *Delta, duration float64) {
	eng := &e.cfg.Engine
	decay := s.Pools.HardDetritus * eng.HardDecayRate * duration
	if decay <= 0 {
		return
	}
	d.Pools.HardDetritus -= decay
	d.Pools.SoftDetritus += decay * eng.HardDecaySoftFraction
	d.Pools.NutrientPool += decay * (1 - eng.HardDecaySoftFraction)
}
