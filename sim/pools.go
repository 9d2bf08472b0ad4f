// Package sim implements the deterministic jar simulation core: the state
// store, the two-phase controller, the ordered step engine, and the
// schedulers that drive it in live play and skip-ahead.
package sim

import "github.com/pthm-cable/biojar/config"

// Pools holds the six resource pool scalars. Values are non-negative
// mass/concentration units with no upper bound.
type Pools struct {
	Oxygen       float64
	CO2          float64
	NutrientPool float64
	SoftDetritus float64
	HardDetritus float64
	ToxicWaste   float64
}

// poolsFromDefaults builds the pool set from configured session defaults.
func poolsFromDefaults(d config.PoolDefaults) Pools {
	return Pools{
		Oxygen:       d.Oxygen,
		CO2:          d.CO2,
		NutrientPool: d.NutrientPool,
		SoftDetritus: d.SoftDetritus,
		HardDetritus: d.HardDetritus,
		ToxicWaste:   d.ToxicWaste,
	}
}

// Get returns the named pool's value. The second return is false for
// unrecognized names.
func (p *Pools) Get(name string) (float64, bool) {
	switch name {
	case config.PoolOxygen:
		return p.Oxygen, true
	case config.PoolCO2:
		return p.CO2, true
	case config.PoolNutrient:
		return p.NutrientPool, true
	case config.PoolSoftDetritus:
		return p.SoftDetritus, true
	case config.PoolHardDetritus:
		return p.HardDetritus, true
	case config.PoolToxicWaste:
		return p.ToxicWaste, true
	}
	return 0, false
}

// Add adds amount (which may be negative) to the named pool. Returns false
// for unrecognized names.
func (p *Pools) Add(name string, amount float64) bool {
	switch name {
	case config.PoolOxygen:
		p.Oxygen += amount
	case config.PoolCO2:
		p.CO2 += amount
	case config.PoolNutrient:
		p.NutrientPool += amount
	case config.PoolSoftDetritus:
		p.SoftDetritus += amount
	case config.PoolHardDetritus:
		p.HardDetritus += amount
	case config.PoolToxicWaste:
		p.ToxicWaste += amount
	default:
		return false
	}
	return true
}

// accumulate adds every field of d into p.
func (p *Pools) accumulate(d Pools) {
	p.Oxygen += d.Oxygen
	p.CO2 += d.CO2
	p.NutrientPool += d.NutrientPool
	p.SoftDetritus += d.SoftDetritus
	p.HardDetritus += d.HardDetritus
	p.ToxicWaste += d.ToxicWaste
}

// clampZero floors every pool at zero.
func (p *Pools) clampZero() {
	if p.Oxygen < 0 {
		p.Oxygen = 0
	}
	if p.CO2 < 0 {
		p.CO2 = 0
	}
	if p.NutrientPool < 0 {
		p.NutrientPool = 0
	}
	if p.SoftDetritus < 0 {
		p.SoftDetritus = 0
	}
	if p.HardDetritus < 0 {
		p.HardDetritus = 0
	}
	if p.ToxicWaste < 0 {
		p.ToxicWaste = 0
	}
}
