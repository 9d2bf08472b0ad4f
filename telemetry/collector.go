package telemetry

import (
	"strings"

	"github.com/pthm-cable/biojar/config"
	"github.com/pthm-cable/biojar/sim"
)

// Collector accumulates per-step samples within fixed windows of simulated
// time and produces WindowStats at each rollover. Wire it to a jar with
// jar.SetStepHook and a callback for finished windows.
type Collector struct {
	cfg               *config.Config
	windowDurationSec float64

	steps       int
	windowStart float64

	// Sample series for the current window
	times   []float64
	oxygen  []float64
	biomass []float64

	// Last seen biomass per species, for extinction edges
	lastBiomass map[string]float64
	extinct     []string

	onWindow func(WindowStats)
}

// NewCollector creates a stats collector. windowDurationSec is the length of
// each window in simulated seconds; onWindow receives each finished window.
func NewCollector(cfg *config.Config, windowDurationSec float64, onWindow func(WindowStats)) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = cfg.Engine.TickSeconds
	}
	c := &Collector{
		cfg:               cfg,
		windowDurationSec: windowDurationSec,
		lastBiomass:       make(map[string]float64, len(cfg.Species)),
		onWindow:          onWindow,
	}
	for _, sp := range cfg.Species {
		c.lastBiomass[sp.Name] = sp.InitialBiomass
	}
	return c
}

// Record samples the committed state after a step. Call it once per step,
// after the step's commit.
func (c *Collector) Record(s *sim.State) {
	c.steps++

	var total float64
	for _, name := range s.SpeciesOrder() {
		b := s.Biomass(name)
		total += b
		if b <= 0 && c.lastBiomass[name] > 0 {
			c.extinct = append(c.extinct, name)
		}
		c.lastBiomass[name] = b
	}

	c.times = append(c.times, s.Elapsed)
	c.oxygen = append(c.oxygen, s.Pools.Oxygen)
	c.biomass = append(c.biomass, total)

	if s.Elapsed-c.windowStart >= c.windowDurationSec {
		stats := c.endWindow(s, total)
		if c.onWindow != nil {
			c.onWindow(stats)
		}
	}
}

// endWindow builds WindowStats from the current samples and resets the
// window accumulators.
func (c *Collector) endWindow(s *sim.State, totalBiomass float64) WindowStats {
	oxMean, oxStd, oxSlope := seriesTrend(c.times, c.oxygen)
	_, _, bioSlope := seriesTrend(c.times, c.biomass)

	stats := WindowStats{
		WindowEndStep: c.steps,
		SimTimeSec:    s.Elapsed,
		Oxygen:        s.Pools.Oxygen,
		CO2:           s.Pools.CO2,
		NutrientPool:  s.Pools.NutrientPool,
		SoftDetritus:  s.Pools.SoftDetritus,
		HardDetritus:  s.Pools.HardDetritus,
		ToxicWaste:    s.Pools.ToxicWaste,
		ToxicityLevel: toxicityLevel(c.cfg, s),
		TotalBiomass:  totalBiomass,
		OxygenMean:    oxMean,
		OxygenStd:     oxStd,
		OxygenSlope:   oxSlope,
		BiomassSlope:  bioSlope,
		Extinctions:   len(c.extinct),
	}
	if len(c.extinct) > 0 {
		stats.ExtinctSpecies = strings.Join(c.extinct, ";")
	}

	c.windowStart = s.Elapsed
	c.times = c.times[:0]
	c.oxygen = c.oxygen[:0]
	c.biomass = c.biomass[:0]
	c.extinct = c.extinct[:0]

	return stats
}

// toxicityLevel mirrors the engine's collapse metric for display.
func toxicityLevel(cfg *config.Config, s *sim.State) float64 {
	den := cfg.Engine.ToxicityThreshold * s.TankVolume
	if den <= 0 {
		return 0
	}
	return s.Pools.ToxicWaste / den
}
