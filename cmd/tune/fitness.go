package main

import (
	"io"
	"log/slog"
	"math"

	"github.com/pthm-cable/biojar/config"
	"github.com/pthm-cable/biojar/sim"
)

// FitnessEvaluator scores a parameter vector by sealing a jar and running it
// until something collapses. Runs are deterministic, so one run per
// evaluation is enough.
type FitnessEvaluator struct {
	params     *ParamVector
	maxSteps   int
	configPath string

	lastQuality float64
}

// NewFitnessEvaluator creates an evaluator over the base config at path.
func NewFitnessEvaluator(params *ParamVector, maxSteps int, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxSteps:   maxSteps,
		configPath: configPath,
	}
}

// Evaluate runs one jar with the given raw parameter values and returns the
// fitness to minimize: -(survival steps * (1 + 0.2*quality)). Survival ends
// when any species goes extinct or the toxicity level crosses 1.0.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg, err := config.Load(fe.configPath)
	if err != nil {
		return 0
	}
	fe.params.ApplyToConfig(cfg, raw)

	silent := slog.New(slog.NewTextHandler(io.Discard, nil))
	jar := sim.New(cfg, silent)
	if err := jar.SealJar(); err != nil {
		return 0
	}

	tick := cfg.Engine.TickSeconds
	toxCap := cfg.Engine.ToxicityThreshold * cfg.Tank.Volume

	var biomassSamples []float64
	survived := fe.maxSteps

	for step := 1; step <= fe.maxSteps; step++ {
		if err := jar.AdvanceSimulation(tick); err != nil {
			survived = step
			break
		}

		collapsed := false
		var total float64
		for _, name := range cfg.Derived.SpeciesOrder {
			b := jar.Biomass(name)
			total += b
			if b <= 0 {
				collapsed = true
			}
		}
		toxic, _ := jar.Pool(config.PoolToxicWaste)
		if toxic >= toxCap {
			collapsed = true
		}

		if step%100 == 0 {
			biomassSamples = append(biomassSamples, total)
		}
		if collapsed {
			survived = step
			break
		}
	}

	fe.lastQuality = stabilityQuality(biomassSamples)
	return -float64(survived) * (1.0 + 0.2*fe.lastQuality)
}

// LastQuality returns the stability quality of the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	return fe.lastQuality
}

// stabilityQuality maps the coefficient of variation of total biomass to
// [0,1]: flat trajectories score high, oscillating ones low.
func stabilityQuality(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(len(samples))
	if mean <= 0 {
		return 0
	}
	var sq float64
	for _, v := range samples {
		d := v - mean
		sq += d * d
	}
	cv := math.Sqrt(sq/float64(len(samples))) / mean
	return 1.0 / (1.0 + cv)
}
