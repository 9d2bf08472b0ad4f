// Package telemetry samples jar state into fixed windows and writes the
// aggregated series to CSV and structured logs.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one sampling window.
type WindowStats struct {
	WindowEndStep int     `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Pool levels at window end
	Oxygen       float64 `csv:"oxygen"`
	CO2          float64 `csv:"co2"`
	NutrientPool float64 `csv:"nutrient_pool"`
	SoftDetritus float64 `csv:"soft_detritus"`
	HardDetritus float64 `csv:"hard_detritus"`
	ToxicWaste   float64 `csv:"toxic_waste"`

	ToxicityLevel float64 `csv:"toxicity_level"`
	TotalBiomass  float64 `csv:"total_biomass"`

	// Window trends
	OxygenMean   float64 `csv:"oxygen_mean"`
	OxygenStd    float64 `csv:"oxygen_std"`
	OxygenSlope  float64 `csv:"oxygen_slope"`
	BiomassSlope float64 `csv:"biomass_slope"`

	// Extinctions observed during the window
	Extinctions    int    `csv:"extinctions"`
	ExtinctSpecies string `csv:"extinct_species"`
}

// seriesTrend computes mean, standard deviation, and the least-squares slope
// of values against times. Short series report zero slope.
func seriesTrend(times, values []float64) (mean, std, slope float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		return mean, 0, 0
	}
	_, slope = stat.LinearRegression(times, values, nil, false)
	return mean, std, slope
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", s.WindowEndStep),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Float64("oxygen", s.Oxygen),
		slog.Float64("co2", s.CO2),
		slog.Float64("nutrient_pool", s.NutrientPool),
		slog.Float64("soft_detritus", s.SoftDetritus),
		slog.Float64("hard_detritus", s.HardDetritus),
		slog.Float64("toxic_waste", s.ToxicWaste),
		slog.Float64("toxicity_level", s.ToxicityLevel),
		slog.Float64("total_biomass", s.TotalBiomass),
		slog.Float64("oxygen_mean", s.OxygenMean),
		slog.Float64("oxygen_std", s.OxygenStd),
		slog.Float64("oxygen_slope", s.OxygenSlope),
		slog.Float64("biomass_slope", s.BiomassSlope),
		slog.Int("extinctions", s.Extinctions),
		slog.String("extinct_species", s.ExtinctSpecies),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
