package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/pthm-cable/biojar/config"
	"github.com/pthm-cable/biojar/sim"
	"github.com/pthm-cable/biojar/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	speed := flag.Int("speed", 1, "Live play-speed multiplier (0 = paused)")
	skipSeconds := flag.Float64("skip", 0, "Skip ahead this many simulated seconds before live play")
	maxSteps := flag.Int("max-steps", 0, "Stop after N steps (0 = unlimited)")
	statsWindow := flag.Float64("stats-window", 60, "Stats window size in simulated seconds")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV log and config snapshot")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
		os.Exit(1)
	}

	jar := sim.New(cfg, logger)

	steps := 0
	collector := telemetry.NewCollector(cfg, *statsWindow, func(stats telemetry.WindowStats) {
		if *logStats {
			stats.LogStats()
		}
		if err := om.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
	})
	jar.SetStepHook(func(s *sim.State) {
		steps++
		collector.Record(s)
	})

	if err := jar.SealJar(); err != nil {
		slog.Error("failed to seal jar", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sched := sim.NewScheduler(jar, logger)
	sched.SetSpeed(*speed)

	slog.Info("starting jar simulation",
		"species", len(cfg.Species),
		"tick", sched.Tick(),
		"speed", sched.Speed(),
		"skip", *skipSeconds,
		"max_steps", *maxSteps,
	)

	if *skipSeconds > 0 {
		simulated, err := sched.SkipAhead(ctx, *skipSeconds)
		if err != nil {
			slog.Error("skip-ahead aborted", "simulated", simulated, "error", err)
			os.Exit(1)
		}
		slog.Info("skip-ahead complete", "simulated", simulated, "days", jar.ElapsedDays())
	}

	if *maxSteps > 0 && steps >= *maxSteps {
		slog.Info("max steps reached during skip", "steps", steps)
		return
	}

	// Live play: either until interrupted or until max-steps. The scheduler
	// owns the cadence; this loop only watches the step budget.
	if *maxSteps > 0 {
		runCtx, cancel := context.WithCancel(ctx)
		jar.SetStepHook(func(s *sim.State) {
			steps++
			collector.Record(s)
			if steps >= *maxSteps {
				cancel()
			}
		})
		defer cancel()
		ctx = runCtx
	}

	if err := sched.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("scheduler stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("simulation finished", "steps", steps, "elapsed_days", jar.ElapsedDays())
}
