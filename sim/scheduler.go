package sim

import (
	"context"
	"log/slog"
	"time"
)

// MaxSpeed is the largest live play-speed multiplier.
const MaxSpeed = 8

// Scheduler drives the jar at a fixed cadence. Acceleration is always "more
// steps per wall-clock interval", never a bigger step duration: rate
// constants are per-second, so N steps of the tick duration trace the same
// trajectory no matter how much real time passes while running them.
type Scheduler struct {
	jar   *Jar
	tick  float64 // fixed step duration in simulated seconds
	speed int     // steps per live interval; 0 pauses
	log   *slog.Logger
}

// NewScheduler creates a scheduler using the configured tick duration.
func NewScheduler(jar *Jar, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		jar:   jar,
		tick:  jar.Config().Engine.TickSeconds,
		speed: 1,
		log:   logger,
	}
}

// Tick returns the fixed per-step duration in simulated seconds.
func (s *Scheduler) Tick() float64 { return s.tick }

// Speed returns the current play-speed multiplier.
func (s *Scheduler) Speed() int { return s.speed }

// SetSpeed sets the play-speed multiplier, clamped to [0, MaxSpeed].
// Zero pauses live play.
func (s *Scheduler) SetSpeed(speed int) {
	if speed < 0 {
		speed = 0
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	s.speed = speed
}

// Run drives live play: once per real-time tick interval it invokes speed
// many steps, each with the same fixed duration, while the jar is in the
// simulation phase. Returns when ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := time.Duration(s.tick * float64(time.Second))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !s.jar.IsSimulationPhase() || s.speed == 0 {
				continue
			}
			for i := 0; i < s.speed; i++ {
				if err := s.jar.AdvanceSimulation(s.tick); err != nil {
					return err
				}
			}
		}
	}
}

// SkipAhead synchronously replays the exact same step function in a tight
// loop until target simulated seconds have accumulated. It is cancellable
// between steps: each step fully commits before the next begins, so aborting
// never corrupts state. There is no faster approximate path; reproducibility
// across play styles depends on that.
func (s *Scheduler) SkipAhead(ctx context.Context, target float64) (float64, error) {
	if !s.jar.IsSimulationPhase() {
		return 0, ErrNotSimulationPhase
	}

	var simulated float64
	for simulated < target {
		if err := ctx.Err(); err != nil {
			s.log.Info("skip-ahead cancelled", "simulated", simulated, "target", target)
			return simulated, err
		}
		if err := s.jar.AdvanceSimulation(s.tick); err != nil {
			return simulated, err
		}
		simulated += s.tick
	}
	return simulated, nil
}
