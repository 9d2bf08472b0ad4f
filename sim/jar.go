package sim

import (
	"log/slog"

	"github.com/pthm-cable/biojar/config"
)

// Jar owns the session: configuration tables, the state store, the phase
// controller, and the step engine. External collaborators (UI, telemetry)
// only ever go through this surface.
type Jar struct {
	cfg    *config.Config
	state  *State
	phase  phaseController
	engine *Engine
	log    *slog.Logger

	// stepHook, if set, observes the committed state after every step.
	stepHook func(*State)
}

// New creates a jar in the Setup phase with session-default state.
func New(cfg *config.Config, logger *slog.Logger) *Jar {
	if logger == nil {
		logger = slog.Default()
	}
	return &Jar{
		cfg:    cfg,
		state:  newState(cfg),
		engine: NewEngine(cfg),
		log:    logger,
	}
}

// Config returns the session configuration tables.
func (j *Jar) Config() *config.Config { return j.cfg }

// State returns the live state. Read-only by convention outside this package.
func (j *Jar) State() *State { return j.state }

// IsSetupPhase reports whether setup-phase mutators are currently legal.
func (j *Jar) IsSetupPhase() bool { return j.phase.IsSetupPhase() }

// IsSimulationPhase reports whether the step engine may run.
func (j *Jar) IsSimulationPhase() bool { return j.phase.IsSimulationPhase() }

// Pool returns the current value of the named resource pool.
func (j *Jar) Pool(name string) (float64, error) {
	v, ok := j.state.Pools.Get(name)
	if !ok {
		return 0, ErrUnknownPool
	}
	return v, nil
}

// Biomass returns the current biomass for the named species. Unknown names
// read as zero; they are not an error at read time.
func (j *Jar) Biomass(species string) float64 {
	return j.state.Biomass(species)
}

// ElapsedSeconds returns simulated time since seal, in seconds.
func (j *Jar) ElapsedSeconds() float64 { return j.state.Elapsed }

// ElapsedDays returns the whole-day count of simulated time, for display.
func (j *Jar) ElapsedDays() int {
	return int(j.state.Elapsed / j.cfg.Tank.SecondsPerDay)
}

// SetLightIntensity adjusts the light dial. Legal in any phase; light is an
// environmental control, not jar contents.
func (j *Jar) SetLightIntensity(v float64) error {
	if v < 0 {
		return ErrNonPositiveAmount
	}
	j.state.LightIntensity = v
	return nil
}

// AddOrganism adds one configured unit of biomass for the named species.
// Setup phase only.
func (j *Jar) AddOrganism(species string) error {
	if !j.phase.IsSetupPhase() {
		j.log.Warn("add_organism refused outside setup phase", "species", species, "phase", j.phase.phase.String())
		return ErrNotSetupPhase
	}
	sp := j.cfg.SpeciesByName(species)
	if sp == nil {
		j.log.Warn("add_organism refused for unknown species", "species", species)
		return ErrUnknownSpecies
	}
	j.state.setBiomass(species, j.state.Biomass(species)+sp.UnitBiomass)
	return nil
}

// RemoveOrganism removes one configured unit of biomass if enough exists.
// Setup phase only.
func (j *Jar) RemoveOrganism(species string) error {
	if !j.phase.IsSetupPhase() {
		j.log.Warn("remove_organism refused outside setup phase", "species", species, "phase", j.phase.phase.String())
		return ErrNotSetupPhase
	}
	sp := j.cfg.SpeciesByName(species)
	if sp == nil {
		j.log.Warn("remove_organism refused for unknown species", "species", species)
		return ErrUnknownSpecies
	}
	b := j.state.Biomass(species)
	if b < sp.UnitBiomass {
		j.log.Warn("remove_organism refused, not enough biomass", "species", species, "biomass", b, "unit", sp.UnitBiomass)
		return ErrInsufficientBiomass
	}
	j.state.setBiomass(species, b-sp.UnitBiomass)
	return nil
}

// AddResource adds a positive amount to a named pool. Setup phase only.
func (j *Jar) AddResource(pool string, amount float64) error {
	if !j.phase.IsSetupPhase() {
		j.log.Warn("add_resource refused outside setup phase", "pool", pool, "phase", j.phase.phase.String())
		return ErrNotSetupPhase
	}
	if amount <= 0 {
		j.log.Warn("add_resource refused, non-positive amount", "pool", pool, "amount", amount)
		return ErrNonPositiveAmount
	}
	if !j.state.Pools.Add(pool, amount) {
		j.log.Warn("add_resource refused for unknown pool", "pool", pool)
		return ErrUnknownPool
	}
	return nil
}

// SealJar transitions Setup -> Simulation. Irreversible except via Reset.
func (j *Jar) SealJar() error {
	if !j.phase.IsSetupPhase() {
		j.log.Warn("seal refused, jar already sealed")
		return ErrNotSetupPhase
	}
	j.phase.Seal()
	j.log.Info("jar sealed", "species", len(j.cfg.Species))
	return nil
}

// Reset returns all pools and populations to session defaults and reverts
// the phase to Setup.
func (j *Jar) Reset() {
	j.state = newState(j.cfg)
	j.phase.Reset()
	j.log.Info("jar reset to setup defaults")
}

// SetStepHook registers an observer called with the committed state after
// every step. Used by telemetry; pass nil to clear.
func (j *Jar) SetStepHook(fn func(*State)) {
	j.stepHook = fn
}

// AdvanceSimulation runs exactly one step of the given fixed duration. It is
// the single entry point for both the live scheduler and skip-ahead; bulk
// time warps are nothing but repeated calls with the same tick duration.
func (j *Jar) AdvanceSimulation(duration float64) error {
	if !j.phase.IsSimulationPhase() {
		j.log.Warn("advance refused outside simulation phase", "phase", j.phase.phase.String())
		return ErrNotSimulationPhase
	}
	if duration <= 0 {
		return ErrInvalidDuration
	}

	j.engine.Step(j.state, duration)
	if j.stepHook != nil {
		j.stepHook(j.state)
	}
	return nil
}
