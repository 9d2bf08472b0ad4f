package sim

import "github.com/pthm-cable/biojar/config"

// State is the mutable simulation state: resource pools, population biomass,
// the elapsed-time accumulator, and the two environmental dials. During the
// simulation phase it is mutated exclusively through Commit.
type State struct {
	Pools   Pools
	Elapsed float64 // simulated seconds since seal

	LightIntensity float64
	TankVolume     float64

	// biomass maps species name to current biomass; order fixes iteration
	// so step sums are bit-for-bit reproducible.
	biomass map[string]float64
	order   []string
}

// newState initializes state to the configured session defaults.
func newState(cfg *config.Config) *State {
	s := &State{
		Pools:          poolsFromDefaults(cfg.Pools),
		LightIntensity: cfg.Tank.LightIntensity,
		TankVolume:     cfg.Tank.Volume,
		biomass:        make(map[string]float64, len(cfg.Species)),
		order:          cfg.Derived.SpeciesOrder,
	}
	for _, sp := range cfg.Species {
		s.biomass[sp.Name] = sp.InitialBiomass
	}
	return s
}

// Biomass returns the current biomass for the named species. Unknown names
// read as zero; "species not present" and "species at zero biomass" are the
// same thing to the step engine.
func (s *State) Biomass(name string) float64 {
	return s.biomass[name]
}

// SpeciesOrder returns the deterministic species iteration order.
func (s *State) SpeciesOrder() []string {
	return s.order
}

// setBiomass writes biomass directly. Setup-phase mutators only.
func (s *State) setBiomass(name string, v float64) {
	if v < 0 {
		v = 0
	}
	s.biomass[name] = v
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := *s
	c.biomass = make(map[string]float64, len(s.biomass))
	for k, v := range s.biomass {
		c.biomass[k] = v
	}
	return &c
}

// Delta is one step's batch of named changes: one accumulator per pool and
// one per species. It is filled by the step stages and applied atomically by
// Commit; no partial application is ever observable.
type Delta struct {
	Pools   Pools
	Biomass map[string]float64
}

// newDelta returns zeroed accumulators for every pool and species.
func newDelta(order []string) *Delta {
	d := &Delta{Biomass: make(map[string]float64, len(order))}
	for _, name := range order {
		d.Biomass[name] = 0
	}
	return d
}

// Commit applies the delta batch, clamps every pool and population to a
// minimum of zero, and advances the elapsed-time accumulator by duration.
func (s *State) Commit(d *Delta, duration float64) {
	s.Pools.accumulate(d.Pools)
	s.Pools.clampZero()

	for _, name := range s.order {
		v := s.biomass[name] + d.Biomass[name]
		if v < 0 {
			v = 0
		}
		s.biomass[name] = v
	}

	s.Elapsed += duration
}
