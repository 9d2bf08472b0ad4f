package sim

// Phase is the jar lifecycle phase. Setup allows direct organism/resource
// editing; Simulation hands the state to the step engine. The two are
// mutually exclusive by construction, which is what makes locking
// unnecessary in the core.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseSimulation
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseSimulation:
		return "simulation"
	}
	return "unknown"
}

// phaseController is the two-state machine gating mutation operations.
// Seal is the only forward transition; Reset is the only way back.
type phaseController struct {
	phase Phase
}

func (pc *phaseController) IsSetupPhase() bool      { return pc.phase == PhaseSetup }
func (pc *phaseController) IsSimulationPhase() bool { return pc.phase == PhaseSimulation }

// Seal transitions Setup -> Simulation. Unconditional from Setup.
func (pc *phaseController) Seal() {
	pc.phase = PhaseSimulation
}

// Reset returns to Setup alongside a state-store reset.
func (pc *phaseController) Reset() {
	pc.phase = PhaseSetup
}
