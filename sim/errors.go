package sim

import "errors"

// Refusal errors for setup mutators and phase transitions. All are local and
// recoverable; no condition in the core terminates the process.
var (
	ErrNotSetupPhase       = errors.New("operation requires the setup phase")
	ErrNotSimulationPhase  = errors.New("operation requires the simulation phase")
	ErrUnknownSpecies      = errors.New("unknown species")
	ErrUnknownPool         = errors.New("unknown resource pool")
	ErrInsufficientBiomass = errors.New("insufficient biomass to remove a unit")
	ErrNonPositiveAmount   = errors.New("amount must be positive")
	ErrInvalidDuration     = errors.New("step duration must be positive")
)
