package sim

import (
	"errors"
	"testing"

	"github.com/pthm-cable/biojar/config"
)

func TestPhaseGating(t *testing.T) {
	cfg := defaultConfig(t)
	jar := New(cfg, testLogger())

	if !jar.IsSetupPhase() {
		t.Fatal("new jar should start in setup phase")
	}
	if err := jar.AdvanceSimulation(1.0); !errors.Is(err, ErrNotSimulationPhase) {
		t.Errorf("AdvanceSimulation before seal: got %v, want ErrNotSimulationPhase", err)
	}
	if jar.ElapsedSeconds() != 0 {
		t.Errorf("refused advance must not move the clock, elapsed=%g", jar.ElapsedSeconds())
	}

	if err := jar.SealJar(); err != nil {
		t.Fatalf("SealJar: %v", err)
	}
	if !jar.IsSimulationPhase() {
		t.Fatal("sealed jar should be in simulation phase")
	}

	before := jar.Biomass("algae")
	if err := jar.AddOrganism("algae"); !errors.Is(err, ErrNotSetupPhase) {
		t.Errorf("AddOrganism after seal: got %v, want ErrNotSetupPhase", err)
	}
	if jar.Biomass("algae") != before {
		t.Error("refused AddOrganism must leave biomass untouched")
	}
	if err := jar.AddResource(config.PoolNutrient, 10); !errors.Is(err, ErrNotSetupPhase) {
		t.Errorf("AddResource after seal: got %v, want ErrNotSetupPhase", err)
	}
}

func TestAddRemoveOrganism(t *testing.T) {
	cfg := defaultConfig(t)
	jar := New(cfg, testLogger())

	unit := cfg.SpeciesByName("snail").UnitBiomass
	start := jar.Biomass("snail")

	if err := jar.AddOrganism("snail"); err != nil {
		t.Fatalf("AddOrganism: %v", err)
	}
	if got, want := jar.Biomass("snail"), start+unit; !closeTo(got, want, 1e-12) {
		t.Errorf("after add: biomass=%g, want %g", got, want)
	}

	if err := jar.RemoveOrganism("snail"); err != nil {
		t.Fatalf("RemoveOrganism: %v", err)
	}
	if got := jar.Biomass("snail"); !closeTo(got, start, 1e-12) {
		t.Errorf("after remove: biomass=%g, want %g", got, start)
	}

	if err := jar.AddOrganism("kraken"); !errors.Is(err, ErrUnknownSpecies) {
		t.Errorf("unknown species: got %v, want ErrUnknownSpecies", err)
	}

	// Drain below one unit, then removal must refuse without touching state.
	for jar.Biomass("snail") >= unit {
		if err := jar.RemoveOrganism("snail"); err != nil {
			t.Fatalf("RemoveOrganism while draining: %v", err)
		}
	}
	left := jar.Biomass("snail")
	if err := jar.RemoveOrganism("snail"); !errors.Is(err, ErrInsufficientBiomass) {
		t.Errorf("overdraw: got %v, want ErrInsufficientBiomass", err)
	}
	if jar.Biomass("snail") != left {
		t.Error("failed remove must not change biomass")
	}
}

func TestAddResource(t *testing.T) {
	cfg := defaultConfig(t)
	jar := New(cfg, testLogger())

	before, err := jar.Pool(config.PoolOxygen)
	if err != nil {
		t.Fatalf("Pool: %v", err)
	}
	if err := jar.AddResource(config.PoolOxygen, 500); err != nil {
		t.Fatalf("AddResource: %v", err)
	}
	after, _ := jar.Pool(config.PoolOxygen)
	if !closeTo(after, before+500, 1e-12) {
		t.Errorf("oxygen = %g, want %g", after, before+500)
	}

	if err := jar.AddResource("plutonium", 1); !errors.Is(err, ErrUnknownPool) {
		t.Errorf("unknown pool: got %v, want ErrUnknownPool", err)
	}
	if err := jar.AddResource(config.PoolOxygen, -1); !errors.Is(err, ErrNonPositiveAmount) {
		t.Errorf("negative amount: got %v, want ErrNonPositiveAmount", err)
	}
	if _, err := jar.Pool("plutonium"); !errors.Is(err, ErrUnknownPool) {
		t.Errorf("Pool(unknown): got %v, want ErrUnknownPool", err)
	}
}

func TestSealTwice(t *testing.T) {
	jar := New(defaultConfig(t), testLogger())
	if err := jar.SealJar(); err != nil {
		t.Fatalf("first seal: %v", err)
	}
	if err := jar.SealJar(); !errors.Is(err, ErrNotSetupPhase) {
		t.Errorf("second seal: got %v, want ErrNotSetupPhase", err)
	}
}

func TestResetRestoresSetup(t *testing.T) {
	cfg := defaultConfig(t)
	jar := New(cfg, testLogger())

	if err := jar.AddOrganism("algae"); err != nil {
		t.Fatalf("AddOrganism: %v", err)
	}
	if err := jar.SealJar(); err != nil {
		t.Fatalf("SealJar: %v", err)
	}
	for i := 0; i < 50; i++ {
		if err := jar.AdvanceSimulation(1.0); err != nil {
			t.Fatalf("AdvanceSimulation: %v", err)
		}
	}

	jar.Reset()

	if !jar.IsSetupPhase() {
		t.Error("reset jar should be back in setup phase")
	}
	if jar.ElapsedSeconds() != 0 {
		t.Errorf("reset jar elapsed = %g, want 0", jar.ElapsedSeconds())
	}
	if got, want := jar.Biomass("algae"), cfg.SpeciesByName("algae").InitialBiomass; got != want {
		t.Errorf("reset algae biomass = %g, want %g", got, want)
	}
	ox, _ := jar.Pool(config.PoolOxygen)
	if got, want := ox, cfg.Pools.Oxygen; got != want {
		t.Errorf("reset oxygen = %g, want %g", got, want)
	}
}

func TestElapsedDays(t *testing.T) {
	cfg := defaultConfig(t)
	jar := New(cfg, testLogger())
	if err := jar.SealJar(); err != nil {
		t.Fatalf("SealJar: %v", err)
	}
	if err := jar.AdvanceSimulation(cfg.Tank.SecondsPerDay * 2.5); err != nil {
		t.Fatalf("AdvanceSimulation: %v", err)
	}
	if got := jar.ElapsedDays(); got != 2 {
		t.Errorf("ElapsedDays = %d, want 2", got)
	}
}

func TestAdvanceRejectsBadDuration(t *testing.T) {
	jar := sealedJar(t, defaultConfig(t))
	if err := jar.AdvanceSimulation(0); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("zero duration: got %v, want ErrInvalidDuration", err)
	}
	if err := jar.AdvanceSimulation(-2); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("negative duration: got %v, want ErrInvalidDuration", err)
	}
}

func TestSetLightIntensity(t *testing.T) {
	jar := sealedJar(t, defaultConfig(t))
	if err := jar.SetLightIntensity(0.25); err != nil {
		t.Fatalf("SetLightIntensity: %v", err)
	}
	if got := jar.State().LightIntensity; got != 0.25 {
		t.Errorf("light = %g, want 0.25", got)
	}
	if err := jar.SetLightIntensity(-1); !errors.Is(err, ErrNonPositiveAmount) {
		t.Errorf("negative light: got %v, want ErrNonPositiveAmount", err)
	}
}

func TestStepHookObservesEachStep(t *testing.T) {
	jar := sealedJar(t, defaultConfig(t))
	var calls int
	var lastElapsed float64
	jar.SetStepHook(func(s *State) {
		calls++
		lastElapsed = s.Elapsed
	})
	for i := 0; i < 5; i++ {
		if err := jar.AdvanceSimulation(1.0); err != nil {
			t.Fatalf("AdvanceSimulation: %v", err)
		}
	}
	if calls != 5 {
		t.Errorf("hook calls = %d, want 5", calls)
	}
	if lastElapsed != 5.0 {
		t.Errorf("hook saw elapsed = %g, want 5", lastElapsed)
	}
}
