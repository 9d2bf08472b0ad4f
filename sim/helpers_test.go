package sim

import (
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/biojar/config"
)

// testLogger discards diagnostics so refusal tests stay quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// defaultConfig loads the embedded default tables.
func defaultConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// loadConfigYAML writes yaml into a temp file and loads it over defaults.
func loadConfigYAML(t *testing.T, yaml string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("loading test config: %v", err)
	}
	return cfg
}

// sealedJar returns a jar already in the simulation phase.
func sealedJar(t *testing.T, cfg *config.Config) *Jar {
	t.Helper()
	j := New(cfg, testLogger())
	if err := j.SealJar(); err != nil {
		t.Fatalf("sealing jar: %v", err)
	}
	return j
}

// closeTo reports a ~ b within a relative-and-absolute tolerance.
func closeTo(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*(1+math.Abs(a)+math.Abs(b))
}

// requireNonNegative fails if any pool or population is negative.
func requireNonNegative(t *testing.T, s *State) {
	t.Helper()
	pools := []struct {
		name string
		v    float64
	}{
		{"oxygen", s.Pools.Oxygen},
		{"co2", s.Pools.CO2},
		{"nutrient_pool", s.Pools.NutrientPool},
		{"soft_detritus", s.Pools.SoftDetritus},
		{"hard_detritus", s.Pools.HardDetritus},
		{"toxic_waste", s.Pools.ToxicWaste},
	}
	for _, p := range pools {
		if p.v < 0 {
			t.Fatalf("pool %s went negative: %g", p.name, p.v)
		}
	}
	for _, name := range s.SpeciesOrder() {
		if b := s.Biomass(name); b < 0 {
			t.Fatalf("species %s went negative: %g", name, b)
		}
	}
}
