package engine

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/summary"
)

func TestSummarize(t *testing.T) {
	xs := []float64{9, 1, 5, 3, 7}
	obs := Summarize(summary.S3, xs)
	if obs.A != 1 || obs.B != 9 || obs.M != 5 || obs.N != 5 {
		t.Errorf("Summarize() = %+v", obs)
	}
	if !(obs.Q1 > obs.A && obs.Q1 < obs.M && obs.Q3 > obs.M && obs.Q3 < obs.B) {
		t.Errorf("quartiles out of order: %+v", obs)
	}
	if xs[0] != 9 {
		t.Error("Summarize must not reorder its input")
	}

	s2 := Summarize(summary.S2, xs)
	if s2.A != 0 || s2.B != 0 {
		t.Errorf("S2 should not carry extremes: %+v", s2)
	}
}

func TestGenerate(t *testing.T) {
	obs, params, err := Generate(GeneratorConfig{
		Scenario: summary.S3, Family: distribution.Normal, Mean: 10, Std: 2, Count: 5000, Seed: 1,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if params.Family() != distribution.Normal {
		t.Errorf("params family = %v", params.Family())
	}
	if math.Abs(obs.M-10) > 0.15 {
		t.Errorf("median = %v, want ~10", obs.M)
	}
	if err := summary.Validate(obs); err != nil {
		t.Errorf("generated observation invalid: %v", err)
	}

	if _, _, err := Generate(GeneratorConfig{Scenario: summary.S1, Family: distribution.Normal, Mean: 1, Std: 1, Count: 5}); err == nil {
		t.Error("expected error for count < 10")
	}
	if _, _, err := Generate(GeneratorConfig{Scenario: summary.S1, Family: distribution.Beta, Mean: 2, Std: 1, Count: 50}); !errors.Is(err, distribution.ErrInvalidParameters) {
		t.Errorf("Beta mean outside (0,1): err = %v", err)
	}
}

// TestBaselineModels_EndToEnd writes the baseline artifact set, loads it the
// way the server does and runs selections against generated observations.
func TestBaselineModels_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	if err := SaveModels(dir, BaselineModels()); err != nil {
		t.Fatalf("SaveModels() error = %v", err)
	}

	manifest, err := estimation.ReadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		t.Fatalf("ReadManifest() error = %v", err)
	}
	reg, err := estimation.Load(context.Background(), manifest, estimation.LinearLoader{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	engine := fit.NewEngine(reg)

	tests := []struct {
		name string
		cfg  GeneratorConfig
		want distribution.Family
	}{
		{"BetaDomain", GeneratorConfig{Scenario: summary.S1, Family: distribution.Beta, Mean: 0.5, Std: 0.1, Count: 300, Seed: 2}, distribution.Beta},
		{"Weibull", GeneratorConfig{Scenario: summary.S3, Family: distribution.Weibull, Mean: 10, Std: 4, Count: 2000, Seed: 3}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, _, err := Generate(tt.cfg)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			v, err := engine.SelectBestDistribution(context.Background(), obs)
			if err != nil {
				t.Fatalf("SelectBestDistribution() error = %v", err)
			}
			if tt.want >= 0 && v.BestFit.Family != tt.want {
				t.Errorf("family = %v, want %v", v.BestFit.Family, tt.want)
			}
			if v.BestFit.Params == nil || !v.BestFit.Params.Valid() {
				t.Errorf("invalid best fit params: %+v", v.BestFit)
			}
		})
	}
}
