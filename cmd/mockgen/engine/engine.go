package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/simulation"
	"distfit-mcp/internal/summary"

	"github.com/aclements/go-moremath/stats"
	"gopkg.in/yaml.v3"
)

type GeneratorConfig struct {
	Scenario summary.Scenario
	Family   distribution.Family
	Mean     float64
	Std      float64
	Count    int
	Seed     int64
}

// Generate draws Count values from the configured distribution and
// excerpts the scenario's order statistics from them.
func Generate(cfg GeneratorConfig) (summary.Observation, distribution.Params, error) {
	if cfg.Count < 10 {
		return summary.Observation{}, nil, fmt.Errorf("count must be at least 10, got %d", cfg.Count)
	}

	std := cfg.Std
	if cfg.Family == distribution.Exponential {
		std = cfg.Mean
	}
	mapping, err := distribution.FromMoments(cfg.Family, cfg.Mean, std)
	if err != nil {
		return summary.Observation{}, nil, err
	}

	draws, err := simulation.NewSeededEngine(cfg.Seed).Draw(mapping.Params, cfg.Count)
	if err != nil {
		return summary.Observation{}, nil, err
	}
	return Summarize(cfg.Scenario, draws), mapping.Params, nil
}

// Summarize reduces a raw sample to the statistics of a scenario.
func Summarize(scenario summary.Scenario, xs []float64) summary.Observation {
	sample := stats.Sample{Xs: append([]float64(nil), xs...)}
	sample.Sort()
	lo, hi := sample.Bounds()

	obs := summary.Observation{Scenario: scenario, N: len(xs), M: sample.Quantile(0.5)}
	if scenario.HasExtremes() {
		obs.A, obs.B = lo, hi
	}
	if scenario.HasQuartiles() {
		obs.Q1, obs.Q3 = sample.Quantile(0.25), sample.Quantile(0.75)
	}
	return obs
}

// BaselineModels returns untrained linear estimators built from classic
// moment rules: range/4 or IQR/1.349 for the SD and a weighted average of
// the order statistics for the mean. They let the server run end to end
// without a trained artifact set.
func BaselineModels() map[estimation.Key]estimation.LinearModel {
	const iqr = 1 / 1.349

	models := make(map[estimation.Key]estimation.LinearModel)
	for _, k := range estimation.Catalog() {
		var coef []float64
		switch {
		case k.Family == distribution.Normal:
			switch k.Scenario {
			case summary.S1:
				coef = []float64{0, -0.25, 0.25}
			case summary.S2:
				coef = []float64{0, -iqr, iqr}
			default:
				coef = []float64{0, 0, -iqr, iqr, 0}
			}
		case k.Kind == estimation.Mean:
			switch k.Scenario {
			case summary.S1:
				coef = []float64{0, 0.25, 0.5, 0.25}
			case summary.S2:
				coef = []float64{0, 1.0 / 3, 1.0 / 3, 1.0 / 3}
			default:
				coef = []float64{0, 0.125, 0.25, 0.25, 0.25, 0.125}
			}
		default:
			switch k.Scenario {
			case summary.S1:
				coef = []float64{0, -0.25, 0, 0.25}
			case summary.S2:
				coef = []float64{0, -iqr, 0, iqr}
			default:
				coef = []float64{0, 0, -iqr, 0, iqr, 0}
			}
		}
		models[k] = estimation.LinearModel{Arity: len(coef), Coefficients: coef}
	}
	return models
}

// SaveModels writes every baseline artifact plus a manifest.yaml into dir.
func SaveModels(dir string, models map[estimation.Key]estimation.LinearModel) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for k, m := range models {
		data, err := yaml.Marshal(m)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, estimation.DefaultArtifactName(k)), data, 0644); err != nil {
			return err
		}
	}

	manifest := estimation.DefaultManifest("")
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0644)
}
