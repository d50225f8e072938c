package visuals

import (
	"strings"
	"testing"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/simulation"
	"distfit-mcp/internal/summary"
)

func TestGenerateQuantileChart(t *testing.T) {
	obs := summary.Observation{Scenario: summary.S3, N: 20, A: 1, Q1: 4, M: 6, Q3: 9, B: 20}
	best := fit.Fit{Family: distribution.Weibull, Params: distribution.WeibullParams{K: 1.8, Lambda: 8}}

	chart := GenerateQuantileChart(obs, best)
	for _, want := range []string{
		"```mermaid",
		"xychart-beta",
		"Observed vs Weibull Quantiles",
		`x-axis ["P5", "P25", "P50", "P75", "P95"]`,
		"bar [1, 4, 6, 9, 20]",
		"line [",
	} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart missing %q:\n%s", want, chart)
		}
	}
}

func TestGenerateQuantileChart_SmallN(t *testing.T) {
	// n=100 gives extreme probabilities 1/100 and 1 - 1/100.
	obs := summary.Observation{Scenario: summary.S1, N: 100, A: -3, M: 0, B: 3}
	best := fit.Fit{Family: distribution.Normal, Params: distribution.NormalParams{Mu: 0, Sigma: 1.2}}

	chart := GenerateQuantileChart(obs, best)
	if !strings.Contains(chart, `x-axis ["P1", "P50", "P99"]`) {
		t.Errorf("unexpected labels:\n%s", chart)
	}
	if !strings.Contains(chart, `y-axis "Value" -`) {
		t.Errorf("negative data should lower the axis:\n%s", chart)
	}
}

func TestGenerateQuantileChart_Empty(t *testing.T) {
	obs := summary.Observation{Scenario: summary.S2, N: 20, Q1: 1, M: 2, Q3: 3}
	if got := GenerateQuantileChart(obs, fit.Fit{}); got != "" {
		t.Errorf("expected empty chart, got %q", got)
	}
}

func TestGenerateSimulationChart(t *testing.T) {
	if got := GenerateSimulationChart(simulation.Result{}); got != "" {
		t.Errorf("expected empty chart for zero trials, got %q", got)
	}

	chart := GenerateSimulationChart(simulation.Result{Family: "Exponential", Trials: 1000, P10: 1, P50: 5, P85: 14, P95: 22})
	for _, want := range []string{"Monte Carlo Simulation (Exponential, 1000 trials)", "bar [1, 5, 14, 22]", "50% (Coin Toss)"} {
		if !strings.Contains(chart, want) {
			t.Errorf("chart missing %q:\n%s", want, chart)
		}
	}
}
