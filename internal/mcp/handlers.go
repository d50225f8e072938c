package mcp

import (
	"context"
	"fmt"

	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/simulation"
	"distfit-mcp/internal/summary"
	"distfit-mcp/internal/visuals"
)

// MaxSimulationTrials bounds the draws of one simulate_best_fit call.
const MaxSimulationTrials = 1_000_000

// SelectionResult is the data of a select_best_distribution response.
type SelectionResult struct {
	Scenario string      `json:"scenario"`
	Verdict  fit.Verdict `json:"verdict"`
	Report   string      `json:"report"`
}

// SimulationResult is the data of a simulate_best_fit response.
type SimulationResult struct {
	BestFit    fit.Fit           `json:"best_fit"`
	Simulation simulation.Result `json:"simulation"`
}

// EstimatorInfo describes one loaded estimator.
type EstimatorInfo struct {
	Name     string `json:"name"`
	Scenario string `json:"scenario"`
	Family   string `json:"family"`
	Target   string `json:"target"`
	Arity    int    `json:"arity"`
}

// Observation converts and validates the wire form.
func (in ObservationInput) Observation() (summary.Observation, error) {
	scenario, err := summary.ParseScenario(in.Scenario)
	if err != nil {
		return summary.Observation{}, fmt.Errorf("%w: %v", summary.ErrInvalidObservation, err)
	}
	stats := map[string]*float64{"min": in.Min, "q1": in.Q1, "median": in.Median, "q3": in.Q3, "max": in.Max}
	if err := summary.CheckSupplied(scenario, func(name string) bool { return stats[name] != nil }); err != nil {
		return summary.Observation{}, err
	}
	obs := summary.Observation{
		Scenario: scenario,
		N:        in.N,
		A:        deref(in.Min),
		Q1:       deref(in.Q1),
		M:        deref(in.Median),
		Q3:       deref(in.Q3),
		B:        deref(in.Max),
	}
	if err := summary.Validate(obs); err != nil {
		return summary.Observation{}, err
	}
	return obs, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func (s *Server) selectBest(ctx context.Context, in ObservationInput) (summary.Observation, fit.Verdict, error) {
	obs, err := in.Observation()
	if err != nil {
		return obs, fit.Verdict{}, err
	}
	v, err := s.selector.SelectBestDistribution(ctx, obs)
	if err != nil {
		return obs, fit.Verdict{}, err
	}
	return obs, v, nil
}

func (s *Server) handleSelectBestDistribution(ctx context.Context, in ObservationInput) (ResponseEnvelope, error) {
	obs, v, err := s.selectBest(ctx, in)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	res := SelectionResult{
		Scenario: obs.Scenario.Label(),
		Verdict:  v,
		Report:   fit.Report(v),
	}

	var chart string
	if s.cfg != nil && s.cfg.EnableMermaidCharts {
		chart = visuals.GenerateQuantileChart(obs, v.BestFit)
	}
	return WrapResponse(res, v.Warnings, chart), nil
}

func (s *Server) handleSimulateBestFit(ctx context.Context, in SimulateInput) (ResponseEnvelope, error) {
	trials := in.Trials
	if trials == 0 && s.cfg != nil {
		trials = s.cfg.SimulationTrials
	}
	if trials < 1 || trials > MaxSimulationTrials {
		return ResponseEnvelope{}, fmt.Errorf("trials must be between 1 and %d, got %d", MaxSimulationTrials, trials)
	}

	obs, v, err := s.selectBest(ctx, in.Observation)
	if err != nil {
		return ResponseEnvelope{}, err
	}

	sim, err := s.newSimulation(in.Seed).Run(v.BestFit.Params, trials)
	if err != nil {
		return ResponseEnvelope{}, fmt.Errorf("simulation of %s fit failed: %w", v.BestFit.Family, err)
	}

	var quantileChart, simChart string
	if s.cfg != nil && s.cfg.EnableMermaidCharts {
		quantileChart = visuals.GenerateQuantileChart(obs, v.BestFit)
		simChart = visuals.GenerateSimulationChart(sim)
	}
	return WrapResponse(SimulationResult{BestFit: v.BestFit, Simulation: sim}, v.Warnings, quantileChart, simChart), nil
}

func (s *Server) handleListEstimators(_ context.Context, _ ListEstimatorsInput) (ResponseEnvelope, error) {
	out := make([]EstimatorInfo, 0, len(s.estimators))
	for _, k := range s.estimators {
		out = append(out, EstimatorInfo{
			Name:     k.Name(),
			Scenario: string(k.Scenario),
			Family:   k.Family.String(),
			Target:   string(k.Kind),
			Arity:    estimation.Arity(k.Scenario, k.Family),
		})
	}
	return WrapResponse(out, nil), nil
}
