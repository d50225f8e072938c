package fit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/summary"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Recorder receives per-request outcomes, e.g. for metrics.
type Recorder interface {
	RecordVerdict(v Verdict, elapsed time.Duration)
	RecordFailure(kind ErrorKind, elapsed time.Duration)
	RecordDropped(family distribution.Family, reason string)
}

type nopRecorder struct{}

func (nopRecorder) RecordVerdict(Verdict, time.Duration)      {}
func (nopRecorder) RecordFailure(ErrorKind, time.Duration)    {}
func (nopRecorder) RecordDropped(distribution.Family, string) {}

// Engine selects the best-fitting distribution for an observation. It holds
// no per-request state and is safe for concurrent use.
type Engine struct {
	service    estimation.Service
	thresholds Thresholds
	zones      map[distribution.Family]ComfortZone
	preference []distribution.Family
	recorder   Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithThresholds overrides the cascade thresholds.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithComfortZones overrides the per-family scaling zones.
func WithComfortZones(zones map[distribution.Family]ComfortZone) Option {
	return func(e *Engine) { e.zones = zones }
}

// WithPreferenceOrder overrides the tie-break order.
func WithPreferenceOrder(order []distribution.Family) Option {
	return func(e *Engine) { e.preference = slices.Clone(order) }
}

// WithRecorder attaches an outcome recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine creates an engine backed by an already-loaded estimation service.
func NewEngine(service estimation.Service, opts ...Option) *Engine {
	e := &Engine{
		service:    service,
		thresholds: DefaultThresholds(),
		zones:      DefaultComfortZones(),
		preference: slices.Clone(distribution.PreferenceOrder),
		recorder:   nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Thresholds returns the engine's cascade thresholds.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// SelectBestDistribution runs the selection cascade on one observation. The
// observation must satisfy the caller preconditions checked by
// summary.Validate. Errors match ErrInputValidity, ErrComputation or
// ErrEstimator.
func (e *Engine) SelectBestDistribution(ctx context.Context, obs summary.Observation) (Verdict, error) {
	start := time.Now()
	logger := log.With().
		Str("request", uuid.NewString()).
		Str("scenario", string(obs.Scenario)).
		Int("n", obs.N).
		Logger()

	v, err := e.selectBest(ctx, obs, logger)
	elapsed := time.Since(start)
	if err != nil {
		e.recorder.RecordFailure(KindOf(err), elapsed)
		logger.Debug().Err(err).Dur("elapsed", elapsed).Msg("Distribution selection failed")
		return Verdict{}, err
	}

	e.recorder.RecordVerdict(v, elapsed)
	logger.Debug().
		Str("family", v.BestFit.Family.String()).
		Str("shortcut", string(v.Shortcut)).
		Float64("loss", v.BestFit.Loss).
		Int("warnings", len(v.Warnings)).
		Dur("elapsed", elapsed).
		Msg("Distribution selected")
	return v, nil
}

func (e *Engine) selectBest(ctx context.Context, obs summary.Observation, logger zerolog.Logger) (Verdict, error) {
	t := e.thresholds

	if !obs.Scenario.Valid() {
		return Verdict{}, inputValidityError(fmt.Sprintf("unknown scenario %q (expected s1, s2 or s3)", obs.Scenario))
	}
	if !obs.Finite() {
		return Verdict{}, inputValidityError(fmt.Sprintf("observation for scenario %s contains non-finite statistics", obs.Scenario))
	}

	// 1. Extreme asymmetry guard.
	left, right := obs.Spread()
	twoSided := left > 0 && right > 0
	var ratio, relDiff float64
	if twoSided {
		ratio = math.Max(left, right) / math.Min(left, right)
		relDiff = math.Abs(left-right) / (left + right)
		if ratio > t.AsymmetryLimit {
			return Verdict{}, inputValidityError(fmt.Sprintf(
				"extreme asymmetry detected (spread ratio %.1f > %.0f); data may contain outliers, making estimation unreliable",
				ratio, t.AsymmetryLimit))
		}
	}

	// 2. Domain priority: data confined to [0, 1] is Beta.
	lo, hi := obs.Bounds()
	if lo >= 0 && hi <= 1 {
		return e.shortcut(ctx, obs, distribution.Beta, ShortcutBetaDomain, WarnBetaDomain)
	}

	// 3. Strict symmetry.
	if twoSided && relDiff < t.SymmetryTolerance {
		return e.shortcut(ctx, obs, distribution.Normal, ShortcutSymmetry, WarnSymmetry)
	}

	candidates := []distribution.Family{distribution.Weibull, distribution.LogNormal, distribution.Normal, distribution.Exponential}

	// 4. Moderate asymmetry rules out Normal.
	if twoSided && ratio >= t.NormalExclusionRatio {
		candidates = without(candidates, distribution.Normal)
		e.recorder.RecordDropped(distribution.Normal, "asymmetry")
	}

	// 5. Memoryless property.
	if obs.Scenario.HasQuartiles() && obs.EffectiveN() > t.MemorylessMinN {
		observed := (obs.M - obs.Q1) / (obs.Q3 - obs.M)
		relErr := math.Abs(observed-memorylessRatio) / memorylessRatio
		if relErr < t.MemorylessTolerance {
			return e.shortcut(ctx, obs, distribution.Exponential, ShortcutMemoryless, WarnMemoryless)
		}
		if relErr > t.MemorylessExclusion {
			candidates = without(candidates, distribution.Exponential)
			e.recorder.RecordDropped(distribution.Exponential, "memoryless")
		}
	}

	// 6. General comparison.
	fits, err := e.evaluateAll(ctx, obs, candidates, logger)
	if err != nil {
		return Verdict{}, err
	}
	if len(fits) == 0 {
		return Verdict{}, computationError("no suitable distribution could be fitted after applying heuristic rules", nil)
	}

	// 7. Selection with preference tie-break.
	sortByLoss(fits)
	best := Select(fits, e.preference, t.TieBreakMargin)

	v := Verdict{BestFit: best, Warnings: []string{}, Candidates: fits}

	// 8. Reliability.
	rmse := math.Sqrt(best.Loss / float64(len(Probabilities(obs))))
	if scale := obs.Scale(); scale > 0 && rmse/scale > t.ReliabilityRatio {
		v.Warnings = append(v.Warnings, WarnLowReliability)
	}
	if best.Approximate {
		v.Warnings = append(v.Warnings, WarnWeibullApprox)
	}
	return v, nil
}

func (e *Engine) shortcut(ctx context.Context, obs summary.Observation, family distribution.Family, rule Shortcut, warning string) (Verdict, error) {
	f, err := e.evaluate(ctx, obs, family)
	if err != nil {
		if errors.Is(err, distribution.ErrInvalidParameters) {
			return Verdict{}, computationError(fmt.Sprintf("%s shortcut failed %s parameter derivation", rule, family), err)
		}
		return Verdict{}, err
	}
	return Verdict{BestFit: f, Warnings: []string{warning}, Shortcut: rule}, nil
}

// evaluateAll fits every candidate concurrently. Candidates with invalid
// parameters or non-finite loss are dropped; an estimator failure aborts.
func (e *Engine) evaluateAll(ctx context.Context, obs summary.Observation, candidates []distribution.Family, logger zerolog.Logger) ([]Fit, error) {
	results := make([]*Fit, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, family := range candidates {
		g.Go(func() error {
			f, err := e.evaluate(gctx, obs, family)
			if err != nil {
				if errors.Is(err, distribution.ErrInvalidParameters) {
					logger.Debug().Err(err).Str("family", family.String()).Msg("Candidate dropped")
					e.recorder.RecordDropped(family, "invalid_parameters")
					return nil
				}
				return err
			}
			if math.IsInf(f.Loss, 0) || math.IsNaN(f.Loss) {
				logger.Debug().Str("family", family.String()).Msg("Candidate dropped: non-finite loss")
				e.recorder.RecordDropped(family, "non_finite_loss")
				return nil
			}
			results[i] = &f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	fits := make([]Fit, 0, len(results))
	for _, f := range results {
		if f != nil {
			fits = append(fits, *f)
		}
	}
	return fits, nil
}

// evaluate runs scale → estimate → map → loss for one family.
func (e *Engine) evaluate(ctx context.Context, obs summary.Observation, family distribution.Family) (Fit, error) {
	factor := ScaleFactor(e.zones, family, obs)
	features := estimation.Features(family, obs.Scaled(factor))

	var mean, std float64
	if family == distribution.Normal {
		mean = NormalMean(obs)
		s, err := e.estimate(ctx, obs.Scenario, family, estimation.Std, features)
		if err != nil {
			return Fit{}, err
		}
		std = s / factor
	} else {
		m, err := e.estimate(ctx, obs.Scenario, family, estimation.Mean, features)
		if err != nil {
			return Fit{}, err
		}
		mean = m / factor
		std = mean
		if slices.Contains(estimation.Provides(family), estimation.Std) {
			s, err := e.estimate(ctx, obs.Scenario, family, estimation.Std, features)
			if err != nil {
				return Fit{}, err
			}
			std = s / factor
		}
	}

	mapping, err := distribution.FromMoments(family, mean, std)
	if err != nil {
		return Fit{}, err
	}

	return Fit{
		Family:      family,
		Mean:        mean,
		Std:         std,
		Params:      mapping.Params,
		Loss:        Loss(mapping.Params, obs),
		Approximate: mapping.Approximate,
	}, nil
}

func (e *Engine) estimate(ctx context.Context, scenario summary.Scenario, family distribution.Family, kind estimation.Kind, features []float64) (float64, error) {
	v, err := e.service.Estimate(ctx, scenario, family, kind, features)
	if err != nil {
		return 0, estimatorError(fmt.Sprintf("%s_%s_%s estimate failed", scenario, family.Slug(), kind), err)
	}
	return v, nil
}

// Select picks the first family of order whose loss lies within margin
// (relative) of the minimum, falling back to the minimum-loss fit. fits
// must be non-empty and sorted by ascending loss.
func Select(fits []Fit, order []distribution.Family, margin float64) Fit {
	best := fits[0]
	limit := best.Loss * (1 + margin)
	for _, family := range order {
		for _, f := range fits {
			if f.Family != family {
				continue
			}
			if f.Loss < limit || f.Loss == best.Loss {
				return f
			}
		}
	}
	return best
}

func sortByLoss(fits []Fit) {
	sort.SliceStable(fits, func(i, j int) bool { return fits[i].Loss < fits[j].Loss })
}

func without(families []distribution.Family, drop distribution.Family) []distribution.Family {
	out := families[:0:0]
	for _, f := range families {
		if f != drop {
			out = append(out, f)
		}
	}
	return out
}
