package estimation

import (
	"context"
	"errors"
	"fmt"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/summary"
)

// FeatureLayoutVersion identifies the feature vector layout the estimator
// artifacts were trained against. Bump it whenever Features changes.
const FeatureLayoutVersion = 1

var (
	// ErrUnknownEstimator is returned when no estimator is registered for a key.
	ErrUnknownEstimator = errors.New("unknown estimator")

	// ErrArity is returned when a feature vector does not match the
	// estimator's declared input width.
	ErrArity = errors.New("feature vector arity mismatch")
)

// Kind selects which moment an estimator predicts.
type Kind string

const (
	Mean Kind = "mu"
	Std  Kind = "sigma"
)

// Key identifies one pre-trained estimator.
type Key struct {
	Scenario summary.Scenario
	Family   distribution.Family
	Kind     Kind
}

// Name returns the canonical "<scenario>_<family>_<kind>" identifier.
func (k Key) Name() string {
	return fmt.Sprintf("%s_%s_%s", k.Scenario, k.Family.Slug(), k.Kind)
}

func (k Key) String() string { return k.Name() }

// Service maps a feature vector to a scalar moment estimate.
type Service interface {
	Estimate(ctx context.Context, scenario summary.Scenario, family distribution.Family, kind Kind, features []float64) (float64, error)
}

// Estimator is a single loaded regression model.
type Estimator interface {
	Predict(ctx context.Context, features []float64) (float64, error)
}

// EstimatorFunc adapts a plain function to the Estimator interface.
type EstimatorFunc func(features []float64) (float64, error)

// Predict calls f(features).
func (f EstimatorFunc) Predict(_ context.Context, features []float64) (float64, error) {
	return f(features)
}

// Provides reports which kinds the catalog carries for a family: Normal has
// only a std estimator (its mean is analytic) and Exponential only a mean
// estimator, reused as its scale.
func Provides(family distribution.Family) []Kind {
	switch family {
	case distribution.Normal:
		return []Kind{Std}
	case distribution.Exponential:
		return []Kind{Mean}
	default:
		return []Kind{Mean, Std}
	}
}

// Catalog lists every estimator that must be loaded before serving.
func Catalog() []Key {
	var keys []Key
	for _, s := range summary.Scenarios {
		for _, f := range distribution.Families {
			for _, k := range Provides(f) {
				keys = append(keys, Key{Scenario: s, Family: f, Kind: k})
			}
		}
	}
	return keys
}

// Features builds the estimator input vector. Normal uses spreads centred
// on the median; the other families use the raw order statistics.
func Features(family distribution.Family, o summary.Observation) []float64 {
	n := o.EffectiveN()
	if family == distribution.Normal {
		switch o.Scenario {
		case summary.S1:
			return []float64{n, o.A - o.M, o.B - o.M}
		case summary.S2:
			return []float64{n, o.Q1 - o.M, o.Q3 - o.M}
		default:
			return []float64{n, o.A - o.M, o.Q1 - o.M, o.Q3 - o.M, o.B - o.M}
		}
	}

	switch o.Scenario {
	case summary.S1:
		return []float64{n, o.A, o.M, o.B}
	case summary.S2:
		return []float64{n, o.Q1, o.M, o.Q3}
	default:
		return []float64{n, o.A, o.Q1, o.M, o.Q3, o.B}
	}
}

// Arity returns the feature vector width for a scenario and family.
func Arity(scenario summary.Scenario, family distribution.Family) int {
	return len(Features(family, summary.Observation{Scenario: scenario}))
}
