package distribution

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameters is returned when (mean, std) do not map to a valid
	// parameter set for the requested family.
	ErrInvalidParameters = errors.New("invalid distribution parameters")

	// ErrNoSolution is returned when a numeric solve has no admissible input.
	ErrNoSolution = errors.New("no solution")
)

// Mapping is the outcome of FromMoments.
type Mapping struct {
	Params Params
	// Approximate marks a Weibull mapping whose shape came from the
	// closed-form fallback.
	Approximate bool
}

// FromMoments converts a (mean, std) pair into the canonical parameters of f.
// For Exponential, std carries the reused mean estimate.
func FromMoments(f Family, mean, std float64) (Mapping, error) {
	var (
		params Params
		approx bool
	)

	switch f {
	case Beta:
		s := mean*(1-mean)/(std*std) - 1
		params = BetaParams{Alpha: s * mean, Beta: s * (1 - mean)}

	case Weibull:
		shape, err := SolveWeibullShape(mean, std)
		if err != nil {
			return Mapping{}, fmt.Errorf("%w: %s: %v", ErrInvalidParameters, f, err)
		}
		if !(shape.K > 0) {
			return Mapping{}, fmt.Errorf("%w: %s shape k=%g", ErrInvalidParameters, f, shape.K)
		}
		params = WeibullParams{K: shape.K, Lambda: mean / math.Gamma(1+1/shape.K)}
		approx = shape.Approximate

	case LogNormal:
		if !(mean > 0) {
			return Mapping{}, fmt.Errorf("%w: %s needs mean > 0 (mean=%g)", ErrInvalidParameters, f, mean)
		}
		cv := std / mean
		sigmaSq := math.Log(1 + cv*cv)
		if !(sigmaSq >= 0) {
			return Mapping{}, fmt.Errorf("%w: %s sigma_ln^2=%g", ErrInvalidParameters, f, sigmaSq)
		}
		params = LogNormalParams{MuLn: math.Log(mean) - sigmaSq/2, SigmaLn: math.Sqrt(sigmaSq)}

	case Exponential:
		params = ExponentialParams{Theta: std}

	case Normal:
		params = NormalParams{Mu: mean, Sigma: std}

	default:
		return Mapping{}, fmt.Errorf("%w: unsupported family %s", ErrInvalidParameters, f)
	}

	if !params.Valid() {
		return Mapping{}, fmt.Errorf("%w: %s %v", ErrInvalidParameters, f, params.Map())
	}
	return Mapping{Params: params, Approximate: approx}, nil
}

// Quantiles evaluates p.Quantile at each probability.
func Quantiles(p Params, probs []float64) []float64 {
	out := make([]float64, len(probs))
	for i, q := range probs {
		out[i] = p.Quantile(q)
	}
	return out
}
