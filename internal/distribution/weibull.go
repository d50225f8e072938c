package distribution

import (
	"fmt"
	"math"
)

// Weibull shape solver bounds.
const (
	WeibullShapeLow      = 0.1
	WeibullShapeHigh     = 20.0
	WeibullTolerance     = 1e-6
	WeibullMaxIterations = 100

	// weibullFallbackExponent is the exponent of the closed-form
	// approximation k ≈ CV^-1.086.
	weibullFallbackExponent = -1.086
)

// WeibullShape is the result of solving for the Weibull shape parameter.
type WeibullShape struct {
	K float64
	// Approximate is set when the root was not bracketed and K comes from
	// the closed-form approximation instead of bisection.
	Approximate bool
	Iterations  int
}

// weibullCVResidual returns Γ(1+2/k)/Γ(1+1/k)² − 1 − cv².
func weibullCVResidual(k, cvSq float64) float64 {
	if k <= 0 {
		return math.Inf(1)
	}
	g1 := math.Gamma(1 + 1/k)
	g2 := math.Gamma(1 + 2/k)
	if g1 == 0 || math.IsNaN(g1) || math.IsNaN(g2) {
		return math.Inf(1)
	}
	return g2/(g1*g1) - 1 - cvSq
}

// SolveWeibullShape finds the shape k whose coefficient of variation equals
// std/mean, by bisection over [WeibullShapeLow, WeibullShapeHigh].
func SolveWeibullShape(mean, std float64) (WeibullShape, error) {
	if !(mean > 0) || !(std > 0) || math.IsInf(mean, 0) || math.IsInf(std, 0) {
		return WeibullShape{}, fmt.Errorf("%w: weibull shape needs mean > 0 and std > 0 (mean=%g, std=%g)", ErrNoSolution, mean, std)
	}

	cv := std / mean
	cvSq := cv * cv
	f := func(k float64) float64 { return weibullCVResidual(k, cvSq) }

	low, high := WeibullShapeLow, WeibullShapeHigh
	fLow := f(low)
	if fLow*f(high) >= 0 {
		return WeibullShape{K: math.Pow(cv, weibullFallbackExponent), Approximate: true}, nil
	}

	k := (low + high) / 2
	i := 0
	for i < WeibullMaxIterations {
		i++
		k = (low + high) / 2
		fMid := f(k)
		if math.Abs(fMid) < WeibullTolerance {
			break
		}
		if fLow*fMid < 0 {
			high = k
		} else {
			low = k
			fLow = fMid
		}
	}
	return WeibullShape{K: k, Iterations: i}, nil
}
