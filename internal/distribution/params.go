package distribution

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Params is the canonical parameter set of one family. The set of
// implementations is closed: one struct per Family.
type Params interface {
	// Family identifies the distribution family.
	Family() Family
	// Quantile returns the inverse CDF at p. p must lie in (0, 1).
	Quantile(p float64) float64
	// Valid reports whether the parameters describe a proper distribution.
	Valid() bool
	// Map returns the parameters keyed by their conventional names.
	Map() map[string]float64

	sealed()
}

// BetaParams is Beta(alpha, beta) on [0, 1].
type BetaParams struct {
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
}

func (BetaParams) Family() Family { return Beta }
func (BetaParams) sealed()        {}

func (p BetaParams) Valid() bool {
	return positiveFinite(p.Alpha) && positiveFinite(p.Beta)
}

func (p BetaParams) Quantile(q float64) float64 {
	if !p.Valid() {
		return math.NaN()
	}
	return distuv.Beta{Alpha: p.Alpha, Beta: p.Beta}.Quantile(q)
}

func (p BetaParams) Map() map[string]float64 {
	return map[string]float64{"alpha": p.Alpha, "beta": p.Beta}
}

// WeibullParams is Weibull with shape K and scale Lambda.
type WeibullParams struct {
	K      float64 `json:"k"`
	Lambda float64 `json:"lambda"`
}

func (WeibullParams) Family() Family { return Weibull }
func (WeibullParams) sealed()        {}

func (p WeibullParams) Valid() bool {
	return positiveFinite(p.K) && positiveFinite(p.Lambda)
}

func (p WeibullParams) Quantile(q float64) float64 {
	if !p.Valid() {
		return math.NaN()
	}
	return distuv.Weibull{K: p.K, Lambda: p.Lambda}.Quantile(q)
}

func (p WeibullParams) Map() map[string]float64 {
	return map[string]float64{"k": p.K, "lambda": p.Lambda}
}

// LogNormalParams describes exp(N(MuLn, SigmaLn^2)).
type LogNormalParams struct {
	MuLn    float64 `json:"mu_ln"`
	SigmaLn float64 `json:"sigma_ln"`
}

func (LogNormalParams) Family() Family { return LogNormal }
func (LogNormalParams) sealed()        {}

func (p LogNormalParams) Valid() bool {
	return isFinite(p.MuLn) && isFinite(p.SigmaLn) && p.SigmaLn >= 0
}

func (p LogNormalParams) Quantile(q float64) float64 {
	if !p.Valid() {
		return math.NaN()
	}
	return distuv.LogNormal{Mu: p.MuLn, Sigma: p.SigmaLn}.Quantile(q)
}

func (p LogNormalParams) Map() map[string]float64 {
	return map[string]float64{"mu_ln": p.MuLn, "sigma_ln": p.SigmaLn}
}

// ExponentialParams is the exponential distribution with scale Theta (mean).
type ExponentialParams struct {
	Theta float64 `json:"theta"`
}

func (ExponentialParams) Family() Family { return Exponential }
func (ExponentialParams) sealed()        {}

func (p ExponentialParams) Valid() bool {
	return positiveFinite(p.Theta)
}

func (p ExponentialParams) Quantile(q float64) float64 {
	if !p.Valid() {
		return math.NaN()
	}
	return distuv.Exponential{Rate: 1 / p.Theta}.Quantile(q)
}

func (p ExponentialParams) Map() map[string]float64 {
	return map[string]float64{"theta": p.Theta}
}

// NormalParams is N(Mu, Sigma^2).
type NormalParams struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
}

func (NormalParams) Family() Family { return Normal }
func (NormalParams) sealed()        {}

func (p NormalParams) Valid() bool {
	return isFinite(p.Mu) && isFinite(p.Sigma)
}

func (p NormalParams) Quantile(q float64) float64 {
	if !p.Valid() {
		return math.NaN()
	}
	return distuv.Normal{Mu: p.Mu, Sigma: p.Sigma}.Quantile(q)
}

func (p NormalParams) Map() map[string]float64 {
	return map[string]float64{"mu": p.Mu, "sigma": p.Sigma}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func positiveFinite(v float64) bool {
	return isFinite(v) && v > 0
}
