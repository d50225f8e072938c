package fit

import (
	"math"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/summary"
)

// NormalMean blends the scenario's centrality proxies with n-dependent
// weights. In S3 the median weight may turn negative; the blend then
// extrapolates.
func NormalMean(o summary.Observation) float64 {
	n := o.EffectiveN()
	switch o.Scenario {
	case summary.S1:
		w1 := 4 / (4 + math.Pow(n, 0.75))
		return w1*(o.A+o.B)/2 + (1-w1)*o.M
	case summary.S2:
		w1 := 0.7 + 0.39/n
		return w1*(o.Q1+o.Q3)/2 + (1-w1)*o.M
	default:
		w1 := 2.2 / (2.2 + math.Pow(n, 0.75))
		w2 := 0.7 - 0.72/math.Pow(n, 0.55)
		w3 := 1 - w1 - w2
		return w1*(o.A+o.B)/2 + w2*(o.Q1+o.Q3)/2 + w3*o.M
	}
}

// Probabilities returns the probability grid matched against the
// scenario's observed statistics, in the order of Observation.Values.
func Probabilities(o summary.Observation) []float64 {
	n := o.EffectiveN()
	switch o.Scenario {
	case summary.S1:
		return []float64{1 / n, 0.5, 1 - 1/n}
	case summary.S2:
		return []float64{0.25, 0.5, 0.75}
	default:
		return []float64{1 / n, 0.25, 0.5, 0.75, 1 - 1/n}
	}
}

// Loss is the sum of squared differences between the fitted quantiles and
// the observed statistics. Any non-finite quantile yields +Inf.
func Loss(p distribution.Params, o summary.Observation) float64 {
	probs := Probabilities(o)
	observed := o.Values()

	var loss float64
	for i, q := range distribution.Quantiles(p, probs) {
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return math.Inf(1)
		}
		d := q - observed[i]
		loss += d * d
	}
	if math.IsNaN(loss) || math.IsInf(loss, 0) {
		return math.Inf(1)
	}
	return loss
}
