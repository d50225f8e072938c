package summary

import (
	"fmt"
	"math"
	"strings"
)

// Scenario identifies which order statistics a caller supplied.
type Scenario string

const (
	// S1 carries the minimum, median and maximum.
	S1 Scenario = "s1"
	// S2 carries the first quartile, median and third quartile.
	S2 Scenario = "s2"
	// S3 carries all five order statistics.
	S3 Scenario = "s3"
)

// MaxEffectiveN caps the sample size used by the fitting pipeline.
const MaxEffectiveN = 1000

// Scenarios lists the supported scenarios in declaration order.
var Scenarios = []Scenario{S1, S2, S3}

// ParseScenario accepts "s1", "S1" or "1".
func ParseScenario(raw string) (Scenario, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !strings.HasPrefix(s, "s") {
		s = "s" + s
	}
	switch Scenario(s) {
	case S1, S2, S3:
		return Scenario(s), nil
	}
	return "", fmt.Errorf("unknown scenario %q (expected s1, s2 or s3)", raw)
}

// Label returns the human-readable name of the scenario.
func (s Scenario) Label() string {
	switch s {
	case S1:
		return "S1 (Min, Median, Max)"
	case S2:
		return "S2 (Q1, Median, Q3)"
	case S3:
		return "S3 (Min, Q1, Median, Q3, Max)"
	}
	return string(s)
}

// Valid reports whether s is one of the supported scenarios.
func (s Scenario) Valid() bool {
	return s == S1 || s == S2 || s == S3
}

// Statistics returns the wire names of the statistics the scenario needs.
func (s Scenario) Statistics() []string {
	switch s {
	case S1:
		return []string{"min", "median", "max"}
	case S2:
		return []string{"q1", "median", "q3"}
	case S3:
		return []string{"min", "q1", "median", "q3", "max"}
	}
	return nil
}

// HasExtremes reports whether the scenario carries the minimum and maximum.
func (s Scenario) HasExtremes() bool {
	return s == S1 || s == S3
}

// HasQuartiles reports whether the scenario carries the first and third quartile.
func (s Scenario) HasQuartiles() bool {
	return s == S2 || s == S3
}

// Observation is the excerpted summary of a sample. Fields outside the
// scenario's subset are ignored.
type Observation struct {
	Scenario Scenario `json:"scenario" validate:"required,oneof=s1 s2 s3"`
	N        int      `json:"n" validate:"gte=10"`
	A        float64  `json:"min"`
	Q1       float64  `json:"q1"`
	M        float64  `json:"median"`
	Q3       float64  `json:"q3"`
	B        float64  `json:"max"`
}

// EffectiveN is the sample size used internally, capped at MaxEffectiveN.
func (o Observation) EffectiveN() float64 {
	if o.N > MaxEffectiveN {
		return MaxEffectiveN
	}
	return float64(o.N)
}

// Spread returns the left and right distance from the median. Quartiles are
// preferred over the extremes whenever the scenario carries them.
func (o Observation) Spread() (left, right float64) {
	if o.Scenario.HasQuartiles() {
		return o.M - o.Q1, o.Q3 - o.M
	}
	return o.M - o.A, o.B - o.M
}

// Bounds returns the outermost observed statistics of the scenario.
func (o Observation) Bounds() (lo, hi float64) {
	if o.Scenario.HasExtremes() {
		return o.A, o.B
	}
	return o.Q1, o.Q3
}

// Scale returns the observed data scale: the range for S1/S3, the IQR for S2.
func (o Observation) Scale() float64 {
	lo, hi := o.Bounds()
	return hi - lo
}

// Values returns the scenario's observed statistics in ascending order.
func (o Observation) Values() []float64 {
	switch o.Scenario {
	case S1:
		return []float64{o.A, o.M, o.B}
	case S2:
		return []float64{o.Q1, o.M, o.Q3}
	default:
		return []float64{o.A, o.Q1, o.M, o.Q3, o.B}
	}
}

// Scaled returns a copy with every statistic except N multiplied by factor.
func (o Observation) Scaled(factor float64) Observation {
	if factor == 1 {
		return o
	}
	o.A *= factor
	o.Q1 *= factor
	o.M *= factor
	o.Q3 *= factor
	o.B *= factor
	return o
}

// Finite reports whether every statistic of the scenario is a finite number.
func (o Observation) Finite() bool {
	for _, v := range o.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
