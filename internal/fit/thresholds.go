package fit

import "distfit-mcp/internal/distribution"

// memorylessRatio is (m−q1)/(q3−m) of any exponential distribution:
// (ln 2 − ln 4/3) / (ln 4 − ln 2) = log2(1.5).
const memorylessRatio = 0.5849625007211562 // math.Log2(1.5)

// Thresholds holds the tunable constants of the selection cascade.
type Thresholds struct {
	// AsymmetryLimit is the spread ratio above which input is rejected.
	AsymmetryLimit float64
	// SymmetryTolerance is the relative spread difference below which
	// Normal is selected directly.
	SymmetryTolerance float64
	// NormalExclusionRatio is the spread ratio from which Normal is dropped.
	NormalExclusionRatio float64
	// MemorylessMinN is the sample size above which the memoryless check runs.
	MemorylessMinN float64
	// MemorylessTolerance is the relative error below which Exponential is
	// selected directly.
	MemorylessTolerance float64
	// MemorylessExclusion is the relative error above which Exponential is
	// dropped.
	MemorylessExclusion float64
	// TieBreakMargin is the relative loss margin within which a preferred
	// family beats the minimum.
	TieBreakMargin float64
	// ReliabilityRatio is the RMSE / data-scale ratio above which the fit is
	// flagged as unreliable.
	ReliabilityRatio float64
}

// DefaultThresholds returns the defensive defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		AsymmetryLimit:       20,
		SymmetryTolerance:    0.01,
		NormalExclusionRatio: 2,
		MemorylessMinN:       100,
		MemorylessTolerance:  0.01,
		MemorylessExclusion:  2,
		TieBreakMargin:       0.001,
		ReliabilityRatio:     2,
	}
}

// ComfortZone is the spread range an estimator family was trained near.
type ComfortZone struct {
	Target float64
	Low    float64
	High   float64
}

// DefaultComfortZones returns the per-family zones. Beta has none: its
// inputs already live in [0, 1].
func DefaultComfortZones() map[distribution.Family]ComfortZone {
	return map[distribution.Family]ComfortZone{
		distribution.Normal:      {Target: 20, Low: 5, High: 25},
		distribution.Exponential: {Target: 10, Low: 5, High: 20},
		distribution.LogNormal:   {Target: 300, Low: 10, High: 500},
		distribution.Weibull:     {Target: 20, Low: 5, High: 40},
	}
}
