package fit

import (
	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/summary"
)

// RoughSpread estimates the standard deviation from the observation:
// range/4 when the extremes are known, IQR/1.349 otherwise.
func RoughSpread(o summary.Observation) float64 {
	if o.Scenario.HasExtremes() {
		return (o.B - o.A) / 4
	}
	return (o.Q3 - o.Q1) / 1.349
}

// ScaleFactor returns the factor that moves the observation's rough spread
// onto the family's zone target. It is 1 when the spread already sits inside
// the zone or the family has no zone.
func ScaleFactor(zones map[distribution.Family]ComfortZone, family distribution.Family, o summary.Observation) float64 {
	zone, ok := zones[family]
	if !ok {
		return 1
	}
	rough := RoughSpread(o)
	if rough > 0 && (rough < zone.Low || rough > zone.High) {
		return zone.Target / rough
	}
	return 1
}
