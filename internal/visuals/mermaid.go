package visuals

import (
	"fmt"
	"math"
	"strings"

	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/simulation"
	"distfit-mcp/internal/summary"
)

// GenerateQuantileChart creates a Mermaid xychart-beta comparing the observed
// summary statistics with the quantiles of the selected fit.
func GenerateQuantileChart(obs summary.Observation, best fit.Fit) string {
	if best.Params == nil {
		return ""
	}

	probs := fit.Probabilities(obs)
	observed := obs.Values()

	var labels []string
	var obsValues []string
	var fitValues []string

	lo, hi := math.Inf(1), math.Inf(-1)
	for i, p := range probs {
		q := best.Params.Quantile(p)
		if math.IsNaN(q) || math.IsInf(q, 0) {
			return ""
		}
		labels = append(labels, fmt.Sprintf("\"P%s\"", formatProb(p)))
		obsValues = append(obsValues, formatValue(observed[i]))
		fitValues = append(fitValues, formatValue(q))
		lo = math.Min(lo, math.Min(q, observed[i]))
		hi = math.Max(hi, math.Max(q, observed[i]))
	}

	// Breathing room around the plotted range; the axis starts at 0 unless
	// the data goes negative.
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	yMin := math.Min(0, lo-pad)

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Observed vs %s Quantiles\"\n", best.Family))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Value\" %s --> %s\n", formatValue(yMin), formatValue(hi+pad)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(obsValues, ", ")))
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(fitValues, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateSimulationChart creates a Mermaid bar chart of the simulated percentiles.
func GenerateSimulationChart(res simulation.Result) string {
	if res.Trials == 0 {
		return ""
	}

	labels := []string{
		"\"10% (Aggressive)\"",
		"\"50% (Coin Toss)\"",
		"\"85% (Likely)\"",
		"\"95% (Safe)\"",
	}

	values := []string{
		formatValue(res.P10),
		formatValue(res.P50),
		formatValue(res.P85),
		formatValue(res.P95),
	}

	yMin := math.Min(0, res.P10)
	yMax := res.P95 + math.Max((res.P95-yMin)*0.1, 1e-9)

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Monte Carlo Simulation (%s, %d trials)\"\n", res.Family, res.Trials))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Value\" %s --> %s\n", formatValue(yMin), formatValue(yMax)))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

func formatProb(p float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.1f", p*100), "0"), ".")
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
