package fit

import (
	"fmt"
	"sort"
	"strings"
)

// Report renders a verdict as plain text.
func Report(v Verdict) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Best Fit Distribution: %s\n", v.BestFit.Family)
	sb.WriteString("-------------------------------------------\n")
	fmt.Fprintf(&sb, "Estimated Sample Mean : %.4f\n", v.BestFit.Mean)
	fmt.Fprintf(&sb, "Estimated Sample SD   : %.4f\n\n", v.BestFit.Std)
	sb.WriteString("Best Fit Distribution Parameters:\n")

	params := v.BestFit.Params.Map()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-7s: %.4f\n", name, params[name])
	}

	if len(v.Warnings) > 0 {
		sb.WriteString("\n")
		for _, w := range v.Warnings {
			fmt.Fprintf(&sb, "! %s\n", w)
		}
	}
	return sb.String()
}
