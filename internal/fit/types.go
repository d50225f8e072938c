package fit

import (
	"encoding/json"
	"math"

	"distfit-mcp/internal/distribution"
)

// Fit is one evaluated candidate distribution.
type Fit struct {
	Family distribution.Family
	Mean   float64
	Std    float64
	Params distribution.Params
	Loss   float64
	// Approximate marks a Weibull fit whose shape came from the closed-form
	// fallback rather than the bisection solver.
	Approximate bool
}

type fitJSON struct {
	Family      distribution.Family `json:"family"`
	Mean        float64             `json:"mean"`
	Std         float64             `json:"std"`
	Params      map[string]float64  `json:"params"`
	Loss        *float64            `json:"loss"`
	Approximate bool                `json:"approximate,omitempty"`
}

// MarshalJSON flattens the parameters into a name → value map. A non-finite
// loss is encoded as null.
func (f Fit) MarshalJSON() ([]byte, error) {
	out := fitJSON{
		Family:      f.Family,
		Mean:        f.Mean,
		Std:         f.Std,
		Approximate: f.Approximate,
	}
	if f.Params != nil {
		out.Params = f.Params.Map()
	}
	if !math.IsInf(f.Loss, 0) && !math.IsNaN(f.Loss) {
		loss := f.Loss
		out.Loss = &loss
	}
	return json.Marshal(out)
}

// Shortcut names the cascade rule that decided a verdict.
type Shortcut string

const (
	ShortcutNone       Shortcut = ""
	ShortcutSymmetry   Shortcut = "symmetry"
	ShortcutBetaDomain Shortcut = "beta_domain"
	ShortcutMemoryless Shortcut = "memoryless"
)

// Verdict is the outcome of one selection.
type Verdict struct {
	BestFit  Fit      `json:"best_fit"`
	Warnings []string `json:"warnings"`
	Shortcut Shortcut `json:"shortcut,omitempty"`
	// Candidates holds every surviving candidate of the general comparison,
	// sorted by ascending loss. Empty when a shortcut decided.
	Candidates []Fit `json:"candidates,omitempty"`
}

// Warning texts attached to verdicts.
const (
	WarnSymmetry       = "Data is strictly symmetric; Normal distribution was directly selected."
	WarnBetaDomain     = "Data is in [0,1] range; Beta distribution was directly selected."
	WarnMemoryless     = "Data exhibits strong memoryless property; Exponential distribution was directly selected."
	WarnLowReliability = "Warning: The best-fit distribution still has a large error relative to the data range. The result may not be reliable."
	WarnWeibullApprox  = "Weibull shape could not be bracketed by the numeric solver; a closed-form approximation was used and the fit is lower-confidence."
)
