package simulation

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"distfit-mcp/internal/distribution"

	"github.com/aclements/go-moremath/stats"
)

// ErrNoTrials is returned when fewer than one trial is requested.
var ErrNoTrials = errors.New("at least one trial is required")

// Engine performs the Monte-Carlo simulation. An Engine owns its random
// source and must not be shared between goroutines.
type Engine struct {
	rng *rand.Rand
}

// Result holds the percentiles and moments of the simulated draws.
type Result struct {
	Family string  `json:"family"`
	Trials int     `json:"trials"`
	P10    float64 `json:"p10"`
	P50    float64 `json:"p50"`
	P85    float64 `json:"p85"`
	P95    float64 `json:"p95"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func NewEngine() *Engine {
	return NewSeededEngine(time.Now().UnixNano())
}

// NewSeededEngine returns an engine whose draws are reproducible.
func NewSeededEngine(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Run draws trials values from p by inverse-transform sampling and
// summarizes them.
func (e *Engine) Run(p distribution.Params, trials int) (Result, error) {
	if trials < 1 {
		return Result{}, ErrNoTrials
	}
	if p == nil || !p.Valid() {
		return Result{}, fmt.Errorf("cannot simulate: %w", distribution.ErrInvalidParameters)
	}

	draws, err := e.Draw(p, trials)
	if err != nil {
		return Result{}, err
	}

	sample := stats.Sample{Xs: draws}
	sample.Sort()
	lo, hi := sample.Bounds()

	return Result{
		Family: p.Family().String(),
		Trials: trials,
		P10:    sample.Quantile(0.10),
		P50:    sample.Quantile(0.50),
		P85:    sample.Quantile(0.85),
		P95:    sample.Quantile(0.95),
		Mean:   sample.Mean(),
		Std:    sample.StdDev(),
		Min:    lo,
		Max:    hi,
	}, nil
}

// Draw returns n independent draws from p.
func (e *Engine) Draw(p distribution.Params, n int) ([]float64, error) {
	draws := make([]float64, n)
	for i := range draws {
		u := e.rng.Float64()
		for u == 0 {
			u = e.rng.Float64()
		}
		x := p.Quantile(u)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("non-finite draw at u=%v: %w", u, distribution.ErrInvalidParameters)
		}
		draws[i] = x
	}
	return draws, nil
}
