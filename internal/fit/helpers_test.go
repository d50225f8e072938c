package fit

import (
	"context"
	"sync"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/summary"
)

// fakeService records every call and answers through fn.
type fakeService struct {
	mu       sync.Mutex
	calls    []estimation.Key
	features map[estimation.Key][]float64
	fn       func(key estimation.Key, features []float64) (float64, error)
}

func newFakeService(fn func(key estimation.Key, features []float64) (float64, error)) *fakeService {
	if fn == nil {
		fn = plausibleEstimate
	}
	return &fakeService{fn: fn, features: make(map[estimation.Key][]float64)}
}

func (s *fakeService) Estimate(_ context.Context, scenario summary.Scenario, family distribution.Family, kind estimation.Kind, features []float64) (float64, error) {
	key := estimation.Key{Scenario: scenario, Family: family, Kind: kind}
	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.features[key] = append([]float64(nil), features...)
	s.mu.Unlock()
	return s.fn(key, features)
}

func (s *fakeService) families() map[distribution.Family]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[distribution.Family]bool)
	for _, k := range s.calls {
		out[k.Family] = true
	}
	return out
}

// plausibleEstimate mimics a sensible regressor using moment heuristics on
// the (scaled) feature vector.
func plausibleEstimate(key estimation.Key, f []float64) (float64, error) {
	if key.Family == distribution.Normal {
		switch key.Scenario {
		case summary.S1:
			return (f[2] - f[1]) / 4, nil
		case summary.S2:
			return (f[2] - f[1]) / 1.349, nil
		default:
			return (f[3] - f[2]) / 1.349, nil
		}
	}

	if key.Kind == estimation.Mean {
		var sum float64
		for _, v := range f[1:] {
			sum += v
		}
		return sum / float64(len(f)-1), nil
	}

	switch key.Scenario {
	case summary.S1:
		return (f[3] - f[1]) / 4, nil
	case summary.S2:
		return (f[3] - f[1]) / 1.349, nil
	default:
		return (f[4] - f[2]) / 1.349, nil
	}
}
