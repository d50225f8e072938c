package estimation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/summary"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Loader turns an artifact path into an Estimator.
type Loader interface {
	Load(ctx context.Context, key Key, path string) (Estimator, error)
}

// Registry is the read-only set of loaded estimators. It is constructed
// once, fully populated, and safe for concurrent use.
type Registry struct {
	estimators map[Key]Estimator
}

// NewRegistry builds a registry from already-loaded estimators. Every
// catalog key must be present.
func NewRegistry(estimators map[Key]Estimator) (*Registry, error) {
	m := make(map[Key]Estimator, len(estimators))
	for k, e := range estimators {
		m[k] = e
	}
	for _, k := range Catalog() {
		if m[k] == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEstimator, k)
		}
	}
	return &Registry{estimators: m}, nil
}

// Load validates the manifest and loads every estimator concurrently. Any
// failure aborts the whole load; a partially loaded registry is never
// returned.
func Load(ctx context.Context, manifest Manifest, loader Loader) (*Registry, error) {
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	var mu sync.Mutex
	loaded := make(map[Key]Estimator, len(manifest.Estimators))

	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range manifest.Estimators {
		key := entry.Key()
		path := manifest.Resolve(entry)
		g.Go(func() error {
			est, err := loader.Load(gctx, key, path)
			if err != nil {
				log.Error().Err(err).Str("estimator", key.Name()).Str("path", path).Msg("Failed to load estimator")
				return fmt.Errorf("failed to load estimator %s from %s: %w", key, path, err)
			}
			mu.Lock()
			loaded[key] = est
			mu.Unlock()
			log.Debug().Str("estimator", key.Name()).Str("path", path).Msg("Loaded estimator")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info().
		Int("count", len(loaded)).
		Dur("elapsed", time.Since(start)).
		Msg("All estimators loaded")

	return NewRegistry(loaded)
}

// Estimate implements Service.
func (r *Registry) Estimate(ctx context.Context, scenario summary.Scenario, family distribution.Family, kind Kind, features []float64) (float64, error) {
	key := Key{Scenario: scenario, Family: family, Kind: kind}
	est, ok := r.estimators[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownEstimator, key)
	}
	return est.Predict(ctx, features)
}

// Keys returns the registered keys sorted by name.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.estimators))
	for k := range r.estimators {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Name() < keys[j].Name() })
	return keys
}
