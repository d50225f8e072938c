package estimation

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// LinearModel is a linear regression artifact:
// y = intercept + Σ coefficients[i]·x[i], exponentiated when LogTarget is set.
type LinearModel struct {
	Arity        int       `yaml:"arity"`
	Intercept    float64   `yaml:"intercept"`
	Coefficients []float64 `yaml:"coefficients"`
	LogTarget    bool      `yaml:"log_target,omitempty"`
}

// Predict evaluates the model. A vector of the wrong width is an error.
func (m *LinearModel) Predict(_ context.Context, features []float64) (float64, error) {
	if len(features) != m.Arity {
		return 0, fmt.Errorf("%w: got %d features, model expects %d", ErrArity, len(features), m.Arity)
	}

	y := m.Intercept
	for i, x := range features {
		y += m.Coefficients[i] * x
	}
	if m.LogTarget {
		y = math.Exp(y)
	}
	return y, nil
}

func (m *LinearModel) validate() error {
	if m.Arity <= 0 {
		return fmt.Errorf("arity must be positive, got %d", m.Arity)
	}
	if len(m.Coefficients) != m.Arity {
		return fmt.Errorf("%w: %d coefficients for arity %d", ErrArity, len(m.Coefficients), m.Arity)
	}
	return nil
}

// LinearLoader reads LinearModel artifacts from YAML files and checks their
// arity against the feature layout of the key they are bound to.
type LinearLoader struct{}

// Load implements Loader.
func (LinearLoader) Load(_ context.Context, key Key, path string) (Estimator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m LinearModel
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if want := Arity(key.Scenario, key.Family); m.Arity != want {
		return nil, fmt.Errorf("%w: %s declares %d features, layout v%d expects %d", ErrArity, path, m.Arity, FeatureLayoutVersion, want)
	}
	return &m, nil
}
