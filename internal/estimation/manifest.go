package estimation

import (
	"fmt"
	"os"
	"path/filepath"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/summary"

	"gopkg.in/yaml.v3"
)

// Manifest lists the artifact file of every estimator.
type Manifest struct {
	FeatureLayout int             `yaml:"feature_layout"`
	BaseDir       string          `yaml:"base_dir,omitempty"`
	Estimators    []ManifestEntry `yaml:"estimators"`
}

// ManifestEntry binds one estimator key to an artifact path.
type ManifestEntry struct {
	Scenario summary.Scenario    `yaml:"scenario"`
	Family   distribution.Family `yaml:"family"`
	Kind     Kind                `yaml:"kind"`
	Path     string              `yaml:"path"`
}

// Key returns the estimator key of the entry.
func (e ManifestEntry) Key() Key {
	return Key{Scenario: e.Scenario, Family: e.Family, Kind: e.Kind}
}

// DefaultArtifactName returns the conventional artifact file name of a key,
// e.g. "mu_s1_beta_model.yaml" or "s2_exp_model.yaml".
func DefaultArtifactName(k Key) string {
	if k.Family == distribution.Exponential {
		return fmt.Sprintf("%s_%s_model.yaml", k.Scenario, k.Family.Slug())
	}
	return fmt.Sprintf("%s_%s_%s_model.yaml", k.Kind, k.Scenario, k.Family.Slug())
}

// DefaultManifest covers the whole catalog with conventional artifact names
// under baseDir.
func DefaultManifest(baseDir string) Manifest {
	m := Manifest{FeatureLayout: FeatureLayoutVersion, BaseDir: baseDir}
	for _, k := range Catalog() {
		m.Estimators = append(m.Estimators, ManifestEntry{
			Scenario: k.Scenario,
			Family:   k.Family,
			Kind:     k.Kind,
			Path:     DefaultArtifactName(k),
		})
	}
	return m
}

// ReadManifest decodes a YAML manifest. A relative base_dir is resolved
// against the manifest's directory.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if m.BaseDir == "" {
		m.BaseDir = dir
	} else if !filepath.IsAbs(m.BaseDir) {
		m.BaseDir = filepath.Join(dir, m.BaseDir)
	}
	return m, nil
}

// Resolve returns the artifact path of an entry.
func (m Manifest) Resolve(e ManifestEntry) string {
	if filepath.IsAbs(e.Path) || m.BaseDir == "" {
		return e.Path
	}
	return filepath.Join(m.BaseDir, e.Path)
}

// Validate checks the layout version and that every catalog key is present
// exactly once.
func (m Manifest) Validate() error {
	if m.FeatureLayout != FeatureLayoutVersion {
		return fmt.Errorf("manifest feature layout %d does not match engine layout %d", m.FeatureLayout, FeatureLayoutVersion)
	}

	known := make(map[Key]bool)
	for _, k := range Catalog() {
		known[k] = true
	}

	seen := make(map[Key]bool, len(m.Estimators))
	for _, e := range m.Estimators {
		k := e.Key()
		if !known[k] {
			return fmt.Errorf("manifest entry %s is not a known estimator", k)
		}
		if seen[k] {
			return fmt.Errorf("duplicate manifest entry for %s", k)
		}
		seen[k] = true
	}

	for _, k := range Catalog() {
		if !seen[k] {
			return fmt.Errorf("manifest has no artifact for %s", k)
		}
	}
	return nil
}
