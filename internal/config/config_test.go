package config

import (
	"os"
	"path/filepath"
	"testing"

	"distfit-mcp/internal/fit"

	"github.com/joho/godotenv"
)

func TestGodotenvQuoting(t *testing.T) {
	content := `MODEL_MANIFEST='models/manifest "v1".yaml'`
	path := filepath.Join(t.TempDir(), ".env.test")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		t.Fatalf("Error reading env: %v", err)
	}

	expected := `models/manifest "v1".yaml`
	if env["MODEL_MANIFEST"] != expected {
		t.Errorf("Expected %s, got %s", expected, env["MODEL_MANIFEST"])
	}
}

func TestLoad(t *testing.T) {
	dataPath := t.TempDir()
	t.Setenv("DATA_PATH", dataPath)
	t.Setenv("LOGS_FOLDER", "")
	t.Setenv("MODELS_DIR", "")
	os.Unsetenv("MODELS_DIR")
	t.Setenv("ENABLE_MERMAID_CHARTS", "true")
	t.Setenv("SIMULATION_TRIALS", "2500")
	t.Setenv("FIT_TIE_BREAK_MARGIN", "0.01")
	t.Setenv("FIT_ASYMMETRY_LIMIT", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataPath != dataPath {
		t.Errorf("DataPath = %q, want %q", cfg.DataPath, dataPath)
	}
	if cfg.ModelsDir != filepath.Join(dataPath, "models") {
		t.Errorf("ModelsDir = %q", cfg.ModelsDir)
	}
	if _, err := os.Stat(cfg.LogDir); err != nil {
		t.Errorf("LogDir %q not created: %v", cfg.LogDir, err)
	}
	if !cfg.EnableMermaidCharts {
		t.Error("EnableMermaidCharts should be true")
	}
	if cfg.SimulationTrials != 2500 {
		t.Errorf("SimulationTrials = %d, want 2500", cfg.SimulationTrials)
	}

	defaults := fit.DefaultThresholds()
	if cfg.Thresholds.TieBreakMargin != 0.01 {
		t.Errorf("TieBreakMargin = %v, want 0.01", cfg.Thresholds.TieBreakMargin)
	}
	if cfg.Thresholds.AsymmetryLimit != defaults.AsymmetryLimit {
		t.Errorf("invalid override should keep default, got %v", cfg.Thresholds.AsymmetryLimit)
	}
	if cfg.Thresholds.NormalExclusionRatio != defaults.NormalExclusionRatio {
		t.Errorf("NormalExclusionRatio = %v", cfg.Thresholds.NormalExclusionRatio)
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"Valid", "42", 42},
		{"Zero", "0", 7},
		{"Negative", "-3", 7},
		{"Garbage", "lots", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DISTFIT_TEST_INT", tt.value)
			if got := getEnvInt("DISTFIT_TEST_INT", 7); got != tt.want {
				t.Errorf("getEnvInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
