package config

import (
	"os"
	"path/filepath"
	"strconv"

	"distfit-mcp/internal/fit"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath            string
	LogDir              string
	ModelsDir           string
	ManifestPath        string
	EnableMermaidCharts bool
	MetricsAddr         string
	SimulationTrials    int
	Thresholds          fit.Thresholds
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory (useful for development/go run)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve Data Paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := filepath.Join(dataPath, "logs")
	if dir := os.Getenv("LOGS_FOLDER"); dir != "" {
		logDir = dir
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	modelsDir := getEnv("MODELS_DIR", filepath.Join(dataPath, "models"))

	cfg := &AppConfig{
		DataPath:            dataPath,
		LogDir:              logDir,
		ModelsDir:           modelsDir,
		ManifestPath:        getEnv("MODEL_MANIFEST", ""),
		EnableMermaidCharts: getEnvBool("ENABLE_MERMAID_CHARTS", false),
		MetricsAddr:         getEnv("METRICS_ADDR", ""),
		SimulationTrials:    getEnvInt("SIMULATION_TRIALS", 10000),
		Thresholds:          loadThresholds(),
	}

	return cfg, nil
}

// loadThresholds applies the FIT_* overrides on top of the defaults.
func loadThresholds() fit.Thresholds {
	t := fit.DefaultThresholds()
	t.AsymmetryLimit = getEnvFloat("FIT_ASYMMETRY_LIMIT", t.AsymmetryLimit)
	t.TieBreakMargin = getEnvFloat("FIT_TIE_BREAK_MARGIN", t.TieBreakMargin)
	t.NormalExclusionRatio = getEnvFloat("FIT_NORMAL_EXCLUSION_RATIO", t.NormalExclusionRatio)
	return t
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid integer setting")
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring invalid numeric setting")
	}
	return fallback
}
