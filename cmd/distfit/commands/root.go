package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"distfit-mcp/internal/config"
	"distfit-mcp/internal/estimation"
	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/logging"
	"distfit-mcp/internal/mcp"
	"distfit-mcp/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "distfit",
	Short: "distfit selects the best-fitting distribution from summary statistics",
	Long: `An MCP Server and CLI that picks the best of Normal, Log-Normal, Weibull, Exponential and Beta
for a sample known only through its minimum, quartiles, median, maximum and size,
using pre-trained moment estimators.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("distfit starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		engine, registry, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(cfg, engine, registry.Keys(), Version)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// bootstrap loads every estimator and builds the selection engine. When
// METRICS_ADDR is set the engine reports to a Prometheus endpoint served
// until ctx is done.
func bootstrap(ctx context.Context) (*fit.Engine, *estimation.Registry, error) {
	manifest, err := loadManifest()
	if err != nil {
		return nil, nil, err
	}

	registry, err := estimation.Load(ctx, manifest, estimation.LinearLoader{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load estimators from %s: %w", manifest.BaseDir, err)
	}

	opts := []fit.Option{fit.WithThresholds(cfg.Thresholds)}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, fit.WithRecorder(metrics.New(reg)))
		go func() {
			if err := metrics.Serve(ctx, cfg.MetricsAddr, reg); err != nil {
				log.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("Metrics endpoint stopped")
			}
		}()
	}

	return fit.NewEngine(registry, opts...), registry, nil
}

func loadManifest() (estimation.Manifest, error) {
	if cfg.ManifestPath != "" {
		m, err := estimation.ReadManifest(cfg.ManifestPath)
		if err != nil {
			return estimation.Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
		}
		return m, nil
	}
	return estimation.DefaultManifest(cfg.ModelsDir), nil
}
