package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/fit"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Recorder exports selection outcomes as Prometheus metrics. It implements
// fit.Recorder.
type Recorder struct {
	// Latency of SelectBestDistribution, successful or not
	SelectionLatency prometheus.Histogram

	// Verdicts by selected family and deciding shortcut ("none" for the
	// general comparison)
	Verdicts *prometheus.CounterVec

	// Failed selections by error kind
	Failures *prometheus.CounterVec

	// Candidates removed by a heuristic or dropped for invalid parameters
	Dropped *prometheus.CounterVec

	// Warnings attached to verdicts
	Warnings prometheus.Counter
}

var _ fit.Recorder = (*Recorder)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		SelectionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "distfit_selection_latency_seconds",
			Help:    "Latency of best-distribution selection",
			Buckets: prometheus.DefBuckets,
		}),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "distfit_verdicts_total",
			Help: "Total number of verdicts by selected family and shortcut",
		}, []string{"family", "shortcut"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "distfit_failures_total",
			Help: "Total number of failed selections by error kind",
		}, []string{"kind"}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "distfit_candidates_dropped_total",
			Help: "Candidate families removed before or during comparison",
		}, []string{"family", "reason"}),
		Warnings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "distfit_warnings_total",
			Help: "Total number of warnings attached to verdicts",
		}),
	}

	reg.MustRegister(
		r.SelectionLatency,
		r.Verdicts,
		r.Failures,
		r.Dropped,
		r.Warnings,
	)
	return r
}

func (r *Recorder) RecordVerdict(v fit.Verdict, elapsed time.Duration) {
	r.SelectionLatency.Observe(elapsed.Seconds())
	shortcut := string(v.Shortcut)
	if shortcut == "" {
		shortcut = "none"
	}
	r.Verdicts.WithLabelValues(v.BestFit.Family.Slug(), shortcut).Inc()
	r.Warnings.Add(float64(len(v.Warnings)))
}

func (r *Recorder) RecordFailure(kind fit.ErrorKind, elapsed time.Duration) {
	r.SelectionLatency.Observe(elapsed.Seconds())
	r.Failures.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) RecordDropped(family distribution.Family, reason string) {
	r.Dropped.WithLabelValues(family.Slug(), reason).Inc()
}

// Serve exposes the gatherer on addr under /metrics until ctx is done.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
