package commands

import (
	"encoding/json"
	"fmt"

	"distfit-mcp/internal/fit"
	"distfit-mcp/internal/summary"

	"github.com/spf13/cobra"
)

// observationFlags holds the summary statistics given on the command line.
type observationFlags struct {
	scenario string
	n        int
	min      float64
	q1       float64
	median   float64
	q3       float64
	max      float64
}

func (f *observationFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.scenario, "scenario", "s", "", "scenario: s1 (min, median, max), s2 (q1, median, q3) or s3 (all five)")
	cmd.Flags().IntVar(&f.n, "n", 0, "sample size (at least 10)")
	cmd.Flags().Float64Var(&f.min, "min", 0, "sample minimum (s1, s3)")
	cmd.Flags().Float64Var(&f.q1, "q1", 0, "first quartile (s2, s3)")
	cmd.Flags().Float64Var(&f.median, "median", 0, "sample median")
	cmd.Flags().Float64Var(&f.q3, "q3", 0, "third quartile (s2, s3)")
	cmd.Flags().Float64Var(&f.max, "max", 0, "sample maximum (s1, s3)")
	_ = cmd.MarkFlagRequired("scenario")
	_ = cmd.MarkFlagRequired("n")
	_ = cmd.MarkFlagRequired("median")
}

// observation converts and validates the flags. changed reports whether a
// flag was given, typically cmd.Flags().Changed.
func (f *observationFlags) observation(changed func(name string) bool) (summary.Observation, error) {
	scenario, err := summary.ParseScenario(f.scenario)
	if err != nil {
		return summary.Observation{}, fmt.Errorf("%w: %v", summary.ErrInvalidObservation, err)
	}
	if err := summary.CheckSupplied(scenario, changed); err != nil {
		return summary.Observation{}, err
	}
	obs := summary.Observation{
		Scenario: scenario,
		N:        f.n,
		A:        f.min,
		Q1:       f.q1,
		M:        f.median,
		Q3:       f.q3,
		B:        f.max,
	}
	if err := summary.Validate(obs); err != nil {
		return summary.Observation{}, err
	}
	return obs, nil
}

var (
	fitFlags observationFlags
	fitJSON  bool
)

var fitCmd = &cobra.Command{
	Use:     "fit",
	Short:   "Select the best-fitting distribution for one observation",
	Example: `  distfit fit --scenario s3 --n 120 --min 1.2 --q1 4.5 --median 7.1 --q3 11.8 --max 38
  distfit fit -s s1 --n 30 --min 0.2 --median 0.5 --max 0.8 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		obs, err := fitFlags.observation(cmd.Flags().Changed)
		if err != nil {
			return err
		}

		engine, _, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		v, err := engine.SelectBestDistribution(cmd.Context(), obs)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if fitJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
		fmt.Fprintf(out, "Scenario: %s, n = %d\n\n", obs.Scenario.Label(), obs.N)
		fmt.Fprint(out, fit.Report(v))
		return nil
	},
}

func init() {
	fitFlags.register(fitCmd)
	fitCmd.Flags().BoolVar(&fitJSON, "json", false, "print the verdict as JSON")
	rootCmd.AddCommand(fitCmd)
}
