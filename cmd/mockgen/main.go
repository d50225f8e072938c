package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"distfit-mcp/cmd/mockgen/engine"
	"distfit-mcp/internal/distribution"
	"distfit-mcp/internal/summary"
)

func main() {
	mode := flag.String("mode", "observation", "What to generate: observation, models")
	scenario := flag.String("scenario", "s3", "Scenario of the generated observation: s1, s2, s3")
	family := flag.String("distribution", "weibull", "Distribution to sample: normal, lognormal, weibull, exp, beta")
	mean := flag.Float64("mean", 10, "Mean of the sampled distribution")
	std := flag.Float64("std", 4, "Standard deviation of the sampled distribution")
	count := flag.Int("count", 200, "Number of draws")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	outDir := flag.String("out", "./models", "Output directory for baseline models")
	flag.Parse()

	switch *mode {
	case "models":
		fmt.Fprintf(os.Stderr, "Writing baseline estimator artifacts to %s...\n", *outDir)
		if err := engine.SaveModels(*outDir, engine.BaselineModels()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save models: %v\n", err)
			os.Exit(1)
		}

	case "observation":
		s, err := summary.ParseScenario(*scenario)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		f, err := distribution.ParseFamily(*family)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		obs, params, err := engine.Generate(engine.GeneratorConfig{
			Scenario: s, Family: f, Mean: *mean, Std: *std, Count: *count, Seed: *seed,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate observation: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Sampled %d draws from %s %v\n", *count, f, params.Map())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(obs); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode observation: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	fmt.Fprintln(os.Stderr, "Done.")
}
