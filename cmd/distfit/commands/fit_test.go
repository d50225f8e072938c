package commands

import (
	"errors"
	"testing"

	"distfit-mcp/internal/summary"

	"github.com/spf13/cobra"
)

func TestObservationFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   observationFlags
		unset   string
		want    summary.Scenario
		wantErr bool
	}{
		{"S1Upper", observationFlags{scenario: "S1", n: 30, min: 1, median: 2, max: 5}, "", summary.S1, false},
		{"S3Numeric", observationFlags{scenario: "3", n: 30, min: 1, q1: 2, median: 3, q3: 4, max: 9}, "", summary.S3, false},
		{"ZeroMinimum", observationFlags{scenario: "s1", n: 30, min: 0, median: 2, max: 5}, "", summary.S1, false},
		{"S2IgnoresMin", observationFlags{scenario: "s2", n: 30, q1: 1, median: 2, q3: 3}, "min", summary.S2, false},
		{"UnknownScenario", observationFlags{scenario: "s4", n: 30, median: 1}, "", "", true},
		{"SmallN", observationFlags{scenario: "s2", n: 9, q1: 1, median: 2, q3: 3}, "", "", true},
		{"Unordered", observationFlags{scenario: "s1", n: 30, min: 5, median: 2, max: 9}, "", "", true},
		{"MissingQ1", observationFlags{scenario: "s2", n: 50, median: 5, q3: 9}, "q1", "", true},
		{"MissingMax", observationFlags{scenario: "s3", n: 50, min: 1, q1: 3, median: 5, q3: 9}, "max", "", true},
		{"Negative", observationFlags{scenario: "s1", n: 30, min: -1, median: 2, max: 5}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs, err := tt.flags.observation(func(name string) bool { return name != tt.unset })
			if tt.wantErr {
				if !errors.Is(err, summary.ErrInvalidObservation) {
					t.Errorf("observation() error = %v, want ErrInvalidObservation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("observation() error = %v", err)
			}
			if obs.Scenario != tt.want {
				t.Errorf("scenario = %q, want %q", obs.Scenario, tt.want)
			}
		})
	}
}

func TestObservationFlags_ZeroIsNotMissing(t *testing.T) {
	var f observationFlags
	cmd := &cobra.Command{Use: "fit"}
	f.register(cmd)

	if err := cmd.ParseFlags([]string{"--scenario", "s2", "--n", "50", "--median", "5", "--q3", "9"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.observation(cmd.Flags().Changed); !errors.Is(err, summary.ErrInvalidObservation) {
		t.Fatalf("missing --q1: error = %v, want ErrInvalidObservation", err)
	}

	if err := cmd.ParseFlags([]string{"--q1", "0"}); err != nil {
		t.Fatal(err)
	}
	obs, err := f.observation(cmd.Flags().Changed)
	if err != nil {
		t.Fatalf("explicit --q1 0: error = %v", err)
	}
	if obs.Q1 != 0 || obs.Q3 != 9 {
		t.Errorf("observation() = %+v", obs)
	}
}
