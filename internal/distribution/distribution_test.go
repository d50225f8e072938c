package distribution

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestQuantiles_ClosedForms(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		p      float64
		want   float64
	}{
		{"NormalMedian", NormalParams{Mu: 10, Sigma: 2}, 0.5, 10},
		{"NormalUpper", NormalParams{Mu: 0, Sigma: 1}, 0.975, 1.959964},
		{"ExponentialMedian", ExponentialParams{Theta: 3}, 0.5, 3 * math.Ln2},
		{"WeibullMedian", WeibullParams{K: 2, Lambda: 5}, 0.5, 5 * math.Sqrt(math.Ln2)},
		{"LogNormalMedian", LogNormalParams{MuLn: 1, SigmaLn: 0.5}, 0.5, math.E},
		{"BetaSymmetricMedian", BetaParams{Alpha: 2, Beta: 2}, 0.5, 0.5},
		{"BetaUniform", BetaParams{Alpha: 1, Beta: 1}, 0.3, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Quantile(tt.p)
			if !almostEqual(got, tt.want, 1e-5) {
				t.Errorf("Quantile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestQuantile_InvalidParamsYieldNaN(t *testing.T) {
	if q := (BetaParams{Alpha: -1, Beta: 2}).Quantile(0.5); !math.IsNaN(q) {
		t.Errorf("invalid Beta quantile = %v, want NaN", q)
	}
	if q := (ExponentialParams{Theta: 0}).Quantile(0.5); !math.IsNaN(q) {
		t.Errorf("invalid Exponential quantile = %v, want NaN", q)
	}
}

func TestSolveWeibullShape_Converges(t *testing.T) {
	tests := []struct {
		name      string
		mean, std float64
	}{
		{"Exponential", 10, 10},
		{"Rayleigh-like", 10, 5.23},
		{"Narrow", 100, 8},
		{"Wide", 5, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := SolveWeibullShape(tt.mean, tt.std)
			if err != nil {
				t.Fatalf("SolveWeibullShape() error = %v", err)
			}
			if shape.Approximate {
				t.Fatalf("expected a bracketed root for CV=%v", tt.std/tt.mean)
			}
			cv := tt.std / tt.mean
			if r := weibullCVResidual(shape.K, cv*cv); math.Abs(r) >= WeibullTolerance {
				t.Errorf("residual at k=%v is %v, want < %v", shape.K, r, WeibullTolerance)
			}
			if shape.Iterations > WeibullMaxIterations {
				t.Errorf("used %d iterations", shape.Iterations)
			}
		})
	}

	shape, _ := SolveWeibullShape(10, 10)
	if !almostEqual(shape.K, 1, 1e-4) {
		t.Errorf("CV=1 should give k=1, got %v", shape.K)
	}
}

func TestSolveWeibullShape_FallbackWhenNotBracketed(t *testing.T) {
	// CV = 0.01 is below the CV reachable at k=20.
	shape, err := SolveWeibullShape(100, 1)
	if err != nil {
		t.Fatalf("SolveWeibullShape() error = %v", err)
	}
	if !shape.Approximate {
		t.Fatal("expected the closed-form fallback")
	}
	want := math.Pow(0.01, -1.086)
	if shape.K != want {
		t.Errorf("fallback k = %v, want %v", shape.K, want)
	}

	again, _ := SolveWeibullShape(100, 1)
	if again != shape {
		t.Errorf("fallback is not deterministic: %v vs %v", again, shape)
	}
}

func TestSolveWeibullShape_Preconditions(t *testing.T) {
	for _, in := range [][2]float64{{0, 1}, {-1, 1}, {1, 0}, {math.NaN(), 1}} {
		if _, err := SolveWeibullShape(in[0], in[1]); !errors.Is(err, ErrNoSolution) {
			t.Errorf("SolveWeibullShape(%v, %v) error = %v, want ErrNoSolution", in[0], in[1], err)
		}
	}
}

func TestFromMoments(t *testing.T) {
	t.Run("Beta", func(t *testing.T) {
		m, err := FromMoments(Beta, 0.5, 0.1)
		if err != nil {
			t.Fatalf("FromMoments() error = %v", err)
		}
		p := m.Params.(BetaParams)
		// s = 0.25/0.01 - 1 = 24
		if !almostEqual(p.Alpha, 12, 1e-9) || !almostEqual(p.Beta, 12, 1e-9) {
			t.Errorf("Beta params = %+v, want alpha=beta=12", p)
		}
	})

	t.Run("BetaInvalid", func(t *testing.T) {
		if _, err := FromMoments(Beta, 0.5, 0.6); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
	})

	t.Run("LogNormal", func(t *testing.T) {
		m, err := FromMoments(LogNormal, 10, 5)
		if err != nil {
			t.Fatalf("FromMoments() error = %v", err)
		}
		p := m.Params.(LogNormalParams)
		sq := math.Log(1.25)
		if !almostEqual(p.SigmaLn, math.Sqrt(sq), 1e-12) || !almostEqual(p.MuLn, math.Log(10)-sq/2, 1e-12) {
			t.Errorf("LogNormal params = %+v", p)
		}
	})

	t.Run("LogNormalNonPositiveMean", func(t *testing.T) {
		if _, err := FromMoments(LogNormal, -1, 5); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
	})

	t.Run("WeibullRoundTripsMean", func(t *testing.T) {
		m, err := FromMoments(Weibull, 10, 4)
		if err != nil {
			t.Fatalf("FromMoments() error = %v", err)
		}
		p := m.Params.(WeibullParams)
		mean := p.Lambda * math.Gamma(1+1/p.K)
		if !almostEqual(mean, 10, 1e-9) {
			t.Errorf("Weibull mean = %v, want 10", mean)
		}
		if m.Approximate {
			t.Error("unexpected approximate mapping")
		}
	})

	t.Run("WeibullNonPositiveStd", func(t *testing.T) {
		if _, err := FromMoments(Weibull, 10, -1); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
	})

	t.Run("Exponential", func(t *testing.T) {
		m, err := FromMoments(Exponential, 7, 7)
		if err != nil {
			t.Fatalf("FromMoments() error = %v", err)
		}
		if p := m.Params.(ExponentialParams); p.Theta != 7 {
			t.Errorf("theta = %v, want 7", p.Theta)
		}
		if _, err := FromMoments(Exponential, 0, 0); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
	})

	t.Run("NormalNonFinite", func(t *testing.T) {
		if _, err := FromMoments(Normal, 1, math.NaN()); !errors.Is(err, ErrInvalidParameters) {
			t.Errorf("error = %v, want ErrInvalidParameters", err)
		}
	})
}

func TestParseFamily(t *testing.T) {
	for _, f := range Families {
		for _, raw := range []string{f.String(), f.Slug()} {
			got, err := ParseFamily(raw)
			if err != nil || got != f {
				t.Errorf("ParseFamily(%q) = %v, %v; want %v", raw, got, err, f)
			}
		}
	}
	if _, err := ParseFamily("gamma"); err == nil {
		t.Error("expected an error for an unsupported family")
	}
}
