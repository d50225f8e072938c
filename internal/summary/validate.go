package summary

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidObservation is returned when an observation violates the input
// preconditions of the fitting pipeline.
var ErrInvalidObservation = errors.New("invalid observation")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterStructValidation(orderingValidation, Observation{})
	})
	return validate
}

func orderingValidation(sl validator.StructLevel) {
	o := sl.Current().Interface().(Observation)
	if !o.Finite() {
		sl.ReportError(o.M, "median", "M", "finite", "")
		return
	}

	var ordered bool
	switch o.Scenario {
	case S1:
		ordered = o.A <= o.M && o.M <= o.B
	case S2:
		ordered = o.Q1 <= o.M && o.M <= o.Q3
	case S3:
		ordered = o.A <= o.Q1 && o.Q1 <= o.M && o.M <= o.Q3 && o.Q3 <= o.B
	default:
		return
	}
	if !ordered {
		sl.ReportError(o.M, "median", "M", "ordered", "")
		return
	}
	if lo, _ := o.Bounds(); lo < 0 {
		sl.ReportError(lo, "min", "A", "nonnegative", "")
	}
}

// CheckSupplied reports the scenario statistics for which supplied returns
// false. Callers whose inputs default to zero use it to tell a missing
// statistic from a genuine 0.
func CheckSupplied(s Scenario, supplied func(name string) bool) error {
	var missing []string
	for _, name := range s.Statistics() {
		if !supplied(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: scenario %s requires %s", ErrInvalidObservation, s, strings.Join(missing, ", "))
	}
	return nil
}

// Validate checks the caller preconditions: a known scenario, n >= 10, finite
// statistics, min <= q1 <= median <= q3 <= max for the scenario's subset and
// a non-negative lowest statistic.
func Validate(o Observation) error {
	err := validatorInstance().Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidObservation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "gte":
			msgs = append(msgs, "sample size n must be at least 10")
		case "oneof", "required":
			msgs = append(msgs, fmt.Sprintf("scenario %q is not one of s1, s2, s3", o.Scenario))
		case "finite":
			msgs = append(msgs, "all statistics of the scenario must be finite numbers")
		case "ordered":
			msgs = append(msgs, "values are not in logical order (min <= q1 <= median <= q3 <= max)")
		case "nonnegative":
			msgs = append(msgs, "only non-negative data is supported (lowest statistic is below 0)")
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidObservation, strings.Join(msgs, "; "))
}
