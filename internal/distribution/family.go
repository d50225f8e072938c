package distribution

import (
	"fmt"
	"strings"
)

// Family is one of the five supported distribution families.
type Family int

const (
	Normal Family = iota
	LogNormal
	Weibull
	Exponential
	Beta
)

// Families lists every supported family in preference order.
var Families = []Family{Normal, LogNormal, Weibull, Exponential, Beta}

// PreferenceOrder is the default tie-break order of the selection cascade.
var PreferenceOrder = Families

// String returns the display name of the family.
func (f Family) String() string {
	switch f {
	case Normal:
		return "Normal"
	case LogNormal:
		return "Log-Normal"
	case Weibull:
		return "Weibull"
	case Exponential:
		return "Exponential"
	case Beta:
		return "Beta"
	}
	return fmt.Sprintf("Family(%d)", int(f))
}

// Slug returns the lowercase identifier used for estimator keys and metrics.
func (f Family) Slug() string {
	switch f {
	case Normal:
		return "normal"
	case LogNormal:
		return "lognormal"
	case Weibull:
		return "weibull"
	case Exponential:
		return "exp"
	case Beta:
		return "beta"
	}
	return strings.ToLower(f.String())
}

// ParseFamily accepts either the display name or the slug.
func ParseFamily(raw string) (Family, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, f := range Families {
		if s == f.Slug() || s == strings.ToLower(f.String()) {
			return f, nil
		}
	}
	switch s {
	case "log-normal", "lognorm":
		return LogNormal, nil
	case "exponential":
		return Exponential, nil
	}
	return 0, fmt.Errorf("unknown distribution family %q", raw)
}

// MarshalText encodes the family by display name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a family from its display name or slug.
func (f *Family) UnmarshalText(text []byte) error {
	parsed, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
