package psychro

import (
	"math"

	"psychrometer/pkg/serrors"
)

// Error kinds returned by the engine. Their string form is the stable code
// exposed to API clients.
var (
	// ErrInvalidType is returned when an input is not a number.
	ErrInvalidType = serrors.NewKind("INVALID_TYPE")
	// ErrNonFinite is returned when an input is NaN or infinite.
	ErrNonFinite = serrors.NewKind("NON_FINITE")
	// ErrOutOfRange is returned when a numeric input falls outside its domain.
	ErrOutOfRange = serrors.NewKind("OUT_OF_RANGE")
	// ErrSingularity is returned when a formula is undefined at the requested point.
	ErrSingularity = serrors.NewKind("SINGULARITY")
	// ErrConvergence is returned when the wet-bulb solver exhausts its iterations.
	ErrConvergence = serrors.NewKind("CONVERGENCE")
	// ErrCalculation is returned for any other arithmetic failure.
	ErrCalculation = serrors.NewKind("CALCULATION")
	// ErrInvalidConfig is returned by New for an inconsistent Config.
	ErrInvalidConfig = serrors.NewKind("INVALID_CONFIG")
)

// IsInputFault reports whether err was caused by the caller's input rather
// than by the engine.
func IsInputFault(err error) bool {
	return serrors.IsOneOf(err, ErrInvalidType, ErrNonFinite, ErrOutOfRange)
}

// Code returns the stable error code of an engine error, or an empty string
// when err carries no engine kind.
func Code(err error) string {
	k := serrors.KindOf(err)
	for _, known := range []serrors.Kind{
		ErrInvalidType, ErrNonFinite, ErrOutOfRange, ErrSingularity, ErrConvergence, ErrCalculation,
	} {
		if k == known {
			return known.Error()
		}
	}

	return ""
}

// finite returns an ErrCalculation naming quantity when v is NaN or infinite.
func finite(quantity string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return serrors.With(ErrCalculation, "%s is not finite (%v)", quantity, v)
	}

	return nil
}
