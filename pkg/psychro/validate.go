package psychro

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"

	"psychrometer/pkg/serrors"
)

// ValidateTemperature checks that v is a finite number within
// [AbsoluteZero, MaxTemperature] and returns it as float64.
func ValidateTemperature(v any) (float64, error) {
	return validateTemperature(v, AbsoluteZero, MaxTemperature)
}

// ValidateHumidity checks that v is a finite number within [0, 100] and
// returns it truncated toward zero. The range is checked before truncation,
// so 100.5 is rejected while 99.9 becomes 99.
func ValidateHumidity(v any) (int, error) {
	return validateHumidity(v, MinHumidity, MaxHumidity)
}

func validateTemperature(v any, low, high float64) (float64, error) {
	t, err := toFloat("temperature", v)
	if err != nil {
		return 0, err
	}
	if t < low || t > high {
		return 0, serrors.With(ErrOutOfRange, "temperature must be between %g and %g %s, got %g",
			low, high, UnitTemperature, t)
	}

	return t, nil
}

func validateHumidity(v any, low, high int) (int, error) {
	h, err := toFloat("humidity", v)
	if err != nil {
		return 0, err
	}
	if h < float64(low) || h > float64(high) {
		return 0, serrors.With(ErrOutOfRange, "humidity must be between %d and %d %s, got %g",
			low, high, UnitRelativeHumidity, h)
	}

	return int(math.Trunc(h)), nil
}

// toFloat converts any Go numeric type or json.Number to float64. Every other
// dynamic type, nil included, is an ErrInvalidType.
func toFloat(name string, v any) (float64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if errors.Is(err, strconv.ErrRange) && math.IsInf(parsed, 0) {
			return 0, serrors.With(ErrNonFinite, "%s must be finite, got %s", name, x.String())
		}
		if err != nil {
			return 0, serrors.Wrap(ErrInvalidType, err, "%s must be a number, got %q", name, x.String())
		}
		f = parsed
	case nil:
		return 0, serrors.With(ErrInvalidType, "%s is required", name)
	default:
		return 0, serrors.With(ErrInvalidType, "%s must be a number, got %T", name, v)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, serrors.With(ErrNonFinite, "%s must be finite, got %v", name, f)
	}

	return f, nil
}
