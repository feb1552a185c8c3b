package psychro

import (
	"fmt"
	"math"
	"strings"

	"psychrometer/pkg/serrors"
)

// Method selects how absolute humidity is derived from vapor pressure.
type Method string

const (
	// MethodVaporPressure applies the ideal gas law to the partial pressure of
	// water vapor directly.
	MethodVaporPressure Method = "vapor-pressure"
	// MethodHumidityRatio derives the vapor density from the humidity ratio and
	// the dry-air density at the configured total pressure.
	MethodHumidityRatio Method = "humidity-ratio"
)

// Rounding selects the tie-breaking rule of the formatter.
type Rounding string

const (
	// RoundHalfAwayFromZero rounds 8.645 to 8.65 and -8.645 to -8.65.
	RoundHalfAwayFromZero Rounding = "half-away-from-zero"
	// RoundHalfEven rounds ties to the nearest even digit: 8.645 to 8.64.
	RoundHalfEven Rounding = "half-even"
)

const maxPrecision = 6

// Config is the engine configuration. It is copied into the Engine on
// construction and never mutated afterwards.
type Config struct {
	// Pressure is the total atmospheric pressure in Pa used by the humidity
	// ratio, enthalpy and wet-bulb computations.
	Pressure float64
	// Precision is the number of decimal places of every formatted output.
	Precision int
	// Rounding is the tie-breaking rule used when formatting.
	Rounding Rounding
	// Method selects the absolute humidity formulation.
	Method Method

	// MinTemperature and MaxTemperature bound accepted temperatures in °C.
	MinTemperature float64
	MaxTemperature float64
	// MinHumidity and MaxHumidity bound accepted relative humidity in %.
	MinHumidity int
	MaxHumidity int

	// WetBulbIterations caps the bisection steps of the wet-bulb solver.
	WetBulbIterations int
	// WetBulbTolerance is the bracket width in °C at which the solver stops.
	WetBulbTolerance float64
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Pressure:          StandardPressure,
		Precision:         2,
		Rounding:          RoundHalfAwayFromZero,
		Method:            MethodVaporPressure,
		MinTemperature:    AbsoluteZero,
		MaxTemperature:    MaxTemperature,
		MinHumidity:       MinHumidity,
		MaxHumidity:       MaxHumidity,
		WetBulbIterations: 100,
		WetBulbTolerance:  0.001,
	}
}

// Validate reports the first inconsistency found in the configuration.
func (c Config) Validate() error {
	switch {
	case !(c.Pressure > 0) || math.IsInf(c.Pressure, 0):
		return serrors.With(ErrInvalidConfig, "pressure must be a positive finite number, got %v", c.Pressure)
	case c.Precision < 0 || c.Precision > maxPrecision:
		return serrors.With(ErrInvalidConfig, "precision must be within [0, %d], got %d", maxPrecision, c.Precision)
	case c.MinTemperature < AbsoluteZero || c.MaxTemperature > MaxTemperature:
		return serrors.With(ErrInvalidConfig, "temperature bounds must lie within [%v, %v]", AbsoluteZero, MaxTemperature)
	case c.MinTemperature > c.MaxTemperature:
		return serrors.With(ErrInvalidConfig, "minimum temperature %v exceeds maximum %v",
			c.MinTemperature, c.MaxTemperature)
	case c.MinHumidity < MinHumidity || c.MaxHumidity > MaxHumidity || c.MinHumidity > c.MaxHumidity:
		return serrors.With(ErrInvalidConfig, "humidity bounds [%d, %d] must be ordered and lie within [0, 100]",
			c.MinHumidity, c.MaxHumidity)
	case c.WetBulbIterations < 1:
		return serrors.With(ErrInvalidConfig, "wet-bulb iterations must be at least 1, got %d", c.WetBulbIterations)
	case !(c.WetBulbTolerance > 0):
		return serrors.With(ErrInvalidConfig, "wet-bulb tolerance must be positive, got %v", c.WetBulbTolerance)
	}

	if _, err := ParseRounding(string(c.Rounding)); err != nil {
		return err
	}
	if _, err := ParseMethod(string(c.Method)); err != nil {
		return err
	}

	return nil
}

// Option mutates a Config before the engine is built.
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithPressure sets the total atmospheric pressure in Pa.
func WithPressure(pa float64) Option {
	return func(c *Config) { c.Pressure = pa }
}

// WithPrecision sets the number of decimal places in formatted outputs.
func WithPrecision(places int) Option {
	return func(c *Config) { c.Precision = places }
}

// WithRounding sets the tie-breaking rule of the formatter.
func WithRounding(r Rounding) Option {
	return func(c *Config) { c.Rounding = r }
}

// WithMethod selects the absolute humidity formulation.
func WithMethod(m Method) Option {
	return func(c *Config) { c.Method = m }
}

// WithTemperatureBounds narrows the accepted temperature range.
func WithTemperatureBounds(low, high float64) Option {
	return func(c *Config) {
		c.MinTemperature = low
		c.MaxTemperature = high
	}
}

// WithHumidityBounds narrows the accepted relative humidity range.
func WithHumidityBounds(low, high int) Option {
	return func(c *Config) {
		c.MinHumidity = low
		c.MaxHumidity = high
	}
}

// WithWetBulbIterations caps the wet-bulb solver.
func WithWetBulbIterations(n int) Option {
	return func(c *Config) { c.WetBulbIterations = n }
}

// WithWetBulbTolerance sets the solver's stopping bracket width in °C.
func WithWetBulbTolerance(tol float64) Option {
	return func(c *Config) { c.WetBulbTolerance = tol }
}

// ParseRounding parses a rounding policy name. Matching is case-insensitive.
func ParseRounding(s string) (Rounding, error) {
	switch r := Rounding(strings.ToLower(strings.TrimSpace(s))); r {
	case RoundHalfAwayFromZero, RoundHalfEven:
		return r, nil
	default:
		return "", serrors.With(ErrInvalidConfig, "unknown rounding policy %q", s)
	}
}

// ParseMethod parses an absolute humidity method name. Matching is case-insensitive.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodVaporPressure, MethodHumidityRatio:
		return m, nil
	default:
		return "", serrors.With(ErrInvalidConfig, "unknown absolute humidity method %q", s)
	}
}

func (c Config) String() string {
	return fmt.Sprintf("pressure=%gPa precision=%d rounding=%s method=%s T=[%g,%g] RH=[%d,%d] wetbulb=%d/%g",
		c.Pressure, c.Precision, c.Rounding, c.Method,
		c.MinTemperature, c.MaxTemperature, c.MinHumidity, c.MaxHumidity,
		c.WetBulbIterations, c.WetBulbTolerance)
}
