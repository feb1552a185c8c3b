package psychro

import (
	"fmt"
	"strings"

	"psychrometer/pkg/serrors"
)

// Property names one optional output of Engine.Properties. The value is the
// JSON field name used in Properties.
type Property string

const (
	PropertyAbsoluteHumidity        Property = "absolute_humidity"
	PropertyDewpoint                Property = "dewpoint"
	PropertyWetBulb                 Property = "wet_bulb"
	PropertyEnthalpy                Property = "enthalpy"
	PropertyHumidityRatio           Property = "humidity_ratio"
	PropertySaturationVaporPressure Property = "saturation_vapor_pressure"
	// PropertyVaporPressure populates both vapor_pressure (hPa) and vapor_pressure_pa.
	PropertyVaporPressure Property = "vapor_pressure"
)

// AllProperties returns every property in the order they are computed.
func AllProperties() []Property {
	return []Property{
		PropertyAbsoluteHumidity,
		PropertyDewpoint,
		PropertyWetBulb,
		PropertyEnthalpy,
		PropertyHumidityRatio,
		PropertySaturationVaporPressure,
		PropertyVaporPressure,
	}
}

// ParseProperty resolves a property name. Unknown names are a
// serrors.ErrBadRequest.
func ParseProperty(s string) (Property, error) {
	name := Property(strings.ToLower(strings.TrimSpace(s)))
	for _, p := range AllProperties() {
		if p == name {
			return p, nil
		}
	}

	return "", serrors.With(serrors.ErrBadRequest, "unknown property %q", s)
}

// Engine computes psychrometric properties under an immutable Config.
type Engine struct {
	cfg       Config
	formatter Formatter
}

// New builds an Engine from DefaultConfig with the options applied.
func New(opts ...Option) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:       cfg,
		formatter: Formatter{Precision: cfg.Precision, Rounding: cfg.Rounding},
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// ValidateTemperature validates v against the configured temperature bounds.
func (e *Engine) ValidateTemperature(v any) (float64, error) {
	return validateTemperature(v, e.cfg.MinTemperature, e.cfg.MaxTemperature)
}

// ValidateHumidity validates v against the configured humidity bounds.
func (e *Engine) ValidateHumidity(v any) (int, error) {
	return validateHumidity(v, e.cfg.MinHumidity, e.cfg.MaxHumidity)
}

// Compute validates the raw inputs and returns the absolute humidity.
func (e *Engine) Compute(temperature, humidity any) (Result, error) {
	t, h, err := e.validate(temperature, humidity)
	if err != nil {
		return Result{}, err
	}

	ah, err := e.absoluteHumidity(t, h)
	if err != nil {
		return Result{}, err
	}

	return Result{
		AbsoluteHumidity: e.formatter.Round(ah),
		Temperature:      e.formatter.Round(t),
		Humidity:         h,
		Unit:             UnitAbsoluteHumidity,
	}, nil
}

// Properties validates the raw inputs and computes the requested properties,
// or all of them when include is empty. Any failure aborts the whole call.
// The dewpoint of dry air is undefined, so a reading at 0 % relative humidity
// fails with ErrSingularity unless include lists the wanted properties
// without PropertyDewpoint.
func (e *Engine) Properties(temperature, humidity any, include ...Property) (Properties, error) {
	t, h, err := e.validate(temperature, humidity)
	if err != nil {
		return Properties{}, err
	}

	if len(include) == 0 {
		include = AllProperties()
	}
	wanted := make(map[Property]bool, len(include))
	for _, p := range include {
		wanted[p] = true
	}

	out := Properties{
		Temperature: e.formatter.Round(t),
		Humidity:    h,
		Units: map[string]string{
			"temperature": UnitTemperature,
			"humidity":    UnitRelativeHumidity,
		},
	}

	p := e.cfg.Pressure
	steps := []struct {
		property Property
		dst      **float64
		unit     string
		compute  func() (float64, error)
	}{
		{PropertyAbsoluteHumidity, &out.AbsoluteHumidity, UnitAbsoluteHumidity, func() (float64, error) {
			return e.absoluteHumidity(t, h)
		}},
		{PropertyDewpoint, &out.Dewpoint, UnitTemperature, func() (float64, error) {
			return Dewpoint(t, h)
		}},
		{PropertyWetBulb, &out.WetBulb, UnitTemperature, func() (float64, error) {
			return WetBulb(t, h, p, e.cfg.WetBulbIterations, e.cfg.WetBulbTolerance)
		}},
		{PropertyEnthalpy, &out.Enthalpy, UnitEnthalpy, func() (float64, error) {
			return Enthalpy(t, h, p)
		}},
		{PropertyHumidityRatio, &out.HumidityRatio, UnitHumidityRatio, func() (float64, error) {
			w, err := HumidityRatio(t, h, p)

			return w * gPerKg, err
		}},
		{PropertySaturationVaporPressure, &out.SaturationVaporPressure, UnitPressureHPa, func() (float64, error) {
			return SaturationVaporPressure(t)
		}},
		{PropertyVaporPressure, &out.VaporPressure, UnitPressureHPa, func() (float64, error) {
			return ActualVaporPressure(t, h)
		}},
	}

	for _, step := range steps {
		if !wanted[step.property] {
			continue
		}

		v, err := step.compute()
		if err != nil {
			return Properties{}, fmt.Errorf("could not compute %s: %w", step.property, err)
		}
		rounded := e.formatter.Round(v)
		*step.dst = &rounded
		out.Units[string(step.property)] = step.unit
	}

	if out.VaporPressure != nil {
		pa, _ := ActualVaporPressure(t, h)
		rounded := e.formatter.Round(pa * hPaToPa)
		out.VaporPressurePa = &rounded
		out.Units["vapor_pressure_pa"] = UnitPressurePa
	}

	return out, nil
}

func (e *Engine) validate(temperature, humidity any) (float64, int, error) {
	t, err := e.ValidateTemperature(temperature)
	if err != nil {
		return 0, 0, err
	}

	h, err := e.ValidateHumidity(humidity)
	if err != nil {
		return 0, 0, err
	}

	return t, h, nil
}

func (e *Engine) absoluteHumidity(t float64, h int) (float64, error) {
	if e.cfg.Method == MethodHumidityRatio {
		return AbsoluteHumidityFromRatio(t, h, e.cfg.Pressure)
	}

	return AbsoluteHumidity(t, h)
}

//nolint: gochecknoglobals
var defaultEngine = func() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}

	return e
}()

// Compute runs Engine.Compute on an engine built with DefaultConfig.
func Compute(temperature, humidity any) (Result, error) {
	return defaultEngine.Compute(temperature, humidity)
}
