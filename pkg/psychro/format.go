package psychro

import (
	"github.com/shopspring/decimal"
)

// Formatter rounds engine outputs to a fixed number of decimal places.
//
// Rounding operates on the shortest decimal representation of a float64,
// which is the literal a person would write for it. 8.645 is therefore a tie
// even though its binary value is slightly below 8.645.
type Formatter struct {
	Precision int
	Rounding  Rounding
}

// Round returns v rounded to f.Precision places. v must be finite.
func (f Formatter) Round(v float64) float64 {
	d := decimal.NewFromFloat(v)
	places := int32(f.Precision) //nolint: gosec

	var r decimal.Decimal
	if f.Rounding == RoundHalfEven {
		r = d.RoundBank(places)
	} else {
		r = d.Round(places)
	}

	out, _ := r.Float64()
	if out == 0 {
		// drop the sign of a negative zero
		return 0
	}

	return out
}

// Quantity is a value paired with its unit label.
type Quantity struct {
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit"  yaml:"unit"`
}

// Result is the outcome of Engine.Compute.
type Result struct {
	// AbsoluteHumidity in g/m³.
	AbsoluteHumidity float64 `json:"absolute_humidity" yaml:"absolute_humidity"`
	// Temperature is the validated input echoed back, rounded like the output.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// Humidity is the validated relative humidity after truncation.
	Humidity int    `json:"humidity" yaml:"humidity"`
	Unit     string `json:"unit"     yaml:"unit"`
}

// Properties is the extended outcome of Engine.Properties. Pointer fields are
// nil when the property was not requested.
type Properties struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Humidity    int     `json:"humidity"    yaml:"humidity"`

	AbsoluteHumidity        *float64 `json:"absolute_humidity,omitempty"         yaml:"absolute_humidity,omitempty"`
	Dewpoint                *float64 `json:"dewpoint,omitempty"                  yaml:"dewpoint,omitempty"`
	WetBulb                 *float64 `json:"wet_bulb,omitempty"                  yaml:"wet_bulb,omitempty"`
	Enthalpy                *float64 `json:"enthalpy,omitempty"                  yaml:"enthalpy,omitempty"`
	HumidityRatio           *float64 `json:"humidity_ratio,omitempty"            yaml:"humidity_ratio,omitempty"`
	SaturationVaporPressure *float64 `json:"saturation_vapor_pressure,omitempty" yaml:"saturation_vapor_pressure,omitempty"`
	VaporPressure           *float64 `json:"vapor_pressure,omitempty"            yaml:"vapor_pressure,omitempty"`
	VaporPressurePa         *float64 `json:"vapor_pressure_pa,omitempty"         yaml:"vapor_pressure_pa,omitempty"`

	// Units maps every populated field's JSON name to its unit label.
	Units map[string]string `json:"units" yaml:"units"`
}
