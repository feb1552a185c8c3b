package psychro

// Formula is a named expression shown to API clients.
type Formula struct {
	Name       string `json:"name"       yaml:"name"`
	Expression string `json:"expression" yaml:"expression"`
}

// Constant is a named physical constant and its unit.
type Constant struct {
	Name  string  `json:"name"  yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit"  yaml:"unit"`
}

// Limit is the accepted range of one input.
type Limit struct {
	Min  float64 `json:"min"  yaml:"min"`
	Max  float64 `json:"max"  yaml:"max"`
	Unit string  `json:"unit" yaml:"unit"`
}

// Description documents an engine: its formulas, constants, limits and
// output formatting.
type Description struct {
	Method    Method     `json:"method"    yaml:"method"`
	Rounding  Rounding   `json:"rounding"  yaml:"rounding"`
	Precision int        `json:"precision" yaml:"precision"`
	Pressure  Quantity   `json:"pressure"  yaml:"pressure"`
	Formulas  []Formula  `json:"formulas"  yaml:"formulas"`
	Constants []Constant `json:"constants" yaml:"constants"`

	TemperatureLimit Limit `json:"temperature_limit" yaml:"temperature_limit"`
	HumidityLimit    Limit `json:"humidity_limit"    yaml:"humidity_limit"`

	Units map[string]string `json:"units" yaml:"units"`
}

// Describe returns the description of e.
func (e *Engine) Describe() Description {
	ah := Formula{
		Name:       string(PropertyAbsoluteHumidity),
		Expression: "AH = RH/100 · es · 100 · 18.016 / (8314.5 · (T + 273.15)) · 1000",
	}
	if e.cfg.Method == MethodHumidityRatio {
		ah.Expression = "AH = (P − e) / (287.042 · (T + 273.15)) · W · 1000"
	}

	return Description{
		Method:    e.cfg.Method,
		Rounding:  e.cfg.Rounding,
		Precision: e.cfg.Precision,
		Pressure:  Quantity{Value: e.cfg.Pressure, Unit: UnitPressurePa},
		Formulas: []Formula{
			{Name: string(PropertySaturationVaporPressure), Expression: "es = 6.112 · exp(17.67 · T / (T + 243.5))"},
			ah,
			{Name: string(PropertyDewpoint), Expression: "Tdp = 243.5 · ln(e/6.112) / (17.67 − ln(e/6.112))"},
			{Name: string(PropertyHumidityRatio), Expression: "W = 0.622 · e / (P − e)"},
			{Name: string(PropertyEnthalpy), Expression: "h = 1.006 · T + W · (2501 + 1.86 · T)"},
			{Name: string(PropertyWetBulb), Expression: "bisection on W(Tw) between dewpoint and dry bulb"},
		},
		Constants: []Constant{
			{Name: "magnus_a", Value: MagnusA},
			{Name: "magnus_b", Value: MagnusB, Unit: UnitTemperature},
			{Name: "magnus_c", Value: MagnusC, Unit: UnitPressureHPa},
			{Name: "water_molar_mass", Value: WaterMolarMass, Unit: "g/mol"},
			{Name: "universal_gas_constant", Value: UniversalGasConstant, Unit: "J/(kmol·K)"},
			{Name: "dry_air_gas_constant", Value: DryAirGasConstant, Unit: "J/(kg·K)"},
			{Name: "molecular_weight_ratio", Value: MolecularWeightRatio},
		},
		TemperatureLimit: Limit{Min: e.cfg.MinTemperature, Max: e.cfg.MaxTemperature, Unit: UnitTemperature},
		HumidityLimit: Limit{
			Min: float64(e.cfg.MinHumidity), Max: float64(e.cfg.MaxHumidity), Unit: UnitRelativeHumidity,
		},
		Units: map[string]string{
			"temperature":                           UnitTemperature,
			"humidity":                              UnitRelativeHumidity,
			string(PropertyAbsoluteHumidity):        UnitAbsoluteHumidity,
			string(PropertyDewpoint):                UnitTemperature,
			string(PropertyWetBulb):                 UnitTemperature,
			string(PropertyEnthalpy):                UnitEnthalpy,
			string(PropertyHumidityRatio):           UnitHumidityRatio,
			string(PropertySaturationVaporPressure): UnitPressureHPa,
			string(PropertyVaporPressure):           UnitPressureHPa,
			"vapor_pressure_pa":                     UnitPressurePa,
		},
	}
}
