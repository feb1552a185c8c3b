package psychro

// Physical constants. They are part of the model and not configurable.
const (
	// MagnusA is the dimensionless Magnus coefficient.
	MagnusA = 17.67
	// MagnusB is the Magnus coefficient in °C.
	MagnusB = 243.5
	// MagnusC is the saturation vapor pressure at 0 °C in hPa.
	MagnusC = 6.112

	// WaterMolarMass is the molar mass of water vapor in g/mol.
	WaterMolarMass = 18.016
	// UniversalGasConstant is in J/(kmol·K).
	UniversalGasConstant = 8314.5
	// DryAirGasConstant is the specific gas constant of dry air in J/(kg·K).
	DryAirGasConstant = 287.042
	// MolecularWeightRatio is the ratio of the molecular weights of water vapor and dry air.
	MolecularWeightRatio = 0.622

	// StandardPressure is the sea-level atmospheric pressure in Pa.
	StandardPressure = 101325.0

	// ZeroCelsius is 0 °C expressed in kelvin.
	ZeroCelsius = 273.15
	// AbsoluteZero is the lowest physically meaningful temperature in °C.
	AbsoluteZero = -273.15
	// MaxTemperature is the upper bound of the accepted temperature domain in °C.
	MaxTemperature = 1000.0

	// MinHumidity and MaxHumidity bound relative humidity in percent.
	MinHumidity = 0
	MaxHumidity = 100

	hPaToPa = 100.0
	gPerKg  = 1000.0
)

// Unit labels attached to formatted results.
const (
	UnitAbsoluteHumidity = "g/m³"
	UnitTemperature      = "°C"
	UnitRelativeHumidity = "%"
	UnitPressureHPa      = "hPa"
	UnitPressurePa       = "Pa"
	UnitEnthalpy         = "kJ/kg"
	UnitHumidityRatio    = "g/kg"
)
