package psychro

import (
	"math"

	"psychrometer/pkg/serrors"
)

// AbsoluteHumidity returns the mass of water vapor per volume of moist air in
// g/m³, applying the ideal gas law to the vapor partial pressure:
//
//	AH = e[Pa] · 18.016 / (8314.5 · (T + 273.15)) · 1000
//
// The result is not rounded. Dry air (rh = 0) yields 0 at every temperature.
func AbsoluteHumidity(t float64, rh int) (float64, error) {
	if rh == 0 {
		return 0, nil
	}

	tk, err := kelvin(t)
	if err != nil {
		return 0, err
	}

	e, err := ActualVaporPressure(t, rh)
	if err != nil {
		return 0, err
	}

	ah := e * hPaToPa * WaterMolarMass / (UniversalGasConstant * tk) * gPerKg
	if err := finite("absolute humidity", ah); err != nil {
		return 0, err
	}

	return ah, nil
}

// AbsoluteHumidityFromRatio returns absolute humidity in g/m³ as the product
// of the dry-air density and the humidity ratio at total pressure p (Pa).
// It agrees with AbsoluteHumidity to within a few hundredths of a gram but
// is bounded by p: vapor pressure at or above p is ErrOutOfRange.
func AbsoluteHumidityFromRatio(t float64, rh int, p float64) (float64, error) {
	if rh == 0 {
		return 0, nil
	}

	tk, err := kelvin(t)
	if err != nil {
		return 0, err
	}

	w, err := HumidityRatio(t, rh, p)
	if err != nil {
		return 0, err
	}

	e, err := ActualVaporPressure(t, rh)
	if err != nil {
		return 0, err
	}

	dryAirDensity := (p - e*hPaToPa) / (DryAirGasConstant * tk)
	ah := dryAirDensity * w * gPerKg
	if err := finite("absolute humidity", ah); err != nil {
		return 0, err
	}

	return ah, nil
}

// Dewpoint returns the temperature (°C) at which the current vapor pressure
// would saturate, by inverting the Magnus formula:
//
//	g   = ln(e / 6.112)
//	Tdp = 243.5 · g / (17.67 − g)
//
// Dry air has no dewpoint; rh = 0 is an ErrSingularity.
func Dewpoint(t float64, rh int) (float64, error) {
	if rh == 0 {
		return 0, serrors.With(ErrSingularity, "dewpoint is undefined for zero vapor pressure")
	}

	e, err := ActualVaporPressure(t, rh)
	if err != nil {
		return 0, err
	}

	g := math.Log(e / MagnusC)
	if g == MagnusA {
		return 0, serrors.With(ErrSingularity, "dewpoint is undefined for vapor pressure %g %s", e, UnitPressureHPa)
	}

	tdp := MagnusB * g / (MagnusA - g)
	if err := finite("dewpoint", tdp); err != nil {
		return 0, err
	}

	return tdp, nil
}

// HumidityRatio returns the mass of water vapor per mass of dry air in kg/kg
// at total pressure p (Pa):
//
//	W = 0.622 · e / (P − e)
//
// The ratio only exists while the vapor pressure stays below p.
func HumidityRatio(t float64, rh int, p float64) (float64, error) {
	e, err := ActualVaporPressure(t, rh)
	if err != nil {
		return 0, err
	}

	return humidityRatio(e*hPaToPa, p)
}

func humidityRatio(ePa, p float64) (float64, error) {
	if ePa >= p {
		return 0, serrors.With(ErrOutOfRange,
			"vapor pressure %g %s reaches the total pressure %g %s", ePa, UnitPressurePa, p, UnitPressurePa)
	}

	w := MolecularWeightRatio * ePa / (p - ePa)
	if err := finite("humidity ratio", w); err != nil {
		return 0, err
	}

	return w, nil
}

// Enthalpy returns the specific enthalpy of moist air in kJ per kg of dry air:
//
//	h = 1.006·T + W·(2501 + 1.86·T)
func Enthalpy(t float64, rh int, p float64) (float64, error) {
	w, err := HumidityRatio(t, rh, p)
	if err != nil {
		return 0, err
	}

	h := 1.006*t + w*(2501+1.86*t)
	if err := finite("enthalpy", h); err != nil {
		return 0, err
	}

	return h, nil
}

func kelvin(t float64) (float64, error) {
	tk := t + ZeroCelsius
	if tk == 0 {
		return 0, serrors.With(ErrSingularity, "ideal gas law is undefined at absolute zero")
	}

	return tk, nil
}
