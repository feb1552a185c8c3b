package psychro

import (
	"math"

	"psychrometer/pkg/serrors"
)

// SaturationVaporPressure returns the saturation vapor pressure over water in
// hPa at temperature t (°C), using the Magnus-Tetens approximation
//
//	es = 6.112 · exp(17.67·T / (T + 243.5))
//
// The formula is undefined at T = -243.5 °C. Below that pole the exponent
// changes sign and grows quickly; results that overflow are reported as
// ErrCalculation.
func SaturationVaporPressure(t float64) (float64, error) {
	denom := t + MagnusB
	if denom == 0 {
		return 0, serrors.With(ErrSingularity,
			"saturation vapor pressure is undefined at %g %s", t, UnitTemperature)
	}

	es := MagnusC * math.Exp(MagnusA*t/denom)
	if err := finite("saturation vapor pressure", es); err != nil {
		return 0, err
	}

	return es, nil
}

// ActualVaporPressure returns the partial pressure of water vapor in hPa for
// the given temperature (°C) and relative humidity (%). Completely dry air has
// zero vapor pressure at every temperature.
func ActualVaporPressure(t float64, rh int) (float64, error) {
	if rh == 0 {
		return 0, nil
	}

	es, err := SaturationVaporPressure(t)
	if err != nil {
		return 0, err
	}

	return float64(rh) / 100 * es, nil
}
