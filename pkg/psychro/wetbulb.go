package psychro

import (
	"math"

	"psychrometer/pkg/serrors"
)

// dryBracket is how far below the dry bulb the solver searches when the air
// carries no vapor and there is no dewpoint to bound the search.
const dryBracket = 150.0

// WetBulb returns the thermodynamic wet-bulb temperature in °C at total
// pressure p (Pa). It bisects between the dewpoint and the dry bulb for the
// temperature whose adiabatic-saturation humidity ratio equals the actual one:
//
//	above 0 °C:  W(Tw) = ((2501 − 2.326·Tw)·Ws(Tw) − 1.006·(T − Tw)) / (2501 + 1.86·T − 4.186·Tw)
//	at or below: W(Tw) = ((2830 − 0.24·Tw)·Ws(Tw) − 1.006·(T − Tw)) / (2830 + 1.86·T − 2.1·Tw)
//
// The search stops once the bracket is narrower than tolerance. If that does
// not happen within maxIterations steps it fails with ErrConvergence.
func WetBulb(t float64, rh int, p float64, maxIterations int, tolerance float64) (float64, error) {
	w, err := HumidityRatio(t, rh, p)
	if err != nil {
		return 0, err
	}

	lower, upper, err := wetBulbBracket(t, rh)
	if err != nil {
		return 0, err
	}

	for range maxIterations {
		if upper-lower < tolerance {
			return (upper + lower) / 2, nil
		}

		mid := (upper + lower) / 2
		wmid, ok, err := adiabaticRatio(t, mid, p)
		if err != nil {
			return 0, err
		}

		// no saturation ratio exists above the boiling point at p: too hot
		if !ok || wmid > w {
			upper = mid
		} else {
			lower = mid
		}
	}

	if upper-lower < tolerance {
		return (upper + lower) / 2, nil
	}

	return 0, serrors.With(ErrConvergence,
		"wet-bulb temperature did not converge within %d iterations (bracket [%g, %g] %s)",
		maxIterations, lower, upper, UnitTemperature)
}

func wetBulbBracket(t float64, rh int) (float64, float64, error) {
	upper := t
	if rh == 0 {
		lower := math.Max(t-dryBracket, -MagnusB+1)
		if lower > upper {
			lower = upper
		}

		return lower, upper, nil
	}

	lower, err := Dewpoint(t, rh)
	if err != nil {
		return 0, 0, err
	}
	if lower > upper {
		lower, upper = upper, lower
	}

	return lower, upper, nil
}

// adiabaticRatio evaluates W(tw) for dry bulb t. ok is false when the
// saturation vapor pressure at tw is not below p.
func adiabaticRatio(t, tw, p float64) (float64, bool, error) {
	es, err := SaturationVaporPressure(tw)
	if err != nil {
		return 0, false, err
	}

	ws, err := humidityRatio(es*hPaToPa, p)
	if err != nil {
		return 0, false, nil //nolint: nilerr
	}

	var w float64
	if tw > 0 {
		w = ((2501-2.326*tw)*ws - 1.006*(t-tw)) / (2501 + 1.86*t - 4.186*tw)
	} else {
		w = ((2830-0.24*tw)*ws - 1.006*(t-tw)) / (2830 + 1.86*t - 2.1*tw)
	}
	if err := finite("wet-bulb humidity ratio", w); err != nil {
		return 0, false, err
	}

	return w, true, nil
}
