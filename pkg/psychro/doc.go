// Package psychro is the psychrometric property engine. It turns a dry-bulb
// temperature (°C) and a relative humidity (%) into derived moist-air
// properties: absolute humidity, dewpoint, wet-bulb temperature, enthalpy,
// humidity ratio and the saturation and actual vapor pressures.
//
// # Data flow
//
//	raw (temperature, humidity)
//	  → validation           ValidateTemperature, ValidateHumidity
//	  → saturation pressure  SaturationVaporPressure (Magnus-Tetens)
//	  → property chain       AbsoluteHumidity, Dewpoint, HumidityRatio, Enthalpy, WetBulb
//	  → formatter            Formatter.Round at the configured precision
//	  → Result / Properties
//
// The unrounded property functions are exported for callers that chain
// their own computations. Engine applies validation and rounding and is the
// entry point used by the HTTP API, the CLI and the stream processors.
//
// # Errors
//
// Every failure is returned as a *serrors.Error carrying one of the kinds
// declared in this package, so callers dispatch with errors.Is:
//
//	ErrInvalidType, ErrNonFinite, ErrOutOfRange   input faults
//	ErrSingularity                                 mathematically undefined point
//	ErrConvergence                                 wet-bulb solver gave up
//	ErrCalculation                                 any other arithmetic failure
//
// A failure at any stage aborts the whole call; no partial or best-effort
// values are returned.
//
// # Concurrency
//
// The engine holds no mutable state. An *Engine is immutable after New and
// may be shared by any number of goroutines.
package psychro
