package psychro_test

import (
	"sync"
	"testing"

	"psychrometer/pkg/psychro"
	"psychrometer/pkg/serrors"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCompute_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		temperature any
		humidity    any
		want        float64
	}{
		{name: "typical room", temperature: 20.0, humidity: 50, want: 8.65},
		{name: "tropical", temperature: 30.0, humidity: 80, want: 24.27},
		{name: "freezing", temperature: 0.0, humidity: 30, want: 1.45},
		{name: "dry air", temperature: 25.0, humidity: 0, want: 0},
		{name: "saturated", temperature: 25.0, humidity: 100, want: 23.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := psychro.Compute(tt.temperature, tt.humidity)
			require.NoError(t, err)
			require.InDelta(t, tt.want, res.AbsoluteHumidity, 0.1)
			require.Equal(t, psychro.UnitAbsoluteHumidity, res.Unit)
		})
	}
}

func TestCompute_ExactOutputs(t *testing.T) {
	res, err := psychro.Compute(20, 50)
	require.NoError(t, err)
	require.Equal(t, psychro.Result{
		AbsoluteHumidity: 8.64,
		Temperature:      20,
		Humidity:         50,
		Unit:             "g/m³",
	}, res)

	res, err = psychro.Compute(25, 0)
	require.NoError(t, err)
	require.Zero(t, res.AbsoluteHumidity)
}

func TestCompute_EchoesValidatedInputs(t *testing.T) {
	res, err := psychro.Compute(21.456, 64.9)
	require.NoError(t, err)
	require.InDelta(t, 21.46, res.Temperature, 1e-9)
	require.Equal(t, 64, res.Humidity)
}

func TestCompute_Errors(t *testing.T) {
	tests := []struct {
		name        string
		temperature any
		humidity    any
		wantErr     serrors.Kind
	}{
		{name: "string temperature", temperature: "abc", humidity: 50, wantErr: psychro.ErrInvalidType},
		{name: "missing humidity", temperature: 20, humidity: nil, wantErr: psychro.ErrInvalidType},
		{name: "below absolute zero", temperature: -273.16, humidity: 50, wantErr: psychro.ErrOutOfRange},
		{name: "humidity above range", temperature: 20, humidity: 101, wantErr: psychro.ErrOutOfRange},
		{name: "magnus pole", temperature: -243.5, humidity: 50, wantErr: psychro.ErrSingularity},
		{name: "absolute zero", temperature: -273.15, humidity: 50, wantErr: psychro.ErrSingularity},
		{name: "overflow near pole", temperature: -243.6, humidity: 50, wantErr: psychro.ErrCalculation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := psychro.Compute(tt.temperature, tt.humidity)
			require.ErrorIs(t, err, tt.wantErr)
			require.Equal(t, tt.wantErr.Error(), psychro.Code(err))
		})
	}
}

func TestCompute_BoundariesRunRealFormula(t *testing.T) {
	_, err := psychro.Compute(-273.15, 50)
	require.NotErrorIs(t, err, psychro.ErrOutOfRange)

	hot, err := psychro.Compute(1000, 50)
	require.NoError(t, err)
	require.Greater(t, hot.AbsoluteHumidity, 1000.0)
	require.InDelta(t, 1000.0, hot.Temperature, 1e-9)

	dry, err := psychro.Compute(-273.15, 0)
	require.NoError(t, err)
	require.Zero(t, dry.AbsoluteHumidity)
}

func TestCompute_Idempotent(t *testing.T) {
	first, err := psychro.Compute(17.3, 61)
	require.NoError(t, err)

	for range 10 {
		again, err := psychro.Compute(17.3, 61)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e, err := psychro.New()
	require.NoError(t, err)

	want, err := e.Properties(23.4, 57)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]psychro.Properties, 32)
	errs := make([]error, len(results))
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = e.Properties(23.4, 57)
		}()
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		require.Empty(t, cmp.Diff(want, results[i]))
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opt  psychro.Option
	}{
		{name: "zero pressure", opt: psychro.WithPressure(0)},
		{name: "negative precision", opt: psychro.WithPrecision(-1)},
		{name: "excessive precision", opt: psychro.WithPrecision(7)},
		{name: "unknown rounding", opt: psychro.WithRounding("up")},
		{name: "unknown method", opt: psychro.WithMethod("psychrolib")},
		{name: "inverted temperature bounds", opt: psychro.WithTemperatureBounds(50, -50)},
		{name: "temperature below absolute zero", opt: psychro.WithTemperatureBounds(-300, 50)},
		{name: "humidity above hundred", opt: psychro.WithHumidityBounds(0, 120)},
		{name: "no iterations", opt: psychro.WithWetBulbIterations(0)},
		{name: "zero tolerance", opt: psychro.WithWetBulbTolerance(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := psychro.New(tt.opt)
			require.ErrorIs(t, err, psychro.ErrInvalidConfig)
		})
	}
}

func TestNew_ConfigIsCopied(t *testing.T) {
	cfg := psychro.DefaultConfig()
	e, err := psychro.New(psychro.WithConfig(cfg))
	require.NoError(t, err)

	cfg.Precision = 4
	require.Equal(t, 2, e.Config().Precision)

	got := e.Config()
	got.Pressure = 1
	require.InDelta(t, psychro.StandardPressure, e.Config().Pressure, 1e-9)
}

func TestEngine_PrecisionAndRounding(t *testing.T) {
	e, err := psychro.New(psychro.WithPrecision(4))
	require.NoError(t, err)

	res, err := e.Compute(20, 50)
	require.NoError(t, err)
	require.InDelta(t, 8.6368, res.AbsoluteHumidity, 1e-9)
}

func TestEngine_HumidityRatioMethod(t *testing.T) {
	e, err := psychro.New(psychro.WithMethod(psychro.MethodHumidityRatio))
	require.NoError(t, err)

	res, err := e.Compute(30, 80)
	require.NoError(t, err)
	require.InDelta(t, 24.28, res.AbsoluteHumidity, 1e-9)

	_, err = e.Compute(100, 100)
	require.ErrorIs(t, err, psychro.ErrOutOfRange)
}

func TestEngine_Properties(t *testing.T) {
	e, err := psychro.New()
	require.NoError(t, err)

	props, err := e.Properties(20, 50)
	require.NoError(t, err)

	ptr := func(v float64) *float64 { return &v }
	want := psychro.Properties{
		Temperature:             20,
		Humidity:                50,
		AbsoluteHumidity:        ptr(8.64),
		Dewpoint:                ptr(9.27),
		WetBulb:                 ptr(13.79),
		Enthalpy:                ptr(38.54),
		HumidityRatio:           ptr(7.26),
		SaturationVaporPressure: ptr(23.37),
		VaporPressure:           ptr(11.68),
		VaporPressurePa:         ptr(1168.47),
		Units: map[string]string{
			"temperature":               "°C",
			"humidity":                  "%",
			"absolute_humidity":         "g/m³",
			"dewpoint":                  "°C",
			"wet_bulb":                  "°C",
			"enthalpy":                  "kJ/kg",
			"humidity_ratio":            "g/kg",
			"saturation_vapor_pressure": "hPa",
			"vapor_pressure":            "hPa",
			"vapor_pressure_pa":         "Pa",
		},
	}
	require.Empty(t, cmp.Diff(want, props))
}

func TestEngine_PropertiesSubset(t *testing.T) {
	e, err := psychro.New()
	require.NoError(t, err)

	props, err := e.Properties(25, 0, psychro.PropertyAbsoluteHumidity, psychro.PropertyEnthalpy)
	require.NoError(t, err)
	require.NotNil(t, props.AbsoluteHumidity)
	require.NotNil(t, props.Enthalpy)
	require.Nil(t, props.Dewpoint)
	require.Nil(t, props.WetBulb)
	require.Len(t, props.Units, 4)

	// dry air has no dewpoint, so asking for it fails the whole call
	_, err = e.Properties(25, 0)
	require.ErrorIs(t, err, psychro.ErrSingularity)
	_, err = e.Properties(25, 0, psychro.PropertyDewpoint)
	require.ErrorIs(t, err, psychro.ErrSingularity)

	// every other property is defined for dry air
	var dryAir []psychro.Property
	for _, p := range psychro.AllProperties() {
		if p != psychro.PropertyDewpoint {
			dryAir = append(dryAir, p)
		}
	}
	props, err = e.Properties(25, 0, dryAir...)
	require.NoError(t, err)
	require.Nil(t, props.Dewpoint)
	require.NotNil(t, props.WetBulb)
	require.Zero(t, *props.AbsoluteHumidity)
}

func TestParseProperty(t *testing.T) {
	p, err := psychro.ParseProperty(" Wet_Bulb ")
	require.NoError(t, err)
	require.Equal(t, psychro.PropertyWetBulb, p)

	_, err = psychro.ParseProperty("density")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestEngine_Describe(t *testing.T) {
	e, err := psychro.New(psychro.WithTemperatureBounds(-50, 60))
	require.NoError(t, err)

	d := e.Describe()
	require.Equal(t, psychro.MethodVaporPressure, d.Method)
	require.Equal(t, 2, d.Precision)
	require.InDelta(t, -50.0, d.TemperatureLimit.Min, 1e-9)
	require.InDelta(t, 60.0, d.TemperatureLimit.Max, 1e-9)
	require.InDelta(t, 100.0, d.HumidityLimit.Max, 1e-9)
	require.Equal(t, "g/m³", d.Units["absolute_humidity"])
	require.NotEmpty(t, d.Formulas)
	require.NotEmpty(t, d.Constants)
}
