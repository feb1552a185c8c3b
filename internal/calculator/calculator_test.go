package calculator_test

import (
	"context"
	"testing"

	"psychrometer/internal/calculator"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"
	"psychrometer/pkg/psychro"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.TestingEnvironment)
	m.Run()
}

func newCalculator(t *testing.T, opts ...psychro.Option) (calculator.Calculator, *metrics.Calculator) {
	t.Helper()

	engine, err := psychro.New(opts...)
	require.NoError(t, err)

	m := metrics.NewCalculatorForTesting()

	return calculator.New(engine, m), m
}

func TestCalculator_Compute(t *testing.T) {
	calc, m := newCalculator(t)

	res, err := calc.Compute(context.Background(), 20.0, 50)
	require.NoError(t, err)
	require.InDelta(t, 8.64, res.AbsoluteHumidity, 1e-9)
	require.Equal(t, psychro.UnitAbsoluteHumidity, res.Unit)

	require.InDelta(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues("compute", metrics.OutcomeSuccess)), 1e-9)
}

func TestCalculator_Compute_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		temperature any
		humidity    any
		kind        error
		outcome     string
	}{
		{name: "invalid type", temperature: "20", humidity: 50, kind: psychro.ErrInvalidType, outcome: metrics.OutcomeInputFault},
		{name: "out of range", temperature: 20.0, humidity: 101, kind: psychro.ErrOutOfRange, outcome: metrics.OutcomeInputFault},
		{name: "singularity", temperature: -243.5, humidity: 50, kind: psychro.ErrSingularity, outcome: metrics.OutcomeInputFault},
		{name: "overflow", temperature: -243.6, humidity: 50, kind: psychro.ErrCalculation, outcome: metrics.OutcomeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, m := newCalculator(t)

			_, err := calc.Compute(context.Background(), tt.temperature, tt.humidity)
			require.ErrorIs(t, err, tt.kind)
			require.InDelta(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues("compute", tt.outcome)), 1e-9)
			require.InDelta(t, 0.0, testutil.ToFloat64(m.Calculations.WithLabelValues("compute", metrics.OutcomeSuccess)), 1e-9)
		})
	}
}

func TestCalculator_Properties(t *testing.T) {
	calc, m := newCalculator(t)

	res, err := calc.Properties(context.Background(), 20.0, 50, psychro.PropertyDewpoint)
	require.NoError(t, err)
	require.NotNil(t, res.Dewpoint)
	require.InDelta(t, 9.27, *res.Dewpoint, 1e-9)
	require.Nil(t, res.WetBulb)

	require.InDelta(t, 1.0, testutil.ToFloat64(m.Calculations.WithLabelValues("properties", metrics.OutcomeSuccess)), 1e-9)
}

func TestCalculator_Describe(t *testing.T) {
	calc, _ := newCalculator(t, psychro.WithPrecision(3))

	desc := calc.Describe()
	require.Equal(t, 3, desc.Precision)
	require.NotEmpty(t, desc.Formulas)
}
