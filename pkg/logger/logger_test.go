package logger_test

import (
	"context"
	"testing"

	"psychrometer/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observed returns a context whose logger records entries at level and above.
func observed(level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return logger.WithLogger(context.Background(), zap.New(core)), logs
}

func TestSetupWithLevel(t *testing.T) {
	t.Cleanup(func() { logger.Setup(logger.TestingEnvironment) })

	tests := []struct {
		name        string
		environment string
		level       string
		want        zapcore.Level
		wantErr     bool
	}{
		{name: "development default", environment: logger.DevelopmentEnvironment, want: zap.DebugLevel},
		{name: "production default", environment: logger.ProductionEnvironment, want: zap.InfoLevel},
		{name: "testing default", environment: logger.TestingEnvironment, want: zap.WarnLevel},
		{name: "unknown environment", environment: "staging", want: zap.DebugLevel},
		{name: "production override", environment: logger.ProductionEnvironment, level: "debug", want: zap.DebugLevel},
		{name: "development override", environment: logger.DevelopmentEnvironment, level: "error", want: zap.ErrorLevel},
		{name: "invalid level", environment: logger.DevelopmentEnvironment, level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := logger.SetupWithLevel(tt.environment, tt.level)
			if tt.wantErr {
				require.ErrorContains(t, err, `invalid log level "loud"`)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, logger.Get(context.Background()).Level())
			require.Equal(t, tt.want == zap.DebugLevel, logger.IsDebug(context.Background()))
		})
	}
}

func TestGet_FallsBackToDefault(t *testing.T) {
	logger.Setup(logger.TestingEnvironment)

	require.NotNil(t, logger.Get(context.Background()))

	custom := zap.NewNop()
	require.Same(t, custom, logger.Get(logger.WithLogger(context.Background(), custom)))
}

func TestWithFields_AreInherited(t *testing.T) {
	ctx, logs := observed(zap.DebugLevel)

	ctx = logger.WithFields(ctx, zap.String("batchID", "b-1"))
	ctx = logger.WithFields(ctx, zap.Int("attempt", 2))
	logger.Info(ctx, "batch processed", zap.Int("items", 3))

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "batch processed", entries[0].Message)
	require.Equal(t, map[string]any{
		"batchID": "b-1",
		"attempt": int64(2),
		"items":   int64(3),
	}, entries[0].ContextMap())
}

func TestLevelHelpers(t *testing.T) {
	ctx, logs := observed(zap.InfoLevel)

	logger.Debug(ctx, "dropped")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	levels := make([]zapcore.Level, 0, logs.Len())
	for _, e := range logs.All() {
		levels = append(levels, e.Level)
	}
	require.Equal(t, []zapcore.Level{zap.InfoLevel, zap.WarnLevel, zap.ErrorLevel}, levels)
}

func TestSlog_WritesThroughContextLogger(t *testing.T) {
	ctx, logs := observed(zap.DebugLevel)
	ctx = logger.WithFields(ctx, zap.String("component", "river"))

	logger.Slog(ctx).Info("job completed", "jobID", 7)

	entries := logs.FilterMessage("job completed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "river", entries[0].ContextMap()["component"])
	require.Equal(t, int64(7), entries[0].ContextMap()["jobID"])
}
