// Package calculator exposes the psychrometric engine to request handlers,
// batch jobs and stream processors. It adds metrics, tracing and logging
// around every engine call without changing the engine's results.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"
	"psychrometer/pkg/psychro"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	operationCompute    = "compute"
	operationProperties = "properties"

	tracerName = "psychrometer/internal/calculator"
)

type calculator struct {
	engine  *psychro.Engine
	metrics *metrics.Calculator
	tracer  trace.Tracer
}

// New returns a Calculator backed by engine. Calls are recorded on m.
func New(engine *psychro.Engine, m *metrics.Calculator) Calculator {
	return &calculator{
		engine:  engine,
		metrics: m,
		tracer:  otel.Tracer(tracerName),
	}
}

// Compute returns the absolute humidity of the given reading.
func (c *calculator) Compute(ctx context.Context, temperature, humidity any) (psychro.Result, error) {
	ctx, finish := c.observe(ctx, operationCompute, temperature, humidity)

	res, err := c.engine.Compute(temperature, humidity)
	finish(err)
	if err != nil {
		return psychro.Result{}, err //nolint: wrapcheck
	}

	logger.Debug(ctx, "computed absolute humidity", zap.Float64("absolute_humidity", res.AbsoluteHumidity))

	return res, nil
}

// Properties returns the requested moist-air properties of the given reading.
// An empty include list returns every property.
func (c *calculator) Properties(ctx context.Context,
	temperature, humidity any,
	include ...psychro.Property) (psychro.Properties, error) {
	_, finish := c.observe(ctx, operationProperties, temperature, humidity)

	res, err := c.engine.Properties(temperature, humidity, include...)
	finish(err)
	if err != nil {
		return psychro.Properties{}, err //nolint: wrapcheck
	}

	return res, nil
}

// Describe returns the engine's formulas, constants and limits.
func (c *calculator) Describe() psychro.Description {
	return c.engine.Describe()
}

// observe starts a span for operation and returns a callback that records
// the outcome, the duration and the log line for err.
func (c *calculator) observe(ctx context.Context, operation string, temperature, humidity any) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "psychro."+operation, trace.WithAttributes(
		attribute.String("psychro.temperature", stringify(temperature)),
		attribute.String("psychro.humidity", stringify(humidity)),
	))

	return ctx, func(err error) {
		defer span.End()

		c.metrics.CalculationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

		outcome := metrics.OutcomeSuccess
		switch {
		case err == nil:
			span.SetStatus(codes.Ok, "")
		case psychro.IsInputFault(err):
			outcome = metrics.OutcomeInputFault
			span.SetAttributes(attribute.String("psychro.error_code", psychro.Code(err)))
			logger.Debug(ctx, "rejected psychrometric input",
				zap.String("operation", operation),
				zap.Any("temperature", temperature),
				zap.Any("humidity", humidity),
				zap.Error(err))
		case errors.Is(err, psychro.ErrSingularity):
			outcome = metrics.OutcomeInputFault
			span.SetAttributes(attribute.String("psychro.error_code", psychro.Code(err)))
			logger.Warn(ctx, "psychrometric formula undefined for input",
				zap.String("operation", operation),
				zap.Any("temperature", temperature),
				zap.Any("humidity", humidity),
				zap.Error(err))
		default:
			outcome = metrics.OutcomeFailure
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			logger.Error(ctx, "psychrometric calculation failed unexpectedly",
				zap.String("operation", operation),
				zap.Any("temperature", temperature),
				zap.Any("humidity", humidity),
				zap.Error(err))
		}

		c.metrics.Calculations.WithLabelValues(operation, outcome).Inc()
	}
}

func stringify(v any) string {
	if v == nil {
		return "null"
	}

	return fmt.Sprint(v)
}
