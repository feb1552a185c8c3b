// Package metrics declares the Prometheus collectors shared by the API,
// batch worker and stream processors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// calculationBuckets are tuned for sub-millisecond engine calls.
var calculationBuckets = []float64{.00001, .00005, .0001, .0005, .001, .005, .01} //nolint: gochecknoglobals

// Outcome labels for calculation counters.
const (
	OutcomeSuccess    = "success"
	OutcomeInputFault = "input_fault"
	OutcomeFailure    = "failure"
)

// Calculator holds the collectors recorded around every engine call.
type Calculator struct {
	Calculations        *prometheus.CounterVec
	CalculationDuration *prometheus.HistogramVec
}

// NewCalculator creates the calculator collectors and registers them with reg.
func NewCalculator(reg prometheus.Registerer) *Calculator {
	m := newCalculator()
	reg.MustRegister(m.Calculations, m.CalculationDuration)

	return m
}

// NewCalculatorForTesting creates unregistered collectors so tests can build
// several calculators without duplicate registration panics.
func NewCalculatorForTesting() *Calculator {
	return newCalculator()
}

func newCalculator() *Calculator {
	return &Calculator{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "psychro",
			Name:      "calculations_total",
			Help:      "Psychrometric calculations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		CalculationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "psychro",
			Name:      "calculation_duration_seconds",
			Help:      "Time spent in the psychrometric engine per call.",
			Buckets:   calculationBuckets,
		}, []string{"operation"}),
	}
}

// Pipeline holds the collectors of the Kafka stream pipeline.
type Pipeline struct {
	ReadingsConsumed  prometheus.Counter
	ReadingsProduced  prometheus.Counter
	TransformErrors   *prometheus.CounterVec
	LoadErrors        prometheus.Counter
	PipelineRunning   prometheus.Gauge
	BatchSize         prometheus.Histogram
	BatchDuration     prometheus.Histogram
	ProcessingLatency prometheus.Histogram
}

// NewPipeline creates the pipeline collectors and registers them with reg.
func NewPipeline(reg prometheus.Registerer) *Pipeline {
	m := newPipeline()
	reg.MustRegister(
		m.ReadingsConsumed,
		m.ReadingsProduced,
		m.TransformErrors,
		m.LoadErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchDuration,
		m.ProcessingLatency,
	)

	return m
}

// NewPipelineForTesting creates unregistered pipeline collectors.
func NewPipelineForTesting() *Pipeline {
	return newPipeline()
}

func newPipeline() *Pipeline {
	const ns = "psychro_stream"

	return &Pipeline{
		ReadingsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "readings_consumed_total",
			Help:      "Raw readings read from the source topic.",
		}),
		ReadingsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "readings_produced_total",
			Help:      "Derived readings written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "transform_errors_total",
			Help:      "Readings skipped during enrichment, by error code.",
		}, []string{"code"}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "load_errors_total",
			Help:      "Failed attempts to write a batch to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "running",
			Help:      "1 while the pipeline loop is running.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "batch_size",
			Help:      "Readings per extracted batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 11),
		}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "batch_duration_seconds",
			Help:      "Time to extract, transform and load one batch.",
			Buckets:   DefaultBuckets,
		}),
		ProcessingLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "processing_latency_seconds",
			Help:      "Delay between a reading's timestamp and its enrichment.",
			Buckets:   DefaultBuckets,
		}),
	}
}
