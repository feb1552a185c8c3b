// Package pipeline enriches a stream of sensor readings with psychrometric
// properties. It runs an extract, transform and load loop over batches.
// Readings that cannot be enriched are skipped. No offset of a batch is
// committed before its enriched readings were loaded, since a commit moves
// the whole partition forward.
package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"psychrometer/internal/config"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"
	"psychrometer/pkg/psychro"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Message is one record read from the source.
type Message struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	// Commit marks the message as consumed. It may be nil.
	Commit func(ctx context.Context) error
}

// BatchExtractor reads up to batchSize messages from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]Message, error)
}

// Transformer converts a message into a derived reading.
type Transformer interface {
	Transform(ctx context.Context, msg Message) (domain.DerivedReading, error)
}

// BatchLoader writes derived readings to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, readings []domain.DerivedReading) error
}

// Options configure batching and the retry backoff of the loop.
type Options struct {
	BatchSize      int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		BatchSize:      cfg.Kafka.BatchSize,
		InitialBackoff: cfg.Kafka.InitialBackoff,
		MaxBackoff:     cfg.Kafka.MaxBackoff,
	}
}

const (
	defaultBatchSize      = 100
	defaultInitialBackoff = 200 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
)

// Pipeline orchestrates the extract-transform-load loop.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	metrics     *metrics.Pipeline
	opts        Options
	ready       atomic.Bool
}

func New(e BatchExtractor, t Transformer, l BatchLoader, m *metrics.Pipeline, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = defaultInitialBackoff
	}
	if opts.MaxBackoff < opts.InitialBackoff {
		opts.MaxBackoff = max(defaultMaxBackoff, opts.InitialBackoff)
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		metrics:     m,
		opts:        opts,
	}
}

// Ready reports whether at least one batch was loaded.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// CheckReadiness returns nil once the pipeline has loaded a batch.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not processed any readings yet")
	}

	return nil
}

// Run executes the loop until ctx is cancelled. It only returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	logger.Info(ctx, "pipeline started", zap.Int("batchSize", p.opts.BatchSize))
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	backoff := p.opts.InitialBackoff
	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "pipeline stopping", zap.Error(ctx.Err()))

			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff) {
			logger.Info(ctx, "pipeline stopping", zap.Error(ctx.Err()))

			return nil
		}
	}
}

// processBatch runs one cycle. It returns false when the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration) bool {
	start := p.opts.Clock.Now()

	batch, err := p.extractor.ExtractBatch(ctx, p.opts.BatchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		logger.Error(ctx, "extract batch failed", zap.Error(err))

		return p.backoffOrStop(ctx, backoff)
	}
	if len(batch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.ReadingsConsumed.Add(float64(len(batch)))
	p.metrics.BatchSize.Observe(float64(len(batch)))

	loaded, ok := p.transformAndLoad(ctx, batch, backoff)
	if !ok {
		return false
	}
	if loaded > 0 {
		p.metrics.BatchDuration.Observe(p.opts.Clock.Since(start).Seconds())
		p.ready.Store(true)
	}

	return true
}

// transformAndLoad enriches every message, loads the successes and then
// commits the whole batch in fetch order. A failed load is retried with
// backoff until it succeeds or ctx ends, so successful readings are never
// dropped.
func (p *Pipeline) transformAndLoad(ctx context.Context, batch []Message, backoff *time.Duration) (int, bool) {
	out := make([]domain.DerivedReading, 0, len(batch))

	for _, msg := range batch {
		reading, err := p.transformer.Transform(ctx, msg)
		if err != nil {
			code := psychro.Code(err)
			if code == "" {
				code = "DECODE"
			}
			logger.Warn(ctx, "transform failed, skipping reading",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset))
			p.metrics.TransformErrors.WithLabelValues(code).Inc()

			continue
		}
		p.metrics.ProcessingLatency.Observe(reading.ProcessedAt.Sub(reading.Timestamp).Seconds())
		out = append(out, reading)
	}

	if len(out) == 0 {
		p.commitAll(ctx, batch)

		return 0, true
	}

	for {
		err := p.loader.LoadBatch(ctx, out)
		if err == nil {
			break
		}
		p.metrics.LoadErrors.Inc()
		logger.Error(ctx, "load batch failed", zap.Error(err), zap.Int("batchSize", len(out)))
		if !p.backoffOrStop(ctx, backoff) {
			return 0, false
		}
	}
	*backoff = p.opts.InitialBackoff

	p.metrics.ReadingsProduced.Add(float64(len(out)))
	p.commitAll(ctx, batch)

	return len(out), true
}

// backoffOrStop sleeps for the current backoff and doubles it up to
// MaxBackoff. It returns false when ctx ended.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}

	select {
	case <-ctx.Done():
		return false
	case <-p.opts.Clock.After(*backoff):
	}
	*backoff = nextBackoff(*backoff, p.opts.MaxBackoff)

	return true
}

// commitAll commits batch in fetch order so offsets only move forward.
func (p *Pipeline) commitAll(ctx context.Context, batch []Message) {
	for _, msg := range batch {
		p.commit(ctx, msg)
	}
}

func (p *Pipeline) commit(ctx context.Context, msg Message) {
	if msg.Commit == nil {
		return
	}
	if err := msg.Commit(ctx); err != nil {
		logger.Warn(ctx, "commit offset failed",
			zap.Error(err),
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset))
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	return min(current*2, maxBackoff)
}
