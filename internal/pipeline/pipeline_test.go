package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"psychrometer/internal/calculator"
	"psychrometer/internal/pipeline"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"
	"psychrometer/pkg/psychro"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.TestingEnvironment)
	m.Run()
}

type fakeExtractor struct {
	batches [][]pipeline.Message
	index   atomic.Int64
}

func (f *fakeExtractor) ExtractBatch(ctx context.Context, _ int) ([]pipeline.Message, error) {
	i := int(f.index.Add(1) - 1)
	if i >= len(f.batches) {
		// no more input: wait like a consumer on an idle topic
		<-ctx.Done()

		return nil, ctx.Err()
	}

	return f.batches[i], nil
}

type fakeLoader struct {
	mu       sync.Mutex
	failures int
	calls    int
	loaded   []domain.DerivedReading
	done     chan struct{}
}

func newFakeLoader(failures int) *fakeLoader {
	return &fakeLoader{failures: failures, done: make(chan struct{})}
}

func (f *fakeLoader) LoadBatch(_ context.Context, readings []domain.DerivedReading) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.calls <= f.failures {
		return errors.New("broker unavailable")
	}
	f.loaded = append(f.loaded, readings...)
	close(f.done)

	return nil
}

type committed struct {
	mu      sync.Mutex
	offsets []int64
}

func (c *committed) message(offset int64, value string) pipeline.Message {
	return pipeline.Message{
		Key:    []byte("sensor-1"),
		Value:  []byte(value),
		Topic:  "raw-readings",
		Offset: offset,
		Commit: func(context.Context) error {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.offsets = append(c.offsets, offset)

			return nil
		},
	}
}

func (c *committed) get() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]int64(nil), c.offsets...)
}

var processedAt = time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)

func newEnricher(t *testing.T, clock clockwork.Clock) *pipeline.Enricher {
	t.Helper()

	engine, err := psychro.New()
	require.NoError(t, err)

	return pipeline.NewEnricher(calculator.New(engine, metrics.NewCalculatorForTesting()), clock)
}

func TestPipeline_Run_SkipsInvalidAndCommitsAfterLoad(t *testing.T) {
	clock := clockwork.NewFakeClockAt(processedAt)
	var commits committed
	ext := &fakeExtractor{batches: [][]pipeline.Message{{
		commits.message(1, `{"sensor_id": "sensor-1", "timestamp": "2025-06-01T12:00:00Z", "temperature": 20, "humidity": 50}`),
		commits.message(2, `{"sensor_id": "sensor-1", "temperature": 20, "humidity": 101}`),
		commits.message(3, `not json`),
	}}}
	ldr := newFakeLoader(0)
	m := metrics.NewPipelineForTesting()

	p := pipeline.New(ext, newEnricher(t, clock), ldr, m, pipeline.Options{BatchSize: 10, Clock: clock})
	require.False(t, p.Ready())
	require.Error(t, p.CheckReadiness(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	select {
	case <-ldr.done:
	case <-time.After(5 * time.Second):
		t.Fatal("batch was not loaded")
	}
	require.Eventually(t, func() bool { return len(commits.get()) == 3 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-errCh)

	require.True(t, p.Ready())
	require.NoError(t, p.CheckReadiness(context.Background()))
	require.Equal(t, []int64{1, 2, 3}, commits.get())
	require.Len(t, ldr.loaded, 1)

	got := ldr.loaded[0]
	require.Equal(t, "sensor-1", got.SensorID)
	require.Equal(t, processedAt, got.ProcessedAt)
	require.NotNil(t, got.AbsoluteHumidity)
	require.InDelta(t, 8.64, *got.AbsoluteHumidity, 1e-9)

	require.InDelta(t, 3.0, testutil.ToFloat64(m.ReadingsConsumed), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.ReadingsProduced), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.TransformErrors.WithLabelValues("OUT_OF_RANGE")), 1e-9)
	require.InDelta(t, 1.0, testutil.ToFloat64(m.TransformErrors.WithLabelValues("DECODE")), 1e-9)
	require.InDelta(t, 0.0, testutil.ToFloat64(m.PipelineRunning), 1e-9)
}

func TestPipeline_Run_BacksOffOnLoadFailure(t *testing.T) {
	clock := clockwork.NewFakeClockAt(processedAt)
	var commits committed
	ext := &fakeExtractor{batches: [][]pipeline.Message{{
		commits.message(7, `{"sensor_id": "sensor-1", "temperature": 25, "humidity": 60}`),
	}}}
	ldr := newFakeLoader(2)
	m := metrics.NewPipelineForTesting()

	p := pipeline.New(ext, newEnricher(t, clock), ldr, m, pipeline.Options{
		BatchSize:      1,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     time.Second,
		Clock:          clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()

	// first retry waits 200ms, the second 400ms
	for _, d := range []time.Duration{200 * time.Millisecond, 400 * time.Millisecond} {
		require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
		require.Empty(t, commits.get(), "nothing is committed before the load succeeds")
		clock.Advance(d)
	}

	select {
	case <-ldr.done:
	case <-waitCtx.Done():
		t.Fatal("batch was not loaded after backoff")
	}
	require.Eventually(t, func() bool { return len(commits.get()) == 1 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-errCh)

	require.Equal(t, 3, ldr.calls)
	require.InDelta(t, 2.0, testutil.ToFloat64(m.LoadErrors), 1e-9)
	require.True(t, p.Ready())
}

func TestPipeline_Run_SkippedReadingsWaitForLoad(t *testing.T) {
	clock := clockwork.NewFakeClockAt(processedAt)
	var commits committed
	ext := &fakeExtractor{batches: [][]pipeline.Message{{
		commits.message(1, `{"sensor_id": "sensor-1", "temperature": 20, "humidity": 50}`),
		commits.message(2, `{"sensor_id": "sensor-1", "temperature": 20, "humidity": 101}`),
	}}}
	ldr := newFakeLoader(1 << 30)

	p := pipeline.New(ext, newEnricher(t, clock), ldr, metrics.NewPipelineForTesting(), pipeline.Options{
		BatchSize:      2,
		InitialBackoff: time.Second,
		MaxBackoff:     time.Second,
		Clock:          clock,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	waitCtx, waitCancel := context.WithTimeout(ctx, 5*time.Second)
	defer waitCancel()

	// the sink is down: the pipeline sits in its first backoff
	require.NoError(t, clock.BlockUntilContext(waitCtx, 1))
	cancel()
	require.NoError(t, <-errCh)

	require.Empty(t, commits.get(), "offset 2 would also commit the unloaded offset 1")
	require.Empty(t, ldr.loaded)
	require.False(t, p.Ready())
}

func TestPipeline_Run_CommitsBatchWithoutValidReadings(t *testing.T) {
	var commits committed
	ext := &fakeExtractor{batches: [][]pipeline.Message{{
		commits.message(4, `not json`),
		commits.message(5, `{"sensor_id": "sensor-1", "temperature": "hot", "humidity": 50}`),
	}}}
	ldr := newFakeLoader(0)

	p := pipeline.New(ext, newEnricher(t, nil), ldr, metrics.NewPipelineForTesting(), pipeline.Options{BatchSize: 2})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(ctx) }()

	require.Eventually(t, func() bool { return len(commits.get()) == 2 }, 5*time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-errCh)

	require.Equal(t, []int64{4, 5}, commits.get())
	require.Zero(t, ldr.calls)
}

func TestPipeline_Run_StopsOnCancel(t *testing.T) {
	ldr := newFakeLoader(0)
	p := pipeline.New(&fakeExtractor{}, newEnricher(t, nil), ldr, metrics.NewPipelineForTesting(), pipeline.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, p.Run(ctx))
	require.Zero(t, ldr.calls)
	require.False(t, p.Ready())
}

func TestParseReading(t *testing.T) {
	msgTime := time.Date(2025, 6, 1, 11, 59, 0, 0, time.UTC)

	tests := []struct {
		name    string
		msg     pipeline.Message
		want    domain.SensorReading
		wantErr bool
	}{
		{
			name: "full reading",
			msg: pipeline.Message{Value: []byte(
				`{"sensor_id": "s-9", "timestamp": "2025-06-01T12:00:00Z", "temperature": 21.5, "humidity": 40}`)},
			want: domain.SensorReading{
				SensorID:    "s-9",
				Timestamp:   time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
				Temperature: json.Number("21.5"),
				Humidity:    json.Number("40"),
			},
		},
		{
			name: "falls back to key and message time",
			msg: pipeline.Message{
				Key:       []byte("s-key"),
				Timestamp: msgTime,
				Value:     []byte(`{"temperature": "hot", "humidity": null}`),
			},
			want: domain.SensorReading{SensorID: "s-key", Timestamp: msgTime, Temperature: "hot"},
		},
		{name: "missing sensor", msg: pipeline.Message{Value: []byte(`{"temperature": 1, "humidity": 2}`)}, wantErr: true},
		{name: "invalid json", msg: pipeline.Message{Value: []byte(`{`)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pipeline.ParseReading(tt.msg)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseReading() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
