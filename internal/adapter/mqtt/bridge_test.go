package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"psychrometer/internal/calculator"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/metrics"
	"psychrometer/pkg/psychro"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.TestingEnvironment)
	m.Run()
}

type fakeToken struct{ err error }

func (t fakeToken) Wait() bool                     { return true }
func (t fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t fakeToken) Error() error                   { return t.err }
func (t fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)

	return ch
}

type published struct {
	topic   string
	payload []byte
}

// fakeClient records publishes; the embedded interface panics on anything
// else the bridge is not expected to call.
type fakeClient struct {
	pahomqtt.Client

	mu         sync.Mutex
	published  []published
	publishErr error
}

func (c *fakeClient) Publish(topic string, _ byte, _ bool, payload any) pahomqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, _ := payload.([]byte)
	c.published = append(c.published, published{topic: topic, payload: data})

	return fakeToken{err: c.publishErr}
}

func ptr[T any](v T) *T { return &v }

var now = time.Date(2025, 6, 1, 12, 0, 5, 0, time.UTC)

func newTestBridge(t *testing.T) (*Bridge, *fakeClient) {
	t.Helper()

	engine, err := psychro.New()
	require.NoError(t, err)

	client := &fakeClient{}
	b := newBridge(client, calculator.New(engine, metrics.NewCalculatorForTesting()), Options{
		Topic: "weather/+/telemetry",
		QoS:   1,
		Clock: clockwork.NewFakeClockAt(now),
	})

	return b, client
}

func TestBridge_DerivedTopic(t *testing.T) {
	b, _ := newTestBridge(t)

	require.Equal(t, "weather/st-1/telemetry/derived", b.DerivedTopic("weather/st-1/telemetry"))
}

func TestBridge_Derive(t *testing.T) {
	b, _ := newTestBridge(t)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       domain.Telemetry
		wantNil  bool
		wantKind error
	}{
		{name: "missing humidity", in: domain.Telemetry{StationID: "st-1", Temperature: ptr(20.0)}, wantNil: true},
		{name: "missing temperature", in: domain.Telemetry{StationID: "st-1", Humidity: ptr(50.0)}, wantNil: true},
		{
			name:     "out of range",
			in:       domain.Telemetry{StationID: "st-1", Temperature: ptr(20.0), Humidity: ptr(120.0)},
			wantKind: psychro.ErrOutOfRange,
		},
		{name: "complete", in: domain.Telemetry{StationID: "st-1", Timestamp: ts, Temperature: ptr(20.0), Humidity: ptr(50.4)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Derive(context.Background(), tt.in)
			if tt.wantKind != nil {
				require.ErrorIs(t, err, tt.wantKind)

				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				require.Nil(t, got)

				return
			}
			require.NotNil(t, got)
			require.Equal(t, "st-1", got.StationID)
			require.Equal(t, ts, got.Timestamp)
			require.Equal(t, now, got.ProcessedAt)
			require.Equal(t, 50, got.Humidity)
			require.InDelta(t, 8.64, *got.AbsoluteHumidity, 1e-9)
		})
	}
}

func TestBridge_HandleMessage(t *testing.T) {
	tests := []struct {
		name        string
		topic       string
		payload     string
		wantPublish bool
	}{
		{
			name:        "publishes derived telemetry",
			topic:       "weather/st-1/telemetry",
			payload:     `{"station_id":"st-1","timestamp":"2025-06-01T12:00:00Z","temperature_c":20,"humidity_pct":50,"pressure_hpa":1013}`,
			wantPublish: true,
		},
		{name: "ignores incomplete telemetry", topic: "weather/st-1/telemetry", payload: `{"station_id":"st-1","temperature_c":20}`},
		{name: "ignores invalid json", topic: "weather/st-1/telemetry", payload: `{`},
		{name: "ignores engine errors", topic: "weather/st-1/telemetry", payload: `{"station_id":"st-1","temperature_c":-243.5,"humidity_pct":50}`},
		{name: "ignores derived topics", topic: "weather/st-1/telemetry/derived", payload: `{"station_id":"st-1","temperature_c":20,"humidity_pct":50}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, client := newTestBridge(t)

			b.handleMessage(context.Background(), tt.topic, []byte(tt.payload))

			if !tt.wantPublish {
				require.Empty(t, client.published)

				return
			}
			require.Len(t, client.published, 1)
			require.Equal(t, "weather/st-1/telemetry/derived", client.published[0].topic)

			var got map[string]any
			require.NoError(t, json.Unmarshal(client.published[0].payload, &got))
			require.Equal(t, "st-1", got["station_id"])
			require.Equal(t, "2025-06-01T12:00:00Z", got["timestamp"])
			require.Equal(t, "2025-06-01T12:00:05Z", got["processed_at"])
			require.InDelta(t, 8.64, got["absolute_humidity"], 1e-9)
			require.Contains(t, got, "dewpoint")
			require.Contains(t, got, "units")
		})
	}
}

func TestBridge_PublishError(t *testing.T) {
	b, client := newTestBridge(t)
	client.publishErr = errors.New("not connected")

	err := b.publish(context.Background(), "weather/st-1/telemetry/derived", &domain.DerivedTelemetry{StationID: "st-1"})
	require.ErrorIs(t, err, client.publishErr)
}

func TestBridge_ConnectAfterDisconnect(t *testing.T) {
	b, _ := newTestBridge(t)
	b.client = nil
	b.Disconnect()

	require.ErrorIs(t, b.Connect(context.Background()), ErrStopped)
}
