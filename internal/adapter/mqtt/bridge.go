// Package mqtt bridges weather station telemetry: it subscribes to station
// topics, derives psychrometric properties and publishes them next to the
// source topic.
package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"psychrometer/internal/calculator"
	"psychrometer/internal/config"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/psychro"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	publishTimeout   = 5 * time.Second
	subscribeTimeout = 5 * time.Second
)

// ErrStopped is returned by Connect after Disconnect.
var ErrStopped = errors.New("mqtt bridge stopped")

// Options configure the broker connection and topics.
type Options struct {
	Broker   string
	Port     int
	ClientID string
	Username string
	Password string
	// Topic is the subscription filter, e.g. "weather/+/telemetry".
	Topic string
	// DerivedSuffix is appended to the source topic of derived messages.
	DerivedSuffix string
	QoS           byte
	// Clock stamps processed_at; it defaults to the real clock.
	Clock clockwork.Clock
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Broker:        cfg.MQTT.Broker,
		Port:          cfg.MQTT.Port,
		ClientID:      cfg.MQTT.ClientID,
		Username:      cfg.MQTT.Username,
		Password:      cfg.MQTT.Password,
		Topic:         cfg.MQTT.Topic,
		DerivedSuffix: cfg.MQTT.DerivedSuffix,
		QoS:           byte(cfg.MQTT.QoS), //nolint: gosec
	}
}

// Bridge subscribes to telemetry and republishes derived properties.
type Bridge struct {
	client pahomqtt.Client
	calc   calculator.Calculator
	opts   Options

	mu        sync.RWMutex
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewBridge creates a Bridge with an auto-reconnecting paho client.
func NewBridge(calc calculator.Calculator, opts Options) *Bridge {
	b := newBridge(nil, calc, opts)

	clientOpts := pahomqtt.NewClientOptions()
	clientOpts.AddBroker(fmt.Sprintf("tcp://%s:%d", opts.Broker, opts.Port))
	clientOpts.SetClientID(opts.ClientID)
	if opts.Username != "" {
		clientOpts.SetUsername(opts.Username)
		clientOpts.SetPassword(opts.Password)
	}

	clientOpts.SetCleanSession(true)
	clientOpts.SetAutoReconnect(true)
	clientOpts.SetConnectRetry(true)
	clientOpts.SetConnectRetryInterval(5 * time.Second)
	clientOpts.SetMaxReconnectInterval(60 * time.Second)
	clientOpts.SetKeepAlive(30 * time.Second)
	clientOpts.SetPingTimeout(10 * time.Second)

	ctx := context.Background()
	clientOpts.SetOnConnectHandler(func(c pahomqtt.Client) {
		b.setConnected(true)
		logger.Info(ctx, "mqtt connected", zap.String("broker", opts.Broker), zap.Int("port", opts.Port))

		// subscriptions do not survive a clean session reconnect
		if err := b.subscribe(ctx, c); err != nil {
			logger.Error(ctx, "could not subscribe to telemetry", zap.Error(err))
		}
	})
	clientOpts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		b.setConnected(false)
		logger.Warn(ctx, "mqtt connection lost", zap.Error(err))
	})

	b.client = pahomqtt.NewClient(clientOpts)

	return b
}

func newBridge(client pahomqtt.Client, calc calculator.Calculator, opts Options) *Bridge {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.DerivedSuffix == "" {
		opts.DerivedSuffix = "derived"
	}

	return &Bridge{
		client: client,
		calc:   calc,
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Connect waits for the broker connection. Subscribing happens in the
// on-connect handler so it is repeated after reconnects.
func (b *Bridge) Connect(ctx context.Context) error {
	select {
	case <-b.stopCh:
		return ErrStopped
	default:
	}

	if b.IsConnected() {
		return nil
	}

	token := b.client.Connect()

	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}

			return nil
		}

		select {
		case <-ctx.Done():
			b.client.Disconnect(0)

			return ctx.Err()
		case <-b.stopCh:
			b.client.Disconnect(0)

			return ErrStopped
		default:
		}
	}
}

func (b *Bridge) subscribe(ctx context.Context, c pahomqtt.Client) error {
	token := c.Subscribe(b.opts.Topic, b.opts.QoS, func(_ pahomqtt.Client, msg pahomqtt.Message) {
		b.handleMessage(ctx, msg.Topic(), msg.Payload())
	})
	if !token.WaitTimeout(subscribeTimeout) {
		return fmt.Errorf("subscribe timeout for topic %s", b.opts.Topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("subscribe to %s: %w", b.opts.Topic, err)
	}

	logger.Info(ctx, "subscribed to telemetry", zap.String("topic", b.opts.Topic), zap.Uint8("qos", b.opts.QoS))

	return nil
}

// DerivedTopic returns the topic derived properties of topic are published to.
func (b *Bridge) DerivedTopic(topic string) string {
	return topic + "/" + b.opts.DerivedSuffix
}

// Derive computes the derived message of t. It returns nil when t lacks a
// temperature or a humidity.
func (b *Bridge) Derive(ctx context.Context, t domain.Telemetry) (*domain.DerivedTelemetry, error) {
	if t.Temperature == nil || t.Humidity == nil {
		return nil, nil //nolint: nilnil
	}

	props, err := b.calc.Properties(ctx, *t.Temperature, *t.Humidity)
	if err != nil {
		return nil, fmt.Errorf("station %s: %w", t.StationID, err)
	}

	return &domain.DerivedTelemetry{
		StationID:   t.StationID,
		Timestamp:   t.Timestamp,
		ProcessedAt: b.opts.Clock.Now().UTC(),
		Properties:  props,
	}, nil
}

func (b *Bridge) handleMessage(ctx context.Context, topic string, payload []byte) {
	if strings.HasSuffix(topic, "/"+b.opts.DerivedSuffix) {
		return
	}
	ctx = logger.WithFields(ctx, zap.String("topic", topic))

	var t domain.Telemetry
	if err := json.Unmarshal(payload, &t); err != nil {
		logger.Warn(ctx, "could not parse telemetry", zap.Error(err), zap.Int("size", len(payload)))

		return
	}

	derived, err := b.Derive(ctx, t)
	switch {
	case err != nil && psychro.Code(err) != "":
		logger.Warn(ctx, "telemetry rejected by the engine",
			zap.String("stationID", t.StationID), zap.String("code", psychro.Code(err)), zap.Error(err))

		return
	case err != nil:
		logger.Error(ctx, "could not derive telemetry", zap.String("stationID", t.StationID), zap.Error(err))

		return
	case derived == nil:
		logger.Debug(ctx, "ignoring telemetry without temperature and humidity", zap.String("stationID", t.StationID))

		return
	}

	if err := b.publish(ctx, b.DerivedTopic(topic), derived); err != nil {
		logger.Error(ctx, "could not publish derived telemetry", zap.Error(err))
	}
}

func (b *Bridge) publish(ctx context.Context, topic string, derived *domain.DerivedTelemetry) error {
	data, err := json.Marshal(derived)
	if err != nil {
		return fmt.Errorf("marshal derived telemetry: %w", err)
	}

	token := b.client.Publish(topic, b.opts.QoS, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	logger.Debug(ctx, "published derived telemetry", zap.String("derivedTopic", topic))

	return nil
}

// IsConnected returns whether the client is connected.
func (b *Bridge) IsConnected() bool {
	b.mu.RLock()
	connected := b.connected
	b.mu.RUnlock()

	return connected && b.client.IsConnected()
}

// Disconnect stops the bridge. It is safe to call more than once.
func (b *Bridge) Disconnect() {
	b.stopOnce.Do(func() { close(b.stopCh) })

	if b.client != nil && b.IsConnected() {
		b.client.Unsubscribe(b.opts.Topic).WaitTimeout(2 * time.Second)
	}
	if b.client != nil {
		b.client.Disconnect(250)
	}

	b.setConnected(false)
	logger.Info(context.Background(), "mqtt bridge disconnected")
}

func (b *Bridge) setConnected(v bool) {
	b.mu.Lock()
	b.connected = v
	b.mu.Unlock()
}
