package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"psychrometer/internal/config"
	"psychrometer/pkg/domain"

	kafkago "github.com/segmentio/kafka-go"
)

// Header keys set on every derived reading.
const (
	HeaderSensorID    = "sensor_id"
	HeaderProcessedAt = "processed_at"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces derived readings to the sink topic. It implements
// pipeline.BatchLoader.
type Writer struct {
	writer messageWriter
}

// NewWriter creates a producer for the configured sink topic. Messages are
// keyed by sensor ID so one sensor's readings stay ordered on a partition.
func NewWriter(cfg *config.Config) *Writer {
	return &Writer{writer: &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.SinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// LoadBatch publishes readings in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, readings []domain.DerivedReading) error {
	if len(readings) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, len(readings))
	for i := range readings {
		msg, err := serializeToMessage(readings[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}

	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write messages: %w", err)
	}

	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

func serializeToMessage(reading domain.DerivedReading) (kafkago.Message, error) {
	data, err := json.Marshal(reading)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize derived reading: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(reading.SensorID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderSensorID, Value: []byte(reading.SensorID)},
			{Key: HeaderProcessedAt, Value: []byte(reading.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
