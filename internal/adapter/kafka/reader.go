// Package kafka connects the stream pipeline to Kafka: Reader extracts raw
// readings from the source topic, Writer loads derived readings into the
// sink topic.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"psychrometer/internal/config"
	"psychrometer/internal/pipeline"

	kafkago "github.com/segmentio/kafka-go"
)

// fetcher is the part of *kafkago.Reader used by Reader.
type fetcher interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Reader consumes the source topic within a consumer group. It implements
// pipeline.BatchExtractor; offsets are committed per message through
// pipeline.Message.Commit.
type Reader struct {
	reader       fetcher
	batchTimeout time.Duration
}

// NewReader creates a consumer for the configured source topic.
func NewReader(cfg *config.Config) *Reader {
	return &Reader{
		reader: kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.SourceTopic,
			GroupID:  cfg.Kafka.GroupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		batchTimeout: cfg.Kafka.BatchTimeout,
	}
}

// ExtractBatch blocks for the first message, then collects up to batchSize
// messages for at most the batch timeout.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]pipeline.Message, error) {
	first, err := r.reader.FetchMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch message: %w", err)
	}
	batch := make([]pipeline.Message, 0, batchSize)
	batch = append(batch, r.toMessage(first))

	fillCtx, cancel := context.WithTimeout(ctx, r.batchTimeout)
	defer cancel()

	for len(batch) < batchSize {
		msg, err := r.reader.FetchMessage(fillCtx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			if ctx.Err() != nil {
				return batch, nil
			}

			return batch, fmt.Errorf("fetch message: %w", err)
		}
		batch = append(batch, r.toMessage(msg))
	}

	return batch, nil
}

func (r *Reader) Close() error {
	return r.reader.Close()
}

func (r *Reader) toMessage(msg kafkago.Message) pipeline.Message {
	out := mapMessage(msg)
	out.Commit = func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}

	return out
}

// mapMessage converts a Kafka message without its commit callback.
func mapMessage(msg kafkago.Message) pipeline.Message {
	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}

	return pipeline.Message{
		Key:       msg.Key,
		Value:     msg.Value,
		Headers:   headers,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
	}
}
