package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"psychrometer/internal/calculator"
	"psychrometer/pkg/domain"

	"github.com/jonboulle/clockwork"
)

// rawReading is the JSON layout of the source topic. Numbers are kept as
// json.Number so the engine sees the original value.
type rawReading struct {
	SensorID    string    `json:"sensor_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature any       `json:"temperature"`
	Humidity    any       `json:"humidity"`
}

// ParseReading decodes a source message. The sensor ID falls back to the
// message key, the timestamp to the message time.
func ParseReading(msg Message) (domain.SensorReading, error) {
	var raw rawReading

	dec := json.NewDecoder(bytes.NewReader(msg.Value))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return domain.SensorReading{}, fmt.Errorf("could not decode reading: %w", err)
	}

	if raw.SensorID == "" {
		raw.SensorID = string(msg.Key)
	}
	if raw.SensorID == "" {
		return domain.SensorReading{}, fmt.Errorf("reading at offset %d has no sensor_id", msg.Offset)
	}
	if raw.Timestamp.IsZero() {
		raw.Timestamp = msg.Timestamp
	}

	return domain.SensorReading{
		SensorID:    raw.SensorID,
		Timestamp:   raw.Timestamp,
		Temperature: raw.Temperature,
		Humidity:    raw.Humidity,
	}, nil
}

// Enricher implements Transformer with the psychrometric calculator.
type Enricher struct {
	calc  calculator.Calculator
	clock clockwork.Clock
}

// NewEnricher creates an Enricher. A nil clock uses the real clock.
func NewEnricher(calc calculator.Calculator, clock clockwork.Clock) *Enricher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Enricher{calc: calc, clock: clock}
}

func (e *Enricher) Transform(ctx context.Context, msg Message) (domain.DerivedReading, error) {
	reading, err := ParseReading(msg)
	if err != nil {
		return domain.DerivedReading{}, err
	}

	props, err := e.calc.Properties(ctx, reading.Temperature, reading.Humidity)
	if err != nil {
		return domain.DerivedReading{}, fmt.Errorf("sensor %s: %w", reading.SensorID, err)
	}

	return domain.DerivedReading{
		SensorID:    reading.SensorID,
		Timestamp:   reading.Timestamp,
		ProcessedAt: e.clock.Now().UTC(),
		Properties:  props,
	}, nil
}
