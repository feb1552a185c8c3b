package domain

import (
	"time"

	"psychrometer/pkg/psychro"
)

// SensorReading is a raw measurement from the stream. Temperature and
// Humidity keep their decoded dynamic values so the engine can classify
// malformed input.
type SensorReading struct {
	SensorID    string
	Timestamp   time.Time
	Temperature any
	Humidity    any
}

// DerivedReading is a sensor reading enriched with its psychrometric
// properties.
type DerivedReading struct {
	SensorID    string    `json:"sensor_id"`
	Timestamp   time.Time `json:"timestamp"`
	ProcessedAt time.Time `json:"processed_at"`
	psychro.Properties
}

// Telemetry is one weather station message. Only temperature and humidity
// are used; the other measurements are passed through.
type Telemetry struct {
	StationID   string    `json:"station_id"`
	Timestamp   time.Time `json:"timestamp"`
	Temperature *float64  `json:"temperature_c,omitempty"`
	Humidity    *float64  `json:"humidity_pct,omitempty"`
	Pressure    *float64  `json:"pressure_hpa,omitempty"`
	Battery     *float64  `json:"battery_v,omitempty"`
	Sequence    *int      `json:"sequence,omitempty"`
}

// DerivedTelemetry is published next to the station topic.
type DerivedTelemetry struct {
	StationID   string    `json:"station_id"`
	Timestamp   time.Time `json:"timestamp"`
	ProcessedAt time.Time `json:"processed_at"`
	psychro.Properties
}
