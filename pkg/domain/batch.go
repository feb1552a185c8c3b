package domain

import (
	"time"

	"psychrometer/pkg/psychro"

	"github.com/google/uuid"
)

// BatchID uniquely identifies a batch calculation.
type BatchID uuid.UUID

// String returns the canonical UUID form.
func (id BatchID) String() string { return uuid.UUID(id).String() }

// BatchStatus represents the lifecycle state of a batch.
type BatchStatus string

const (
	// BatchStatusPending indicates the batch is stored and waiting for a worker.
	BatchStatusPending BatchStatus = "PENDING"
	// BatchStatusCompleted indicates every reading has been processed.
	BatchStatusCompleted BatchStatus = "COMPLETED"
	// BatchStatusFailed indicates the batch could not be processed within its
	// retry budget; see LastError.
	BatchStatusFailed BatchStatus = "FAILED"
)

// Valid reports whether s is a known status. The empty status is not valid.
func (s BatchStatus) Valid() bool {
	switch s {
	case BatchStatusPending, BatchStatusCompleted, BatchStatusFailed:
		return true
	default:
		return false
	}
}

// Reading is one temperature and relative humidity sample.
type Reading struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
}

// ItemError is the error recorded for a reading the engine rejected.
type ItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BatchItem is the outcome of one reading. Exactly one of Properties and
// Error is set.
type BatchItem struct {
	Index      int                 `json:"index"`
	Reading    Reading             `json:"reading"`
	Properties *psychro.Properties `json:"properties,omitempty"`
	Error      *ItemError          `json:"error,omitempty"`
}

// Batch is a set of readings submitted together and processed in the
// background.
type Batch struct {
	ID      BatchID `json:"id"`
	OwnerID OwnerID `json:"ownerId"`

	Status   BatchStatus `json:"status"`
	Readings []Reading   `json:"readings"`
	// Items is empty until the batch is completed.
	Items []BatchItem `json:"items"`

	// Attempts is the number of failed processing attempts.
	Attempts uint `json:"attempts"`
	// LastError is the most recent processing failure.
	LastError string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `json:"-"`
}

// Failures returns the number of items the engine rejected.
func (b *Batch) Failures() int {
	n := 0
	for i := range b.Items {
		if b.Items[i].Error != nil {
			n++
		}
	}

	return n
}
