package storage

import (
	"context"
	"time"

	"psychrometer/pkg/domain"
)

// BatchUpdates describes the fields applied to a pending batch. Only set
// fields are written.
type BatchUpdates struct {
	// Status is the new status to set for the batch.
	Status domain.BatchStatus
	// Items, when not nil, replaces the stored item outcomes.
	Items []domain.BatchItem
	// LastError, when provided, sets the last error text. An empty string value
	// clears it (set to NULL).
	LastError *string
	// MaxAttempts guards a Failed status: attempts is incremented and the
	// status only becomes Failed once attempts reaches MaxAttempts. Until then
	// the batch stays Pending. A value <= 0 disables the guard.
	MaxAttempts int
}

// BatchCursor is the (created_at, id) position of the last batch of a page.
// Batches created at the same instant are told apart by ID.
type BatchCursor struct {
	CreatedAt time.Time
	ID        domain.BatchID
}

// OwnerBatches groups a page of batches returned for an owner together with
// an optional NextCursor used for pagination.
type OwnerBatches struct {
	// Batches contains the current page of batch records.
	Batches []domain.Batch
	// NextCursor points to the last batch of this page and is used as the
	// cursor for fetching the next page. It is nil when there is no next page.
	NextCursor *BatchCursor
}

// BatchStorage defines CRUD and query operations related to batches.
// Soft-deleted batches are invisible to every query.
type BatchStorage interface {
	// StoreBatches inserts one or more batches and returns the stored rows as
	// they exist in the database (including generated fields).
	StoreBatches(ctx context.Context, batches ...domain.Batch) ([]domain.Batch, error)
	// UpdatePendingBatchByID applies updates to a pending batch and returns the
	// updated row, or nil when no pending batch with that ID exists.
	// updated_at is set automatically.
	UpdatePendingBatchByID(ctx context.Context, ID domain.BatchID, updates BatchUpdates) (*domain.Batch, error)
	// PendingBatchByID fetches a pending batch regardless of its owner. Returns
	// nil when the batch is missing, deleted or no longer pending.
	PendingBatchByID(ctx context.Context, ID domain.BatchID) (*domain.Batch, error)
	// DeleteBatch performs a soft delete for the given batch ID and owner ID
	// and returns the deleted batch, or nil if it was not found.
	DeleteBatch(ctx context.Context, ownerID domain.OwnerID, ID domain.BatchID) (*domain.Batch, error)
	// OwnerBatches returns a page of batches for an owner ordered after the
	// optional cursor, limited by the given limit. If status is non-empty,
	// results are filtered to records with the given status.
	OwnerBatches(ctx context.Context,
		ownerID domain.OwnerID,
		status domain.BatchStatus,
		cursor *BatchCursor,
		limit uint) (OwnerBatches, error)
	// BatchByID fetches a batch by its ID for the given owner. Returns nil when
	// not found.
	BatchByID(ctx context.Context, ownerID domain.OwnerID, ID domain.BatchID) (*domain.Batch, error)
}
