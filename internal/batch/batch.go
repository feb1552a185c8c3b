// Package batch stores groups of readings and computes their properties in
// the background. A batch and its river job are written in one transaction;
// the worker later fills in one item per reading.
package batch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"psychrometer/internal/calculator"
	"psychrometer/internal/config"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/psychro"
	"psychrometer/pkg/serrors"
	"psychrometer/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the page size used when the caller does not pass one.
	DefaultLimit = 20
	// MaxLimit caps the page size of OwnerBatches.
	MaxLimit = 100
)

// Options configure how batches are accepted and retried.
type Options struct {
	// MaxAttempts is the number of processing attempts before a batch is
	// marked failed.
	MaxAttempts int
	// MaxReadings caps the readings accepted in one batch.
	MaxReadings int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Batch.MaxAttempts,
		MaxReadings: cfg.Batch.MaxReadings,
	}
}

type service struct {
	options    Options
	storage    storage.Storage
	calculator calculator.Calculator
}

// New creates a batch Service backed by the provided storage and calculator.
func New(storage storage.Storage, calc calculator.Calculator, options Options) Service {
	return &service{
		options:    options,
		storage:    storage,
		calculator: calc,
	}
}

// Submit stores a pending batch for ownerID and enqueues the job that
// processes it. Both writes share one transaction.
func (s *service) Submit(ctx context.Context, ownerID domain.OwnerID, readings []domain.Reading) (*domain.Batch, error) {
	if len(readings) == 0 {
		return nil, serrors.With(serrors.ErrBadRequest, "batch has no readings")
	}
	if s.options.MaxReadings > 0 && len(readings) > s.options.MaxReadings {
		return nil, serrors.With(serrors.ErrBadRequest,
			"batch has %d readings, at most %d are accepted", len(readings), s.options.MaxReadings)
	}

	var batch *domain.Batch
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		res, err := tx.StoreBatches(ctx, domain.Batch{
			OwnerID:  ownerID,
			Status:   domain.BatchStatusPending,
			Readings: readings,
		})
		if err != nil {
			return fmt.Errorf("could not store batch: %w", err)
		}
		batch = &res[0]

		if _, err := tx.AddJob(ctx, JobArgs{
			BatchID:     uuid.UUID(batch.ID),
			maxAttempts: s.options.MaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not submit batch: %w", err)
	}

	logger.Info(ctx, "batch submitted",
		zap.Stringer("batchID", batch.ID),
		zap.Int("readings", len(readings)))

	return batch, nil
}

// OwnerBatches returns a page of batches for ownerID, newest first. The
// cursor is the opaque value returned with the previous page.
func (s *service) OwnerBatches(ctx context.Context,
	ownerID domain.OwnerID,
	status domain.BatchStatus,
	cursor string,
	limit uint) ([]domain.Batch, string, error) {
	if status != "" && !status.Valid() {
		return nil, "", serrors.With(serrors.ErrBadRequest, "unknown batch status %q", status)
	}

	var after *storage.BatchCursor
	if cursor != "" {
		c, err := parseCursor(cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		after = &c
	}

	switch {
	case limit == 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	page, err := s.storage.OwnerBatches(ctx, ownerID, status, after, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get owner batches: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = formatCursor(*page.NextCursor)
	}

	return page.Batches, next, nil
}

// cursorSep joins the creation time and the ID of a page cursor.
const cursorSep = "_"

func formatCursor(c storage.BatchCursor) string {
	return c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + c.ID.String()
}

func parseCursor(cursor string) (storage.BatchCursor, error) {
	ts, id, ok := strings.Cut(cursor, cursorSep)
	if !ok {
		return storage.BatchCursor{}, fmt.Errorf("missing %q separator", cursorSep)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return storage.BatchCursor{}, err
	}
	batchID, err := uuid.Parse(id)
	if err != nil {
		return storage.BatchCursor{}, err
	}

	return storage.BatchCursor{CreatedAt: createdAt, ID: domain.BatchID(batchID)}, nil
}

// Result fetches a single batch of ownerID.
func (s *service) Result(ctx context.Context, ownerID domain.OwnerID, batchID domain.BatchID) (*domain.Batch, error) {
	res, err := s.storage.BatchByID(ctx, ownerID, batchID)
	if err != nil {
		return nil, fmt.Errorf("could not get batch: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "batch not found")
	}

	return res, nil
}

// Delete soft-deletes a batch of ownerID. A queued job for a deleted batch
// is cancelled by the worker when it finds no pending batch.
func (s *service) Delete(ctx context.Context, ownerID domain.OwnerID, batchID domain.BatchID) error {
	res, err := s.storage.DeleteBatch(ctx, ownerID, batchID)
	if err != nil {
		return fmt.Errorf("could not delete batch: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "batch not found")
	}

	return nil
}

// Process computes every reading of a pending batch and marks it completed.
// Readings the engine rejects become item errors and do not fail the batch.
// It returns serrors.ErrConflict when the batch is no longer pending.
func (s *service) Process(ctx context.Context, batchID domain.BatchID) (*domain.Batch, error) {
	batch, err := s.storage.PendingBatchByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("could not load batch: %w", err)
	}
	if batch == nil {
		return nil, serrors.With(serrors.ErrConflict, "batch is no longer pending")
	}

	items := make([]domain.BatchItem, len(batch.Readings))
	for i, r := range batch.Readings {
		items[i] = domain.BatchItem{Index: i, Reading: r}

		props, err := s.calculator.Properties(ctx, r.Temperature, r.Humidity)
		if err != nil {
			items[i].Error = itemError(err)

			continue
		}
		items[i].Properties = &props
	}

	cleared := ""
	updated, err := s.storage.UpdatePendingBatchByID(ctx, batchID, storage.BatchUpdates{
		Status:    domain.BatchStatusCompleted,
		Items:     items,
		LastError: &cleared,
	})
	if err != nil {
		return nil, fmt.Errorf("could not complete batch: %w", err)
	}
	if updated == nil {
		return nil, serrors.With(serrors.ErrConflict, "batch was modified while processing")
	}

	return updated, nil
}

// Fail records a failed processing attempt. The batch turns FAILED once its
// attempts reach MaxAttempts.
func (s *service) Fail(ctx context.Context, batchID domain.BatchID, cause error) error {
	msg := cause.Error()
	if _, err := s.storage.UpdatePendingBatchByID(ctx, batchID, storage.BatchUpdates{
		Status:      domain.BatchStatusFailed,
		LastError:   &msg,
		MaxAttempts: s.options.MaxAttempts,
	}); err != nil {
		return fmt.Errorf("could not record batch failure: %w", err)
	}

	return nil
}

func itemError(err error) *domain.ItemError {
	code := psychro.Code(err)
	if code == "" {
		code = psychro.ErrCalculation.Error()
	}

	return &domain.ItemError{Code: code, Message: err.Error()}
}
