package worker

import (
	"context"
	"errors"
	"fmt"

	"psychrometer/internal/batch"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/serrors"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// BatchWorker is the river worker for batch.JobArgs.
//
// A batch that is no longer pending (deleted, or completed by an earlier
// attempt) cancels the job. Any other failure is recorded on the batch and
// returned so river retries it; the batch turns FAILED after its last
// attempt.
type BatchWorker struct {
	river.WorkerDefaults[batch.JobArgs]

	service batch.Service
}

// NewBatchWorker constructs a BatchWorker using the provided service.
func NewBatchWorker(service batch.Service) *BatchWorker {
	return &BatchWorker{service: service}
}

// Work processes the batch referenced by job.
func (w *BatchWorker) Work(ctx context.Context, job *river.Job[batch.JobArgs]) error {
	batchID := domain.BatchID(job.Args.BatchID)
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.Stringer("batchID", batchID),
		zap.Int("attempt", job.Attempt))

	res, err := w.service.Process(ctx, batchID)
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) {
			logger.Info(ctx, "batch is not pending anymore, cancelling job", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in processing batch", zap.Error(err))

		if ferr := w.service.Fail(ctx, batchID, err); ferr != nil {
			logger.Warn(ctx, "could not record batch failure", zap.Error(ferr))
		}

		return fmt.Errorf("could not process batch: %w", err)
	}

	logger.Info(ctx, "batch processed",
		zap.Int("items", len(res.Items)),
		zap.Int("failures", res.Failures()))

	return nil
}
