package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs next to the domain rows they refer to.
// Implementations must honour a surrounding transaction so that a job only
// becomes visible together with the batch it processes.
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. It reports false
	// when the job was skipped as a duplicate of an existing unique job.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
