package batch

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// JobArgs identifies the batch a river job processes. BatchID is the unique
// key, so a batch is never queued twice while an earlier job is still alive.
type JobArgs struct {
	BatchID uuid.UUID `json:"batch_id" river:"unique"`

	maxAttempts int
}

// Kind returns the river job kind the batch worker is registered under.
func (args JobArgs) Kind() string { return "PsychroBatchJob" }

// InsertOpts caps retries at the configured attempts and deduplicates jobs
// per batch across every non-final state.
func (args JobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
