package batch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"psychrometer/internal/batch"
	mockcalculator "psychrometer/internal/calculator/mock"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/psychro"
	"psychrometer/pkg/serrors"
	"psychrometer/pkg/storage"
	mockstorage "psychrometer/pkg/storage/mock"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.TestingEnvironment)
	m.Run()
}

type fixture struct {
	ctrl    *gomock.Controller
	storage *mockstorage.MockStorage
	calc    *mockcalculator.MockCalculator
	service batch.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	calc := mockcalculator.NewMockCalculator(ctrl)

	return fixture{
		ctrl:    ctrl,
		storage: st,
		calc:    calc,
		service: batch.New(st, calc, batch.Options{MaxAttempts: 3, MaxReadings: 2}),
	}
}

// expectWithTx wires Storage.WithTx to run its callback against a MockAllStorage.
func (f fixture) expectWithTx(fn func(tx *mockstorage.MockAllStorage)) {
	f.storage.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(f.ctrl)
			fn(tx)

			return cb(tx)
		},
	)
}

var (
	owner    = domain.OwnerID(uuid.MustParse("6f1c3e0a-4a57-4a8e-9d1e-3f3b2a1c0d9e"))
	batchID  = domain.BatchID(uuid.MustParse("0b8f5a8e-2f0c-4d59-8a83-5c2d7f7e1a10"))
	readings = []domain.Reading{{Temperature: 20, Humidity: 50}, {Temperature: 20, Humidity: 101}}
)

func TestService_Submit(t *testing.T) {
	f := newFixture(t)

	f.expectWithTx(func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreBatches(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, batches ...domain.Batch) ([]domain.Batch, error) {
				require.Len(t, batches, 1)
				require.Equal(t, owner, batches[0].OwnerID)
				require.Equal(t, domain.BatchStatusPending, batches[0].Status)
				batches[0].ID = batchID

				return batches, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).DoAndReturn(
			func(_ context.Context, args river.JobArgs, _ *river.InsertOpts) (bool, error) {
				jobArgs, ok := args.(batch.JobArgs)
				require.True(t, ok)
				require.Equal(t, uuid.UUID(batchID), jobArgs.BatchID)
				require.Equal(t, 3, jobArgs.InsertOpts().MaxAttempts)

				return true, nil
			},
		)
	})

	b, err := f.service.Submit(context.Background(), owner, readings)
	require.NoError(t, err)
	require.Equal(t, batchID, b.ID)
	require.Equal(t, readings, b.Readings)
}

func TestService_Submit_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		readings []domain.Reading
	}{
		{name: "empty", readings: nil},
		{name: "too many", readings: append(readings, domain.Reading{Temperature: 1, Humidity: 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.service.Submit(context.Background(), owner, tt.readings)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestService_Submit_JobFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("boom")

	f.expectWithTx(func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().StoreBatches(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, batches ...domain.Batch) ([]domain.Batch, error) {
				return batches, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(false, boom)
	})

	_, err := f.service.Submit(context.Background(), owner, readings[:1])
	require.ErrorIs(t, err, boom)
}

func TestService_OwnerBatches(t *testing.T) {
	next := storage.BatchCursor{
		CreatedAt: time.Date(2025, 3, 1, 12, 30, 0, 123000000, time.UTC),
		ID:        batchID,
	}
	nextCursor := "2025-03-01T12:30:00.123Z_" + batchID.String()

	tests := []struct {
		name       string
		status     domain.BatchStatus
		cursor     string
		limit      uint
		wantLimit  uint
		wantCursor *storage.BatchCursor
		wantErr    error
	}{
		{name: "defaults", wantLimit: batch.DefaultLimit},
		{name: "clamped limit", limit: 1000, wantLimit: batch.MaxLimit},
		{
			name:       "cursor with fraction",
			status:     domain.BatchStatusCompleted,
			cursor:     nextCursor,
			limit:      5,
			wantLimit:  5,
			wantCursor: &next,
		},
		{name: "invalid cursor", cursor: "yesterday", wantErr: serrors.ErrBadRequest},
		{name: "cursor without id", cursor: "2025-03-01T12:30:00.123Z", wantErr: serrors.ErrBadRequest},
		{name: "cursor with bad id", cursor: "2025-03-01T12:30:00.123Z_42", wantErr: serrors.ErrBadRequest},
		{name: "invalid status", status: "DONE", wantErr: serrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.wantErr == nil {
				f.storage.EXPECT().OwnerBatches(gomock.Any(), owner, tt.status, gomock.Any(), tt.wantLimit).DoAndReturn(
					func(_ context.Context, _ domain.OwnerID, _ domain.BatchStatus, cursor *storage.BatchCursor, _ uint) (storage.OwnerBatches, error) {
						if tt.wantCursor == nil {
							require.Nil(t, cursor)
						} else {
							require.NotNil(t, cursor)
							require.True(t, tt.wantCursor.CreatedAt.Equal(cursor.CreatedAt), "cursor %s", cursor.CreatedAt)
							require.Equal(t, tt.wantCursor.ID, cursor.ID)
						}

						return storage.OwnerBatches{Batches: []domain.Batch{{ID: batchID}}, NextCursor: &next}, nil
					},
				)
			}

			batches, cursor, err := f.service.OwnerBatches(context.Background(), owner, tt.status, tt.cursor, tt.limit)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			require.Len(t, batches, 1)
			require.Equal(t, nextCursor, cursor)
		})
	}
}

func TestService_ResultAndDelete_NotFound(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().BatchByID(gomock.Any(), owner, batchID).Return(nil, nil)
	_, err := f.service.Result(context.Background(), owner, batchID)
	require.ErrorIs(t, err, serrors.ErrNotFound)

	f.storage.EXPECT().DeleteBatch(gomock.Any(), owner, batchID).Return(nil, nil)
	require.ErrorIs(t, f.service.Delete(context.Background(), owner, batchID), serrors.ErrNotFound)

	f.storage.EXPECT().DeleteBatch(gomock.Any(), owner, batchID).Return(&domain.Batch{ID: batchID}, nil)
	require.NoError(t, f.service.Delete(context.Background(), owner, batchID))
}

func TestService_Process(t *testing.T) {
	f := newFixture(t)
	ah := 8.64

	f.storage.EXPECT().PendingBatchByID(gomock.Any(), batchID).
		Return(&domain.Batch{ID: batchID, Status: domain.BatchStatusPending, Readings: readings}, nil)
	f.calc.EXPECT().Properties(gomock.Any(), 20.0, 50.0).
		Return(psychro.Properties{Temperature: 20, Humidity: 50, AbsoluteHumidity: &ah}, nil)
	f.calc.EXPECT().Properties(gomock.Any(), 20.0, 101.0).
		Return(psychro.Properties{}, serrors.With(psychro.ErrOutOfRange, "humidity 101 out of range"))
	f.storage.EXPECT().UpdatePendingBatchByID(gomock.Any(), batchID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.BatchID, updates storage.BatchUpdates) (*domain.Batch, error) {
			require.Equal(t, domain.BatchStatusCompleted, updates.Status)
			require.Len(t, updates.Items, 2)
			require.NotNil(t, updates.Items[0].Properties)
			require.Nil(t, updates.Items[0].Error)
			require.Nil(t, updates.Items[1].Properties)
			require.Equal(t, "OUT_OF_RANGE", updates.Items[1].Error.Code)
			require.NotNil(t, updates.LastError)
			require.Empty(t, *updates.LastError)

			return &domain.Batch{ID: batchID, Status: domain.BatchStatusCompleted, Items: updates.Items}, nil
		},
	)

	b, err := f.service.Process(context.Background(), batchID)
	require.NoError(t, err)
	require.Equal(t, 1, b.Failures())
}

func TestService_Process_NotPendingConflicts(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().PendingBatchByID(gomock.Any(), batchID).Return(nil, nil)

	_, err := f.service.Process(context.Background(), batchID)
	require.ErrorIs(t, err, serrors.ErrConflict)
}

func TestService_Fail(t *testing.T) {
	f := newFixture(t)

	f.storage.EXPECT().UpdatePendingBatchByID(gomock.Any(), batchID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.BatchID, updates storage.BatchUpdates) (*domain.Batch, error) {
			require.Equal(t, domain.BatchStatusFailed, updates.Status)
			require.Equal(t, 3, updates.MaxAttempts)
			require.Equal(t, "db down", *updates.LastError)

			return &domain.Batch{}, nil
		},
	)

	require.NoError(t, f.service.Fail(context.Background(), batchID, errors.New("db down")))
}
