package batch

import (
	"context"

	"psychrometer/pkg/domain"
)

//go:generate mockgen -package mockbatch -source=interface.go -destination=mock/mockbatch.go *
type Service interface {
	Submit(ctx context.Context, ownerID domain.OwnerID, readings []domain.Reading) (*domain.Batch, error)
	OwnerBatches(ctx context.Context,
		ownerID domain.OwnerID,
		status domain.BatchStatus,
		cursor string,
		limit uint) ([]domain.Batch, string, error)
	Result(ctx context.Context, ownerID domain.OwnerID, batchID domain.BatchID) (*domain.Batch, error)
	Delete(ctx context.Context, ownerID domain.OwnerID, batchID domain.BatchID) error

	Process(ctx context.Context, batchID domain.BatchID) (*domain.Batch, error)
	Fail(ctx context.Context, batchID domain.BatchID, cause error) error
}
