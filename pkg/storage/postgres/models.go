package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"psychrometer/pkg/domain"

	"github.com/google/uuid"
)

// PgBatch is the row layout of the batches table. Readings and items are
// stored as jsonb.
type PgBatch struct {
	ID      uuid.UUID `db:"id"       goqu:"skipinsert"`
	OwnerID uuid.UUID `db:"owner_id"`

	Status   string          `db:"status"`
	Readings json.RawMessage `db:"readings"`
	Items    json.RawMessage `db:"items"    goqu:"skipinsert"`

	Attempts  uint           `db:"attempts"   goqu:"skipinsert"`
	LastError sql.NullString `db:"last_error" goqu:"skipinsert"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgBatch) ToDomain() (*domain.Batch, error) {
	var readings []domain.Reading
	if err := json.Unmarshal(p.Readings, &readings); err != nil {
		return nil, fmt.Errorf("could not unmarshal batch readings: %w", err)
	}

	var items []domain.BatchItem
	if len(p.Items) > 0 {
		if err := json.Unmarshal(p.Items, &items); err != nil {
			return nil, fmt.Errorf("could not unmarshal batch items: %w", err)
		}
	}

	return &domain.Batch{
		ID:        domain.BatchID(p.ID),
		OwnerID:   domain.OwnerID(p.OwnerID),
		Status:    domain.BatchStatus(p.Status),
		Readings:  readings,
		Items:     items,
		Attempts:  p.Attempts,
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
		DeletedAt: p.DeletedAt.Time,
	}, nil
}

func (p *PgBatch) FromDomain(batch domain.Batch) error {
	readings, err := json.Marshal(batch.Readings)
	if err != nil {
		return fmt.Errorf("could not marshal batch readings: %w", err)
	}

	*p = PgBatch{
		ID:       uuid.UUID(batch.ID),
		OwnerID:  uuid.UUID(batch.OwnerID),
		Status:   string(batch.Status),
		Readings: readings,
		Attempts: batch.Attempts,
		LastError: sql.NullString{
			String: batch.LastError,
			Valid:  batch.LastError != "",
		},
		CreatedAt: batch.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  batch.UpdatedAt,
			Valid: !batch.UpdatedAt.IsZero(),
		},
		DeletedAt: sql.NullTime{
			Time:  batch.DeletedAt,
			Valid: !batch.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainBatchesToPg(batches []domain.Batch) ([]PgBatch, error) {
	out := make([]PgBatch, len(batches))
	for i := range out {
		if err := out[i].FromDomain(batches[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgBatchesToDomain(batches []PgBatch) ([]domain.Batch, error) {
	out := make([]domain.Batch, 0, len(batches))
	for _, batch := range batches {
		d, err := batch.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
