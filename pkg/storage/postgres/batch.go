package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"psychrometer/pkg/domain"
	"psychrometer/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	batchesTable = "batches"
)

func (p *PgSQL) StoreBatches(ctx context.Context, batches ...domain.Batch) ([]domain.Batch, error) {
	if len(batches) == 0 {
		return nil, nil
	}

	rows, err := domainBatchesToPg(batches)
	if err != nil {
		return nil, err
	}

	var result []PgBatch
	if err := p.Builder.Insert(batchesTable).
		Rows(rows).
		Returning(&PgBatch{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store batches into pg: %w", err)
	}

	return pgBatchesToDomain(result)
}

// UpdatePendingBatchByID applies updates to a pending, non-deleted batch.
// A Failed status with MaxAttempts > 0 increments attempts and only lands once
// the incremented count reaches MaxAttempts.
func (p *PgSQL) UpdatePendingBatchByID(ctx context.Context,
	id domain.BatchID,
	updates storage.BatchUpdates) (*domain.Batch, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"status":     string(updates.Status),
	}
	if updates.Status == domain.BatchStatusFailed {
		rec["attempts"] = goqu.L("attempts + 1")
		if updates.MaxAttempts > 0 {
			rec["status"] = goqu.Case().
				When(goqu.L("attempts + 1 >= ?", updates.MaxAttempts), string(domain.BatchStatusFailed)).
				Else(goqu.I("status"))
		}
	}
	if updates.Items != nil {
		b, err := json.Marshal(updates.Items)
		if err != nil {
			return nil, fmt.Errorf("could not marshal items: %w", err)
		}

		rec["items"] = b
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgBatch
	found, err := p.Builder.Update(batchesTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("status").Eq(string(domain.BatchStatusPending)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgBatch{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update pending batch in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// PendingBatchByID returns a pending batch of any owner.
func (p *PgSQL) PendingBatchByID(ctx context.Context, id domain.BatchID) (*domain.Batch, error) {
	var row PgBatch
	found, err := p.Builder.From(batchesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("status").Eq(string(domain.BatchStatusPending)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch pending batch: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteBatch performs a soft delete by setting deleted_at timestamp
// for a given batch id and owner, returning the deleted record.
func (p *PgSQL) DeleteBatch(ctx context.Context, ownerID domain.OwnerID, id domain.BatchID) (*domain.Batch, error) {
	var row PgBatch
	found, err := p.Builder.Update(batchesTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("owner_id").Eq(uuid.UUID(ownerID)),
		goqu.I("deleted_at").IsNull(),
	).Returning(&PgBatch{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete batch in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// OwnerBatches returns batches of an owner ordered by created_at DESC, id DESC.
func (p *PgSQL) OwnerBatches(ctx context.Context,
	ownerID domain.OwnerID,
	status domain.BatchStatus,
	cursor *storage.BatchCursor,
	limit uint) (storage.OwnerBatches, error) {
	w := []goqu.Expression{
		goqu.I("owner_id").Eq(uuid.UUID(ownerID)),
		goqu.I("deleted_at").IsNull(),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if cursor != nil {
		// row comparison matches the (created_at DESC, id DESC) index order
		w = append(w, goqu.L("(created_at, id) < (?, ?)", cursor.CreatedAt, uuid.UUID(cursor.ID)))
	}

	// fetch one extra to determine if there is a next page
	ds := p.Builder.From(batchesTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)

	var rows []PgBatch
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.OwnerBatches{}, fmt.Errorf("could not fetch owner batches from pg: %w", err)
	}

	var nextCursor *storage.BatchCursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = &storage.BatchCursor{CreatedAt: last.CreatedAt, ID: domain.BatchID(last.ID)}
	}

	batches, err := pgBatchesToDomain(rows)
	if err != nil {
		return storage.OwnerBatches{}, err
	}

	return storage.OwnerBatches{
		Batches:    batches,
		NextCursor: nextCursor,
	}, nil
}

// BatchByID returns a batch by its ID, excluding soft-deleted rows.
func (p *PgSQL) BatchByID(ctx context.Context, ownerID domain.OwnerID, id domain.BatchID) (*domain.Batch, error) {
	var row PgBatch
	found, err := p.Builder.From(batchesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("owner_id").Eq(uuid.UUID(ownerID)),
			goqu.I("deleted_at").IsNull(),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch batch by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
