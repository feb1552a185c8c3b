package v1handler

import (
	"net/http"

	"psychrometer/pkg/domain"
	"psychrometer/pkg/serrors"

	"github.com/go-faster/jx"
	"github.com/google/uuid"
)

func batchIDFromPath(r *http.Request) (domain.BatchID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.BatchID{}, serrors.With(serrors.ErrNotFound, "batch not found")
	}

	return domain.BatchID(id), nil
}

// CreateBatch stores the readings of the body and schedules their
// processing. It answers 202 with the pending batch.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := h.readBody(w, r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}
	readings, err := decodeBatchRequest(body)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	b, err := h.deps.Batches.Submit(ctx, OwnerIDFromContext(ctx), readings)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	w.Header().Set("Location", r.URL.Path+"/"+b.ID.String())
	writeJSON(w, http.StatusAccepted, func(e *jx.Encoder) { encodeBatch(e, b) })
}

// ListBatches returns a page of the caller's batches.
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	batches, next, err := h.deps.Batches.OwnerBatches(ctx,
		OwnerIDFromContext(ctx),
		domain.BatchStatus(q.Get("status")),
		q.Get("cursor"),
		limit)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeBatchList(e, batches, next) })
}

// GetBatch returns one batch of the caller including its items.
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := batchIDFromPath(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	b, err := h.deps.Batches.Result(ctx, OwnerIDFromContext(ctx), id)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeBatch(e, b) })
}

// DeleteBatch soft-deletes one batch of the caller.
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := batchIDFromPath(r)
	if err != nil {
		h.writeError(ctx, w, err)

		return
	}

	if err := h.deps.Batches.Delete(ctx, OwnerIDFromContext(ctx), id); err != nil {
		h.writeError(ctx, w, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
