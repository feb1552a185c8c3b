// Package v1handler implements the v1 HTTP API: single calculations, the
// extended property bundle, service metadata and owner-scoped batches.
package v1handler

import (
	"io"
	"net/http"
	"strings"

	"psychrometer/internal/batch"
	"psychrometer/internal/calculator"
	"psychrometer/pkg/psychro"
	"psychrometer/pkg/serrors"

	"github.com/go-faster/jx"
)

// DefaultMaxBodyBytes limits request bodies when Options.MaxBodyBytes is 0.
const DefaultMaxBodyBytes = 1 << 20

// Deps are the services the handlers call.
type Deps struct {
	Calculator calculator.Calculator
	// Batches is optional; batch routes are not registered without it.
	Batches batch.Service
}

// Options describe the service in /info and bound request sizes.
type Options struct {
	Name         string
	Version      string
	Description  string
	MaxBodyBytes int64
}

type Handler struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Handler{deps: deps, opts: opts}
}

// Register mounts the v1 routes on mux below prefix. Batch routes require a
// bearer token checked by sec.
func (h *Handler) Register(mux *http.ServeMux, prefix string, sec *SecHandler) {
	prefix = strings.TrimSuffix(prefix, "/")

	mux.HandleFunc("POST "+prefix+"/calculate", h.Calculate)
	mux.HandleFunc("POST "+prefix+"/properties", h.Properties)
	mux.HandleFunc("GET "+prefix+"/health", h.Health)
	mux.HandleFunc("GET "+prefix+"/info", h.Info)

	if h.deps.Batches == nil || sec == nil {
		return
	}
	mux.Handle("POST "+prefix+"/batches", sec.Authenticate(http.HandlerFunc(h.CreateBatch)))
	mux.Handle("GET "+prefix+"/batches", sec.Authenticate(http.HandlerFunc(h.ListBatches)))
	mux.Handle("GET "+prefix+"/batches/{id}", sec.Authenticate(http.HandlerFunc(h.GetBatch)))
	mux.Handle("DELETE "+prefix+"/batches/{id}", sec.Authenticate(http.HandlerFunc(h.DeleteBatch)))
}

// Calculate returns the absolute humidity of one reading.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := h.readReading(w, r)
	if err != nil {
		h.writeError(r.Context(), w, err)

		return
	}

	res, err := h.deps.Calculator.Compute(r.Context(), req.Temperature, req.Humidity)
	if err != nil {
		h.writeError(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeResult(e, res) })
}

// Properties returns the requested property bundle of one reading. Without
// "include" every property is returned.
func (h *Handler) Properties(w http.ResponseWriter, r *http.Request) {
	req, err := h.readReading(w, r)
	if err != nil {
		h.writeError(r.Context(), w, err)

		return
	}

	include := make([]psychro.Property, 0, len(req.Include))
	for _, name := range req.Include {
		p, err := psychro.ParseProperty(name)
		if err != nil {
			h.writeError(r.Context(), w, err)

			return
		}
		include = append(include, p)
	}

	res, err := h.deps.Calculator.Properties(r.Context(), req.Temperature, req.Humidity, include...)
	if err != nil {
		h.writeError(r.Context(), w, err)

		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeProperties(e, res) })
}

// Health reports that the API is serving.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, encodeHealthy)
}

// Info describes the service and the engine's formulas, units and limits.
func (h *Handler) Info(w http.ResponseWriter, _ *http.Request) {
	desc := h.deps.Calculator.Describe()
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeInfo(e, h.opts, desc) })
}

// HealthHandler serves {"status":"healthy"}; it is mounted outside the API
// prefix for probes.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, encodeHealthy)
	})
}

func encodeHealthy(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("status", func(e *jx.Encoder) { e.Str("healthy") })
	})
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "could not read request body")
	}

	return body, nil
}

func (h *Handler) readReading(w http.ResponseWriter, r *http.Request) (readingRequest, error) {
	body, err := h.readBody(w, r)
	if err != nil {
		return readingRequest{}, err
	}

	return decodeReadingRequest(body)
}
