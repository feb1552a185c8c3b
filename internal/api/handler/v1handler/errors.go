package v1handler

import (
	"context"
	"errors"
	"net/http"

	"psychrometer/pkg/logger"
	"psychrometer/pkg/psychro"
	"psychrometer/pkg/serrors"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// ErrorBody is the payload of every error response:
// {"error": {"code": ..., "message": ...}}.
type ErrorBody struct {
	Code    string
	Message string
}

// ErrorResponse pairs an ErrorBody with its HTTP status.
type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrForbidden:    "forbidden",
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrConflict:     "conflict",
	serrors.ErrUnavailable:  "service unavailable",
	serrors.ErrInternal:     "internal error",
}

func statusOf(kind serrors.Kind) int {
	switch kind {
	case psychro.ErrInvalidType, psychro.ErrNonFinite, psychro.ErrOutOfRange, serrors.ErrBadRequest:
		return http.StatusUnprocessableEntity
	case psychro.ErrSingularity:
		return http.StatusBadRequest
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case serrors.ErrForbidden:
		return http.StatusForbidden
	case serrors.ErrConflict:
		return http.StatusConflict
	case serrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewError maps err to the response sent to the client. Engine errors carry
// their own code and full message; service errors expose only the message
// attached to their kind. Anything else is an opaque internal error.
func (h *Handler) NewError(ctx context.Context, err error) ErrorResponse {
	kind := serrors.KindOf(err)
	status := statusOf(kind)

	res := ErrorResponse{StatusCode: status}
	switch {
	case psychro.Code(err) != "":
		res.Response = ErrorBody{Code: psychro.Code(err), Message: err.Error()}
	case kind != nil && kind != serrors.ErrInternal && defaultMessages[kind] != "":
		res.Response = ErrorBody{Code: kind.Error(), Message: semanticMessage(err, kind)}
	default:
		res.Response = ErrorBody{Code: serrors.ErrInternal.Error(), Message: defaultMessages[serrors.ErrInternal]}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
	} else {
		logger.Debug(ctx, "request rejected", zap.Int("status", status), zap.Error(err))
	}

	return res
}

func semanticMessage(err error, kind serrors.Kind) string {
	var se *serrors.Error
	if errors.As(err, &se) && se.Message() != "" {
		return se.Message()
	}

	return defaultMessages[kind]
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	res := h.NewError(ctx, err)
	writeJSON(w, res.StatusCode, func(e *jx.Encoder) {
		encodeError(e, res.Response)
	})
}
