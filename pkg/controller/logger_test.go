package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"psychrometer/pkg/controller"
	"psychrometer/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		value      string
		remoteAddr string
		want       string
	}{
		{name: "x-forwarded-for", header: "X-Forwarded-For", value: "1.2.3.4, 5.6.7.8", want: "1.2.3.4"},
		{name: "x-real-ip", header: "X-Real-IP", value: "9.8.7.6", want: "9.8.7.6"},
		{name: "remote addr", remoteAddr: "10.0.0.1:12345", want: "10.0.0.1"},
		{name: "invalid remote addr", remoteAddr: "not-an-addr", want: "not-an-addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			if tt.remoteAddr != "" {
				req.RemoteAddr = tt.remoteAddr
			}
			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

func TestWithLogger_SetsRequestIDAndPassesStatus(t *testing.T) {
	logger.Setup(logger.TestingEnvironment)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Request-Id", controller.RequestID(r.Context()))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("ok"))
	})

	t.Run("provided request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-Id", "abc-123")
		rec := httptest.NewRecorder()
		controller.WithLogger(next).ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusCreated, res.StatusCode)
		require.Equal(t, "abc-123", res.Header.Get("X-Echo-Request-Id"))
		require.Equal(t, "abc-123", res.Header.Get("X-Request-Id"))
	})

	t.Run("generated request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		controller.WithLogger(next).ServeHTTP(rec, req)

		res := rec.Result()
		require.Equal(t, http.StatusCreated, res.StatusCode)
		require.NotEmpty(t, res.Header.Get("X-Echo-Request-Id"))
		require.Equal(t, res.Header.Get("X-Echo-Request-Id"), res.Header.Get("X-Request-Id"))
	})
}

func TestWithLogger_ReplacesInvalidRequestID(t *testing.T) {
	logger.Setup(logger.TestingEnvironment)

	tests := []struct {
		name string
		id   string
	}{
		{name: "spaces", id: "abc 123"},
		{name: "control characters", id: "abc\x01"},
		{name: "too long", id: strings.Repeat("a", 129)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			req.Header.Set(controller.RequestIDHeader, tt.id)
			rec := httptest.NewRecorder()
			controller.WithLogger(http.NotFoundHandler(), "/healthz").ServeHTTP(rec, req)

			got := rec.Result().Header.Get(controller.RequestIDHeader)
			require.NotEqual(t, tt.id, got)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
		})
	}
}
