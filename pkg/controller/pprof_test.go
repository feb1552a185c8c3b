package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"psychrometer/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestPprofMux(t *testing.T) {
	mux := controller.PprofMux()

	tests := []struct {
		name string
		path string
	}{
		{name: "index", path: "/debug/pprof/"},
		{name: "cmdline", path: "/debug/pprof/cmdline"},
		{name: "named profile", path: "/debug/pprof/goroutine?debug=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "http://pprof.local"+tt.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			res := rec.Result()
			require.Equal(t, http.StatusOK, res.StatusCode)
			require.NotEmpty(t, res.Header.Get("Content-Type"))
		})
	}
}
