package controller

import (
	"net/http"
	"slices"
	"strings"
)

// CORSOptions configures WithCORS. An entry of "*" in AllowOrigins or
// AllowHeaders allows any value.
type CORSOptions struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

// DefaultCORSOptions allows any origin and header for the read and calculate
// methods.
func DefaultCORSOptions() CORSOptions {
	return CORSOptions{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"*"},
	}
}

// WithCORS returns a middleware that sets CORS headers according to opts and
// short-circuits OPTIONS preflight requests with 204 No Content. Requests
// from origins that are not allowed pass through without CORS headers.
func WithCORS(opts CORSOptions, next http.Handler) http.Handler {
	anyOrigin := slices.Contains(opts.AllowOrigins, "*")
	methods := strings.Join(opts.AllowMethods, ", ")
	headers := strings.Join(opts.AllowHeaders, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		switch {
		case anyOrigin && !opts.AllowCredentials:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && (anyOrigin || slices.Contains(opts.AllowOrigins, origin)):
			// credentials cannot be combined with a wildcard origin
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		default:
			next.ServeHTTP(w, r)

			return
		}

		if opts.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", methods)
		allowHeaders := headers
		if allowHeaders == "*" {
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				allowHeaders = requested
			}
		}
		w.Header().Set("Access-Control-Allow-Headers", allowHeaders)

		// handle preflight requests quickly
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
