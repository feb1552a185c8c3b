// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the psychrometer service.
package api

import (
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"psychrometer/internal/api/handler/v1handler"
	"psychrometer/internal/config"
	"psychrometer/pkg/controller"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const (
	// SpecPath serves the embedded OpenAPI document.
	SpecPath = "/specs/v1.yaml"
	// DocsPath serves the Swagger UI.
	DocsPath = "/docs/"
	// HealthPath is the liveness probe outside the API prefix.
	HealthPath = "/healthz"
)

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults.
type Options struct {
	// SecHandlerOptions configures bearer authentication of the batch endpoints.
	// Without a public key batch endpoints are not served.
	SecHandlerOptions *v1handler.SecHandlerOptions
	// Handler describes the service in /info and bounds request bodies.
	Handler v1handler.Options
	// CORS configures cross-origin access.
	CORS controller.CORSOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr string
	// APIPrefix is the path the v1 routes are mounted below, e.g. "/api".
	APIPrefix string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string

	// Registerer and Gatherer default to the prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config, version string) Options {
	opts := Options{
		Handler: v1handler.Options{
			Name:         "psychrometer",
			Version:      version,
			Description:  "Psychrometric property calculations for moist air",
			MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
		},
		CORS: controller.CORSOptions{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     cfg.CORS.AllowMethods,
			AllowHeaders:     cfg.CORS.AllowHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
		},

		Addr:              cfg.HTTP.Addr,
		APIPrefix:         cfg.HTTP.APIPrefix,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
	}
	if cfg.JWT.PublicKey != "" {
		opts.SecHandlerOptions = v1handler.NewSecHandlerOptions(cfg)
	}

	return opts
}

type Deps struct {
	v1handler.Deps
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - OpenTelemetry metrics exporter (Prometheus) feeding the request metrics middleware
// - Embedded OpenAPI v1 spec and Swagger UI
// - v1 API routes below APIPrefix and the /healthz probe
// - pprof endpoints for profiling
// It also wraps the mux with CORS and logging middlewares and applies a request timeout.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

// NewHandler builds the middleware wrapped root handler of the server.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	if deps.Calculator == nil {
		return nil, errors.New("a calculator is required")
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}

	mux := http.NewServeMux()

	// prometheus metrics server
	mux.Handle(opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	// otel
	exp, err := otelprom.New(otelprom.WithRegisterer(opts.Registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))

	// v1 specs file
	mux.HandleFunc("GET "+SpecPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	mux.Handle(DocsPath, v5emb.New(
		"Psychrometer",
		SpecPath,
		DocsPath,
	))
	mux.Handle("GET "+HealthPath, v1handler.HealthHandler())

	// v1 api
	var secHandler *v1handler.SecHandler
	if opts.SecHandlerOptions != nil {
		secHandler, err = v1handler.NewSecHandler(opts.SecHandlerOptions)
		if err != nil {
			return nil, fmt.Errorf("could not create sec handler: %w", err)
		}
	}
	v1handler.New(deps.Deps, opts.Handler).Register(mux, opts.APIPrefix, secHandler)

	// pprof
	mux.Handle(controller.PprofPrefix, controller.PprofMux())

	// request metrics
	handler, err := controller.WithMetrics(mp.Meter("psychrometer/internal/api"), mux)
	if err != nil {
		return nil, fmt.Errorf("could not create metrics middleware: %w", err)
	}

	// cors
	handler = controller.WithCORS(opts.CORS, handler)

	// logger
	handler = controller.WithLogger(handler, HealthPath, opts.MetricsPath)

	if opts.RequestTimeout > 0 {
		handler = http.TimeoutHandler(handler, opts.RequestTimeout,
			`{"error":{"code":"UNAVAILABLE","message":"request timed out"}}`)
	}

	return handler, nil
}
