// Package tracing provides the per-request span middleware.
package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/grcledger/grcledger/pkg/middleware/requestid"
	"github.com/grcledger/grcledger/pkg/server/router"
)

// Config controls the request-tracing middleware.
type Config struct {
	// TracerName is the instrumentation scope name.
	TracerName string

	// ExcludedPathPrefixes skips span creation for matching request paths.
	ExcludedPathPrefixes []string
}

// DefaultConfig traces every request except the probe and metrics endpoints,
// mirroring the request-log exclusions.
func DefaultConfig() Config {
	return Config{
		TracerName:           "http-server",
		ExcludedPathPrefixes: []string{"/healthz", "/readyz", "/metrics"},
	}
}

// Trace opens a server span per request, continuing any trace carried in the
// incoming headers, and records the request outcome on it. It runs after the
// request-id middleware so the span carries the request id.
func Trace(cfg Config) router.MiddlewareFunc {
	if cfg.TracerName == "" {
		cfg.TracerName = "http-server"
	}
	tracer := otel.Tracer(cfg.TracerName)
	propagator := otel.GetTextMapPropagator()

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			req := c.Request()
			if isExcluded(cfg, req.URL.Path) {
				return next(c)
			}

			ctx := propagator.Extract(req.Context(), propagation.HeaderCarrier(req.Header))
			ctx, span := tracer.Start(ctx, fmt.Sprintf("HTTP %s %s", req.Method, req.URL.Path),
				trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.target", req.URL.Path),
				attribute.String("http.host", req.Host),
				attribute.String("http.user_agent", req.UserAgent()),
			)
			if requestID := requestid.GetRequestID(req.Context()); requestID != "" {
				span.SetAttributes(attribute.String("request.id", requestID))
			}

			c.SetRequest(req.WithContext(ctx))
			err := next(c)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return err
			}

			status := c.Response().Status()
			span.SetAttributes(attribute.Int("http.status_code", status))
			if status >= 500 {
				span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
			} else {
				span.SetStatus(codes.Ok, "")
			}
			return nil
		}
	}
}

func isExcluded(cfg Config, path string) bool {
	for _, prefix := range cfg.ExcludedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
