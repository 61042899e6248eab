// Package logging provides request logging middleware.
package logging

import (
	"strings"
	"time"

	"github.com/grcledger/grcledger/pkg/middleware/requestid"
	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/server/router"
)

// Config configures request logging middleware behavior.
type Config struct {
	Enabled bool
	// ExcludedPathPrefixes lists path prefixes that are never logged,
	// typically health and metrics probes.
	ExcludedPathPrefixes []string
}

// DefaultConfig returns the default logging middleware configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		ExcludedPathPrefixes: []string{"/healthz", "/metrics"},
	}
}

// RequestLogger creates middleware that logs one line per completed request
// with method, path, status, duration and the request ID for correlation.
func RequestLogger(cfg Config, log logger.Logger) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !cfg.Enabled || isExcluded(cfg, c.Request().URL.Path) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			fields := []any{
				"request_id", requestid.GetRequestID(c.Request().Context()),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status(),
				"duration_ms", float64(duration.Microseconds()) / 1000.0,
			}
			if err != nil {
				fields = append(fields, "error", err.Error())
				log.Error("request completed", fields...)
				return err
			}

			if c.Response().Status() >= 500 {
				log.Error("request completed", fields...)
			} else {
				log.Info("request completed", fields...)
			}
			return nil
		}
	}
}

func isExcluded(cfg Config, path string) bool {
	for _, prefix := range cfg.ExcludedPathPrefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
