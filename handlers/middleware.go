package handlers

import (
	"context"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

type loggerKey struct{}

// withLogger returns a copy of ctx carrying logger.
func withLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// requestLogger returns the logger RequestLogger attached to the request, or
// the global zap logger for requests that did not pass through it.
func requestLogger(e *core.RequestEvent) *zap.Logger {
	if e.Request != nil {
		if logger, ok := e.Request.Context().Value(loggerKey{}).(*zap.Logger); ok {
			return logger
		}
	}
	return zap.L()
}

// RequestLogger attaches logger to each request for the handlers' helpers
// and logs the request with its duration once the handler chain has run.
func RequestLogger(logger *zap.Logger) func(e *core.RequestEvent) error {
	httpLogger := logger.Named("http")
	return func(e *core.RequestEvent) error {
		e.Request = e.Request.WithContext(withLogger(e.Request.Context(), logger))

		start := time.Now()
		err := e.Next()

		fields := []zap.Field{
			zap.String("method", e.Request.Method),
			zap.String("path", e.Request.URL.Path),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			httpLogger.Warn("Request failed", append(fields, zap.Error(err))...)
			return err
		}
		httpLogger.Debug("Request served", fields...)
		return nil
	}
}
