// Package logger provides Veyra's structured, levelled logging on log/slog.
//
// Handlers are chosen by environment: human-readable text in development,
// JSON in production, optionally teed into MongoDB when MONGO_LOG_URI is
// configured (see mongo_handler.go).
//
// The extension over plain slog is WithCtx: the request-logging middleware
// stores a logger pre-tagged with the request ID in the context, so every
// log line from a handler or service is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("product created", "id", p.ID, "slug", p.Slug)
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/veyralabs/veyra/config"
)

// L is the process-wide base logger.
var L *slog.Logger

func init() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// EnableMongo tees the base logger into an async MongoDB handler in addition
// to the stdout handler. Called at boot when log shipping is configured.
func EnableMongo(h *MongoHandler) {
	L = slog.New(teeHandler{stdout: L.Handler(), mongo: h})
	slog.SetDefault(L)
}

// teeHandler fans every record out to stdout and Mongo.
type teeHandler struct {
	stdout slog.Handler
	mongo  slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.stdout.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	_ = t.mongo.Handle(ctx, r.Clone())
	return t.stdout.Handle(ctx, r)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{stdout: t.stdout.WithAttrs(attrs), mongo: t.mongo.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{stdout: t.stdout.WithGroup(name), mongo: t.mongo.WithGroup(name)}
}

// ctxKey stores the per-request logger in a context.
type ctxKey struct{}

// WithCtx returns the request-scoped logger injected by the logging
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a pre-tagged logger in ctx. Called by the request-logging
// middleware; application code normally only reads via WithCtx.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
