// Package reqid generates request IDs and propagates them through contexts.
//
// Every HTTP request gets a unique ID, stored in the request context and
// echoed in the X-Request-ID response header. The request-logging middleware
// tags each log line with it so one admin action can be traced end to end.
package reqid

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

type ctxKey struct{}

// Header is the HTTP header used to carry the request ID.
const Header = "X-Request-ID"

// New returns a random 16-byte hex request ID.
func New() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// WithValue stores id in ctx.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx returns the request ID stored in ctx, or "".
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware injects a request ID into every request. An upstream
// X-Request-ID (from a proxy or gateway) is honoured, otherwise a fresh ID
// is generated. The ID is echoed in the response for client correlation.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = New()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}
