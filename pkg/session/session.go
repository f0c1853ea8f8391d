// Package session provides Redis-backed HTTP sessions with flash values.
//
// The admin controllers use flash messages exactly like the Laravel-style
// redirect-with-status pattern: flash a message, redirect to the listing
// page, and the next render pops it.
//
//	sess := session.FromCtx(r)
//	sess.Flash("status", "Brand has been added successfully!")
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/veyralabs/veyra/pkg/cache"
)

// Options configures cookie and lifetime behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns the defaults used by the admin kernel.
func DefaultOptions() Options {
	return Options{
		CookieName: "veyra_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // enable behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is a per-request session handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	changed bool
}

func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func redisKey(id string) string { return "veyra:session:" + id }

func load(id string) map[string]interface{} {
	var data map[string]interface{}
	if cache.Get(redisKey(id), &data) {
		return data
	}
	return map[string]interface{}{}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Set stores a value in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get reads a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString reads a string value from the session.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Delete removes a key.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

// Flash stores a value consumed by the next GetFlash.
func (s *Session) Flash(key string, value interface{}) {
	s.Set("_flash_"+key, value)
}

// GetFlash pops a flash value.
func (s *Session) GetFlash(key string) (interface{}, bool) {
	v, ok := s.Get("_flash_" + key)
	if ok {
		s.Delete("_flash_" + key)
	}
	return v, ok
}

// Invalidate clears the session (logout).
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
}

// Save persists the session to Redis and sets the cookie. A session that was
// never written to is not persisted.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := cache.Set(redisKey(s.id), json.RawMessage(raw), s.opts.TTL); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// Middleware loads (or creates) the session for every request and stores it
// in the request context.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				sess.id = cookie.Value
				sess.data = load(sess.id)
			} else {
				id, _ := newID()
				sess.id = id
				sess.data = map[string]interface{}{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx returns the request's session, or a fresh unsaved one when the
// middleware is not mounted (tests).
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, opts: DefaultOptions()}
}
