// Package ctx provides a compact request context for Veyra handlers.
//
// A handler receives one *Context with helpers for URL params, form
// binding, file uploads, and JSON responses:
//
//	func (ct *BrandController) Edit(c *ctx.Context) {
//	    id := c.ParamUint("id")
//	    ...
//	}
//
// Register with ctx.Wrap:
//
//	r.Get("/admin/brands/{id}/edit", "admin.brand.edit", ctx.Wrap(ct.Edit))
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/veyralabs/veyra/pkg/bind"
	"github.com/veyralabs/veyra/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap adapts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a URL path parameter as an unsigned integer, returning 0
// when absent or malformed.
func (c *Context) ParamUint(key string) uint {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// Query returns a query-string value.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt parses a query value as int, falling back to def.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// PostForm returns a form field value.
func (c *Context) PostForm(key string) string {
	return c.R.FormValue(key)
}

// FormFile returns the first uploaded file under the field name, or nil when
// the field is absent.
func (c *Context) FormFile(name string) *multipart.FileHeader {
	if c.R.MultipartForm == nil {
		if _, _, err := c.R.FormFile(name); err != nil {
			return nil
		}
	}
	if c.R.MultipartForm == nil || c.R.MultipartForm.File == nil {
		return nil
	}
	files := c.R.MultipartForm.File[name]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// FormFiles returns all uploaded files under the field name in submission
// order; nil when the field is absent.
func (c *Context) FormFiles(name string) []*multipart.FileHeader {
	if c.R.MultipartForm == nil || c.R.MultipartForm.File == nil {
		return nil
	}
	return c.R.MultipartForm.File[name]
}

// ReadFile reads an uploaded file fully into memory.
func (c *Context) ReadFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("ctx: open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("ctx: read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}

// ClientIP returns the client IP, honouring X-Forwarded-For.
func (c *Context) ClientIP() string {
	if fwd := c.R.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.SplitN(fwd, ",", 2)[0]
	}
	ip := c.R.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// ── Per-request store ────────────────────────────────────────────────────────

// Set stores a value in the per-request store (middleware → handler).
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get reads a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetUint reads a uint from the store, or 0.
func (c *Context) GetUint(key string) uint {
	v, _ := c.Get(key)
	u, _ := v.(uint)
	return u
}

// ── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes and validates a JSON body. On failure it writes the
// error response and returns false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// BindForm populates and validates dest from form fields without writing a
// response; the caller decides how to surface the error map.
func (c *Context) BindForm(dest any) (map[string]string, error) {
	return bind.Form(c.R, dest)
}

// ── Response helpers ─────────────────────────────────────────────────────────

type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes a JSON response.
func (c *Context) JSON(code int, v any) {
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	c.status = code
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Success sends a 200 envelope.
func (c *Context) Success(data any) {
	c.JSON(http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// Created sends a 201 envelope.
func (c *Context) Created(data any) {
	c.JSON(http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends an error envelope.
func (c *Context) Error(code int, message string) {
	c.JSON(code, envelope{Status: code, Message: message})
}

// ValidationError sends a 422 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.JSON(http.StatusUnprocessableEntity, envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// Unauthorized sends a 401.
func (c *Context) Unauthorized() {
	c.Error(http.StatusUnauthorized, "Unauthorized")
}

// NotFound sends a 404.
func (c *Context) NotFound(message string) {
	c.Error(http.StatusNotFound, message)
}

// Redirect sends an HTTP redirect.
func (c *Context) Redirect(code int, url string) {
	c.status = code
	http.Redirect(c.W, c.R, url, code)
}

// Status writes just a status code.
func (c *Context) Status(code int) {
	c.status = code
	c.W.WriteHeader(code)
}

// WrittenStatus returns the written status code, or 0.
func (c *Context) WrittenStatus() int { return c.status }
