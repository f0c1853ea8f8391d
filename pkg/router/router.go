// Package router wraps chi with named routes.
//
// Routes are registered with a name so controllers can redirect by name
// instead of hard-coding paths, the way the admin controllers bounce back to
// a listing page after every mutation:
//
//	r.Get("/admin/brands", "admin.brands", brandController.Index)
//	...
//	c.Redirect(http.StatusSeeOther, router.MustURL("admin.brands", nil))
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware is the standard net/http middleware shape.
type Middleware func(http.Handler) http.Handler

// Router is a chi router with a name → path registry.
type Router struct {
	mux    chi.Router
	mu     sync.RWMutex
	routes map[string]routeInfo
}

type routeInfo struct {
	Method string
	Path   string
}

// RouteInfo describes one registered named route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Group scopes a path prefix and middleware stack.
type Group struct {
	router      *Router
	prefix      string
	middlewares []Middleware
}

var (
	defaultMu sync.RWMutex
	defaultR  *Router
)

// New creates an empty Router and makes it the package default so URL
// helpers resolve against the running application's routes.
func New() *Router {
	r := &Router{
		mux:    chi.NewRouter(),
		routes: make(map[string]routeInfo),
	}
	defaultMu.Lock()
	defaultR = r
	defaultMu.Unlock()
	return r
}

// Handler returns the underlying http.Handler.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middleware.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// HandleFunc mounts a raw handler on all methods (used for /metrics).
func (r *Router) HandleFunc(path string, h http.HandlerFunc) {
	r.mux.HandleFunc(normalizePath(path), h)
}

// Group returns a sub-group with a shared prefix and middleware.
func (r *Router) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      r,
		prefix:      normalizePath(prefix),
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodGet, path, name, h, mws...)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPost, path, name, h, mws...)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPut, path, name, h, mws...)
}

func (r *Router) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodPatch, path, name, h, mws...)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.mount(http.MethodDelete, path, name, h, mws...)
}

func (r *Router) mount(method, path, name string, h http.HandlerFunc, mws ...Middleware) {
	fullPath := normalizePath(path)
	r.mux.Method(method, fullPath, chain(h, mws...))

	if name == "" {
		return
	}
	r.mu.Lock()
	r.routes[name] = routeInfo{Method: method, Path: fullPath}
	r.mu.Unlock()
}

// Path returns the registered path for a route name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.routes[name]
	return info.Path, ok
}

// URL resolves a route name, substituting {param} placeholders.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: route %q not found", name)
	}

	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", value)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("router: missing parameters for route %q", name)
	}
	return path, nil
}

// Routes lists every registered named route.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RouteInfo, 0, len(r.routes))
	for name, info := range r.routes {
		out = append(out, RouteInfo{Method: info.Method, Path: info.Path, Name: name})
	}
	return out
}

// MustURL resolves a route name against the default router, panicking on
// unknown names. Route names are compile-time constants in the app, so a
// miss is a programming error.
func MustURL(name string, params map[string]string) string {
	defaultMu.RLock()
	r := defaultR
	defaultMu.RUnlock()
	if r == nil {
		panic("router: no router constructed")
	}

	url, err := r.URL(name, params)
	if err != nil {
		panic(err)
	}
	return url
}

// ── Group methods ────────────────────────────────────────────────────────────

func (g *Group) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{
		router:      g.router,
		prefix:      joinPath(g.prefix, prefix),
		middlewares: append(append([]Middleware(nil), g.middlewares...), middlewares...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodGet, path, name, h, mws...)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPost, path, name, h, mws...)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodPut, path, name, h, mws...)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.mount(http.MethodDelete, path, name, h, mws...)
}

func (g *Group) mount(method, path, name string, h http.HandlerFunc, mws ...Middleware) {
	combined := append(append([]Middleware(nil), g.middlewares...), mws...)
	g.router.mount(method, joinPath(g.prefix, path), name, h, combined...)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func chain(h http.HandlerFunc, mws ...Middleware) http.Handler {
	var wrapped http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

func joinPath(a, b string) string {
	a = normalizePath(a)
	b = normalizePath(b)
	if a == "/" {
		return b
	}
	if b == "/" {
		return a
	}
	return a + b
}
