package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter is a simple HTTP router implementing the [Router] interface.
//
// Paths are matched by an [http.ServeMux]; each path then dispatches on the request method.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
	routes      map[string]*methodTable
}

// methodTable holds the handlers registered for one path, keyed by upper-case method.
type methodTable struct {
	handlers map[string]http.Handler
}

func (t *methodTable) allow() string {
	methods := make([]string, 0, len(t.handlers))
	for m := range t.handlers {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return strings.Join(methods, ", ")
}

func (t *methodTable) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h, ok := t.handlers[strings.ToUpper(req.Method)]
	if !ok {
		w.Header().Set("Allow", t.allow())
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.ServeHTTP(w, req)
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:    http.NewServeMux(),
		routes: make(map[string]*methodTable),
	}
}

// Use adds [Middleware] to the router's stack, applied in the order it's added to handlers registered afterwards.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for method on path, wrapped with the current middleware.
//
// A path may carry several methods; any other method gets a 405 listing them in the Allow header.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	table, ok := r.routes[path]
	if !ok {
		table = &methodTable{handlers: make(map[string]http.Handler)}
		r.routes[path] = table
		r.mux.Handle(path, table)
	}
	table.handlers[strings.ToUpper(method)] = r.Apply(handler)
}

// Handler registers a custom [Handler] on every route it reports, for all methods.
//
// The handler is responsible for its own method checks.
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)

	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// Routes lists the method-bound routes as "METHOD path", sorted.
func (r *BasicRouter) Routes() []string {
	var out []string
	for path, table := range r.routes {
		for method := range table.handlers {
			out = append(out, method+" "+path)
		}
	}
	slices.Sort(out)
	return out
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware, the first added being outermost.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}
