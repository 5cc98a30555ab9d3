package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"odsearch/internal/api"
)

// Route patterns
const (
	PatternRoot   = "/"
	PatternSearch = "/search"
	PatternQuery  = "/search/{query}"
)

// ErrNoRoute is returned for paths that match no page
var ErrNoRoute = errors.New("no route")

// Route is a resolved location
type Route struct {
	Path    string // escaped path as resolved
	Pattern string
	Query   string // decoded query parameter, empty when absent
}

// HasQuery reports whether the route carries a non-empty query
func (r Route) HasQuery() bool {
	return r.Query != ""
}

// Router resolves paths to routes using chi's matcher
type Router struct {
	mux *chi.Mux
}

// New creates a router with the search page routes
func New() *Router {
	mux := chi.NewRouter()
	page := func(http.ResponseWriter, *http.Request) {}
	mux.Get(PatternRoot, page)
	mux.Get(PatternSearch, page)
	mux.Get(PatternQuery, page)
	return &Router{mux: mux}
}

// Resolve matches path against the known routes
func (r *Router) Resolve(path string) (Route, error) {
	u, err := url.Parse(path)
	if err != nil {
		return Route{}, fmt.Errorf("invalid path %q: %w", path, err)
	}
	escaped := u.EscapedPath()
	if escaped == "" {
		escaped = "/"
	}
	if len(escaped) > 1 {
		escaped = strings.TrimRight(escaped, "/")
	}

	rctx := chi.NewRouteContext()
	pattern := r.mux.Find(rctx, http.MethodGet, escaped)
	if pattern == "" {
		return Route{}, fmt.Errorf("%w for %q", ErrNoRoute, path)
	}

	route := Route{Path: escaped, Pattern: pattern}
	if raw := rctx.URLParam("query"); raw != "" {
		q, err := url.PathUnescape(raw)
		if err != nil {
			return Route{}, fmt.Errorf("invalid query in %q: %w", path, err)
		}
		route.Query = q
	}
	return route, nil
}

// Path builds the route path for query
func Path(query string) string {
	if query == "" {
		return PatternSearch
	}
	return PatternSearch + "/" + api.EncodeURIComponent(query)
}
