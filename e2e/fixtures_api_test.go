//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeAPI serves canned search results keyed by schema and query
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]string // "concept/gene" -> JSON body
	failing   map[string]bool   // schemas answering 500
	hits      map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		responses: map[string]string{},
		failing:   map[string]bool{},
		hits:      map[string]int{},
	}
}

// WithResults sets the body returned for schema and query
func (f *fakeAPI) WithResults(schema, query, body string) *fakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[schema+"/"+query] = body
	return f
}

// Failing makes every request for schema fail
func (f *fakeAPI) Failing(schema string) *fakeAPI {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[schema] = true
	return f
}

// Hits returns how many requests reached schema/query
func (f *fakeAPI) Hits(schema, query string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[schema+"/"+query]
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	schema := chi.URLParam(r, "schema")
	query := chi.URLParam(r, "query")

	f.mu.Lock()
	f.hits[schema+"/"+query]++
	failing := f.failing[schema]
	body, ok := f.responses[schema+"/"+query]
	f.mu.Unlock()

	if failing {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	if !ok {
		body = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// Start serves the fake API until the test ends
func (f *fakeAPI) Start(t *testing.T) string {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/search/{schema}/{query}", f.handle)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv.URL
}
