package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"odsearch/internal/config"
	"odsearch/internal/domain"
)

func fakeAPI(t *testing.T, concepts, annotations string) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/search/concept/{query}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(concepts))
	})
	r.Get("/search/annotation/{query}", func(w http.ResponseWriter, _ *http.Request) {
		if annotations == "" {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(annotations))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	base := []string{"odsearch",
		"--config", filepath.Join(dir, "config.toml"),
		"--log-file", filepath.Join(dir, "odsearch.log"),
	}
	err := app.Run(append(base, args...))
	return out.String(), err
}

func TestPrintCommand(t *testing.T) {
	srv := fakeAPI(t,
		`[{"id":"gene","kind":"type","name":"gene","description":"A unit of heredity"}]`,
		`[]`,
	)

	out, err := runApp(t, "--api-url", srv.URL, "print", "gene")
	require.NoError(t, err)
	assert.Contains(t, out, "Concepts (1)")
	assert.Contains(t, out, "Annotations (0)")
	assert.Contains(t, out, "gene")
	assert.Contains(t, out, "A unit of heredity")
	assert.Contains(t, out, "No results.")
}

func TestPrintCommandWithoutDescriptions(t *testing.T) {
	srv := fakeAPI(t, `[{"id":"gene","kind":"type","description":"A unit of heredity"}]`, `[]`)

	out, err := runApp(t, "--api-url", srv.URL, "print", "--no-descriptions", "gene")
	require.NoError(t, err)
	assert.NotContains(t, out, "A unit of heredity")
}

func TestPrintCommandFailsOnFetchError(t *testing.T) {
	srv := fakeAPI(t, `[]`, "")

	_, err := runApp(t, "--api-url", srv.URL, "print", "gene")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotation search")
}

func TestPrintCommandRequiresQuery(t *testing.T) {
	_, err := runApp(t, "print")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestRejectsUnknownStartPath(t *testing.T) {
	_, err := runApp(t, "/elsewhere")
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	out, err := runApp(t, "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.NewConfigService(path).LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().API.BaseURL, cfg.API.BaseURL)

	_, err = runApp(t, "config", "init", "--path", path)
	require.Error(t, err, "existing file is kept without --force")

	_, err = runApp(t, "config", "init", "--path", path, "--force")
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

type stubSearcher struct {
	conceptErr error
}

func (s stubSearcher) SearchConcepts(ctx context.Context, query string) ([]domain.Concept, error) {
	if s.conceptErr != nil {
		return nil, s.conceptErr
	}
	return []domain.Concept{{ID: domain.ID(query), Kind: "type"}}, nil
}

func (s stubSearcher) SearchAnnotations(ctx context.Context, query string) ([]domain.Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []domain.Annotation{{Language: "python", Package: "pkg", ID: domain.ID(query)}}, nil
}

func TestSearchJoinsBothFetches(t *testing.T) {
	concepts, annotations, err := search(context.Background(), stubSearcher{}, "gene")
	require.NoError(t, err)
	assert.Len(t, concepts, 1)
	assert.Len(t, annotations, 1)

	boom := errors.New("boom")
	_, _, err = search(context.Background(), stubSearcher{conceptErr: boom}, "gene")
	assert.ErrorIs(t, err, boom)
}

func TestRenderReportDisablesEmptyTabs(t *testing.T) {
	out := renderReport(nil, []domain.Annotation{{Language: "r", Package: "stats", ID: "lm"}}, false)
	assert.Contains(t, out, "Concepts (0)")
	assert.Contains(t, out, "Annotations (1)")
	assert.Contains(t, out, "r/stats/lm")
}
