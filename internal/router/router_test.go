package router

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := New()

	tests := []struct {
		path    string
		pattern string
		query   string
	}{
		{"/", PatternRoot, ""},
		{"", PatternRoot, ""},
		{"/search", PatternSearch, ""},
		{"/search/", PatternSearch, ""},
		{"/search/gene", PatternQuery, "gene"},
		{"/search/gene%20expression", PatternQuery, "gene expression"},
		{"/search/a%2Fb", PatternQuery, "a/b"},
		{"/search/it's%20(fine)!", PatternQuery, "it's (fine)!"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, err := r.Resolve(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, route.Pattern)
			assert.Equal(t, tt.query, route.Query)
			assert.Equal(t, tt.query != "", route.HasQuery())
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := New().Resolve("/concept/gene")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoute))
}

func TestPathRoundTrip(t *testing.T) {
	r := New()
	for _, q := range []string{"gene", "principal components", "x/y?z", "100%"} {
		route, err := r.Resolve(Path(q))
		require.NoError(t, err, q)
		assert.Equal(t, q, route.Query)
	}
	assert.Equal(t, "/search", Path(""))
}
