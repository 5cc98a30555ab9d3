package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"odsearch/internal/domain"
)

// Sentinel errors. Use errors.Is() to check.
var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrDecode           = errors.New("malformed response body")
)

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 32 << 20

// Searcher queries the concept and annotation search endpoints
type Searcher interface {
	SearchConcepts(ctx context.Context, query string) ([]domain.Concept, error)
	SearchAnnotations(ctx context.Context, query string) ([]domain.Annotation, error)
}

// Client talks to the search API over HTTP
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
	reg     prometheus.Registerer
	obs     *observer
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger logs each request
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics registers request metrics on reg
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) { c.reg = reg }
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, o := range opts {
		o(c)
	}

	var m *clientMetrics
	if c.reg != nil {
		m, err = newClientMetrics(c.reg)
		if err != nil {
			return nil, err
		}
	}
	if c.logger != nil || m != nil {
		c.obs = &observer{logger: c.logger, metrics: m}
	}
	return c, nil
}

// BaseURL returns the API root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchURL returns the endpoint for query within schema
func (c *Client) SearchURL(schema domain.Schema, query string) string {
	return fmt.Sprintf("%s/search/%s/%s", c.baseURL, schema, EncodeURIComponent(query))
}

// SearchConcepts fetches concepts matching query
func (c *Client) SearchConcepts(ctx context.Context, query string) (concepts []domain.Concept, err error) {
	start := time.Now()
	defer func() { c.obs.observe(string(domain.SchemaConcept), query, start, len(concepts), err) }()

	body, err := c.get(ctx, c.SearchURL(domain.SchemaConcept, query))
	if err != nil {
		return nil, fmt.Errorf("search concepts: %w", err)
	}
	concepts, err = domain.DecodeConcepts(body)
	if err != nil {
		return nil, fmt.Errorf("search concepts: %w: %w", ErrDecode, err)
	}
	return concepts, nil
}

// SearchAnnotations fetches annotations matching query
func (c *Client) SearchAnnotations(ctx context.Context, query string) (annotations []domain.Annotation, err error) {
	start := time.Now()
	defer func() { c.obs.observe(string(domain.SchemaAnnotation), query, start, len(annotations), err) }()

	body, err := c.get(ctx, c.SearchURL(domain.SchemaAnnotation, query))
	if err != nil {
		return nil, fmt.Errorf("search annotations: %w", err)
	}
	annotations, err = domain.DecodeAnnotations(body)
	if err != nil {
		return nil, fmt.Errorf("search annotations: %w: %w", ErrDecode, err)
	}
	return annotations, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}
