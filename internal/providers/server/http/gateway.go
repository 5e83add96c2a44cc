package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/camarero/camarero/resource"
	"github.com/camarero/camarero/server"
	"github.com/camarero/camarero/session"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMediaType   = "application/json"
)

var _ server.ResourceServer = (*Gateway)(nil)

// Gateway talks to the storefront REST API. The session reader supplies
// the bearer token on every request; the auth-failure handler is the
// client-side analog of the original interceptor that redirected to the
// login screen on 401/403.
type Gateway struct {
	baseURL        *url.URL
	defaultHeaders map[string]string
	sessions       session.Reader
	onAuthFailure  server.AuthFailureHandler
	listJQ         string
	client         *http.Client
}

type Option func(*Gateway)

func WithAuthFailureHandler(handler server.AuthFailureHandler) Option {
	return func(g *Gateway) {
		if g == nil {
			return
		}
		g.onAuthFailure = handler
	}
}

// WithListJQ reshapes list responses with a gojq expression before item
// extraction, for servers that envelope collections in nonstandard keys.
func WithListJQ(expression string) Option {
	return func(g *Gateway) {
		if g == nil {
			return
		}
		g.listJQ = strings.TrimSpace(expression)
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if g == nil || client == nil {
			return
		}
		g.client = client
	}
}

func NewGateway(baseURL string, defaultHeaders map[string]string, sessions session.Reader, opts ...Option) (*Gateway, error) {
	parsed, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	gateway := &Gateway{
		baseURL:        parsed,
		defaultHeaders: cloneStringMap(defaultHeaders),
		sessions:       sessions,
		client:         &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(gateway)
	}
	return gateway, nil
}

func (g *Gateway) List(ctx context.Context, collectionPath string, query map[string]string) ([]resource.Value, error) {
	body, err := g.execute(ctx, http.MethodGet, collectionPath, query, nil)
	if err != nil {
		return nil, err
	}
	return g.decodeListResponse(body)
}

func (g *Gateway) Get(ctx context.Context, path string) (resource.Value, error) {
	body, err := g.execute(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeJSONResponse(body)
}

func (g *Gateway) Create(ctx context.Context, collectionPath string, payload resource.Value) (resource.Value, error) {
	body, err := g.execute(ctx, http.MethodPost, collectionPath, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeJSONResponse(body)
}

func (g *Gateway) Update(ctx context.Context, path string, payload resource.Value) (resource.Value, error) {
	body, err := g.execute(ctx, http.MethodPut, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeJSONResponse(body)
}

func (g *Gateway) Patch(ctx context.Context, path string, payload resource.Value) (resource.Value, error) {
	body, err := g.execute(ctx, http.MethodPatch, path, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeJSONResponse(body)
}

func (g *Gateway) Delete(ctx context.Context, path string) error {
	_, err := g.execute(ctx, http.MethodDelete, path, nil, nil)
	return err
}

func parseBaseURL(raw string) (*url.URL, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, validationError("api.base-url is required", nil)
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return nil, validationError("api.base-url is invalid", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, validationError("api.base-url must use http or https", nil)
	}
	if parsed.Host == "" {
		return nil, validationError("api.base-url host is required", nil)
	}

	if parsed.Path == "" {
		parsed.Path = "/"
	}

	return parsed, nil
}

func cloneStringMap(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}

	cloned := make(map[string]string, len(values))
	for key, value := range values {
		cloned[key] = value
	}
	return cloned
}
