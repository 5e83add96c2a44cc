package http

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/camarero/camarero/debugctx"
	"github.com/camarero/camarero/resource"
)

func (g *Gateway) execute(ctx context.Context, method, requestPath string, query map[string]string, payload resource.Value) ([]byte, error) {
	request, err := g.newRequest(ctx, method, requestPath, query, payload)
	if err != nil {
		return nil, err
	}

	debugctx.Printf(ctx, "http %s %s", method, request.URL.String())

	response, err := g.client.Do(request)
	if err != nil {
		return nil, transportError("remote request failed", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return nil, transportError("failed to read remote response body", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
			if g.onAuthFailure != nil {
				g.onAuthFailure(ctx, response.StatusCode)
			}
		}
		return nil, classifyStatusError(response.StatusCode, body)
	}

	return body, nil
}

func (g *Gateway) newRequest(ctx context.Context, method, requestPath string, query map[string]string, payload resource.Value) (*http.Request, error) {
	targetURL, err := g.resolveRequestURL(requestPath, query)
	if err != nil {
		return nil, err
	}

	requestBody, err := encodeRequestBody(payload)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if len(requestBody) > 0 {
		bodyReader = bytes.NewReader(requestBody)
	}

	request, err := http.NewRequestWithContext(ctx, method, targetURL, bodyReader)
	if err != nil {
		return nil, internalError("failed to create remote request", err)
	}

	request.Header.Set("Accept", defaultMediaType)
	if len(requestBody) > 0 {
		request.Header.Set("Content-Type", defaultMediaType)
	}
	request.Header.Set("X-Request-ID", uuid.NewString())

	if len(g.defaultHeaders) > 0 {
		keys := make([]string, 0, len(g.defaultHeaders))
		for key := range g.defaultHeaders {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			request.Header.Set(key, g.defaultHeaders[key])
		}
	}

	if err := g.applyAuth(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (g *Gateway) resolveRequestURL(requestPath string, query map[string]string) (string, error) {
	if parsed, err := url.Parse(requestPath); err == nil && parsed.Scheme != "" {
		return "", validationError("request path must be relative to api.base-url", nil)
	}

	target := *g.baseURL
	target.Path = joinBaseAndRequestPath(g.baseURL.Path, requestPath)

	values := target.Query()
	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			values.Set(key, query[key])
		}
	}
	target.RawQuery = values.Encode()

	return target.String(), nil
}

func (g *Gateway) applyAuth(ctx context.Context, request *http.Request) error {
	if g.sessions == nil {
		return nil
	}

	current, err := g.sessions.Current(ctx)
	if err != nil {
		return err
	}
	if current.Token != "" {
		request.Header.Set("Authorization", "Bearer "+current.Token)
	}
	return nil
}

func joinBaseAndRequestPath(basePath, requestPath string) string {
	base := strings.TrimSuffix(basePath, "/")
	request := strings.TrimSpace(requestPath)
	if request == "" {
		if base == "" {
			return "/"
		}
		return base
	}
	if !strings.HasPrefix(request, "/") {
		request = "/" + request
	}
	return base + request
}
