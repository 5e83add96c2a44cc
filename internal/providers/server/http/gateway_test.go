package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/resource"
	"github.com/camarero/camarero/session"
)

func testSession() session.Reader {
	return session.Static{Session: session.Session{
		Token: "secret-token",
		User:  &session.User{ID: "u1"},
	}}
}

func newTestGateway(t *testing.T, handler http.Handler, opts ...Option) (*Gateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := NewGateway(server.URL+"/api", map[string]string{"X-Storefront": "camarero"}, testSession(), opts...)
	if err != nil {
		t.Fatalf("NewGateway returned error: %v", err)
	}
	return gateway, server
}

func TestNewGatewayValidatesBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty", url: "   "},
		{name: "bad_scheme", url: "ftp://host/api"},
		{name: "no_host", url: "http://"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewGateway(tt.url, nil, nil)
			if !faults.IsCategory(err, faults.ValidationError) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestListBuildsQueryAndHeaders(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery, gotAuth, gotHeader, gotRequestID string
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotHeader = r.Header.Get("X-Storefront")
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "burger"}]`))
	}))

	items, err := gateway.List(context.Background(), "/products", map[string]string{
		"name":     "milanesa napolitana",
		"minPrice": "10",
	})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}

	if gotPath != "/api/products" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotQuery != "minPrice=10&name=milanesa+napolitana" {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("unexpected authorization header: %q", gotAuth)
	}
	if gotHeader != "camarero" {
		t.Fatalf("default header missing, got %q", gotHeader)
	}
	if gotRequestID == "" {
		t.Fatal("expected a request id header")
	}
}

func TestListWithoutFiltersHasNoQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))

	if _, err := gateway.List(context.Background(), "/products", nil); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("expected no query string, got %q", gotQuery)
	}
}

func TestStatusClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		category faults.ErrorCategory
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, category: faults.AuthError},
		{name: "forbidden", status: http.StatusForbidden, category: faults.AuthError},
		{name: "not_found", status: http.StatusNotFound, category: faults.NotFoundError},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, category: faults.ValidationError},
		{name: "server_fault", status: http.StatusInternalServerError, category: faults.ServerError},
		{name: "bad_gateway", status: http.StatusBadGateway, category: faults.ServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			_, err := gateway.List(context.Background(), "/products", nil)
			if !faults.IsCategory(err, tt.category) {
				t.Fatalf("expected %s, got %v", tt.category, err)
			}
		})
	}
}

func TestNetworkFailureIsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	gateway, err := NewGateway(server.URL, nil, testSession())
	if err != nil {
		t.Fatalf("NewGateway returned error: %v", err)
	}

	_, err = gateway.List(context.Background(), "/products", nil)
	if !faults.IsCategory(err, faults.TransportError) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestAuthFailureHandlerFires(t *testing.T) {
	t.Parallel()

	var fired atomic.Int32
	var seenStatus atomic.Int32
	handler := func(ctx context.Context, statusCode int) {
		fired.Add(1)
		seenStatus.Store(int32(statusCode))
	}

	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), WithAuthFailureHandler(handler))

	_, err := gateway.Get(context.Background(), "/users/1")
	if !faults.IsCategory(err, faults.AuthError) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if fired.Load() != 1 || seenStatus.Load() != http.StatusUnauthorized {
		t.Fatalf("auth failure handler not invoked as expected: fired=%d status=%d", fired.Load(), seenStatus.Load())
	}
}

func TestCreateSendsJSONBody(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotBody map[string]any
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 9, "user_id": "u1", "status": "pending"}`))
	}))

	created, err := gateway.Create(context.Background(), "/orders", map[string]any{
		"user_id": "u1",
		"status":  "pending",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if gotContentType != defaultMediaType {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}
	if gotBody["user_id"] != "u1" || gotBody["status"] != "pending" {
		t.Fatalf("unexpected body: %v", gotBody)
	}
	if id, _ := resource.ID(created); id != "9" {
		t.Fatalf("unexpected created id: %q", id)
	}
}

func TestDeleteToleratesEmptyResponse(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath string
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := gateway.Delete(context.Background(), "/order-items/5"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/order-items/5" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotPath)
	}
}

func TestUpdateUsesPut(t *testing.T) {
	t.Parallel()

	var gotMethod string
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_, _ = w.Write([]byte(`{"id": 1, "status": "completed"}`))
	}))

	if _, err := gateway.Update(context.Background(), "/orders/1", map[string]any{"status": "completed"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
}

func TestDecodeListEnvelopes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "bare_array", body: `[{"id": 1}, {"id": 2}]`, want: 2},
		{name: "items_envelope", body: `{"items": [{"id": 1}]}`, want: 1},
		{name: "single_array_field", body: `{"data": [{"id": 1}]}`, want: 1},
		{name: "empty_body", body: ``, want: 0},
		{name: "ambiguous", body: `{"a": [], "b": []}`, wantErr: true},
		{name: "scalar", body: `42`, wantErr: true},
		{name: "non_object_entry", body: `[1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			items, err := gateway.List(context.Background(), "/products", nil)
			if tt.wantErr {
				if !faults.IsCategory(err, faults.ValidationError) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("List returned error: %v", err)
			}
			if len(items) != tt.want {
				t.Fatalf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestListJQReshapesPayload(t *testing.T) {
	t.Parallel()

	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"products": [{"id": 1, "name": "burger"}]}}`))
	}), WithListJQ(".result.products"))

	items, err := gateway.List(context.Background(), "/products", nil)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	name, _ := resource.Name(items[0])
	if name != "burger" {
		t.Fatalf("unexpected item: %v", items[0])
	}
}

func TestListJQInvalidExpression(t *testing.T) {
	t.Parallel()

	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}), WithListJQ(".["))

	_, err := gateway.List(context.Background(), "/products", nil)
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAbsoluteRequestPathRejected(t *testing.T) {
	t.Parallel()

	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	_, err := gateway.Get(context.Background(), "https://elsewhere.example/users")
	if !faults.IsCategory(err, faults.ValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
