package server

import (
	"context"

	"github.com/camarero/camarero/resource"
)

// ResourceServer is the remote collaborator every controller talks to.
// Paths are relative to the configured base URL; query values are encoded
// by the provider. Implementations classify failures with faults
// categories so callers can map them to user-facing messages.
type ResourceServer interface {
	List(ctx context.Context, collectionPath string, query map[string]string) ([]resource.Value, error)
	Get(ctx context.Context, path string) (resource.Value, error)
	Create(ctx context.Context, collectionPath string, body resource.Value) (resource.Value, error)
	Update(ctx context.Context, path string, body resource.Value) (resource.Value, error)
	Patch(ctx context.Context, path string, body resource.Value) (resource.Value, error)
	Delete(ctx context.Context, path string) error
}

// AuthFailureHandler is invoked when the server answers 401 or 403. It is
// this client's analog of the browser redirect to the login screen: the
// CLI uses it to tell the user to sign in again.
type AuthFailureHandler func(ctx context.Context, statusCode int)
