package config

import "context"

// ContextService resolves the active context from the catalog, honoring
// the selection override and the CAMARERO_CONTEXT env var.
type ContextService interface {
	ResolveContext(ctx context.Context, selection ContextSelection) (Context, error)
	ListContexts(ctx context.Context) (ContextCatalog, error)
}
