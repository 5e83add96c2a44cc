package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/camarero/camarero/config"
	"github.com/camarero/camarero/faults"
)

// ContextService resolves storefront contexts from the yaml catalog.
// Selection precedence: explicit selection, CAMARERO_CONTEXT, then the
// catalog's current-ctx; the catalog path itself can be overridden with
// CAMARERO_CONTEXTS_FILE.
type ContextService struct {
	path string
}

var _ config.ContextService = (*ContextService)(nil)

func NewContextService(path string) *ContextService {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = os.Getenv(config.ContextFileEnvVar)
	}
	if resolved == "" {
		resolved = config.DefaultContextCatalogPath
	}
	return &ContextService{path: resolved}
}

func (s *ContextService) ListContexts(ctx context.Context) (config.ContextCatalog, error) {
	return s.loadCatalog()
}

func (s *ContextService) ResolveContext(ctx context.Context, selection config.ContextSelection) (config.Context, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return config.Context{}, err
	}

	name := strings.TrimSpace(selection.Name)
	if name == "" {
		name = strings.TrimSpace(os.Getenv(config.ContextNameEnvVar))
	}
	if name == "" {
		name = strings.TrimSpace(catalog.CurrentCtx)
	}

	if name == "" {
		if len(catalog.Contexts) == 1 {
			return validateContext(catalog.Contexts[0])
		}
		return config.Context{}, validationError("no context selected: set current-ctx or pass --context", nil)
	}

	for _, candidate := range catalog.Contexts {
		if candidate.Name == name {
			return validateContext(candidate)
		}
	}
	return config.Context{}, notFoundError(fmt.Sprintf("context %q not found in catalog", name), nil)
}

func (s *ContextService) loadCatalog() (config.ContextCatalog, error) {
	resolved, err := expandHome(s.path)
	if err != nil {
		return config.ContextCatalog{}, err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.ContextCatalog{}, notFoundError(
				fmt.Sprintf("context catalog %s does not exist", s.path), err)
		}
		return config.ContextCatalog{}, internalError("failed to read context catalog", err)
	}

	var catalog config.ContextCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return config.ContextCatalog{}, validationError("context catalog is not valid yaml", err)
	}

	seen := make(map[string]struct{}, len(catalog.Contexts))
	for _, candidate := range catalog.Contexts {
		name := strings.TrimSpace(candidate.Name)
		if name == "" {
			return config.ContextCatalog{}, validationError("context catalog entries require a name", nil)
		}
		if _, exists := seen[name]; exists {
			return config.ContextCatalog{}, validationError(fmt.Sprintf("duplicate context name %q", name), nil)
		}
		seen[name] = struct{}{}
	}

	return catalog, nil
}

func validateContext(candidate config.Context) (config.Context, error) {
	if strings.TrimSpace(candidate.API.BaseURL) == "" {
		return config.Context{}, validationError(
			fmt.Sprintf("context %q is missing api.base-url", candidate.Name), nil)
	}
	return candidate, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", internalError("failed to resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func notFoundError(message string, cause error) error {
	return faults.NewTypedError(faults.NotFoundError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
