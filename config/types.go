package config

const (
	ContextFileEnvVar         = "CAMARERO_CONTEXTS_FILE"
	ContextNameEnvVar         = "CAMARERO_CONTEXT"
	DefaultContextCatalogPath = "~/.camarero/contexts.yaml"
	OutputFormatText          = "text"
	OutputFormatJSON          = "json"
	OutputFormatYAML          = "yaml"
)

type ContextSelection struct {
	Name string
}

// ContextCatalog is the yaml file listing every configured storefront
// context plus the currently selected one.
type ContextCatalog struct {
	Contexts   []Context `yaml:"contexts"`
	CurrentCtx string    `yaml:"current-ctx,omitempty"`
}

type Context struct {
	Name        string            `yaml:"name"`
	API         API               `yaml:"api"`
	Session     *SessionStore     `yaml:"session,omitempty"`
	Preferences map[string]string `yaml:"preferences,omitempty"`
}

type API struct {
	BaseURL        string            `yaml:"base-url"`
	DefaultHeaders map[string]string `yaml:"default-headers,omitempty"`
	// ListJQ optionally reshapes list responses before item extraction,
	// for servers that envelope collections in nonstandard keys.
	ListJQ string `yaml:"list-jq,omitempty"`
}

type SessionStore struct {
	File string `yaml:"file"`
}

func (c Context) OutputFormat() string {
	if c.Preferences == nil {
		return ""
	}
	return c.Preferences["output"]
}
