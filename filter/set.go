package filter

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/camarero/camarero/faults"
)

type Kind string

const (
	KindText   Kind = "text"
	KindSelect Kind = "select"
)

type Option struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Spec declares one named filter. Select filters carry the allowed
// options; text filters accept any value.
type Spec struct {
	Kind    Kind     `yaml:"kind" json:"kind"`
	Name    string   `yaml:"name" json:"name"`
	Label   string   `yaml:"label" json:"label"`
	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`
}

// Set holds the draft and applied snapshots of a fixed collection of
// filters. The name set never changes after construction; only values do.
// An empty value means "unset" and is excluded from outgoing queries.
type Set struct {
	specs   []Spec
	draft   map[string]string
	applied map[string]string
}

func NewSet(specs []Spec) (*Set, error) {
	seen := make(map[string]struct{}, len(specs))
	cloned := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, validationError("filter name is required", nil)
		}
		if _, exists := seen[name]; exists {
			return nil, validationError(fmt.Sprintf("duplicate filter name %q", name), nil)
		}
		if spec.Kind != KindText && spec.Kind != KindSelect {
			return nil, validationError(fmt.Sprintf("filter %q has invalid kind %q", name, spec.Kind), nil)
		}
		seen[name] = struct{}{}
		spec.Name = name
		cloned = append(cloned, spec)
	}

	set := &Set{
		specs:   cloned,
		draft:   make(map[string]string, len(cloned)),
		applied: make(map[string]string, len(cloned)),
	}
	return set, nil
}

// Specs returns the declared filters in declaration order.
func (s *Set) Specs() []Spec {
	out := make([]Spec, len(s.specs))
	copy(out, s.specs)
	return out
}

// SetDraft updates the draft value only. It never touches the applied
// snapshot and never triggers a fetch.
func (s *Set) SetDraft(name, value string) error {
	spec, ok := s.spec(name)
	if !ok {
		return validationError(fmt.Sprintf("unknown filter %q", name), nil)
	}
	s.draft[spec.Name] = value
	return nil
}

// Draft reads the draft value for a filter, empty when unset.
func (s *Set) Draft(name string) string {
	return s.draft[name]
}

// Applied reads the applied value for a filter, empty when unset.
func (s *Set) Applied(name string) string {
	return s.applied[name]
}

// Apply copies the whole draft snapshot over the applied snapshot and
// reports whether the applied snapshot changed as a result.
func (s *Set) Apply() bool {
	changed := false
	for _, spec := range s.specs {
		if s.applied[spec.Name] != s.draft[spec.Name] {
			changed = true
		}
	}

	next := make(map[string]string, len(s.draft))
	for name, value := range s.draft {
		next[name] = value
	}
	s.applied = next
	return changed
}

// Clear resets both snapshots to all-empty in one step. A draft-only
// clear is not a supported transition.
func (s *Set) Clear() {
	s.draft = make(map[string]string, len(s.specs))
	s.applied = make(map[string]string, len(s.specs))
}

// Query builds name=value pairs from the applied snapshot, skipping unset
// filters. Names come back sorted so queries are stable.
func (s *Set) Query() map[string]string {
	query := make(map[string]string)
	for _, spec := range s.specs {
		if value := s.applied[spec.Name]; value != "" {
			query[spec.Name] = value
		}
	}
	return query
}

// EncodeQuery renders the applied snapshot as a query string without the
// leading "?"; empty when every filter is unset.
func (s *Set) EncodeQuery() string {
	query := s.Query()
	if len(query) == 0 {
		return ""
	}

	names := make([]string, 0, len(query))
	for name := range query {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+url.QueryEscape(query[name]))
	}
	return strings.Join(pairs, "&")
}

// SelectedOption resolves the draft value of a select filter to one of its
// options. A stored value that matches no option reports unset instead of
// erroring.
func (s *Set) SelectedOption(name string) (Option, bool) {
	spec, ok := s.spec(name)
	if !ok || spec.Kind != KindSelect {
		return Option{}, false
	}

	value := s.draft[spec.Name]
	if value == "" {
		return Option{}, false
	}
	for _, option := range spec.Options {
		if option.Value == value {
			return option, true
		}
	}
	return Option{}, false
}

func (s *Set) spec(name string) (Spec, bool) {
	for _, spec := range s.specs {
		if spec.Name == name {
			return spec, true
		}
	}
	return Spec{}, false
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}
