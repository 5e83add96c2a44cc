// Package file reads the session written by the external login flow.
// The session is read-only here: this client never refreshes or clears
// the token.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/camarero/camarero/faults"
	"github.com/camarero/camarero/session"
)

const DefaultSessionPath = "~/.camarero/session.yaml"

type SessionReader struct {
	path string
}

var _ session.Reader = (*SessionReader)(nil)

func NewSessionReader(path string) *SessionReader {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		resolved = DefaultSessionPath
	}
	return &SessionReader{path: resolved}
}

// Current loads the session file. A missing file is not an error: it
// yields the anonymous session so public screens keep working.
func (r *SessionReader) Current(ctx context.Context) (session.Session, error) {
	resolved, err := expandHome(r.path)
	if err != nil {
		return session.Session{}, err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return session.Session{}, nil
		}
		return session.Session{}, faults.NewTypedError(faults.InternalError, "failed to read session file", err)
	}

	var current session.Session
	if err := yaml.Unmarshal(raw, &current); err != nil {
		return session.Session{}, faults.NewTypedError(faults.ValidationError, "session file is not valid yaml", err)
	}
	return current, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", faults.NewTypedError(faults.InternalError, "failed to resolve home directory", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
