package session

import "context"

// User is the cached profile resolved at login time by the external
// session collaborator.
type User struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	Role string `yaml:"role,omitempty" json:"role,omitempty"`
}

// Session carries the access token and cached profile. Both are read-only
// from this client's perspective; the login flow owns them.
type Session struct {
	Token string `yaml:"token,omitempty" json:"token,omitempty"`
	User  *User  `yaml:"user,omitempty" json:"user,omitempty"`
}

func (s Session) LoggedIn() bool {
	return s.User != nil && s.User.ID != ""
}

// Reader resolves the current session. Implementations must tolerate a
// missing session and return an anonymous one instead of failing.
type Reader interface {
	Current(ctx context.Context) (Session, error)
}

// Static is a fixture-friendly Reader over a fixed session.
type Static struct {
	Session Session
}

func (s Static) Current(context.Context) (Session, error) {
	return s.Session, nil
}
