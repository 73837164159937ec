package domain

import "time"

// SessionIdentity is the part of a session the prompt reflects.
type SessionIdentity struct {
	Name string
}

// IsDefault reports whether this is the implicit session.
func (s SessionIdentity) IsDefault() bool {
	return s.Name == "" || s.Name == DefaultSessionName
}

// SessionRecord is one persisted session.
type SessionRecord struct {
	ID        string
	Name      string
	UpdatedAt time.Time
	Variables map[string][]byte
}
