// Package session owns the active console session: its name, read-only
// flag, namespace and persistence.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/infrastructure/namespace"
	"github.com/burst-go/burst/internal/ports"
)

// Store is the persistence the manager needs.
type Store interface {
	Names(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (domain.SessionRecord, bool, error)
	Save(ctx context.Context, rec domain.SessionRecord) error
	Delete(ctx context.Context, name string) error
}

// Decoder rebuilds a typed value from its stored JSON.
type Decoder func(raw []byte) (any, error)

// DefaultDecoders keep well-known variables typed across restarts.
var DefaultDecoders = map[string]Decoder{
	"requests": func(raw []byte) (any, error) {
		var set domain.RequestSet
		err := json.Unmarshal(raw, &set)
		return set, err
	},
}

// Manager implements ports.SessionManager.
type Manager struct {
	store     Store
	ns        *namespace.Map
	logger    ports.Logger
	decoders  map[string]Decoder
	transient map[string]bool

	name          string
	readOnly      bool
	recordID      string
	savedRevision uint64
}

// NewManager creates a manager for the default session.
func NewManager(store Store, ns *namespace.Map, logger ports.Logger) *Manager {
	return &Manager{
		store:     store,
		ns:        ns,
		logger:    logger,
		decoders:  DefaultDecoders,
		transient: map[string]bool{"conf": true},
		name:      domain.DefaultSessionName,
	}
}

// SetName selects (or creates) the named session. Call before Load.
func (m *Manager) SetName(name string) {
	if name == "" {
		name = domain.DefaultSessionName
	}
	m.name = name
}

// SetReadOnly prevents autosave.
func (m *Manager) SetReadOnly(readOnly bool) {
	m.readOnly = readOnly
}

// Name implements ports.SessionState.
func (m *Manager) Name() string {
	return m.name
}

// ReadOnly implements ports.SessionState.
func (m *Manager) ReadOnly() bool {
	return m.readOnly
}

// ShouldSave reports unsaved changes in a writable session.
func (m *Manager) ShouldSave() bool {
	return !m.readOnly && m.ns.Revision() != m.savedRevision
}

// Namespace returns the live namespace.
func (m *Manager) Namespace() *namespace.Map {
	return m.ns
}

// List returns the stored session names.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	names, err := m.store.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Remove deletes a stored session. The active session cannot be removed.
func (m *Manager) Remove(ctx context.Context, name string) error {
	if name == m.name {
		return fmt.Errorf("session %s is in use", name)
	}
	if _, found, err := m.store.Get(ctx, name); err != nil {
		return fmt.Errorf("remove session %s: %w", name, err)
	} else if !found {
		return fmt.Errorf("session %s does not exist", name)
	}
	if err := m.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("remove session %s: %w", name, err)
	}
	return nil
}

// Load restores the selected session into the namespace. A session that was
// never saved starts empty.
func (m *Manager) Load(ctx context.Context) error {
	rec, found, err := m.store.Get(ctx, m.name)
	if err != nil {
		return fmt.Errorf("load session %s: %w", m.name, err)
	}
	if found {
		m.recordID = rec.ID
		for key, raw := range rec.Variables {
			v, err := m.decode(key, raw)
			if err != nil {
				m.logger.Warn("skipping unreadable session variable", map[string]interface{}{
					"session": m.name, "variable": key, "error": err.Error(),
				})
				continue
			}
			m.ns.Set(key, v)
		}
	}
	m.savedRevision = m.ns.Revision()
	m.logger.Debug("session loaded", map[string]interface{}{"session": m.name, "found": found})
	return nil
}

// Autosave persists the namespace when there are unsaved changes.
func (m *Manager) Autosave(ctx context.Context) error {
	if !m.ShouldSave() {
		return nil
	}
	rec := domain.SessionRecord{ID: m.recordID, Name: m.name, Variables: map[string][]byte{}}
	for key, v := range m.ns.Snapshot() {
		if m.transient[key] {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			m.logger.Debug("variable not persisted", map[string]interface{}{"variable": key, "error": err.Error()})
			continue
		}
		rec.Variables[key] = raw
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("save session %s: %w", m.name, err)
	}
	m.savedRevision = m.ns.Revision()
	return nil
}

func (m *Manager) decode(key string, raw []byte) (any, error) {
	if dec, ok := m.decoders[key]; ok {
		return dec(raw)
	}
	var v any
	err := json.Unmarshal(raw, &v)
	return v, err
}

var _ ports.SessionManager = (*Manager)(nil)
