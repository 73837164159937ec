// Package namespace holds the live evaluation scope shared by the console
// loop and the completion engine.
package namespace

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/expr-lang/expr"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/ports"
)

// pathPattern accepts identifier/indexing chains only, so resolving a
// completion prefix never calls user functions.
var pathPattern = regexp.MustCompile(`^[A-Za-z_]\w*(\[-?\w+\]|\.\w+)*$`)

var rootPattern = regexp.MustCompile(`^[A-Za-z_]\w*`)

// Map is a mutable identifier -> value scope. It is not safe for concurrent
// use; the console drives it from a single goroutine.
type Map struct {
	vars     map[string]any
	builtins map[string]any
	revision uint64
}

// New creates a scope seeded with vars. The map is copied.
func New(vars map[string]any) *Map {
	m := &Map{vars: make(map[string]any, len(vars))}
	for k, v := range vars {
		m.vars[k] = v
	}
	return m
}

// SetBuiltins binds the builtins scope under the reserved key. It does not
// count as a modification.
func (m *Map) SetBuiltins(builtins map[string]any) {
	m.builtins = builtins
	m.vars[domain.ReservedKey] = builtins
}

// Get returns the value bound to name.
func (m *Map) Get(name string) (any, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Set binds name and bumps the revision.
func (m *Map) Set(name string, v any) {
	m.vars[name] = v
	m.revision++
}

// Seed binds name only when it is unbound, without bumping the revision.
func (m *Map) Seed(name string, v any) {
	if _, ok := m.vars[name]; !ok {
		m.vars[name] = v
	}
}

// Delete unbinds name.
func (m *Map) Delete(name string) bool {
	if name == domain.ReservedKey {
		return false
	}
	if _, ok := m.vars[name]; !ok {
		return false
	}
	delete(m.vars, name)
	m.revision++
	return true
}

// Revision counts modifications made through Set and Delete.
func (m *Map) Revision() uint64 {
	return m.revision
}

// Keys returns every bound name, sorted.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Env is the evaluation environment: builtins overlaid by session variables.
func (m *Map) Env() map[string]any {
	env := make(map[string]any, len(m.vars)+len(m.builtins))
	for k, v := range m.builtins {
		env[k] = v
	}
	for k, v := range m.vars {
		if k == domain.ReservedKey {
			continue
		}
		env[k] = v
	}
	return env
}

// Snapshot copies the session variables, reserved key excluded.
func (m *Map) Snapshot() map[string]any {
	out := make(map[string]any, len(m.vars))
	for k, v := range m.vars {
		if k == domain.ReservedKey {
			continue
		}
		out[k] = v
	}
	return out
}

// Resolve evaluates an identifier/indexing chain against this scope.
func (m *Map) Resolve(path string) (result any, err error) {
	if !pathPattern.MatchString(path) {
		return nil, fmt.Errorf("not a resolvable path: %q", path)
	}
	env := m.Env()
	root := rootPattern.FindString(path)
	if _, ok := env[root]; !ok {
		return nil, fmt.Errorf("name %q is not defined", root)
	}
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("resolve %s: %v", path, r)
		}
	}()
	program, err := expr.Compile(path, expr.Env(env))
	if err != nil {
		return nil, err
	}
	return expr.Run(program, env)
}

// Members implements ports.Namespace.
func (m *Map) Members(v any) []string {
	return Members(v)
}

var _ ports.Namespace = (*Map)(nil)
