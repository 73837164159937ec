// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The console core (preprocessor, completion engine, prompt renderer and the
// loop itself) depends only on these contracts. Concrete adapters for the
// evaluator, the session store, the history file and the terminal live in the
// infrastructure layer, so the core can be driven by test doubles.
//
// Key architectural concepts:
//   - Ports: Interfaces defined here (e.g., Namespace, SessionManager)
//   - Adapters: Concrete implementations in the infrastructure layer
//   - Dependency inversion: Application depends on abstractions, not implementations
package ports

import (
	"context"

	"github.com/burst-go/burst/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.burst/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// Namespace is the capability the completion engine needs from a live
// evaluation scope.
type Namespace interface {
	// Keys lists the names bound in the scope, reserved key included.
	Keys() []string
	// Resolve evaluates an identifier/indexing chain such as requests[0].response.
	Resolve(expr string) (any, error)
	// Members lists the attribute names reachable from v.
	Members(v any) []string
}

// Evaluator executes console input against the session namespace.
type Evaluator interface {
	// Push feeds one line. more is true while the buffered source is incomplete.
	Push(line string) (more bool, err error)
	// Reset drops any buffered partial statement.
	Reset()
}

// SessionState is the read-only view of the active session used by the prompt.
type SessionState interface {
	Name() string
	ReadOnly() bool
	ShouldSave() bool
}

// SessionManager owns the active session and its persistence.
type SessionManager interface {
	SessionState
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context) error
	Autosave(ctx context.Context) error
}

// HistoryRepository persists submitted command lines in order.
type HistoryRepository interface {
	Load() ([]string, error)
	Append(line string)
	Save() error
	Path() string
}

// PayloadSource reports whether injection payloads were found.
type PayloadSource interface {
	Available() bool
}

// WidthSource exposes the cached terminal width to formatters.
type WidthSource interface {
	Width() int
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
