package app

import (
	"sync"

	"github.com/burst-go/burst/internal/infrastructure/termwidth"
)

// Runtime is the process-wide context of one console run: the terminal
// width monitor and the hooks to run on exit.
type Runtime struct {
	Width *termwidth.Monitor

	mu    sync.Mutex
	hooks []func()
	once  sync.Once
}

// NewRuntime builds a runtime around width.
func NewRuntime(width *termwidth.Monitor) *Runtime {
	return &Runtime{Width: width}
}

// AtExit registers fn to run on Shutdown. Hooks run last-registered first.
func (r *Runtime) AtExit(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, fn)
}

// Shutdown runs the exit hooks once. A panicking hook does not stop the
// remaining ones.
func (r *Runtime) Shutdown() {
	r.once.Do(func() {
		r.mu.Lock()
		hooks := r.hooks
		r.hooks = nil
		r.mu.Unlock()
		for i := len(hooks) - 1; i >= 0; i-- {
			runHook(hooks[i])
		}
	})
}

func runHook(fn func()) {
	defer func() { _ = recover() }()
	fn()
}
