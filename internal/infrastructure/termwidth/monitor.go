// Package termwidth caches the controlling terminal's column count and
// refreshes it when the window is resized.
package termwidth

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/ports"
)

// Probe asks one file descriptor for its column count.
type Probe func(fd int) (int, error)

// errNoColumns is returned by TermProbe when the device reports zero columns.
var errNoColumns = errors.New("terminal reported zero columns")

// TermProbe queries fd with golang.org/x/term.
func TermProbe(fd int) (int, error) {
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0, err
	}
	if width <= 0 {
		return 0, errNoColumns
	}
	return width, nil
}

// Monitor holds the cached width. Width is safe to call from any goroutine.
type Monitor struct {
	setting domain.WidthSetting
	probe   Probe
	fds     []int
	width   atomic.Int64
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithProbe replaces the terminal probe.
func WithProbe(p Probe) Option {
	return func(m *Monitor) { m.probe = p }
}

// WithDescriptors replaces the probed descriptors (stdin, stdout, stderr by default).
func WithDescriptors(fds ...int) Option {
	return func(m *Monitor) { m.fds = fds }
}

// NewMonitor builds a monitor and resolves the width once, so a value is
// always available before the first read.
func NewMonitor(setting domain.WidthSetting, opts ...Option) *Monitor {
	m := &Monitor{
		setting: setting,
		probe:   TermProbe,
		fds:     []int{0, 1, 2},
	}
	for _, opt := range opts {
		opt(m)
	}
	m.Refresh()
	return m
}

// Width returns the cached column count; 0 means width reporting is disabled.
func (m *Monitor) Width() int {
	return int(m.width.Load())
}

// Setting returns the configured resolution mode.
func (m *Monitor) Setting() domain.WidthSetting {
	return m.setting
}

// Refresh re-resolves the width. It is the resize handler.
func (m *Monitor) Refresh() {
	m.width.Store(int64(m.resolve()))
}

func (m *Monitor) resolve() int {
	switch m.setting.Mode {
	case domain.WidthFixed:
		return m.setting.Columns
	case domain.WidthAuto:
		for _, fd := range m.fds {
			if w, err := m.probe(fd); err == nil && w > 0 {
				return w
			}
		}
		return domain.DefaultTermWidth
	default:
		return 0
	}
}

// Watch refreshes the width on every resize notification until ctx is done.
// The returned function stops watching early.
func (m *Monitor) Watch(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	notify, release := resizeNotifications()
	go func() {
		defer release()
		for {
			select {
			case <-ctx.Done():
				return
			case <-notify:
				m.Refresh()
			}
		}
	}()
	return cancel
}

var _ ports.WidthSource = (*Monitor)(nil)
