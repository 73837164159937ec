// Package builtins provides the functions every console session starts with.
package builtins

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"strings"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/infrastructure/namespace"
	"github.com/burst-go/burst/internal/pkg/textfmt"
	"github.com/burst-go/burst/internal/ports"
)

const welcome = `Welcome to Burst!

Here are the basic functions of Burst, type 'help(function)'
for a description of these functions:
  * create: Create a HTTP request based on a URL.
  * view: Display a value fitted to the terminal.
  * external_view: Open a value in your pager.
  * history: List the commands of this and earlier sessions.
  * clear_history: Forget the command history.

Shorthands:
  p <expr>  print <expr>
  v <expr>  view(<expr>)
  w <expr>  external_view(<expr>)

There are also few interesting global objects, 'help(object)':
  * conf
  * requests`

// Launcher runs the external viewer on a file.
type Launcher func(command, path string) error

// HistoryLog is the command history the history builtins read and clear.
type HistoryLog interface {
	Lines() []string
	Clear() error
}

// Set holds the dependencies of the builtin functions.
type Set struct {
	Out     io.Writer
	Width   ports.WidthSource
	Pager   string
	Launch  Launcher
	History HistoryLog
}

// Functions returns the builtins scope keyed by name.
func (s *Set) Functions() map[string]any {
	return map[string]any{
		"help":          s.help,
		"print":         s.print,
		"view":          s.view,
		"external_view": s.externalView,
		"create":        s.create,
		"history":       s.history,
		"clear_history": s.clearHistory,
	}
}

func (s *Set) help(args ...any) (any, error) {
	if len(args) == 0 {
		fmt.Fprintln(s.Out, welcome)
		return nil, nil
	}
	v := args[0]
	if v == nil {
		fmt.Fprintln(s.Out, "nil")
		return nil, nil
	}
	fmt.Fprintf(s.Out, "%s\n", reflect.TypeOf(v))
	fmt.Fprintln(s.Out, textfmt.Rule(s.width()))
	if members := namespace.Members(v); len(members) > 0 {
		fmt.Fprintf(s.Out, "members: %s\n", strings.Join(members, ", "))
	}
	return nil, nil
}

func (s *Set) print(args ...any) (any, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, textfmt.Plain(a))
	}
	fmt.Fprintln(s.Out, strings.Join(parts, " "))
	return nil, nil
}

func (s *Set) view(v any) (any, error) {
	width := s.width()
	fmt.Fprintln(s.Out, textfmt.Fit(textfmt.Plain(v), width))
	return nil, nil
}

func (s *Set) externalView(v any) (any, error) {
	file, err := os.CreateTemp("", "burst-view-*.txt")
	if err != nil {
		return nil, fmt.Errorf("external_view: %w", err)
	}
	defer os.Remove(file.Name())
	if _, err := io.WriteString(file, textfmt.Plain(v)+"\n"); err != nil {
		file.Close()
		return nil, fmt.Errorf("external_view: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("external_view: %w", err)
	}
	launch := s.Launch
	if launch == nil {
		launch = RunPager
	}
	pager := s.Pager
	if pager == "" {
		pager = domain.DefaultPager
	}
	if err := launch(pager, file.Name()); err != nil {
		return nil, fmt.Errorf("external_view: %w", err)
	}
	return nil, nil
}

func (s *Set) history() (any, error) {
	if s.History == nil {
		return nil, nil
	}
	for i, line := range s.History.Lines() {
		fmt.Fprintf(s.Out, "%5d  %s\n", i+1, line)
	}
	return nil, nil
}

func (s *Set) clearHistory() (any, error) {
	if s.History == nil {
		return nil, nil
	}
	if err := s.History.Clear(); err != nil {
		return nil, fmt.Errorf("clear_history: %w", err)
	}
	return nil, nil
}

func (s *Set) create(rawURL string) (*domain.Request, error) {
	return domain.NewRequest(rawURL)
}

func (s *Set) width() int {
	if s.Width == nil {
		return 0
	}
	return s.Width.Width()
}

// RunPager runs command (which may carry arguments) on path attached to the terminal.
func RunPager(command, path string) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{domain.DefaultPager}
	}
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
