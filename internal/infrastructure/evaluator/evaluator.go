// Package evaluator executes console statements against a namespace.Map.
//
// Expressions are evaluated with expr-lang/expr. On top of expressions the
// console understands four statement forms:
//
//	name = expr      bind a variable
//	name += expr     compound assignment (+ - * /)
//	del name         unbind a variable
//	print [expr]     write the plain form of a value
//
// Any other input is an expression whose non-nil result is echoed.
package evaluator

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/infrastructure/namespace"
	"github.com/burst-go/burst/internal/pkg/textfmt"
	"github.com/burst-go/burst/internal/ports"
)

var (
	assignPattern   = regexp.MustCompile(`(?s)^([A-Za-z_]\w*)\s*=([^=].*)$`)
	compoundPattern = regexp.MustCompile(`(?s)^([A-Za-z_]\w*)\s*([-+*/])=(.+)$`)
	delPattern      = regexp.MustCompile(`^del\s+([A-Za-z_]\w*)$`)
	printPattern    = regexp.MustCompile(`(?s)^print(\s+(.*))?$`)
)

// Fault is an error raised by one statement.
type Fault struct {
	Source string
	Err    error
}

func (f *Fault) Error() string {
	return f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Evaluator buffers continuation lines and executes complete statements.
type Evaluator struct {
	ns  *namespace.Map
	out io.Writer
	buf []string
}

// New builds an evaluator writing results to out.
func New(ns *namespace.Map, out io.Writer) *Evaluator {
	return &Evaluator{ns: ns, out: out}
}

// Push implements ports.Evaluator.
func (e *Evaluator) Push(line string) (bool, error) {
	e.buf = append(e.buf, line)
	source := strings.Join(e.buf, "\n")
	if Incomplete(source) {
		return true, nil
	}
	e.buf = nil
	return false, e.Exec(source)
}

// Reset implements ports.Evaluator.
func (e *Evaluator) Reset() {
	e.buf = nil
}

// Exec runs one complete statement.
func (e *Evaluator) Exec(source string) error {
	src := strings.TrimSpace(strings.ReplaceAll(stripComments(source), "\\\n", " "))
	if src == "" {
		return nil
	}

	if m := delPattern.FindStringSubmatch(src); m != nil {
		if !e.ns.Delete(m[1]) {
			return &Fault{Source: src, Err: fmt.Errorf("name %q is not defined", m[1])}
		}
		return nil
	}

	if m := printPattern.FindStringSubmatch(src); m != nil {
		if strings.TrimSpace(m[2]) == "" {
			fmt.Fprintln(e.out)
			return nil
		}
		v, err := e.Eval(m[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, textfmt.Plain(v))
		return nil
	}

	if m := compoundPattern.FindStringSubmatch(src); m != nil {
		return e.assign(src, m[1], fmt.Sprintf("%s %s (%s)", m[1], m[2], m[3]))
	}

	if m := assignPattern.FindStringSubmatch(src); m != nil {
		return e.assign(src, m[1], m[2])
	}

	v, err := e.Eval(src)
	if err != nil {
		return err
	}
	if v != nil {
		fmt.Fprintln(e.out, textfmt.Repr(v))
	}
	return nil
}

func (e *Evaluator) assign(src, name, valueExpr string) error {
	if name == domain.ReservedKey {
		return &Fault{Source: src, Err: errors.New("cannot assign to " + domain.ReservedKey)}
	}
	v, err := e.Eval(valueExpr)
	if err != nil {
		return err
	}
	e.ns.Set(name, v)
	return nil
}

// Eval evaluates a single expression against the namespace.
func (e *Evaluator) Eval(source string) (result any, err error) {
	source = strings.TrimSpace(source)
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &Fault{Source: source, Err: fmt.Errorf("%v", r)}
		}
	}()
	env := e.ns.Env()
	program, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, &Fault{Source: source, Err: err}
	}
	v, err := expr.Run(program, env)
	if err != nil {
		return nil, &Fault{Source: source, Err: err}
	}
	return v, nil
}

// Incomplete reports whether source needs more lines: an open bracket, an
// unterminated quote, or a trailing backslash.
func Incomplete(source string) bool {
	source = stripComments(source)
	if strings.HasSuffix(source, "\\") {
		return true
	}
	depth := 0
	var quote rune
	escaped := false
	for _, r := range source {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			continue
		}
		switch r {
		case '"', '\'', '`':
			quote = r
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		}
	}
	return quote != 0 || depth > 0
}

// stripComments drops lines that start with #. A # inside an expression is
// the predicate pointer and is kept.
func stripComments(source string) string {
	lines := strings.Split(source, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

var _ ports.Evaluator = (*Evaluator)(nil)
