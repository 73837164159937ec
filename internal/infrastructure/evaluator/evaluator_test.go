package evaluator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/infrastructure/namespace"
)

func newEvaluator() (*Evaluator, *namespace.Map, *bytes.Buffer) {
	ns := namespace.New(nil)
	ns.SetBuiltins(map[string]any{
		"upper": func(s string) string { return strings.ToUpper(s) },
	})
	var out bytes.Buffer
	return New(ns, &out), ns, &out
}

func TestExecStatements(t *testing.T) {
	tests := []struct {
		name   string
		lines  []string
		output string
	}{
		{name: "echo expression", lines: []string{"1 + 2"}, output: "3\n"},
		{name: "echo string quoted", lines: []string{`"hi"`}, output: "\"hi\"\n"},
		{name: "print string plain", lines: []string{`print "hi"`}, output: "hi\n"},
		{name: "bare print", lines: []string{"print"}, output: "\n"},
		{name: "assignment is silent", lines: []string{"x = 40", "x + 2"}, output: "42\n"},
		{name: "compound assignment", lines: []string{"x = 2", "x *= 3 + 1", "print x"}, output: "8\n"},
		{name: "builtin call", lines: []string{`upper("get")`}, output: "\"GET\"\n"},
		{name: "comparison is not assignment", lines: []string{"y = 1", "y == 1"}, output: "true\n"},
		{name: "comment", lines: []string{"# nothing"}, output: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, _, out := newEvaluator()
			for _, line := range tt.lines {
				more, err := ev.Push(line)
				if err != nil {
					t.Fatalf("Push(%q) error: %v", line, err)
				}
				if more {
					t.Fatalf("Push(%q) unexpectedly asked for more", line)
				}
			}
			if out.String() != tt.output {
				t.Fatalf("output = %q, want %q", out.String(), tt.output)
			}
		})
	}
}

func TestPushContinuation(t *testing.T) {
	ev, ns, out := newEvaluator()

	more, err := ev.Push("total = (1 +")
	if err != nil || !more {
		t.Fatalf("expected continuation, more=%v err=%v", more, err)
	}
	more, err = ev.Push("  2)")
	if err != nil || more {
		t.Fatalf("expected completion, more=%v err=%v", more, err)
	}
	if v, _ := ns.Get("total"); v != 3 {
		t.Fatalf("total = %v", v)
	}

	more, _ = ev.Push(`print 1 + \`)
	if !more {
		t.Fatal("trailing backslash should continue")
	}
	if _, err := ev.Push("1"); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if out.String() != "2\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestResetDropsBuffer(t *testing.T) {
	ev, _, out := newEvaluator()
	if more, _ := ev.Push("[1,"); !more {
		t.Fatal("expected continuation")
	}
	ev.Reset()
	if _, err := ev.Push("5"); err != nil {
		t.Fatalf("Push error: %v", err)
	}
	if out.String() != "5\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestFaultsAreReturned(t *testing.T) {
	ev, ns, _ := newEvaluator()
	ns.Set("requests", domain.RequestSet{})

	for _, line := range []string{"undefined_name", "requests[5]", "del missing", domain.ReservedKey + " = 1", "1 +* 2"} {
		_, err := ev.Push(line)
		var fault *Fault
		if !errors.As(err, &fault) {
			t.Errorf("Push(%q) error = %v, want *Fault", line, err)
		}
	}
}

func TestDelAndRevision(t *testing.T) {
	ev, ns, _ := newEvaluator()
	if _, err := ev.Push("x = 1"); err != nil {
		t.Fatal(err)
	}
	if _, err := ev.Push("del x"); err != nil {
		t.Fatalf("del error: %v", err)
	}
	if _, ok := ns.Get("x"); ok {
		t.Fatal("x should be unbound")
	}
	if ns.Revision() != 2 {
		t.Fatalf("revision = %d", ns.Revision())
	}
}

func TestIncomplete(t *testing.T) {
	tests := map[string]bool{
		"f(1, 2)":               false,
		"f(1,":                  true,
		`"abc`:                  true,
		`"a(b"`:                 false,
		`"esc\"aped"`:           false,
		"[1, [2]":               true,
		"x \\":                  true,
		"requests[0].me":        false,
		"# don't forget":        false,
		"f(\n# it's open\n":     true,
		"filter([1, 2], # > 1)": false,
	}
	for src, want := range tests {
		if got := Incomplete(src); got != want {
			t.Errorf("Incomplete(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestCommentLineDoesNotSwallowInput(t *testing.T) {
	ev, _, out := newEvaluator()

	more, err := ev.Push("# don't forget the login request")
	if err != nil || more {
		t.Fatalf("comment Push = %v, %v; want complete", more, err)
	}
	more, err = ev.Push("1 + 1")
	if err != nil || more {
		t.Fatalf("Push after comment = %v, %v", more, err)
	}
	if out.String() != "2\n" {
		t.Fatalf("output %q, want %q", out.String(), "2\n")
	}
}
