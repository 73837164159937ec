package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/burst-go/burst/internal/application/preprocess"
	"github.com/burst-go/burst/internal/pkg/logger"
)

type scriptedReader struct {
	lines   []string
	end     error
	prompts []string
}

func (r *scriptedReader) SetPrompt(p string) { r.prompts = append(r.prompts, p) }

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

type stubPrompt struct{}

func (stubPrompt) Render() string       { return ">>> " }
func (stubPrompt) Continuation() string { return "... " }

type recordingEvaluator struct {
	pushed []string
	fail   map[string]error
	panics map[string]bool
	more   map[string]bool
	resets int
}

func (e *recordingEvaluator) Push(line string) (bool, error) {
	e.pushed = append(e.pushed, line)
	if e.panics[line] {
		panic("evaluator blew up")
	}
	return e.more[line], e.fail[line]
}

func (e *recordingEvaluator) Reset() { e.resets++ }

type memoryHistory struct{ lines []string }

func (h *memoryHistory) Load() ([]string, error) { return h.lines, nil }
func (h *memoryHistory) Append(line string)      { h.lines = append(h.lines, line) }
func (h *memoryHistory) Save() error             { return nil }
func (h *memoryHistory) Path() string            { return "" }

func newConsole(reader LineReader, ev *recordingEvaluator, hist *memoryHistory) (*Console, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Console{
		Reader:       reader,
		Prompt:       stubPrompt{},
		Preprocessor: preprocess.New(),
		Evaluator:    ev,
		History:      hist,
		Logger:       logger.NewStd(false),
		Out:          &out,
		Err:          &errOut,
	}, &out, &errOut
}

func TestRunPreprocessesAndRecordsHistory(t *testing.T) {
	reader := &scriptedReader{lines: []string{"p requests", "v r", "x = 1"}, end: io.EOF}
	ev := &recordingEvaluator{}
	hist := &memoryHistory{}
	c, out, _ := newConsole(reader, ev, hist)

	if err := c.Run(context.Background(), "banner"); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	wantPushed := []string{"print requests", "view(r)", "x = 1"}
	if !reflect.DeepEqual(ev.pushed, wantPushed) {
		t.Fatalf("pushed %q, want %q", ev.pushed, wantPushed)
	}
	wantHistory := []string{"p requests", "v r", "x = 1"}
	if !reflect.DeepEqual(hist.lines, wantHistory) {
		t.Fatalf("history %q, want %q", hist.lines, wantHistory)
	}
	if !strings.HasPrefix(out.String(), "banner\n") {
		t.Fatalf("banner missing: %q", out.String())
	}
}

func TestRunReportsFaultsAndContinues(t *testing.T) {
	reader := &scriptedReader{lines: []string{"bad", "boom", "good"}, end: io.EOF}
	ev := &recordingEvaluator{
		fail:   map[string]error{"bad": errors.New("name bad is not defined")},
		panics: map[string]bool{"boom": true},
	}
	c, _, errOut := newConsole(reader, ev, &memoryHistory{})

	if err := c.Run(context.Background(), ""); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(ev.pushed) != 3 || ev.pushed[2] != "good" {
		t.Fatalf("loop did not continue after faults: %q", ev.pushed)
	}
	if !strings.Contains(errOut.String(), "name bad is not defined") || !strings.Contains(errOut.String(), "evaluator blew up") {
		t.Fatalf("faults not reported: %q", errOut.String())
	}
	if ev.resets != 1 {
		t.Fatalf("panic should reset the evaluator, resets = %d", ev.resets)
	}
}

func TestRunUsesContinuationPrompt(t *testing.T) {
	reader := &scriptedReader{lines: []string{"f(", ")"}, end: io.EOF}
	ev := &recordingEvaluator{more: map[string]bool{"f(": true}}
	c, _, _ := newConsole(reader, ev, &memoryHistory{})

	if err := c.Run(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	want := []string{">>> ", "... ", ">>> "}
	if !reflect.DeepEqual(reader.prompts, want) {
		t.Fatalf("prompts %q, want %q", reader.prompts, want)
	}
}

func TestRunEndsOnIdleInterrupt(t *testing.T) {
	reader := &scriptedReader{lines: []string{"x = 1"}, end: ErrInterrupt}
	ev := &recordingEvaluator{}
	c, _, _ := newConsole(reader, ev, &memoryHistory{})

	if err := c.Run(context.Background(), ""); err != nil {
		t.Fatalf("interrupt should end the session cleanly, got %v", err)
	}
	if ev.resets != 1 {
		t.Fatal("interrupt should drop partial input")
	}
}

func TestRunPropagatesReaderFailure(t *testing.T) {
	reader := &scriptedReader{end: errors.New("tty gone")}
	c, _, _ := newConsole(reader, &recordingEvaluator{}, &memoryHistory{})
	if err := c.Run(context.Background(), ""); err == nil {
		t.Fatal("expected reader failure to propagate")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	reader := &scriptedReader{lines: []string{"never"}, end: io.EOF}
	ev := &recordingEvaluator{}
	c, _, _ := newConsole(reader, ev, &memoryHistory{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Run(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if len(ev.pushed) != 0 {
		t.Fatal("nothing should run after cancellation")
	}
}
