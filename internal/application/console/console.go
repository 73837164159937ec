// Package console runs the read-preprocess-evaluate loop.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/burst-go/burst/internal/ports"
)

// ErrInterrupt is returned by a LineReader when the user interrupts while
// idle at the prompt.
var ErrInterrupt = errors.New("interrupt")

// LineReader is the line-editing layer.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
}

// Prompter renders the primary and continuation prompts.
type Prompter interface {
	Render() string
	Continuation() string
}

// Preprocessor rewrites shorthands before evaluation.
type Preprocessor interface {
	Preprocess(line string) string
}

// Console wires the components of one interactive session.
type Console struct {
	Reader       LineReader
	Prompt       Prompter
	Preprocessor Preprocessor
	Evaluator    ports.Evaluator
	History      ports.HistoryRepository
	Logger       ports.Logger
	Out          io.Writer
	Err          io.Writer
}

// Run loops until end of input, an idle interrupt or ctx cancellation.
// All three end the session normally and return nil.
func (c *Console) Run(ctx context.Context, banner string) error {
	if banner != "" {
		fmt.Fprintln(c.Out, banner)
	}
	more := false
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if more {
			c.Reader.SetPrompt(c.Prompt.Continuation())
		} else {
			c.Reader.SetPrompt(c.Prompt.Render())
		}

		line, err := c.Reader.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(c.Out)
				return nil
			}
			if errors.Is(err, ErrInterrupt) {
				c.Evaluator.Reset()
				return nil
			}
			return fmt.Errorf("read line: %w", err)
		}

		if c.History != nil {
			c.History.Append(line)
		}
		more = c.push(line)
	}
}

// push runs one line and reports evaluation faults without stopping the loop.
// An interrupt while the statement runs (a pager, say) is caught so the
// session still ends through the exit hooks.
func (c *Console) push(line string) (more bool) {
	canonical := c.Preprocessor.Preprocess(line)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	defer func() {
		if r := recover(); r != nil {
			c.Evaluator.Reset()
			c.report(fmt.Errorf("panic: %v", r))
			more = false
		}
	}()
	more, err := c.Evaluator.Push(canonical)
	select {
	case <-interrupts:
		c.Evaluator.Reset()
		fmt.Fprintln(c.Err, "Interrupted")
		return false
	default:
	}
	if err != nil {
		c.report(err)
	}
	return more
}

func (c *Console) report(err error) {
	if c.Logger != nil {
		c.Logger.Debug("statement failed", map[string]interface{}{"error": err.Error()})
	}
	msg := strings.TrimRight(err.Error(), "\n")
	fmt.Fprintf(c.Err, "Error: %s\n", msg)
}
