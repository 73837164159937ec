package cli

import (
	"errors"

	"github.com/chzyer/readline"

	"github.com/burst-go/burst/internal/application/completion"
	"github.com/burst-go/burst/internal/application/console"
	"github.com/burst-go/burst/internal/ports"
)

// LineReader adapts a readline instance to console.LineReader.
type LineReader struct {
	rl *readline.Instance
}

// NewLineReader opens the terminal line editor with tab completion and
// preloads the persisted history. History persistence stays with hist.
func NewLineReader(engine *completion.Engine, hist ports.HistoryRepository, log ports.Logger, limit int) (*LineReader, error) {
	cfg := &readline.Config{
		Prompt:                 "",
		AutoComplete:           &completion.LineCompleter{Engine: engine},
		InterruptPrompt:        "^C",
		EOFPrompt:              "",
		DisableAutoSaveHistory: false,
	}
	if limit > 0 {
		cfg.HistoryLimit = limit
	}
	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	lines, err := hist.Load()
	if err != nil {
		log.Debug("history not loaded", map[string]interface{}{"path": hist.Path(), "error": err.Error()})
	}
	for _, line := range lines {
		_ = rl.SaveHistory(line)
	}
	return &LineReader{rl: rl}, nil
}

// SetPrompt implements console.LineReader.
func (r *LineReader) SetPrompt(prompt string) {
	r.rl.SetPrompt(prompt)
}

// Readline implements console.LineReader.
func (r *LineReader) Readline() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", console.ErrInterrupt
	}
	return line, err
}

// Close restores the terminal.
func (r *LineReader) Close() error {
	return r.rl.Close()
}

var _ console.LineReader = (*LineReader)(nil)
