package completion

import (
	"strings"

	"github.com/chzyer/readline"
)

// Delimiters end a completion token, mirroring a Python-style console.
const Delimiters = " \t\n`~!@#$%^&*()=+{}\\|;:'\",<>/?"

// LineCompleter adapts an Engine to readline's AutoCompleter. Square
// brackets and dots are not delimiters, so "requests[0].me" is one token.
type LineCompleter struct {
	Engine *Engine
}

// Do implements readline.AutoCompleter. It returns the suffixes to insert
// and the length of the token being completed.
func (c *LineCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if pos > len(line) {
		pos = len(line)
	}
	if pos < 0 {
		return nil, 0
	}
	start := tokenStart(line[:pos])
	token := string(line[start:pos])

	candidates, ok := c.Engine.Complete(token)
	if !ok || len(candidates) == 0 {
		return nil, 0
	}
	tokenLen := len([]rune(token))
	out := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, []rune(cand)[tokenLen:])
	}
	return out, tokenLen
}

func tokenStart(line []rune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if strings.ContainsRune(Delimiters, line[i]) {
			return i + 1
		}
	}
	return 0
}

var _ readline.AutoCompleter = (*LineCompleter)(nil)
