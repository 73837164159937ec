// Package prompt renders the console prompt from the active session state.
package prompt

import (
	"github.com/fatih/color"

	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/ports"
)

// Markers delimit text the line editor must treat as zero width.
const (
	StartIgnore = "\001"
	EndIgnore   = "\002"
)

const (
	caret        = ">>> "
	continuation = "... "
)

// Renderer builds the prompt every input cycle.
type Renderer struct {
	state    ports.SessionState
	colorize bool
	info     *color.Color
	muted    *color.Color
	alert    *color.Color
	warning  *color.Color
}

// NewRenderer builds a renderer reading state. With colorize false the
// prompt is plain text.
func NewRenderer(state ports.SessionState, colorize bool) *Renderer {
	r := &Renderer{
		state:    state,
		colorize: colorize,
		info:     color.New(color.FgCyan),
		muted:    color.New(color.FgHiBlack),
		alert:    color.New(color.FgRed),
		warning:  color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.info, r.muted, r.alert, r.warning} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render returns the primary prompt: an optional session badge and the caret.
func (r *Renderer) Render() string {
	prompt := r.tint(r.info, caret)
	name := r.state.Name()
	if (domain.SessionIdentity{Name: name}).IsDefault() {
		return prompt
	}
	return r.tint(r.badgeColor(), name) + " " + prompt
}

// Continuation returns the prompt shown while a statement is incomplete.
func (r *Renderer) Continuation() string {
	return r.tint(r.info, continuation)
}

func (r *Renderer) badgeColor() *color.Color {
	switch {
	case r.state.ReadOnly():
		return r.muted
	case r.state.ShouldSave():
		return r.alert
	default:
		return r.warning
	}
}

// tint colors text and brackets the escape sequences, not the text, with
// the zero-width markers.
func (r *Renderer) tint(c *color.Color, text string) string {
	if !r.colorize {
		return text
	}
	return StartIgnore + c.Sprint(EndIgnore+text+StartIgnore) + EndIgnore
}
