package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/burst-go/burst/internal/app"
	"github.com/burst-go/burst/internal/application/console"
	"github.com/burst-go/burst/internal/version"
)

const bannerArt = `
 ____                 _
| __ ) _   _ _ __ ___| |_
|  _ \| | | | '__/ __| __|
| |_) | |_| | |  \__ \ |_
|____/ \__,_|_|  |___/\__|
`

// Banner returns the startup banner; short is the one-line form.
func Banner(short bool) string {
	if short {
		return fmt.Sprintf("Burst %s", version.Version)
	}
	return fmt.Sprintf("%s\nBurst %s - type help() to get started", bannerArt[1:], version.Version)
}

// runConsole registers the exit hooks, prints the startup notices and runs
// the loop until the user leaves.
func runConsole(ctx context.Context, c *app.Container, reader console.LineReader, short bool, stdout, stderr io.Writer) error {
	rt := c.Runtime
	log := c.Logger

	rt.AtExit(func() {
		if err := c.History.Save(); err != nil {
			log.Debug("history not saved", map[string]interface{}{"path": c.History.Path(), "error": err.Error()})
		}
	})
	rt.AtExit(func() {
		if err := c.Session.Autosave(context.Background()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	})
	rt.AtExit(rt.Width.Watch(ctx))
	defer rt.Shutdown()

	if c.ConfigLoader.FirstRun() {
		fmt.Fprintf(stdout, "Welcome! A default configuration was written to %s\n", c.ConfigLoader.Path())
	}
	if !c.Payloads.Available() {
		warn := color.New(color.FgYellow)
		warn.Fprintf(stderr, "Warning: no payloads found in %s\n", c.Payloads.Dir())
	}

	loop := &console.Console{
		Reader:       reader,
		Prompt:       c.Prompt,
		Preprocessor: c.Preprocessor,
		Evaluator:    c.Evaluator,
		History:      c.History,
		Logger:       log,
		Out:          stdout,
		Err:          stderr,
	}
	return loop.Run(ctx, Banner(short))
}
