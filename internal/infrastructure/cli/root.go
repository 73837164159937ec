package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/burst-go/burst/internal/app"
	"github.com/burst-go/burst/internal/version"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location.
	ConfigPath string
	// Colorize forces prompt colors on or off; nil follows the terminal.
	Colorize *bool
}

type flags struct {
	session     string
	readOnly    bool
	noBanner    bool
	list        bool
	remove      string
	showVersion bool
}

// NewRootCmd wires the cobra root command. Bad flags and stray arguments
// print usage and end successfully.
func NewRootCmd(ctx context.Context, opts Options) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "burst",
		Short: "Burst - interactive HTTP scripting console",
		Long:  "Burst is an interactive console for crafting, replaying and inspecting HTTP requests.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Usage()
			}
			if f.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "Burst %s\n", version.Version)
				return nil
			}
			return run(cmd.Context(), opts, f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(ctx)

	root.Flags().StringVarP(&f.session, "session", "s", "", "Use (or create) a specific session")
	root.Flags().BoolVarP(&f.readOnly, "read-only", "r", false, "Never save the session")
	root.Flags().BoolVarP(&f.noBanner, "no-banner", "b", false, "Print a one-line banner")
	root.Flags().BoolVarP(&f.list, "list", "l", false, "List the saved sessions")
	root.Flags().StringVarP(&f.remove, "delete", "d", "", "Delete a saved session")
	root.Flags().BoolVarP(&f.showVersion, "version", "v", false, "Print the version")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		_ = cmd.Usage()
		return nil
	})
	return root
}

func run(ctx context.Context, opts Options, f flags, stdout, stderr io.Writer) error {
	container, err := app.BuildContainer(ctx, app.Options{
		Verbose:    opts.Verbose,
		ConfigPath: opts.ConfigPath,
		Out:        stdout,
		Colorize:   opts.Colorize,
	})
	if err != nil {
		return err
	}
	defer container.Close()

	if f.list {
		return listSessions(ctx, container, stdout)
	}
	if f.remove != "" {
		if err := container.Session.Remove(ctx, f.remove); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Session %s deleted.\n", f.remove)
		return nil
	}

	if f.session != "" {
		container.Session.SetName(f.session)
	}
	container.Session.SetReadOnly(f.readOnly)
	if err := container.Session.Load(ctx); err != nil {
		return err
	}

	reader, err := NewLineReader(container.Completer, container.History, container.Logger, container.Config.GetHistorySize())
	if err != nil {
		return fmt.Errorf("init line editor: %w", err)
	}
	defer reader.Close()

	return runConsole(ctx, container, reader, f.noBanner, stdout, stderr)
}

func listSessions(ctx context.Context, container *app.Container, out io.Writer) error {
	names, err := container.Session.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(out, "No saved sessions.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
