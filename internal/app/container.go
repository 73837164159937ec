package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/expr-lang/expr/builtin"
	"github.com/fatih/color"

	"github.com/burst-go/burst/internal/application/builtins"
	"github.com/burst-go/burst/internal/application/completion"
	appconfig "github.com/burst-go/burst/internal/application/config"
	"github.com/burst-go/burst/internal/application/preprocess"
	"github.com/burst-go/burst/internal/application/prompt"
	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/infrastructure/config"
	"github.com/burst-go/burst/internal/infrastructure/evaluator"
	"github.com/burst-go/burst/internal/infrastructure/history"
	"github.com/burst-go/burst/internal/infrastructure/namespace"
	"github.com/burst-go/burst/internal/infrastructure/payloads"
	"github.com/burst-go/burst/internal/infrastructure/session"
	"github.com/burst-go/burst/internal/infrastructure/termwidth"
	"github.com/burst-go/burst/internal/pkg/logger"
	"github.com/burst-go/burst/internal/ports"
)

// Keywords complete alongside namespace names: the statement words and the
// expression language's own functions.
func Keywords() []string {
	words := []string{"del", "print"}
	for _, fn := range builtin.Builtins {
		words = append(words, fn.Name)
	}
	return words
}

// Options tune container construction.
type Options struct {
	Verbose bool
	// ConfigPath overrides the config file location.
	ConfigPath string
	// Out receives evaluator and builtin output. Defaults to stdout.
	Out io.Writer
	// Colorize forces prompt colors on or off; nil follows the terminal.
	Colorize *bool
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config       domain.Config
	ConfigLoader *config.FileLoader
	Logger       *logger.ZapLogger
	Runtime      *Runtime

	History      *history.FileStore
	SessionStore *session.SQLiteStore
	Session      *session.Manager
	Payloads     *payloads.DirSource

	Namespace    *namespace.Map
	Builtins     *namespace.Map
	Evaluator    *evaluator.Evaluator
	Preprocessor *preprocess.Preprocessor
	Completer    *completion.Engine
	Prompt       *prompt.Renderer
}

// BuildContainer constructs the dependency graph. The session is selected
// but not loaded; callers set name and read-only mode first.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.NewStd(opts.Verbose)
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgLoader.Path(), err)
	}

	setting, err := cfg.GetWidthSetting()
	if err != nil {
		return nil, err
	}
	monitor := termwidth.NewMonitor(setting)
	log.Debug("terminal width resolved", map[string]interface{}{"mode": monitor.Setting().String(), "width": monitor.Width()})

	dir := cfgLoader.Dir()
	historyStore := history.NewFileStore(filepath.Join(dir, domain.HistoryFileName), cfg.GetHistorySize())
	sessionStore, err := session.NewSQLiteStore(filepath.Join(dir, domain.SessionsFileName))
	if err != nil {
		return nil, err
	}

	payloadsDir := cfg.PayloadsDir
	if payloadsDir == "" {
		payloadsDir = filepath.Join(dir, domain.PayloadsDirName)
	}

	funcs := (&builtins.Set{Out: out, Width: monitor, Pager: cfg.GetPager(), History: historyStore}).Functions()
	builtinScope := namespace.New(funcs)
	ns := namespace.New(nil)
	ns.SetBuiltins(funcs)
	ns.Seed("requests", domain.RequestSet{})
	confCopy := cfg
	ns.Seed("conf", &confCopy)

	manager := session.NewManager(sessionStore, ns, log)
	manager.SetName(cfg.GetDefaultSession())

	colorize := !color.NoColor
	if opts.Colorize != nil {
		colorize = *opts.Colorize
	}

	// Builtins are searched before the session namespace.
	scopes := []ports.Namespace{builtinScope, ns}

	return &Container{
		Config:       cfg,
		ConfigLoader: cfgLoader,
		Logger:       log,
		Runtime:      NewRuntime(monitor),
		History:      historyStore,
		SessionStore: sessionStore,
		Session:      manager,
		Payloads:     payloads.NewDirSource(payloadsDir),
		Namespace:    ns,
		Builtins:     builtinScope,
		Evaluator:    evaluator.New(ns, out),
		Preprocessor: preprocess.New(),
		Completer:    completion.NewEngine(Keywords(), scopes, scopes),
		Prompt:       prompt.NewRenderer(manager, colorize),
	}, nil
}

// Close releases the resources opened by BuildContainer.
func (c *Container) Close() error {
	c.Logger.Sync()
	return c.SessionStore.Close()
}
