package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idilsaglam/todobrowser/internal/config"
	"github.com/idilsaglam/todobrowser/internal/logging"
	"github.com/idilsaglam/todobrowser/internal/model"
	"github.com/idilsaglam/todobrowser/internal/store/httpstore"
	"github.com/idilsaglam/todobrowser/internal/tui"
	"github.com/idilsaglam/todobrowser/internal/ui"
)

// Exit codes: 0 ok, 1 error, 2 usage.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// exitErr carries an exit code out of a command. The message has already
// been shown to the user.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func usageErr(format string, a ...any) error {
	return &exitErr{code: exitUsage, err: fmt.Errorf(format, a...)}
}

// app is the state shared by every command after flags and config are read.
type app struct {
	v           *viper.Viper
	configPath  string
	interactive bool

	cfg    config.Config
	theme  ui.Theme
	logger *log.Logger
	closer io.Closer

	stdout, stderr io.Writer
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{v: config.New(), stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if a.closer != nil {
		_ = a.closer.Close()
	}
	if err == nil {
		return exitOK
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	// flag and argument errors from cobra itself
	ui.ThemeByName(a.v.GetString("ui.theme")).Fail(stderr, err.Error())
	return exitUsage
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "Browse todos from a JSONPlaceholder-style endpoint",
		Long: `todo fetches between 1 and 100 todos and lists them with pending items
first and completed items last, each group ordered by title.

Run without arguments to open the interactive browser.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse()
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (default ~/.config/todo/config.toml)")
	f.String("endpoint", httpstore.DefaultEndpoint, "todo list endpoint")
	f.Duration("timeout", 0, "HTTP timeout, 0 for none")
	f.String("theme", "classic", "output theme: "+strings.Join(ui.Themes, ", "))
	f.String("locale", "en", "collation locale used to order titles")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("log-file", "", "log file (interactive mode defaults to the user cache dir)")

	for key, name := range map[string]string{
		"source.endpoint": "endpoint",
		"http.timeout":    "timeout",
		"ui.theme":        "theme",
		"ui.locale":       "locale",
		"log.level":       "log-level",
		"log.file":        "log-file",
	} {
		_ = a.v.BindPFlag(key, f.Lookup(name))
	}

	root.AddCommand(a.fetchCmd())
	return root
}

// setup loads config and opens the logger. The interactive browser logs to a
// file because it owns the terminal.
func (a *app) setup(cmd *cobra.Command) error {
	a.interactive = !cmd.HasParent()

	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		ui.ThemeByName("").Fail(a.stderr, err.Error())
		return &exitErr{code: exitError, err: err}
	}
	a.cfg = cfg
	a.theme = ui.ThemeByName(cfg.UI.Theme)

	if a.interactive || cfg.Log.File != "" {
		path := cfg.Log.File
		if path == "" {
			if path, err = logging.DefaultFile(); err != nil {
				a.theme.Fail(a.stderr, err.Error())
				return &exitErr{code: exitError, err: err}
			}
		}
		a.logger, a.closer, err = logging.OpenFile(path, cfg.Log.Level)
	} else {
		a.logger, err = logging.New(a.stderr, cfg.Log.Level)
	}
	if err != nil {
		a.theme.Fail(a.stderr, err.Error())
		code := exitError
		if errors.Is(err, logging.ErrLevel) {
			code = exitUsage
		}
		return &exitErr{code: code, err: err}
	}
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config loaded", "file", used)
	}
	return nil
}

func (a *app) source() (*httpstore.Client, error) {
	c, err := httpstore.New(httpstore.Options{
		Endpoint: a.cfg.Source.Endpoint,
		Timeout:  a.cfg.HTTP.Timeout,
		Logger:   a.logger,
	})
	if err != nil {
		a.theme.Fail(a.stderr, err.Error())
		return nil, &exitErr{code: exitUsage, err: err}
	}
	return c, nil
}

func (a *app) sorter() model.Sorter {
	return model.NewSorter(a.cfg.UI.Locale)
}

func (a *app) browse() error {
	src, err := a.source()
	if err != nil {
		return err
	}
	a.logger.Info("browser started", "endpoint", src.Endpoint())
	err = tui.Run(src, tui.Options{
		Theme:  a.theme,
		Sorter: a.sorter(),
		Logger: a.logger,
	})
	if err != nil {
		a.logger.Error("browser stopped", "err", err)
		a.theme.Fail(a.stderr, err.Error())
		return &exitErr{code: exitError, err: err}
	}
	return nil
}
