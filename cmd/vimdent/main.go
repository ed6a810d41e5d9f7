// Package main is the vimdent command: it applies the indent commands to
// files from the shell, hosts an interactive editing session and manages
// the settings file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/vimdent/internal/app"
	"github.com/dshills/vimdent/internal/config"
	"github.com/dshills/vimdent/internal/input/keymap"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errUsage marks errors already explained by a usage message.
var errUsage = errors.New("usage")

// globalOptions are the flags accepted before the subcommand.
type globalOptions struct {
	configPath string
	keymapPath string
	logLevel   string
	logFile    string
}

// env is what a subcommand runs against.
type env struct {
	ctx    context.Context
	opts   globalOptions
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vimdent", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts globalOptions
	var showVersion bool
	fs.StringVar(&opts.configPath, "config", "", "Settings file (default: "+config.DefaultUserFile()+")")
	fs.StringVar(&opts.keymapPath, "keymap", "", "Additional .sublime-keymap file")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "vimdent - tab-stop aware indent and unindent\n\n")
		fmt.Fprintf(stderr, "Usage: vimdent [options] <command> [arguments]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  apply   Run a command on a file or stdin\n")
		fmt.Fprintf(stderr, "  edit    Edit a file in the terminal\n")
		fmt.Fprintf(stderr, "  config  Show, describe or change settings\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  vimdent apply -command vim_tab_press -all main.py\n")
		fmt.Fprintf(stderr, "  vimdent edit main.py\n")
		fmt.Fprintf(stderr, "  vimdent config set vimdentation_indent_size 4\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "vimdent %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
			return 2
		}
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}

	e := &env{ctx: ctx, opts: opts, stdin: stdin, stdout: stdout, stderr: stderr}

	var err error
	switch rest[0] {
	case "apply":
		err = e.apply(rest[1:])
	case "edit":
		err = e.edit(rest[1:])
	case "config":
		err = e.config(rest[1:])
	case "version":
		fmt.Fprintf(stdout, "vimdent %s\n", version)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", rest[0])
		fs.Usage()
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

// userFile returns the settings file -config names, or the default one.
func (e *env) userFile() string {
	if e.opts.configPath != "" {
		return e.opts.configPath
	}
	return config.DefaultUserFile()
}

// loadStore reads the settings for a document in dir.
func (e *env) loadStore(dir string) (*config.Store, error) {
	opts := []config.Option{config.WithUserFile(e.userFile())}
	if ws := config.FindWorkspaceFile(dir); ws != "" {
		opts = append(opts, config.WithWorkspaceFile(ws))
	}
	if e.opts.logLevel != "" {
		opts = append(opts, config.WithOverrides(map[string]any{config.KeyLogLevel: e.opts.logLevel}))
	}
	return config.Load(opts...)
}

// newLogger creates the logger at the store's level. Logs go to -log-file
// when set, else to stderr unless quiet is true. The returned function
// closes the log file.
func (e *env) newLogger(store *config.Store, quiet bool) (*app.Logger, func(), error) {
	cfg := app.DefaultLoggerConfig()
	cfg.Level = app.ParseLogLevel(store.Settings().LogLevel)
	cfg.Output = e.stderr

	closeFn := func() {}
	if e.opts.logFile != "" {
		f, err := os.OpenFile(e.opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		cfg.Output = f
		closeFn = func() { _ = f.Close() }
	}

	logger := app.NewLogger(cfg)
	if quiet && e.opts.logFile == "" {
		logger.Disable()
	}

	cancel := store.Subscribe(func(s config.Settings) {
		logger.SetLevel(app.ParseLogLevel(s.LogLevel))
	})
	return logger, func() { cancel(); closeFn() }, nil
}

// sessionOptions returns the options shared by apply and edit.
func (e *env) sessionOptions(store *config.Store, logger *app.Logger) ([]app.SessionOption, error) {
	opts := []app.SessionOption{app.WithStore(store), app.WithLogger(logger)}

	path := e.opts.keymapPath
	if path == "" {
		path = filepath.Join(config.DefaultConfigDir(), "Default.sublime-keymap")
		if _, err := os.Stat(path); err != nil {
			return opts, nil
		}
	}
	km, err := keymap.LoadFile(path)
	if err != nil {
		return nil, err
	}
	km.Priority = 10
	return append(opts, app.WithKeymap(km)), nil
}
