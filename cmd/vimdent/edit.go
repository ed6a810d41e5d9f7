package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/dshills/vimdent/internal/app"
	"github.com/dshills/vimdent/internal/renderer/backend"
)

func (e *env) edit(args []string) error {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	flags.SetOutput(e.stderr)

	var readOnly bool
	flags.BoolVar(&readOnly, "R", false, "Open the file read-only")
	flags.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: vimdent edit [-R] [file]\n\n")
		fmt.Fprintf(e.stderr, "Keys: tab indent, shift+tab unindent, ctrl+z undo, ctrl+y redo,\n")
		fmt.Fprintf(e.stderr, "ctrl+s save, ctrl+q quit.\n\nOptions:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return errUsage
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return errUsage
	}
	path := flags.Arg(0)

	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	store, err := e.loadStore(dir)
	if err != nil {
		return err
	}
	// The screen belongs to the editor; logs only go to -log-file.
	logger, closeLog, err := e.newLogger(store, true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := e.sessionOptions(store, logger)
	if err != nil {
		return err
	}
	s, err := app.OpenSession(path, append(opts, app.WithReadOnly(readOnly))...)
	if err != nil {
		return err
	}
	defer s.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	return app.Run(e.ctx, term, s)
}
