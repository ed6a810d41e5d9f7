package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/vimdent/internal/app"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/input"
	"github.com/dshills/vimdent/internal/input/keymap"
)

// selectionList collects repeated -sel flags.
type selectionList []string

func (l *selectionList) String() string { return strings.Join(*l, ",") }

func (l *selectionList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func (e *env) apply(args []string) error {
	flags := flag.NewFlagSet("apply", flag.ContinueOnError)
	flags.SetOutput(e.stderr)

	var (
		command string
		sels    selectionList
		all     bool
		count   int
		write   bool
	)
	flags.StringVar(&command, "command", keymap.CommandIndent, "Command to run, e.g. vim_tab_press or editor.unindent")
	flags.Var(&sels, "sel", "Selection as LINE:COL or LINE:COL-LINE:COL, 1-based (repeatable)")
	flags.BoolVar(&all, "all", false, "Select the whole document")
	flags.IntVar(&count, "count", 1, "Repeat count")
	flags.BoolVar(&write, "w", false, "Write the result back to the file instead of stdout")
	flags.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: vimdent apply [options] [file]\n\n")
		fmt.Fprintf(e.stderr, "Reads stdin when no file is given.\n\nOptions:\n")
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
	if path == "" && write {
		return fmt.Errorf("-w needs a file")
	}

	text, perm, err := e.readInput(path)
	if err != nil {
		return err
	}

	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	store, err := e.loadStore(dir)
	if err != nil {
		return err
	}
	logger, closeLog, err := e.newLogger(store, false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := e.sessionOptions(store, logger)
	if err != nil {
		return err
	}
	s, err := app.NewSession(path, text, perm, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	selections, err := parseSelections(s.Buffer(), sels, all)
	if err != nil {
		return err
	}
	s.Cursors().SetAll(selections)

	action := input.Action{Name: command, Source: input.SourceCommandLine, Count: count}
	result := s.Dispatch(action)
	switch result.Status {
	case handler.StatusError:
		if msg := result.StatusText(); msg != "" {
			return fmt.Errorf("%s: %s", command, msg)
		}
		return fmt.Errorf("%s failed", command)
	case handler.StatusNoOp:
		if msg := result.StatusText(); msg != "" {
			fmt.Fprintf(e.stderr, "%s\n", msg)
		}
	}

	if write {
		if !s.IsModified() {
			return nil
		}
		return s.Save()
	}
	_, err = io.WriteString(e.stdout, s.Text())
	return err
}

// readInput reads path, or stdin when path is empty. Stdin attached to a
// terminal is refused rather than waited on.
func (e *env) readInput(path string) (string, fs.FileMode, error) {
	if path == "" {
		if isTerminal(e.stdin) {
			return "", 0, fmt.Errorf("no file given and stdin is a terminal")
		}
		data, err := io.ReadAll(e.stdin)
		if err != nil {
			return "", 0, fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), 0o644, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, app.NewOperationError("open", path, err)
	}
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	return string(data), perm, nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseSelections converts -sel values to selections. With all set the
// result is every line of the document, else a cursor at 1:1 when no
// specs are given.
func parseSelections(buf *buffer.Buffer, specs []string, all bool) ([]cursor.Selection, error) {
	if all {
		// The empty line after a final newline is not part of the text.
		end := buf.Len()
		if n := buf.LineCount(); n > 1 && buf.LineText(n-1) == "" {
			end = buf.LineEndOffset(n - 2)
		}
		return []cursor.Selection{cursor.NewSelection(0, end)}, nil
	}
	if len(specs) == 0 {
		return []cursor.Selection{cursor.NewCursorSelection(0)}, nil
	}

	out := make([]cursor.Selection, 0, len(specs))
	for _, spec := range specs {
		anchorSpec, headSpec, isRange := strings.Cut(spec, "-")
		anchor, err := parsePoint(buf, anchorSpec)
		if err != nil {
			return nil, fmt.Errorf("-sel %q: %w", spec, err)
		}
		head := anchor
		if isRange {
			if head, err = parsePoint(buf, headSpec); err != nil {
				return nil, fmt.Errorf("-sel %q: %w", spec, err)
			}
		}
		out = append(out, cursor.NewSelection(anchor, head))
	}
	return out, nil
}

// parsePoint converts a 1-based LINE or LINE:COL, with COL counted in
// bytes, to an offset. Columns past the line end clamp to it.
func parsePoint(buf *buffer.Buffer, spec string) (buffer.ByteOffset, error) {
	lineSpec, colSpec, hasCol := strings.Cut(strings.TrimSpace(spec), ":")
	line, err := strconv.Atoi(lineSpec)
	if err != nil || line < 1 {
		return 0, fmt.Errorf("invalid line %q", lineSpec)
	}
	col := 1
	if hasCol {
		if col, err = strconv.Atoi(colSpec); err != nil || col < 1 {
			return 0, fmt.Errorf("invalid column %q", colSpec)
		}
	}
	if uint32(line) > buf.LineCount() {
		return 0, fmt.Errorf("line %d past end of document (%d lines)", line, buf.LineCount())
	}
	return buf.PointToOffset(buffer.Point{Line: uint32(line - 1), Column: uint32(col - 1)}), nil
}
