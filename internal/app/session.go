package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/vimdent/internal/config"
	"github.com/dshills/vimdent/internal/dispatcher"
	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	cursorhandler "github.com/dshills/vimdent/internal/dispatcher/handlers/cursor"
	"github.com/dshills/vimdent/internal/dispatcher/handlers/editor"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/engine/history"
	"github.com/dshills/vimdent/internal/input"
	"github.com/dshills/vimdent/internal/input/key"
	"github.com/dshills/vimdent/internal/input/keymap"
)

// Session is one open document wired to a dispatcher, keymaps and
// settings. Its methods are meant to be called from a single event loop;
// only the status line and settings observer are touched from other
// goroutines.
type Session struct {
	path     string
	name     string
	readOnly bool
	perm     fs.FileMode

	buf        *buffer.Buffer
	cursors    *cursor.CursorSet
	history    *history.History
	dispatcher *dispatcher.Dispatcher
	keymaps    *keymap.Registry
	store      *config.Store
	logger     *Logger

	pending   []key.Event
	saved     buffer.RevisionID
	quitArmed bool

	mu          sync.Mutex
	status      string
	unsubscribe func()
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	store    *config.Store
	logger   *Logger
	keymaps  []*keymap.Keymap
	readOnly bool
	history  int
}

// WithStore sets the settings store. Without one, the built-in defaults
// apply and Indent reports an unset indent step.
func WithStore(s *config.Store) SessionOption {
	return func(o *sessionOptions) { o.store = s }
}

// WithLogger sets the session logger.
func WithLogger(l *Logger) SessionOption {
	return func(o *sessionOptions) { o.logger = l }
}

// WithKeymap registers km in addition to the default keymap.
func WithKeymap(km *keymap.Keymap) SessionOption {
	return func(o *sessionOptions) { o.keymaps = append(o.keymaps, km) }
}

// WithReadOnly opens the document read-only.
func WithReadOnly(readOnly bool) SessionOption {
	return func(o *sessionOptions) { o.readOnly = readOnly }
}

// WithHistoryLimit bounds the undo stack.
func WithHistoryLimit(n int) SessionOption {
	return func(o *sessionOptions) { o.history = n }
}

// OpenSession opens path. A file that does not exist yet gives an empty
// document that Save creates; an empty path gives an unnamed scratch
// document.
func OpenSession(path string, opts ...SessionOption) (*Session, error) {
	var text string
	perm := fs.FileMode(0o644)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			text = string(data)
			if info, statErr := os.Stat(path); statErr == nil {
				perm = info.Mode().Perm()
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, NewOperationError("open", path, err)
		}
	}
	return NewSession(path, text, perm, opts...)
}

// NewSession creates a session over text without touching the disk.
func NewSession(path, text string, perm fs.FileMode, opts ...SessionOption) (*Session, error) {
	o := sessionOptions{logger: NullLogger}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NullLogger
	}

	name := "untitled"
	if path != "" {
		name = filepath.Base(path)
	}

	buf := buffer.NewBufferFromString(text, buffer.WithDetectedLineEnding(text))
	s := &Session{
		path:     path,
		name:     name,
		readOnly: o.readOnly,
		perm:     perm,
		buf:      buf,
		cursors:  cursor.NewCursorSetAt(0),
		history:  history.NewHistory(o.history),
		keymaps:  keymap.NewRegistry(),
		store:    o.store,
		logger:   o.logger.WithField("file", name),
		saved:    buf.RevisionID(),
	}

	if err := s.keymaps.Register(keymap.Default()); err != nil {
		return nil, err
	}
	for _, km := range o.keymaps {
		if err := s.keymaps.Register(km); err != nil {
			return nil, NewOperationError("load keymap", km.Source, err)
		}
	}

	s.dispatcher = s.newDispatcher()

	if s.store != nil {
		s.unsubscribe = s.store.Subscribe(func(next config.Settings) {
			s.logger.Info("settings reloaded: tab_size=%d indent_size=%d mixed_tabs=%t",
				next.TabSize, next.IndentSize, next.MixedTabs)
			s.setStatus("settings reloaded")
		})
	}

	s.logger.Debug("opened %s: %d bytes, %d lines, %s", name, buf.Len(), buf.LineCount(), buf.LineEnding())
	return s, nil
}

func (s *Session) newDispatcher() *dispatcher.Dispatcher {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.SetBuffer(s.buf)
	d.SetCursors(s.cursors)
	d.SetHistory(s.history)
	if s.store != nil {
		d.SetSettings(s.store)
	}
	d.SetLogger(s.logger.WithComponent("dispatcher"))

	d.RegisterNamespace(editor.NewCombinedHandler())
	d.RegisterNamespace(cursorhandler.NewHandler())
	d.Alias(keymap.CommandIndent, editor.ActionIndent)
	d.Alias(keymap.CommandUnindent, editor.ActionUnindent)

	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(_ *input.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		s.setStatus(r.StatusText())
	}))
	return d
}

// Close stops observing the settings store and logs the command stats.
func (s *Session) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}

	for _, c := range s.dispatcher.Metrics().Commands() {
		s.logger.Debug("command %s: %d runs, %d no-ops, %d errors, %d edits, avg %s",
			c.Name, c.Dispatches, c.NoOps, c.Errors, c.Edits, c.AverageDuration())
	}
}

// Text returns the document text.
func (s *Session) Text() string { return s.buf.Text() }

// Buffer returns the document buffer.
func (s *Session) Buffer() *buffer.Buffer { return s.buf }

// Cursors returns the live selection set.
func (s *Session) Cursors() *cursor.CursorSet { return s.cursors }

// Dispatcher returns the session's dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher { return s.dispatcher }

// Path returns the file path, "" for a scratch document.
func (s *Session) Path() string { return s.path }

// Name returns the display name.
func (s *Session) Name() string { return s.name }

// IsModified reports whether the text differs from the last save.
func (s *Session) IsModified() bool { return s.buf.RevisionID() != s.saved }

// Settings returns the settings in effect.
func (s *Session) Settings() config.Settings {
	if s.store == nil {
		return config.Defaults()
	}
	return s.store.Settings()
}

// Status returns the status line message.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) setStatus(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = msg
}

// InputContext returns the state key binding conditions are evaluated
// against.
func (s *Session) InputContext() *input.Context {
	ctx := input.NewContext()
	ctx.FilePath = s.path
	ctx.ReadOnly = s.readOnly
	for _, sel := range s.cursors.All() {
		if !sel.IsEmpty() {
			ctx.HasSelection = true
			break
		}
	}
	ctx.Settings = s.Settings().Map()
	return ctx
}

// Dispatch runs action against the document. The result message, if any,
// becomes the status line.
func (s *Session) Dispatch(action input.Action) handler.Result {
	return s.dispatcher.DispatchWithContext(action, s.InputContext())
}

// HandleKey feeds one key press through the keymaps. Keys no binding
// claims edit the text or move the cursor. It returns ErrQuit when the
// session should end.
func (s *Session) HandleKey(ev key.Event) error {
	seq := append(append([]key.Event(nil), s.pending...), ev)
	b, match := s.keymaps.Lookup(seq, s.InputContext())

	switch match {
	case keymap.PartialMatch:
		s.pending = seq
		return nil
	case keymap.ExactMatch:
		s.pending = nil
		return s.runCommand(b.Action(input.SourceKeyboard))
	}

	if len(s.pending) > 0 {
		// An abandoned prefix is dropped and the key tried on its own.
		s.pending = nil
		return s.HandleKey(ev)
	}

	action, ok := fallbackAction(ev)
	if !ok {
		return nil
	}
	s.quitArmed = false
	s.Dispatch(action)
	return nil
}

func (s *Session) runCommand(action input.Action) error {
	if action.Name != keymap.CommandQuit {
		s.quitArmed = false
	}

	switch action.Name {
	case keymap.CommandUndo:
		return s.report(s.Undo())
	case keymap.CommandRedo:
		return s.report(s.Redo())
	case keymap.CommandSave:
		return s.report(s.Save())
	case keymap.CommandQuit:
		if s.IsModified() && !s.quitArmed {
			s.quitArmed = true
			s.setStatus(fmt.Sprintf("%v: quit again to discard", ErrUnsavedChanges))
			return nil
		}
		return ErrQuit
	}

	s.Dispatch(action)
	return nil
}

// report shows err on the status line. Session errors never end the loop.
func (s *Session) report(err error) error {
	if err != nil {
		s.setStatus(err.Error())
		s.logger.Warn("%v", err)
	}
	return nil
}

// fallbackAction maps a key no binding claims to an editing or movement
// action. Shift extends the selection for movement keys.
func fallbackAction(ev key.Event) (input.Action, bool) {
	if ev.IsChar() {
		a := input.NewAction(editor.ActionInsertText)
		a.Source = input.SourceKeyboard
		a.Args = map[string]any{editor.ArgText: string(ev.Rune)}
		return a, true
	}

	var name string
	switch ev.Key {
	case key.KeyEnter:
		name = editor.ActionInsertNewline
	case key.KeyTab:
		a := input.NewAction(editor.ActionInsertText)
		a.Source = input.SourceKeyboard
		a.Args = map[string]any{editor.ArgText: "\t"}
		return a, true
	case key.KeyBackspace:
		name = editor.ActionDeleteBack
	case key.KeyDelete:
		name = editor.ActionDeleteChar
	case key.KeyLeft:
		name = cursorhandler.ActionMoveLeft
	case key.KeyRight:
		name = cursorhandler.ActionMoveRight
	case key.KeyUp:
		name = cursorhandler.ActionMoveUp
	case key.KeyDown:
		name = cursorhandler.ActionMoveDown
	case key.KeyHome:
		name = cursorhandler.ActionMoveLineStart
	case key.KeyEnd:
		name = cursorhandler.ActionMoveLineEnd
	default:
		return input.Action{}, false
	}

	a := input.NewAction(name)
	a.Source = input.SourceKeyboard
	if ev.Modifiers.Has(key.ModShift) {
		a.Args = map[string]any{cursorhandler.ArgExtend: true}
	}
	return a, true
}

// Undo reverts the last committed command.
func (s *Session) Undo() error {
	e, err := s.history.Undo(s.buf, s.cursors)
	switch {
	case errors.Is(err, history.ErrNothingToUndo):
		s.setStatus(err.Error())
		return nil
	case err != nil:
		return NewOperationError("undo", "", err)
	}
	s.setStatus("undo " + e.Name)
	s.logger.Debug("undo %s (txn %s)", e.Name, e.ID)
	return nil
}

// Redo reapplies the last undone command.
func (s *Session) Redo() error {
	e, err := s.history.Redo(s.buf, s.cursors)
	switch {
	case errors.Is(err, history.ErrNothingToRedo):
		s.setStatus(err.Error())
		return nil
	case err != nil:
		return NewOperationError("redo", "", err)
	}
	s.setStatus("redo " + e.Name)
	s.logger.Debug("redo %s (txn %s)", e.Name, e.ID)
	return nil
}

// Save writes the document to its path.
func (s *Session) Save() error {
	if s.path == "" {
		return NewOperationError("save", s.name, ErrNoFilePath)
	}
	if s.readOnly {
		return NewOperationError("save", s.path, ErrReadOnly)
	}

	rev := s.buf.RevisionID()
	text := s.buf.Text()
	if err := os.WriteFile(s.path, []byte(text), s.perm); err != nil {
		return NewOperationError("save", s.path, err)
	}
	s.saved = rev
	s.quitArmed = false

	s.setStatus(fmt.Sprintf("saved %s", s.name))
	s.logger.Info("saved %s (%d bytes)", s.path, len(text))
	return nil
}
