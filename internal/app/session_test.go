package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/vimdent/internal/config"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/input"
	"github.com/dshills/vimdent/internal/input/key"
	"github.com/dshills/vimdent/internal/input/keymap"
)

var (
	keyTab      = key.NewSpecialEvent(key.KeyTab, key.ModNone)
	keyShiftTab = key.NewSpecialEvent(key.KeyTab, key.ModShift)
	keyUndo     = key.NewRuneEvent('z', key.ModCtrl)
	keyRedo     = key.NewRuneEvent('y', key.ModCtrl)
	keySave     = key.NewRuneEvent('s', key.ModCtrl)
	keyQuit     = key.NewRuneEvent('q', key.ModCtrl)
)

func newStore(t *testing.T, values map[string]any) *config.Store {
	t.Helper()
	s := config.NewStore(config.WithEnvLoader(nil), config.WithOverrides(values))
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	return s
}

func newTestSession(t *testing.T, text string, opts ...SessionOption) *Session {
	t.Helper()
	s, err := NewSession("", text, 0o644, opts...)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func pressAll(t *testing.T, s *Session, keys ...key.Event) {
	t.Helper()
	for _, k := range keys {
		if err := s.HandleKey(k); err != nil {
			t.Fatalf("HandleKey(%v) error = %v", k, err)
		}
	}
}

func TestOpenSessionMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	s, err := OpenSession(path)
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	defer s.Close()

	if s.Text() != "" {
		t.Errorf("Text() = %q, want empty", s.Text())
	}
	if s.Path() != path || s.Name() != "new.txt" {
		t.Errorf("Path, Name = %q, %q", s.Path(), s.Name())
	}
	if s.IsModified() {
		t.Error("IsModified() = true for a fresh document")
	}
}

func TestOpenSessionUnreadable(t *testing.T) {
	dir := t.TempDir()

	// Reading a directory fails with something other than not-exist.
	_, err := OpenSession(dir)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Fatalf("OpenSession(dir) error = %v, want open OperationError", err)
	}
}

func TestSessionTabIndentsAndUndo(t *testing.T) {
	store := newStore(t, map[string]any{config.KeyIndentSize: 4, config.KeyTabSize: 8})
	s := newTestSession(t, "foo\n", WithStore(store))

	pressAll(t, s, keyTab)
	if got := s.Text(); got != "    foo\n" {
		t.Fatalf("after tab Text() = %q, want %q", got, "    foo\n")
	}
	if got := s.Cursors().Primary().Head; got != 4 {
		t.Errorf("cursor = %d, want 4", got)
	}
	if !s.IsModified() {
		t.Error("IsModified() = false after indent")
	}

	pressAll(t, s, keyTab)
	if got := s.Text(); got != "        foo\n" {
		t.Fatalf("after second tab Text() = %q", got)
	}

	pressAll(t, s, keyShiftTab)
	if got := s.Text(); got != "    foo\n" {
		t.Fatalf("after shift+tab Text() = %q, want %q", got, "    foo\n")
	}

	pressAll(t, s, keyUndo)
	if got := s.Text(); got != "        foo\n" {
		t.Errorf("after undo Text() = %q", got)
	}
	if !strings.HasPrefix(s.Status(), "undo ") {
		t.Errorf("Status() = %q, want undo message", s.Status())
	}

	pressAll(t, s, keyRedo)
	if got := s.Text(); got != "    foo\n" {
		t.Errorf("after redo Text() = %q", got)
	}
}

func TestSessionMixedTabs(t *testing.T) {
	store := newStore(t, map[string]any{
		config.KeyIndentSize: 4,
		config.KeyTabSize:    8,
		config.KeyMixedTabs:  true,
	})
	s := newTestSession(t, "    x", WithStore(store))
	s.Cursors().SetAll([]cursor.Selection{cursor.NewCursorSelection(4)})

	pressAll(t, s, keyTab)
	if got := s.Text(); got != "\tx" {
		t.Errorf("Text() = %q, want %q", got, "\tx")
	}
}

func TestSessionIndentWithoutIndentSize(t *testing.T) {
	s := newTestSession(t, "foo")

	pressAll(t, s, keyTab)
	if s.Text() != "foo" {
		t.Errorf("Text() = %q, want unchanged", s.Text())
	}
	if !strings.Contains(s.Status(), "vimdentation_indent_size") {
		t.Errorf("Status() = %q, want the missing setting named", s.Status())
	}
	if s.IsModified() {
		t.Error("IsModified() = true after a failed command")
	}
}

func TestSessionUnindentDefaultsStep(t *testing.T) {
	s := newTestSession(t, "      x")

	pressAll(t, s, keyShiftTab)
	if got := s.Text(); got != "  x" {
		t.Errorf("Text() = %q, want %q", got, "  x")
	}

	pressAll(t, s, keyShiftTab)
	if got := s.Text(); got != "  x" {
		t.Errorf("Text() = %q, want unchanged", got)
	}
	if s.Status() == "" {
		t.Error("Status() empty after a no-op unindent")
	}
}

func TestSessionTyping(t *testing.T) {
	s := newTestSession(t, "")

	pressAll(t, s,
		key.NewRuneEvent('a', key.ModNone),
		key.NewRuneEvent('b', key.ModNone),
		key.NewSpecialEvent(key.KeyEnter, key.ModNone),
		key.NewRuneEvent('c', key.ModNone),
		key.NewSpecialEvent(key.KeyBackspace, key.ModNone),
		key.NewRuneEvent('d', key.ModNone),
	)
	if got := s.Text(); got != "ab\nd" {
		t.Errorf("Text() = %q, want %q", got, "ab\nd")
	}

	pressAll(t, s,
		key.NewSpecialEvent(key.KeyUp, key.ModNone),
		key.NewSpecialEvent(key.KeyHome, key.ModNone),
		key.NewSpecialEvent(key.KeyEnd, key.ModShift),
	)
	sel := s.Cursors().Primary()
	if sel.Start() != 0 || sel.End() != 2 {
		t.Errorf("selection = %v, want [0,2)", sel)
	}
	if !s.InputContext().HasSelection {
		t.Error("InputContext().HasSelection = false with a selection")
	}

	pressAll(t, s, key.NewRuneEvent('X', key.ModNone))
	if got := s.Text(); got != "X\nd" {
		t.Errorf("Text() = %q, want %q", got, "X\nd")
	}
}

func TestSessionReadOnly(t *testing.T) {
	store := newStore(t, map[string]any{config.KeyIndentSize: 4})
	s := newTestSession(t, "foo", WithStore(store), WithReadOnly(true))

	pressAll(t, s, keyTab, key.NewRuneEvent('a', key.ModNone))
	if s.Text() != "foo" {
		t.Errorf("Text() = %q, want unchanged", s.Text())
	}
	if s.Status() == "" {
		t.Error("Status() empty after editing a read-only document")
	}
}

func TestSessionSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	store := newStore(t, map[string]any{config.KeyIndentSize: 2})

	s, err := OpenSession(path, WithStore(store))
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	defer s.Close()

	pressAll(t, s, keyTab, keySave)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "  x\n" {
		t.Errorf("file = %q, want %q", data, "  x\n")
	}
	if s.IsModified() {
		t.Error("IsModified() = true after save")
	}
	if s.Status() != "saved main.go" {
		t.Errorf("Status() = %q", s.Status())
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600 kept", info.Mode().Perm())
	}
}

func TestSessionSaveErrors(t *testing.T) {
	scratch := newTestSession(t, "")
	if err := scratch.Save(); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("Save() scratch error = %v, want ErrNoFilePath", err)
	}

	ro, err := NewSession(filepath.Join(t.TempDir(), "a"), "", 0o644, WithReadOnly(true))
	if err != nil {
		t.Fatal(err)
	}
	if err := ro.Save(); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Save() read-only error = %v, want ErrReadOnly", err)
	}

	// Through the keymap the error lands on the status line.
	pressAll(t, scratch, keySave)
	if !strings.Contains(scratch.Status(), ErrNoFilePath.Error()) {
		t.Errorf("Status() = %q", scratch.Status())
	}
}

func TestSessionQuit(t *testing.T) {
	clean := newTestSession(t, "x")
	if err := clean.HandleKey(keyQuit); !errors.Is(err, ErrQuit) {
		t.Errorf("quit unmodified error = %v, want ErrQuit", err)
	}

	dirty := newTestSession(t, "")
	pressAll(t, dirty, key.NewRuneEvent('a', key.ModNone))

	if err := dirty.HandleKey(keyQuit); err != nil {
		t.Fatalf("first quit error = %v, want nil", err)
	}
	if !strings.Contains(dirty.Status(), ErrUnsavedChanges.Error()) {
		t.Errorf("Status() = %q, want unsaved warning", dirty.Status())
	}
	if err := dirty.HandleKey(keyQuit); !errors.Is(err, ErrQuit) {
		t.Errorf("second quit error = %v, want ErrQuit", err)
	}

	// Any other key disarms the second press.
	other := newTestSession(t, "")
	pressAll(t, other, key.NewRuneEvent('a', key.ModNone), keyQuit, key.NewRuneEvent('b', key.ModNone))
	if err := other.HandleKey(keyQuit); err != nil {
		t.Errorf("quit after disarm error = %v, want nil", err)
	}
}

func TestSessionKeySequence(t *testing.T) {
	km := &keymap.Keymap{
		Name:     "user",
		Priority: 10,
		Bindings: []keymap.Binding{
			{Keys: []string{"ctrl+k", "u"}, Command: keymap.CommandUnindent},
		},
	}
	s := newTestSession(t, "        x", WithKeymap(km))

	pressAll(t, s, key.NewRuneEvent('k', key.ModCtrl))
	if got := s.Text(); got != "        x" {
		t.Fatalf("Text() after prefix = %q, want unchanged", got)
	}
	pressAll(t, s, key.NewRuneEvent('u', key.ModNone))
	if got := s.Text(); got != "    x" {
		t.Errorf("Text() = %q, want %q", got, "    x")
	}

	// An abandoned prefix drops and the key is typed.
	pressAll(t, s, key.NewRuneEvent('k', key.ModCtrl), key.NewRuneEvent('z', key.ModNone))
	if got := s.Text(); got != "z    x" {
		t.Errorf("Text() = %q, want %q", got, "z    x")
	}
}

func TestSessionBadKeymap(t *testing.T) {
	km := &keymap.Keymap{Name: "bad", Source: "bad.sublime-keymap", Bindings: []keymap.Binding{{Keys: []string{"tab"}}}}
	_, err := NewSession("", "", 0o644, WithKeymap(km))
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Target != "bad.sublime-keymap" {
		t.Errorf("NewSession() error = %v, want keymap OperationError", err)
	}
}

func TestSessionSettingsReload(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vimdent.toml")
	if err := os.WriteFile(file, []byte("vimdentation_indent_size = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := config.NewStore(config.WithEnvLoader(nil), config.WithUserFile(file))
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &logs})
	s := newTestSession(t, "x", WithStore(store), WithLogger(logger))

	pressAll(t, s, keyTab)
	if got := s.Text(); got != "  x" {
		t.Fatalf("Text() = %q, want %q", got, "  x")
	}

	if err := os.WriteFile(file, []byte("vimdentation_indent_size = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Status() != "settings reloaded" {
		t.Errorf("Status() = %q, want settings reloaded", s.Status())
	}
	if !strings.Contains(logs.String(), "indent_size=4") {
		t.Errorf("log = %q, want the new settings", logs.String())
	}

	pressAll(t, s, keyTab)
	if got := s.Text(); got != "    x" {
		t.Errorf("Text() = %q, want %q", got, "    x")
	}
}

func TestSessionInputContext(t *testing.T) {
	store := newStore(t, map[string]any{config.KeyIndentSize: 3})
	s, err := NewSession("/tmp/a.py", "", 0o644, WithStore(store), WithReadOnly(true))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := s.InputContext()
	if ctx.FilePath != "/tmp/a.py" || !ctx.ReadOnly {
		t.Errorf("context = %+v", ctx)
	}
	if v, ok := ctx.Value("setting." + config.KeyIndentSize); !ok || v != 3 {
		t.Errorf("setting value = %v, %v; want 3", v, ok)
	}
	if v, _ := ctx.Value("auto_complete_visible"); v != false {
		t.Errorf("auto_complete_visible = %v, want false", v)
	}
}

func TestSessionDispatchUnknown(t *testing.T) {
	s := newTestSession(t, "")

	result := s.Dispatch(input.NewAction("nope.nothing"))
	if !result.IsError() {
		t.Errorf("Status = %v, want error", result.Status)
	}
	if !strings.Contains(s.Status(), "nope.nothing") {
		t.Errorf("Status() = %q", s.Status())
	}
}

func TestSessionCloseLogsCommandStats(t *testing.T) {
	var out bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &out})
	s, err := NewSession("", "x", 0o644,
		WithStore(newStore(t, map[string]any{config.KeyIndentSize: 4})),
		WithLogger(logger))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	pressAll(t, s, keyTab, keyTab)
	s.Close()

	if !strings.Contains(out.String(), "command editor.indent: 2 runs") {
		t.Errorf("log = %q, want the indent stats", out.String())
	}
}
