package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestConvertOp(t *testing.T) {
	tests := []struct {
		op     fsnotify.Op
		want   Operation
		wantOK bool
	}{
		{fsnotify.Write, OpWrite, true},
		{fsnotify.Create, OpCreate, true},
		{fsnotify.Remove, OpRemove, true},
		{fsnotify.Rename, OpRemove, true},
		{fsnotify.Create | fsnotify.Write, OpCreate, true},
		{fsnotify.Chmod, 0, false},
	}
	for _, tt := range tests {
		got, ok := convertOp(tt.op)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("convertOp(%v) = %v, %v, want %v, %v", tt.op, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name    string
		prev    Operation
		pending bool
		op      Operation
		want    Operation
	}{
		{"nothing pending", OpCreate, false, OpWrite, OpWrite},
		{"write after create", OpCreate, true, OpWrite, OpCreate},
		{"recreated", OpRemove, true, OpCreate, OpCreate},
		{"rewritten after remove", OpRemove, true, OpWrite, OpCreate},
		{"removed after write", OpWrite, true, OpRemove, OpRemove},
		{"write after write", OpWrite, true, OpWrite, OpWrite},
	}
	for _, tt := range tests {
		got := coalesce(Event{Op: tt.prev}, tt.op, tt.pending)
		if got != tt.want {
			t.Errorf("%s: coalesce = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWatchAndUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	for _, p := range []string{a, b, a} {
		if err := w.Watch(p); err != nil {
			t.Fatalf("Watch(%s) error: %v", p, err)
		}
	}
	if n := len(w.WatchedFiles()); n != 2 {
		t.Errorf("WatchedFiles = %d, want 2", n)
	}

	if err := w.Unwatch(a); err != nil {
		t.Errorf("Unwatch error: %v", err)
	}
	if n := len(w.WatchedFiles()); n != 1 {
		t.Errorf("WatchedFiles after Unwatch = %d, want 1", n)
	}

	if err := w.Watch(filepath.Join(dir, "missing", "c.toml")); err == nil {
		t.Error("Watch in missing directory succeeded, want error")
	}
}

func TestWatchAfterClose(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
	if err := w.Watch(filepath.Join(t.TempDir(), "x.toml")); err != ErrClosed {
		t.Errorf("Watch after Close = %v, want ErrClosed", err)
	}
}

func TestChangeIsReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vimdent.toml")
	if err := os.WriteFile(path, []byte("tab_size = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer w.Close()

	events := make(chan Event, 16)
	w.OnChange(func(e Event) { events <- e })
	w.OnChange(func(Event) { panic("handler panic") })

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("tab_size = 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		abs, _ := filepath.Abs(path)
		if e.Path != abs {
			t.Errorf("event path = %q, want %q", e.Path, abs)
		}
		if e.Op == OpRemove {
			t.Errorf("event op = %v, want write or create", e.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event within 5s")
	}
}
