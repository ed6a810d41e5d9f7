package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/renderer/backend"
)

func newBackend(t *testing.T, w, h int) *backend.NullBackend {
	t.Helper()
	be := backend.NewNullBackend(w, h)
	if err := be.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return be
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		text    string
		tabSize int
		want    int
	}{
		{"", 4, 0},
		{"abc", 4, 3},
		{"\t", 4, 4},
		{"\t\t", 8, 16},
		{"a\t", 4, 5},
		{"世界", 4, 4},
		{"é", 4, 1},
	}

	for _, tc := range tests {
		if got := DisplayWidth(tc.text, tc.tabSize); got != tc.want {
			t.Errorf("DisplayWidth(%q, %d) = %d, want %d", tc.text, tc.tabSize, got, tc.want)
		}
	}
}

func TestDrawTabsAndCursor(t *testing.T) {
	be := newBackend(t, 20, 4)
	buf := buffer.NewBufferFromString("\tx\n  y")

	New(be).Draw(Frame{
		Buffer:  buf,
		Cursor:  buffer.Point{Line: 0, Column: 1},
		TabSize: 4,
	})

	if got := be.Row(0); got != "    x" {
		t.Errorf("Row(0) = %q, want %q", got, "    x")
	}
	if got := be.Row(1); got != "  y" {
		t.Errorf("Row(1) = %q, want %q", got, "  y")
	}
	x, y, visible := be.CursorPosition()
	if x != 4 || y != 0 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (4, 0, true)", x, y, visible)
	}
}

func TestDrawWideGraphemes(t *testing.T) {
	be := newBackend(t, 20, 3)
	buf := buffer.NewBufferFromString("世a")

	New(be).Draw(Frame{Buffer: buf, Cursor: buffer.Point{Column: 3}, TabSize: 4})

	if got := be.Row(0); got != "世a" {
		t.Errorf("Row(0) = %q, want %q", got, "世a")
	}
	if x, _, _ := be.CursorPosition(); x != 2 {
		t.Errorf("cursor x = %d, want 2", x)
	}
}

func TestDrawScrollsToCursor(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	be := newBackend(t, 20, 4)
	buf := buffer.NewBufferFromString(strings.Join(lines, "\n"))
	r := New(be)

	r.Draw(Frame{Buffer: buf, Cursor: buffer.Point{Line: 5}, TabSize: 4})
	if top, _ := r.Scroll(); top != 3 {
		t.Errorf("top = %d, want 3", top)
	}
	if got := be.Row(0); got != "line 3" {
		t.Errorf("Row(0) = %q, want %q", got, "line 3")
	}
	if _, y, _ := be.CursorPosition(); y != 2 {
		t.Errorf("cursor y = %d, want 2", y)
	}

	r.Draw(Frame{Buffer: buf, Cursor: buffer.Point{Line: 1}, TabSize: 4})
	if top, _ := r.Scroll(); top != 1 {
		t.Errorf("top = %d, want 1", top)
	}
}

func TestDrawScrollsHorizontally(t *testing.T) {
	be := newBackend(t, 5, 2)
	buf := buffer.NewBufferFromString("abcdefghij")
	r := New(be)

	r.Draw(Frame{Buffer: buf, Cursor: buffer.Point{Column: 8}, TabSize: 4})
	if _, left := r.Scroll(); left != 4 {
		t.Errorf("left = %d, want 4", left)
	}
	if got := be.Row(0); got != "efghi" {
		t.Errorf("Row(0) = %q, want %q", got, "efghi")
	}
}

func TestDrawStatusLine(t *testing.T) {
	be := newBackend(t, 20, 3)
	buf := buffer.NewBufferFromString("x")

	New(be).Draw(Frame{
		Buffer:      buf,
		TabSize:     4,
		StatusLeft:  "no-op",
		StatusRight: "1:1",
	})

	if got, want := be.Row(2), " no-op          1:1"; got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
	if got := be.Cell(0, 2).Style; got != backend.StyleStatus {
		t.Errorf("status style = %v, want %v", got, backend.StyleStatus)
	}
}

func TestDrawSelection(t *testing.T) {
	be := newBackend(t, 20, 3)
	buf := buffer.NewBufferFromString("abcd")

	New(be).Draw(Frame{
		Buffer:     buf,
		TabSize:    4,
		Selections: []Span{{Start: buffer.Point{Column: 1}, End: buffer.Point{Column: 3}}},
	})

	want := []backend.Style{backend.StyleDefault, backend.StyleSelection, backend.StyleSelection, backend.StyleDefault}
	for x, s := range want {
		if got := be.Cell(x, 0).Style; got != s {
			t.Errorf("Cell(%d, 0).Style = %v, want %v", x, got, s)
		}
	}
}
