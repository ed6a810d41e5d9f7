package cursor

import (
	"testing"

	"github.com/dshills/vimdent/internal/engine/buffer"
)

func TestSelectionBounds(t *testing.T) {
	tests := []struct {
		name  string
		sel   Selection
		start ByteOffset
		end   ByteOffset
		empty bool
	}{
		{"cursor", NewCursorSelection(5), 5, 5, true},
		{"forward", NewSelection(2, 8), 2, 8, false},
		{"backward", NewSelection(8, 2), 2, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Start(); got != tt.start {
				t.Errorf("Start() = %d, want %d", got, tt.start)
			}
			if got := tt.sel.End(); got != tt.end {
				t.Errorf("End() = %d, want %d", got, tt.end)
			}
			if got := tt.sel.IsEmpty(); got != tt.empty {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.empty)
			}
			if r := tt.sel.Range(); r.Start != tt.start || r.End != tt.end {
				t.Errorf("Range() = %v", r)
			}
		})
	}
}

func TestSelectionClampAndCollapse(t *testing.T) {
	sel := NewSelection(-3, 40).Clamp(10)
	if sel != NewSelection(0, 10) {
		t.Errorf("Clamp = %v, want Selection(0->10)", sel)
	}
	if c := NewSelection(4, 9).Collapse(); c != NewCursorSelection(9) {
		t.Errorf("Collapse = %v, want Cursor(9)", c)
	}
}

func TestCursorSetNormalize(t *testing.T) {
	cs := NewCursorSet(
		NewCursorSelection(20),
		NewSelection(2, 6),
		NewSelection(5, 10),
		NewCursorSelection(20),
		NewCursorSelection(10),
	)

	want := []Selection{NewSelection(2, 10), NewCursorSelection(20)}
	got := cs.All()
	if len(got) != len(want) {
		t.Fatalf("All() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if cs.Primary() != want[0] {
		t.Errorf("Primary() = %v, want %v", cs.Primary(), want[0])
	}
}

func TestCursorSetKeepsAdjacentCursors(t *testing.T) {
	cs := NewCursorSet(NewCursorSelection(3), NewCursorSelection(4))
	if cs.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cs.Count())
	}
}

func TestCursorSetEmpty(t *testing.T) {
	cs := NewCursorSet()
	if cs.Count() != 1 || cs.Primary() != NewCursorSelection(0) {
		t.Errorf("NewCursorSet() = %v, want one cursor at 0", cs.All())
	}
}

func TestCursorSetCloneEquals(t *testing.T) {
	cs := NewCursorSet(NewCursorSelection(1), NewSelection(5, 7))
	clone := cs.Clone()
	if !cs.Equals(clone) {
		t.Fatal("clone should equal original")
	}
	clone.Add(NewCursorSelection(30))
	if cs.Equals(clone) {
		t.Error("modifying clone must not affect original")
	}
}

func TestTransformOffset(t *testing.T) {
	insert := func(at ByteOffset, text string) buffer.Change {
		return buffer.Change{Range: buffer.NewRange(at, at), NewText: text}
	}
	replace := func(s, e ByteOffset, text string) buffer.Change {
		return buffer.Change{Range: buffer.NewRange(s, e), NewText: text}
	}

	tests := []struct {
		name   string
		offset ByteOffset
		change buffer.Change
		want   ByteOffset
	}{
		{"insert before", 10, insert(2, "abc"), 13},
		{"insert at", 10, insert(10, "    "), 14},
		{"insert after", 10, insert(12, "x"), 10},
		{"delete before", 10, replace(0, 4, ""), 6},
		{"delete spanning", 10, replace(8, 12, ""), 8},
		{"fold spaces before", 12, replace(4, 12, "\t"), 5},
		{"replace spanning", 10, replace(8, 12, "xy"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransformOffset(tt.offset, tt.change); got != tt.want {
				t.Errorf("TransformOffset(%d) = %d, want %d", tt.offset, got, tt.want)
			}
		})
	}
}

func TestCursorSetTransformAppliedOrder(t *testing.T) {
	// Two cursors; edits applied back to front as an indent would.
	b := buffer.NewBufferFromString("ab\ncd")
	cs := NewCursorSet(NewCursorSelection(0), NewCursorSelection(3))

	txn := b.Begin()
	if _, err := txn.Insert(3, "    "); err != nil {
		t.Fatal(err)
	}
	if _, err := txn.Insert(0, "    "); err != nil {
		t.Fatal(err)
	}
	changes, err := txn.Commit()
	if err != nil {
		t.Fatal(err)
	}

	cs.Transform(changes)

	want := []Selection{NewCursorSelection(4), NewCursorSelection(11)}
	got := cs.All()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selection %d = %v, want %v", i, got[i], want[i])
		}
	}
	if b.Text() != "    ab\n    cd" {
		t.Errorf("Text() = %q", b.Text())
	}
}
