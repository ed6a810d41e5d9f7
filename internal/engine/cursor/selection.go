package cursor

import (
	"fmt"

	"github.com/dshills/vimdent/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the current cursor position.
// When Anchor == Head, this represents a cursor with no selection.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head ByteOffset) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(offset ByteOffset) Selection {
	return Selection{Anchor: offset, Head: offset}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() ByteOffset {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() ByteOffset {
	return max(s.Anchor, s.Head)
}

// Range returns the selection as a range with Start <= End.
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// IsBackward returns true if the head is before the anchor.
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Extend returns the selection with its head moved to offset.
func (s Selection) Extend(offset ByteOffset) Selection {
	return Selection{Anchor: s.Anchor, Head: offset}
}

// Collapse collapses the selection to a cursor at the head.
func (s Selection) Collapse() Selection {
	return NewCursorSelection(s.Head)
}

// Merge returns a forward selection covering both s and other.
func (s Selection) Merge(other Selection) Selection {
	return Selection{
		Anchor: min(s.Start(), other.Start()),
		Head:   max(s.End(), other.End()),
	}
}

// Clamp returns a selection clamped to [0, maxOffset].
func (s Selection) Clamp(maxOffset ByteOffset) Selection {
	clamp := func(o ByteOffset) ByteOffset {
		return min(max(o, 0), maxOffset)
	}
	return Selection{Anchor: clamp(s.Anchor), Head: clamp(s.Head)}
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	return fmt.Sprintf("Selection(%d->%d)", s.Anchor, s.Head)
}
