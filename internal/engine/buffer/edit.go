package buffer

import "fmt"

// Edit is a request to replace Range with NewText.
type Edit struct {
	Range   Range
	NewText string
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, text string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: text}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange Range
	NewRange Range
	OldText  string
	Delta    int64
}

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeInsert ChangeType = iota
	ChangeDelete
	ChangeReplace
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change records one applied edit with enough detail to revert it.
// Range is in the coordinates of the text before the change, NewRange in
// the coordinates after it.
type Change struct {
	Type     ChangeType
	Range    Range
	NewRange Range
	OldText  string
	NewText  string
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	inv := Change{
		Type:     c.Type,
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
	}
	return inv
}

// Edit converts the change back into an edit request.
func (c Change) Edit() Edit {
	return Edit{Range: c.Range, NewText: c.NewText}
}

// InvertAll returns the changes that undo a sequence applied in order.
// The result is itself in application order.
func InvertAll(changes []Change) []Change {
	out := make([]Change, len(changes))
	for i, c := range changes {
		out[len(changes)-1-i] = c.Invert()
	}
	return out
}
