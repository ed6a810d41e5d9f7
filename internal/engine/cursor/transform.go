package cursor

import "github.com/dshills/vimdent/internal/engine/buffer"

// TransformOffset maps an offset through one applied change.
//
//   - a change entirely before the offset shifts it by the change's delta
//   - a change starting after the offset leaves it alone
//   - an insertion exactly at the offset pushes it past the inserted text
//   - a change spanning the offset moves it to the end of the new text
func TransformOffset(offset ByteOffset, ch buffer.Change) ByteOffset {
	r := ch.Range
	newLen := ByteOffset(len(ch.NewText))

	switch {
	case r.End <= offset:
		return offset - r.Len() + newLen
	case r.Start >= offset:
		return offset
	default:
		return r.Start + newLen
	}
}

// TransformSelection maps both ends of a selection through a change.
func TransformSelection(sel Selection, ch buffer.Change) Selection {
	return Selection{
		Anchor: TransformOffset(sel.Anchor, ch),
		Head:   TransformOffset(sel.Head, ch),
	}
}

// Transform maps every selection through changes, given in the order they
// were applied.
func (cs *CursorSet) Transform(changes []buffer.Change) {
	for _, ch := range changes {
		for i := range cs.selections {
			cs.selections[i] = TransformSelection(cs.selections[i], ch)
		}
	}
	cs.normalize()
}
