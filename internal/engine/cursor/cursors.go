package cursor

import "sort"

// CursorSet is the ordered selection set of a view.
// Selections are kept sorted by start and never overlap; the first one is
// the primary selection. A CursorSet always holds at least one selection.
type CursorSet struct {
	selections []Selection
}

// NewCursorSet creates a cursor set from the given selections.
// With no selections it holds a single cursor at offset 0.
func NewCursorSet(sels ...Selection) *CursorSet {
	cs := &CursorSet{}
	cs.SetAll(sels)
	return cs
}

// NewCursorSetAt creates a cursor set with one cursor at offset.
func NewCursorSetAt(offset ByteOffset) *CursorSet {
	return NewCursorSet(NewCursorSelection(offset))
}

// Primary returns the primary (first) selection.
func (cs *CursorSet) Primary() Selection {
	return cs.selections[0]
}

// All returns a copy of all selections.
func (cs *CursorSet) All() []Selection {
	out := make([]Selection, len(cs.selections))
	copy(out, cs.selections)
	return out
}

// Count returns the number of selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// Ranges returns the selection ranges in document order.
func (cs *CursorSet) Ranges() []Range {
	ranges := make([]Range, len(cs.selections))
	for i, sel := range cs.selections {
		ranges[i] = sel.Range()
	}
	return ranges
}

// Add adds a selection, merging it with any it overlaps.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.normalize()
}

// SetAll replaces all selections.
func (cs *CursorSet) SetAll(sels []Selection) {
	if len(sels) == 0 {
		cs.selections = []Selection{NewCursorSelection(0)}
		return
	}
	cs.selections = make([]Selection, len(sels))
	copy(cs.selections, sels)
	cs.normalize()
}

// MapInPlace replaces every selection with f(sel).
func (cs *CursorSet) MapInPlace(f func(sel Selection) Selection) {
	for i, sel := range cs.selections {
		cs.selections[i] = f(sel)
	}
	cs.normalize()
}

// Clamp clamps all selections to [0, maxOffset].
func (cs *CursorSet) Clamp(maxOffset ByteOffset) {
	cs.MapInPlace(func(sel Selection) Selection {
		return sel.Clamp(maxOffset)
	})
}

// Clone returns a deep copy of the cursor set.
func (cs *CursorSet) Clone() *CursorSet {
	return &CursorSet{selections: cs.All()}
}

// Equals returns true if both sets hold the same selections.
func (cs *CursorSet) Equals(other *CursorSet) bool {
	if other == nil || len(cs.selections) != len(other.selections) {
		return false
	}
	for i, sel := range cs.selections {
		if sel != other.selections[i] {
			return false
		}
	}
	return true
}

// normalize sorts selections and merges overlapping ones.
// Two cursors at the same offset collapse into one; a cursor sitting on the
// boundary of a selection is absorbed by it.
func (cs *CursorSet) normalize() {
	if len(cs.selections) <= 1 {
		return
	}

	sort.SliceStable(cs.selections, func(i, j int) bool {
		si, sj := cs.selections[i].Start(), cs.selections[j].Start()
		if si != sj {
			return si < sj
		}
		return cs.selections[i].End() > cs.selections[j].End()
	})

	merged := cs.selections[:1]
	for _, sel := range cs.selections[1:] {
		last := &merged[len(merged)-1]
		switch {
		case sel.Start() < last.End():
			*last = last.Merge(sel)
		case sel.Start() == last.End() && (sel.IsEmpty() || last.IsEmpty()):
			if !sel.IsEmpty() {
				*last = sel
			}
		default:
			merged = append(merged, sel)
		}
	}
	cs.selections = merged
}
