package rope

import "strings"

// Rope is an immutable rope of text.
// Operations return new Rope values and never modify the receiver, so any
// Rope is a cheap snapshot and is safe for concurrent reads.
// The zero value is an empty rope with '\n' line breaks.
type Rope struct {
	root *node
	cr   bool
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding s.
func FromString(s string) Rope {
	return Rope{root: build(leaves(s))}
}

// WithLineBreak returns the rope with lines ending at b, which is '\n' or
// '\r'. Text ending lines with "\r\n" uses '\n'.
func (r Rope) WithLineBreak(b byte) Rope {
	r.cr = b == '\r'
	return r
}

// Len returns the total byte length.
func (r Rope) Len() ByteOffset {
	if r.root == nil {
		return 0
	}
	return r.root.len()
}

// IsEmpty returns true if the rope holds no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}

// Summary returns the metrics of the whole rope.
func (r Rope) Summary() TextSummary {
	if r.root == nil {
		return TextSummary{}
	}
	return r.root.summary
}

// LineCount returns the number of lines, one more than the line breaks.
func (r Rope) LineCount() uint32 {
	return r.Summary().Breaks(r.cr) + 1
}

// String returns the full text. It costs O(n); prefer Slice.
func (r Rope) String() string {
	return r.Slice(0, r.Len())
}

// Slice returns the text in [start, end), clamped to the rope.
func (r Rope) Slice(start, end ByteOffset) string {
	start, end = r.clamp(start), r.clamp(end)
	if start >= end {
		return ""
	}
	var sb strings.Builder
	sb.Grow(int(end - start))
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Insert returns the rope with text inserted at offset.
func (r Rope) Insert(offset ByteOffset, text string) Rope {
	return r.Replace(offset, offset, text)
}

// Delete returns the rope without the text in [start, end).
func (r Rope) Delete(start, end ByteOffset) Rope {
	return r.Replace(start, end, "")
}

// Replace returns the rope with [start, end) replaced by text.
// The range is clamped to the rope.
func (r Rope) Replace(start, end ByteOffset, text string) Rope {
	start, end = r.clamp(start), r.clamp(end)
	if start > end {
		start = end
	}
	if start == end && text == "" {
		return r
	}
	if r.root == nil {
		return Rope{root: build(leaves(text)), cr: r.cr}
	}

	root := build(r.root.replace(start, end, text))
	for root != nil && !root.isLeaf() && len(root.children) == 1 {
		root = root.children[0]
	}
	return Rope{root: root, cr: r.cr}
}

// LineStartOffset returns the offset at which line begins. Lines past the
// end start at Len.
func (r Rope) LineStartOffset(line uint32) ByteOffset {
	if line == 0 || r.root == nil {
		return 0
	}
	if line >= r.LineCount() {
		return r.Len()
	}
	return r.root.breakEnd(line, r.cr)
}

// LineOf returns the line holding offset, clamped to the rope.
func (r Rope) LineOf(offset ByteOffset) uint32 {
	offset = r.clamp(offset)
	if offset == 0 {
		return 0
	}
	return r.root.breaksBefore(offset, r.cr)
}

// Height returns the depth of the tree, 0 for an empty rope.
func (r Rope) Height() int {
	if r.root == nil {
		return 0
	}
	return int(r.root.height) + 1
}

func (r Rope) clamp(offset ByteOffset) ByteOffset {
	switch {
	case offset < 0:
		return 0
	case offset > r.Len():
		return r.Len()
	}
	return offset
}
