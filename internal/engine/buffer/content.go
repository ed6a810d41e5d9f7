package buffer

import "github.com/dshills/vimdent/internal/engine/rope"

// content is an immutable text value. Buffer and Txn both hold one; edits
// produce a new value that shares all untouched chunks with the old one.
type content struct {
	text       rope.Rope
	lineEnding LineEnding
}

func newContent(text string, le LineEnding) content {
	return content{
		text:       rope.FromString(text).WithLineBreak(le.breakByte()),
		lineEnding: le,
	}
}

// breakByte returns the byte that ends a line: the '\n' of "\r\n" for CRLF.
func (le LineEnding) breakByte() byte {
	if le == LineEndingCR {
		return '\r'
	}
	return '\n'
}

func (c content) string() string {
	return c.text.String()
}

func (c content) len() ByteOffset {
	return c.text.Len()
}

func (c content) lineCount() uint32 {
	return c.text.LineCount()
}

func (c content) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > c.len() {
		return c.len()
	}
	return offset
}

func (c content) lineStart(line uint32) ByteOffset {
	return c.text.LineStartOffset(line)
}

// lineEnd returns the offset just before the line terminator.
func (c content) lineEnd(line uint32) ByteOffset {
	if line >= c.lineCount()-1 {
		return c.len()
	}
	start := c.lineStart(line)
	end := c.lineStart(line+1) - ByteOffset(len(c.lineEnding.Sequence()))
	if end < start {
		end = start
	}
	return end
}

func (c content) lineText(line uint32) string {
	if line >= c.lineCount() {
		return ""
	}
	return c.text.Slice(c.lineStart(line), c.lineEnd(line))
}

func (c content) slice(start, end ByteOffset) string {
	return c.text.Slice(start, end)
}

func (c content) offsetToPoint(offset ByteOffset) Point {
	offset = c.clamp(offset)
	line := c.text.LineOf(offset)
	return Point{
		Line:   line,
		Column: uint32(offset - c.lineStart(line)),
	}
}

func (c content) pointToOffset(p Point) ByteOffset {
	if p.Line >= c.lineCount() {
		return c.len()
	}
	offset := c.lineStart(p.Line) + ByteOffset(p.Column)
	if end := c.lineEnd(p.Line); offset > end {
		offset = end
	}
	return offset
}

func (c content) validRange(start, end ByteOffset) bool {
	return start >= 0 && start <= end && end <= c.len()
}

// replace returns the content with [start, end) replaced by text.
// The range must already be validated.
func (c content) replace(start, end ByteOffset, text string) content {
	return content{
		text:       c.text.Replace(start, end, text),
		lineEnding: c.lineEnding,
	}
}
