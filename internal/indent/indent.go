package indent

import (
	"sort"
	"strings"

	"github.com/dshills/vimdent/internal/engine/buffer"
)

// Buffer is the text the commands read and edit.
// Both *buffer.Buffer and *buffer.Txn satisfy it.
type Buffer interface {
	TextRange(start, end buffer.ByteOffset) string
	LineText(line uint32) string
	LineStartOffset(line uint32) buffer.ByteOffset
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
	Insert(offset buffer.ByteOffset, text string) (buffer.ByteOffset, error)
	Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error)
}

// Indent adds one indent step at every region. A bare cursor indents at
// its offset; a selection indents each line it touches at the line's first
// non-blank character, or at the line end when the line is blank.
func Indent(buf Buffer, regions []buffer.Range, opts Options) error {
	opts, err := opts.forIndent()
	if err != nil {
		return err
	}

	for _, r := range reverseOrder(regions) {
		if r.IsEmpty() {
			if err := insertIndent(buf, r.Start, opts); err != nil {
				return err
			}
			continue
		}

		first, last := coveredLines(buf, r)
		for line := int64(last); line >= int64(first); line-- {
			text := buf.LineText(uint32(line))
			at := FirstNonBlank(text)
			if at < 0 {
				at = len(text)
			}
			p := buf.LineStartOffset(uint32(line)) + buffer.ByteOffset(at)
			if err := insertIndent(buf, p, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertIndent inserts spaces at p up to the next indent stop, then folds
// the space run ending there into tabs where it spans tab stops.
func insertIndent(buf Buffer, p buffer.ByteOffset, opts Options) error {
	lineStart := buf.LineStartOffset(buf.OffsetToPoint(p).Line)
	prefix := buf.TextRange(lineStart, p)
	col := Column(prefix, opts.TabSize)
	n := SpacesToNextStop(col, opts.IndentSize)

	if _, err := buf.Insert(p, strings.Repeat(" ", n)); err != nil {
		return err
	}
	if !opts.MixedTabs {
		return nil
	}

	run := len(prefix) - len(strings.TrimRight(prefix, " "))
	earliest := p - buffer.ByteOffset(run)
	earliestCol := col - run
	lastCol := col + n
	tab := opts.TabSize

	for earliestCol/tab < lastCol/tab {
		count := tab - (earliestCol+tab)%tab
		if _, err := buf.Replace(earliest, earliest+buffer.ByteOffset(count), "\t"); err != nil {
			return err
		}
		earliest++
		earliestCol += count
	}
	return nil
}

// Unindent removes one indent step from the leading whitespace of every
// line the regions touch. Blank lines and lines indented by less than one
// step are left alone. Only the leading whitespace is rewritten.
func Unindent(buf Buffer, regions []buffer.Range, opts Options) error {
	opts, err := opts.forUnindent()
	if err != nil {
		return err
	}

	for _, r := range reverseOrder(regions) {
		first, last := coveredLines(buf, r)
		for line := int64(last); line >= int64(first); line-- {
			if err := unindentLine(buf, uint32(line), opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func unindentLine(buf Buffer, line uint32, opts Options) error {
	text := buf.LineText(line)
	first := FirstNonBlank(text)
	if first < 0 {
		return nil
	}

	width := Column(text[:first], opts.TabSize)
	if width < opts.IndentSize {
		return nil
	}

	start := buf.LineStartOffset(line)
	_, err := buf.Replace(start, start+buffer.ByteOffset(first), Leading(width-opts.IndentSize, opts))
	return err
}

// coveredLines returns the lines holding the start and end of r.
func coveredLines(buf Buffer, r buffer.Range) (uint32, uint32) {
	return buf.OffsetToPoint(r.Start).Line, buf.OffsetToPoint(r.End).Line
}

// reverseOrder returns regions sorted last to first by start offset.
func reverseOrder(regions []buffer.Range) []buffer.Range {
	out := make([]buffer.Range, len(regions))
	copy(out, regions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start > out[j].Start
	})
	return out
}
