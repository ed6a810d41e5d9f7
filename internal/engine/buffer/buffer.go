package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrTxnClosed        = errors.New("transaction already committed or rolled back")
	ErrStaleTxn         = errors.New("buffer changed since transaction began")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds the text of one document.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	content    content
	revisionID RevisionID
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	b.content = newContent("", b.lineEnding)
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.content = newContent(b.normalizeLineEndings(s), b.lineEnding)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first: CRLF pairs may straddle read boundaries.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts all line endings to the buffer's preferred style.
func (b *Buffer) normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') && b.lineEnding == LineEndingLF {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	switch b.lineEnding {
	case LineEndingCRLF:
		s = strings.ReplaceAll(s, "\n", "\r\n")
	case LineEndingCR:
		s = strings.ReplaceAll(s, "\n", "\r")
	}
	return s
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.string()
}

// TextRange returns text in the given byte range, clamped to the buffer.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.slice(start, end)
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.len()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineCount()
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line uint32) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineText(line)
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int(b.content.lineEnd(line) - b.content.lineStart(line))
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineStart(line)
}

// LineEndOffset returns the byte offset of the end of a line (before newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineEnd(line)
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset >= b.content.len() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(b.content.slice(offset, offset+utf8.UTFMax))
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.offsetToPoint(offset)
}

// PointToOffset converts line/column to byte offset.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.pointToOffset(point)
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > b.content.len() {
		return 0, ErrOffsetOutOfRange
	}
	return b.replaceLocked(offset, offset, text), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.content.validRange(start, end) {
		return ErrRangeInvalid
	}
	b.replaceLocked(start, end, "")
	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.content.validRange(start, end) {
		return 0, ErrRangeInvalid
	}
	return b.replaceLocked(start, end, text), nil
}

func (b *Buffer) replaceLocked(start, end ByteOffset, text string) ByteOffset {
	text = b.normalizeLineEndings(text)
	b.content = b.content.replace(start, end, text)
	b.revisionID = NewRevisionID()
	return start + ByteOffset(len(text))
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.content.validRange(edit.Range.Start, edit.Range.End) {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.content.slice(edit.Range.Start, edit.Range.End)
	newEnd := b.replaceLocked(edit.Range.Start, edit.Range.End, edit.NewText)

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    int64(newEnd-edit.Range.Start) - int64(edit.Range.Len()),
	}, nil
}

// ApplyChanges replays changes in order as one atomic update.
// Either every change applies or the buffer is left untouched.
func (b *Buffer) ApplyChanges(changes []Change) error {
	if len(changes) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c := b.content
	for _, ch := range changes {
		if !c.validRange(ch.Range.Start, ch.Range.End) {
			return ErrRangeInvalid
		}
		c = c.replace(ch.Range.Start, ch.Range.End, b.normalizeLineEndings(ch.NewText))
	}

	b.content = c
	b.revisionID = NewRevisionID()
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.len() == 0
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Begin starts a transaction on a private copy of the current text.
// Edits made through the transaction become visible only on Commit.
func (b *Buffer) Begin() *Txn {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Txn{
		buf:     b,
		base:    b.revisionID,
		content: b.content,
	}
}
