package buffer

// Txn stages edits against a snapshot of a Buffer.
// It offers the same read and write methods as Buffer, so code written
// against an editing interface can run inside a transaction unchanged.
// A Txn is not safe for concurrent use.
type Txn struct {
	buf     *Buffer
	base    RevisionID
	content content
	changes []Change
	closed  bool
}

// Text returns the staged text.
func (t *Txn) Text() string { return t.content.string() }

// TextRange returns staged text in the given byte range, clamped.
func (t *Txn) TextRange(start, end ByteOffset) string { return t.content.slice(start, end) }

// Len returns the staged byte length.
func (t *Txn) Len() ByteOffset { return t.content.len() }

// LineCount returns the staged number of lines.
func (t *Txn) LineCount() uint32 { return t.content.lineCount() }

// LineText returns a staged line without its terminator.
func (t *Txn) LineText(line uint32) string { return t.content.lineText(line) }

// LineStartOffset returns the staged start offset of a line.
func (t *Txn) LineStartOffset(line uint32) ByteOffset { return t.content.lineStart(line) }

// LineEndOffset returns the staged end offset of a line (before newline).
func (t *Txn) LineEndOffset(line uint32) ByteOffset { return t.content.lineEnd(line) }

// OffsetToPoint converts a staged byte offset to line/column.
func (t *Txn) OffsetToPoint(offset ByteOffset) Point { return t.content.offsetToPoint(offset) }

// PointToOffset converts a staged line/column to a byte offset.
func (t *Txn) PointToOffset(p Point) ByteOffset { return t.content.pointToOffset(p) }

// Insert stages an insertion and returns the end of the inserted text.
func (t *Txn) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if t.closed {
		return 0, ErrTxnClosed
	}
	if offset < 0 || offset > t.content.len() {
		return 0, ErrOffsetOutOfRange
	}
	return t.Replace(offset, offset, text)
}

// Delete stages removal of [start, end).
func (t *Txn) Delete(start, end ByteOffset) error {
	_, err := t.Replace(start, end, "")
	return err
}

// Replace stages replacement of [start, end) with text.
func (t *Txn) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	if t.closed {
		return 0, ErrTxnClosed
	}
	if !t.content.validRange(start, end) {
		return 0, ErrRangeInvalid
	}

	text = t.buf.normalizeLineEndings(text)
	if start == end && text == "" {
		return start, nil
	}

	oldText := t.content.slice(start, end)
	t.content = t.content.replace(start, end, text)
	newEnd := start + ByteOffset(len(text))

	ch := Change{
		Type:     ChangeReplace,
		Range:    Range{Start: start, End: end},
		NewRange: Range{Start: start, End: newEnd},
		OldText:  oldText,
		NewText:  text,
	}
	switch {
	case start == end:
		ch.Type = ChangeInsert
	case text == "":
		ch.Type = ChangeDelete
	}
	t.changes = append(t.changes, ch)

	return newEnd, nil
}

// Changes returns the staged changes in the order they were made.
func (t *Txn) Changes() []Change {
	out := make([]Change, len(t.changes))
	copy(out, t.changes)
	return out
}

// Commit publishes the staged text to the buffer in one step.
// It fails with ErrStaleTxn if the buffer was modified after Begin.
func (t *Txn) Commit() ([]Change, error) {
	if t.closed {
		return nil, ErrTxnClosed
	}
	t.closed = true

	if len(t.changes) == 0 {
		return nil, nil
	}

	b := t.buf
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.revisionID != t.base {
		return nil, ErrStaleTxn
	}
	b.content = t.content
	b.revisionID = NewRevisionID()

	return t.Changes(), nil
}

// Rollback discards the staged edits. It is safe to call after Commit.
func (t *Txn) Rollback() {
	t.closed = true
	t.changes = nil
}
