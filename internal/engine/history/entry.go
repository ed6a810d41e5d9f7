package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
)

// Entry is one undoable unit: the changes a committed transaction made,
// plus the selections on either side of it.
type Entry struct {
	ID            uuid.UUID
	Name          string
	Changes       []buffer.Change
	CursorsBefore []cursor.Selection
	CursorsAfter  []cursor.Selection
	Timestamp     time.Time
}

// NewEntry creates an entry for changes made under id.
// A zero id is replaced with a fresh one.
func NewEntry(id uuid.UUID, name string, changes []buffer.Change, before, after []cursor.Selection) *Entry {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Entry{
		ID:            id,
		Name:          name,
		Changes:       changes,
		CursorsBefore: before,
		CursorsAfter:  after,
		Timestamp:     time.Now(),
	}
}

func (e *Entry) undo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if err := buf.ApplyChanges(buffer.InvertAll(e.Changes)); err != nil {
		return err
	}
	if cursors != nil {
		cursors.SetAll(e.CursorsBefore)
		cursors.Clamp(buf.Len())
	}
	return nil
}

func (e *Entry) redo(buf *buffer.Buffer, cursors *cursor.CursorSet) error {
	if err := buf.ApplyChanges(e.Changes); err != nil {
		return err
	}
	if cursors != nil {
		cursors.SetAll(e.CursorsAfter)
		cursors.Clamp(buf.Len())
	}
	return nil
}
