package history

import (
	"errors"
	"sync"

	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Push adds an entry to the undo stack and clears the redo stack.
// Entries without changes are ignored.
func (h *History) Push(e *Entry) {
	if e == nil || len(e.Changes) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent entry and restores its selections.
// The entry moves to the redo stack; on failure it stays where it was.
func (h *History) Undo(buf *buffer.Buffer, cursors *cursor.CursorSet) (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return nil, ErrNothingToUndo
	}

	e := h.undoStack[len(h.undoStack)-1]
	if err := e.undo(buf, cursors); err != nil {
		return nil, err
	}

	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e, nil
}

// Redo reapplies the most recently undone entry.
func (h *History) Redo(buf *buffer.Buffer, cursors *cursor.CursorSet) (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return nil, ErrNothingToRedo
	}

	e := h.redoStack[len(h.redoStack)-1]
	if err := e.redo(buf, cursors); err != nil {
		return nil, err
	}

	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e, nil
}

// CanUndo returns true if there are entries to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if there are entries to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undoable entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redoable entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// Clear drops all history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
}
