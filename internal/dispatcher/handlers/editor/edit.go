package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/input"
)

// Action names for text editing operations.
const (
	ActionInsertText    = "editor.insertText"
	ActionInsertNewline = "editor.insertNewline"
	ActionDeleteBack    = "editor.deleteBack"
	ActionDeleteChar    = "editor.deleteChar"
)

// ArgText is the argument holding the text for editor.insertText.
const ArgText = "text"

// EditHandler handles typing and deletion at every selection.
//
// Cursors are left in pre-edit offsets; the dispatcher maps them through
// the committed edits. An insertion at a cursor therefore leaves the
// cursor after the inserted text, and a deletion leaves it at the start
// of the removed range.
type EditHandler struct{}

// NewEditHandler creates a new edit handler.
func NewEditHandler() *EditHandler {
	return &EditHandler{}
}

// Namespace returns the editor namespace.
func (h *EditHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *EditHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertText, ActionInsertNewline, ActionDeleteBack, ActionDeleteChar:
		return true
	}
	return false
}

// HandleAction processes an edit action.
func (h *EditHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionInsertText:
		return h.insertText(ctx, strings.Repeat(action.ArgString(ArgText), ctx.GetCount()))
	case ActionInsertNewline:
		return h.insertText(ctx, strings.Repeat("\n", ctx.GetCount()))
	case ActionDeleteBack:
		return h.deleteBack(ctx, ctx.GetCount())
	case ActionDeleteChar:
		return h.deleteChar(ctx, ctx.GetCount())
	default:
		return handler.Errorf("unknown edit action: %s", action.Name)
	}
}

// insertText replaces every selection with text.
func (h *EditHandler) insertText(ctx *execctx.ExecutionContext, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}

	sels := ctx.Cursors.All()
	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		if _, err := ctx.Engine.Replace(r.Start, r.End, text); err != nil {
			return handler.Error(err)
		}
	}

	ctx.Cursors.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		return cursor.NewCursorSelection(sel.End())
	})
	return handler.Success()
}

// deleteBack removes each selection, or count characters before each cursor.
func (h *EditHandler) deleteBack(ctx *execctx.ExecutionContext, count int) handler.Result {
	return h.deleteEach(ctx, func(text string, at buffer.ByteOffset) buffer.ByteOffset {
		for j := 0; j < count && at > 0; j++ {
			at = prevCharStart(text, at)
		}
		return at
	}, true)
}

// deleteChar removes each selection, or count characters after each cursor.
func (h *EditHandler) deleteChar(ctx *execctx.ExecutionContext, count int) handler.Result {
	return h.deleteEach(ctx, func(text string, at buffer.ByteOffset) buffer.ByteOffset {
		for j := 0; j < count && int(at) < len(text); j++ {
			at = nextCharEnd(text, at)
		}
		return at
	}, false)
}

// deleteEach deletes every non-empty selection, and for bare cursors the
// range between the cursor and the offset step returns.
func (h *EditHandler) deleteEach(ctx *execctx.ExecutionContext, step func(string, buffer.ByteOffset) buffer.ByteOffset, backward bool) handler.Result {
	sels := ctx.Cursors.All()
	text := ctx.Engine.Text()
	limit := buffer.ByteOffset(len(text))
	deleted := false

	for i := len(sels) - 1; i >= 0; i-- {
		r := sels[i].Range()
		if r.IsEmpty() {
			to := step(text, r.Start)
			if backward {
				r.Start = to
			} else {
				r.End = to
			}
		}
		// Ranges already deleted after this one are off limits.
		if r.End > limit {
			r.End = limit
		}
		if r.Start >= r.End {
			continue
		}
		if err := ctx.Engine.Delete(r.Start, r.End); err != nil {
			return handler.Error(err)
		}
		limit = r.Start
		deleted = true
	}

	if !deleted {
		return handler.NoOp()
	}
	ctx.Cursors.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		return cursor.NewCursorSelection(sel.Start())
	})
	return handler.Success()
}

// prevCharStart returns the start of the character before offset.
// A CRLF pair counts as one character.
func prevCharStart(text string, offset buffer.ByteOffset) buffer.ByteOffset {
	if strings.HasSuffix(text[:offset], "\r\n") {
		return offset - 2
	}
	_, size := utf8.DecodeLastRuneInString(text[:offset])
	return offset - buffer.ByteOffset(size)
}

// nextCharEnd returns the end of the character starting at offset.
func nextCharEnd(text string, offset buffer.ByteOffset) buffer.ByteOffset {
	if strings.HasPrefix(text[offset:], "\r\n") {
		return offset + 2
	}
	_, size := utf8.DecodeRuneInString(text[offset:])
	return offset + buffer.ByteOffset(size)
}
