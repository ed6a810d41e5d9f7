// Package cursor provides handlers for cursor movement operations.
package cursor

import (
	"unicode/utf8"

	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/indent"
	"github.com/dshills/vimdent/internal/input"
)

// Action names for cursor movements.
const (
	ActionMoveLeft      = "cursor.moveLeft"
	ActionMoveRight     = "cursor.moveRight"
	ActionMoveUp        = "cursor.moveUp"
	ActionMoveDown      = "cursor.moveDown"
	ActionMoveLineStart = "cursor.moveLineStart"
	ActionMoveLineEnd   = "cursor.moveLineEnd"
)

// ArgExtend makes a movement extend the selection instead of collapsing it.
const ArgExtend = "extend"

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionMoveLineStart, ActionMoveLineEnd:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	count := ctx.GetCount()
	var move func(head buffer.ByteOffset) buffer.ByteOffset

	switch action.Name {
	case ActionMoveLeft:
		move = h.left(ctx.Engine, count)
	case ActionMoveRight:
		move = h.right(ctx.Engine, count)
	case ActionMoveUp:
		move = h.vertical(ctx, -count)
	case ActionMoveDown:
		move = h.vertical(ctx, count)
	case ActionMoveLineStart:
		move = func(head buffer.ByteOffset) buffer.ByteOffset {
			return ctx.Engine.LineStartOffset(ctx.Engine.OffsetToPoint(head).Line)
		}
	case ActionMoveLineEnd:
		move = func(head buffer.ByteOffset) buffer.ByteOffset {
			return ctx.Engine.LineEndOffset(ctx.Engine.OffsetToPoint(head).Line)
		}
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	before := ctx.Cursors.All()
	extend := action.ArgBool(ArgExtend)
	ctx.Cursors.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		head := move(sel.Head)
		if extend {
			return sel.Extend(head)
		}
		return cursor.NewCursorSelection(head)
	})

	if sameSelections(before, ctx.Cursors.All()) {
		return handler.NoOp()
	}
	return handler.Success()
}

// left steps back count characters, treating CRLF as one.
func (h *Handler) left(engine execctx.EngineInterface, count int) func(buffer.ByteOffset) buffer.ByteOffset {
	text := engine.Text()
	return func(head buffer.ByteOffset) buffer.ByteOffset {
		for i := 0; i < count && head > 0; i++ {
			if head >= 2 && text[head-2:head] == "\r\n" {
				head -= 2
				continue
			}
			_, size := utf8.DecodeLastRuneInString(text[:head])
			head -= buffer.ByteOffset(size)
		}
		return head
	}
}

// right steps forward count characters, treating CRLF as one.
func (h *Handler) right(engine execctx.EngineInterface, count int) func(buffer.ByteOffset) buffer.ByteOffset {
	text := engine.Text()
	end := buffer.ByteOffset(len(text))
	return func(head buffer.ByteOffset) buffer.ByteOffset {
		for i := 0; i < count && head < end; i++ {
			if head+2 <= end && text[head:head+2] == "\r\n" {
				head += 2
				continue
			}
			_, size := utf8.DecodeRuneInString(text[head:])
			head += buffer.ByteOffset(size)
		}
		return head
	}
}

// vertical moves delta lines, keeping the visual column where the target
// line is long enough. Tabs count tab_size columns.
func (h *Handler) vertical(ctx *execctx.ExecutionContext, delta int) func(buffer.ByteOffset) buffer.ByteOffset {
	engine := ctx.Engine
	tabSize := ctx.Settings.TabSize
	if tabSize <= 0 {
		tabSize = indent.DefaultTabSize
	}
	last := int(engine.LineCount()) - 1

	return func(head buffer.ByteOffset) buffer.ByteOffset {
		p := engine.OffsetToPoint(head)
		start := engine.LineStartOffset(p.Line)
		col := indent.Column(engine.TextRange(start, head), tabSize)

		target := int(p.Line) + delta
		switch {
		case target < 0:
			return 0
		case target > last:
			return engine.Len()
		}
		line := uint32(target)
		return engine.LineStartOffset(line) + offsetAtColumn(engine.LineText(line), col, tabSize)
	}
}

// offsetAtColumn returns the byte index in line of the last character
// starting at or before col.
func offsetAtColumn(line string, col, tabSize int) buffer.ByteOffset {
	c := 0
	for i, r := range line {
		w := 1
		if r == '\t' {
			w = tabSize
		}
		if c+w > col {
			return buffer.ByteOffset(i)
		}
		c += w
	}
	return buffer.ByteOffset(len(line))
}

func sameSelections(a, b []cursor.Selection) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
