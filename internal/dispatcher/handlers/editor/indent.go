package editor

import (
	"errors"

	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/indent"
	"github.com/dshills/vimdent/internal/input"
)

// Action names for indent operations.
const (
	ActionIndent   = "editor.indent"
	ActionUnindent = "editor.unindent"
)

// IndentHandler runs the indent commands over every selection.
type IndentHandler struct{}

// NewIndentHandler creates a new indent handler.
func NewIndentHandler() *IndentHandler {
	return &IndentHandler{}
}

// Namespace returns the editor namespace.
func (h *IndentHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *IndentHandler) CanHandle(actionName string) bool {
	return actionName == ActionIndent || actionName == ActionUnindent
}

// HandleAction processes an indent action.
func (h *IndentHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionIndent:
		return h.repeat(ctx, indent.Indent, "nothing to indent")
	case ActionUnindent:
		return h.repeat(ctx, indent.Unindent, "nothing to unindent")
	default:
		return handler.Errorf("unknown indent action: %s", action.Name)
	}
}

type indentFunc func(buf indent.Buffer, regions []buffer.Range, opts indent.Options) error

// repeat applies fn Count times. Each pass sees the selections mapped
// through the edits of the passes before it.
func (h *IndentHandler) repeat(ctx *execctx.ExecutionContext, fn indentFunc, noop string) handler.Result {
	opts := ctx.Settings.IndentOptions()
	sels := ctx.Cursors.Clone()
	before := len(ctx.Engine.Changes())

	for i := 0; i < ctx.GetCount(); i++ {
		done := len(ctx.Engine.Changes())
		if err := fn(ctx.Engine, sels.Ranges(), opts); err != nil {
			if errors.Is(err, indent.ErrIndentSizeNotConfigured) {
				return handler.Error(err).WithMessage("vimdentation_indent_size is not set")
			}
			return handler.Error(err)
		}
		sels.Transform(ctx.Engine.Changes()[done:])
	}

	if len(ctx.Engine.Changes()) == before {
		return handler.NoOpWithMessage(noop)
	}
	return handler.Success()
}
