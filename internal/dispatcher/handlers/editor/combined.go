package editor

import (
	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/input"
)

// CombinedHandler handles all editor operations by delegating to specialized handlers.
type CombinedHandler struct {
	indent *IndentHandler
	edit   *EditHandler
}

// NewCombinedHandler creates a handler that combines all editor handlers.
func NewCombinedHandler() *CombinedHandler {
	return &CombinedHandler{
		indent: NewIndentHandler(),
		edit:   NewEditHandler(),
	}
}

// Namespace returns the editor namespace.
func (h *CombinedHandler) Namespace() string {
	return "editor"
}

// CanHandle returns true if this handler can process the action.
func (h *CombinedHandler) CanHandle(actionName string) bool {
	return h.indent.CanHandle(actionName) || h.edit.CanHandle(actionName)
}

// HandleAction processes an editor action by delegating to the appropriate handler.
func (h *CombinedHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if h.indent.CanHandle(action.Name) {
		return h.indent.HandleAction(action, ctx)
	}
	if h.edit.CanHandle(action.Name) {
		return h.edit.HandleAction(action, ctx)
	}
	return handler.Errorf("unknown editor action: %s", action.Name)
}
