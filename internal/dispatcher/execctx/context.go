// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/google/uuid"

	"github.com/dshills/vimdent/internal/config"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/input"
)

// EngineInterface is the text a handler edits. During dispatch it is the
// staging transaction, so nothing a handler writes is visible until the
// dispatcher commits.
type EngineInterface interface {
	// Read operations
	Text() string
	TextRange(start, end buffer.ByteOffset) string
	Len() buffer.ByteOffset
	LineCount() uint32
	LineText(line uint32) string
	LineStartOffset(line uint32) buffer.ByteOffset
	LineEndOffset(line uint32) buffer.ByteOffset
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
	PointToOffset(point buffer.Point) buffer.ByteOffset

	// Text operations
	Insert(offset buffer.ByteOffset, text string) (buffer.ByteOffset, error)
	Delete(start, end buffer.ByteOffset) error
	Replace(start, end buffer.ByteOffset, text string) (buffer.ByteOffset, error)

	// Changes returns the edits made so far, in order.
	Changes() []buffer.Change
}

// CursorManagerInterface abstracts cursor management for handlers.
type CursorManagerInterface interface {
	Primary() cursor.Selection
	All() []cursor.Selection
	Ranges() []buffer.Range
	Count() int
	SetAll(sels []cursor.Selection)
	MapInPlace(f func(sel cursor.Selection) cursor.Selection)
	Clamp(maxOffset cursor.ByteOffset)
	Clone() *cursor.CursorSet
}

// ExecutionContext provides context for action execution.
type ExecutionContext struct {
	// Engine provides access to the text being edited.
	Engine EngineInterface

	// Cursors holds the selections in pre-edit offsets. Handlers that move
	// cursors set them here; the dispatcher maps them through the edits.
	Cursors CursorManagerInterface

	// Settings are the resolved settings at dispatch time.
	Settings config.Settings

	// Input provides the input context (mode, read-only state, etc.).
	Input *input.Context

	// TxnID identifies the transaction this action runs in.
	TxnID uuid.UUID

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Settings: config.Defaults(),
		Count:    1,
		Data:     make(map[string]any),
	}
}

// NewWithInputContext creates a new execution context from an input context.
func NewWithInputContext(inputCtx *input.Context) *ExecutionContext {
	ctx := New()
	ctx.Input = inputCtx
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Mode returns the current mode name.
func (ctx *ExecutionContext) Mode() string {
	if ctx.Input != nil {
		return ctx.Input.Mode
	}
	return ""
}

// FilePath returns the path of the document being edited, if known.
func (ctx *ExecutionContext) FilePath() string {
	if ctx.Input != nil {
		return ctx.Input.FilePath
	}
	return ""
}

// IsReadOnly returns true if the buffer is read-only.
func (ctx *ExecutionContext) IsReadOnly() bool {
	return ctx.Input != nil && ctx.Input.ReadOnly
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	return nil
}

// ValidateForEdit checks that the context is valid for editing operations.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() {
		return ErrReadOnly
	}
	return nil
}
