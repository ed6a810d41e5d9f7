package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/vimdent/internal/config"
	"github.com/dshills/vimdent/internal/dispatcher/execctx"
	"github.com/dshills/vimdent/internal/dispatcher/handler"
	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/engine/cursor"
	"github.com/dshills/vimdent/internal/engine/history"
	"github.com/dshills/vimdent/internal/input"
)

// SettingsSource supplies the settings in effect when an action runs.
// *config.Store satisfies it.
type SettingsSource interface {
	Settings() config.Settings
}

// Logger receives dispatch diagnostics as printf-style messages.
type Logger interface {
	Debug(format string, args ...any)
	Warn(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Dispatcher routes actions to handlers and runs each in a transaction.
type Dispatcher struct {
	mu sync.RWMutex

	// exec serializes dispatches so transactions never race each other.
	exec sync.Mutex

	registry *Registry
	router   *Router

	buf      *buffer.Buffer
	cursors  *cursor.CursorSet
	history  *history.History
	settings SettingsSource
	log      Logger

	config  Config
	metrics *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
}

// New creates a new dispatcher with the given configuration.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		log:      nopLogger{},
		config:   cfg,
	}
	if cfg.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetBuffer attaches the document buffer.
func (d *Dispatcher) SetBuffer(buf *buffer.Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf = buf
}

// SetCursors attaches the live cursor set.
func (d *Dispatcher) SetCursors(cursors *cursor.CursorSet) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = cursors
}

// SetHistory attaches the undo history. Without one, nothing is recorded.
func (d *Dispatcher) SetHistory(h *history.History) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = h
}

// SetSettings sets where settings are read from on each dispatch.
// Without a source, the built-in defaults apply.
func (d *Dispatcher) SetSettings(src SettingsSource) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.settings = src
}

// SetLogger sets the diagnostics logger. A nil logger discards output.
func (d *Dispatcher) SetLogger(l Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if l == nil {
		l = nopLogger{}
	}
	d.log = l
}

// Buffer returns the attached buffer.
func (d *Dispatcher) Buffer() *buffer.Buffer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf
}

// Cursors returns the live cursor set.
func (d *Dispatcher) Cursors() *cursor.CursorSet {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cursors
}

// History returns the undo history.
func (d *Dispatcher) History() *history.History {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.history
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn handler.Func) {
	d.registry.Register(actionName, fn)
}

// UnregisterHandler removes a handler for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.registry.Unregister(actionName)
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// Alias makes alias dispatch as target.
func (d *Dispatcher) Alias(alias, target string) {
	d.registry.Alias(alias, target)
}

// CanDispatch reports whether some handler accepts the action name.
func (d *Dispatcher) CanDispatch(actionName string) bool {
	name := d.registry.Resolve(actionName)
	return d.registry.Has(name) || d.router.Route(name) != nil
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postHooks = append(d.postHooks, hook)
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	return d.DispatchWithContext(action, nil)
}

// DispatchWithContext executes an action with explicit input context.
func (d *Dispatcher) DispatchWithContext(action input.Action, inputCtx *input.Context) handler.Result {
	d.exec.Lock()
	defer d.exec.Unlock()

	start := time.Now()
	requested := action.Name
	action.Name = d.registry.Resolve(action.Name)

	d.mu.RLock()
	buf, live, hist, src, log := d.buf, d.cursors, d.history, d.settings, d.log
	d.mu.RUnlock()

	ctx := execctx.NewWithInputContext(inputCtx)
	ctx.Count = d.clampCount(action.Count)
	if src != nil {
		ctx.Settings = src.Settings()
	}

	result := d.run(action, ctx, buf, live, hist)

	d.runPostHooks(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(start), result)
	}

	if result.IsError() {
		log.Warn("%s failed (txn %s): %v", requested, result.TxnID, result.Error)
	} else {
		log.Debug("%s: %s, %d edits (txn %s)", requested, result.Status, len(result.Edits), result.TxnID)
	}
	return result
}

// run resolves the handler and executes it inside a transaction.
func (d *Dispatcher) run(action input.Action, ctx *execctx.ExecutionContext, buf *buffer.Buffer, live *cursor.CursorSet, hist *history.History) handler.Result {
	if buf == nil {
		return handler.Error(ErrNoDocument)
	}
	if live == nil {
		live = cursor.NewCursorSetAt(0)
	}

	txn := buf.Begin()
	ctx.Engine = txn
	ctx.TxnID = uuid.New()
	ctx.Cursors = live.Clone()

	if !d.runPreHooks(&action, ctx) {
		txn.Rollback()
		return handler.CancelledWithMessage("cancelled by hook")
	}

	h := d.registry.Get(action.Name)
	if h == nil {
		h = d.router.Route(action.Name)
	}
	if h == nil {
		txn.Rollback()
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}
	result.TxnID = ctx.TxnID

	if result.Status == handler.StatusError || result.Status == handler.StatusCancelled {
		txn.Rollback()
		return result
	}

	before := live.All()
	changes, err := txn.Commit()
	if err != nil {
		return handler.Error(fmt.Errorf("commit %s: %w", action.Name, err)).WithMessage(result.Message)
	}

	final := ctx.Cursors.Clone()
	final.Transform(changes)
	final.Clamp(buf.Len())
	live.SetAll(final.All())

	if len(changes) > 0 && hist != nil {
		hist.Push(history.NewEntry(ctx.TxnID, action.Name, changes, before, live.All()))
	}
	result.Edits = changes
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.mu.RLock()
			log := d.log
			d.mu.RUnlock()
			log.Debug("handler panic in %s: %v\n%s", action.Name, r, stack[:n])

			result = handler.Error(fmt.Errorf("%w in %s: %v", ErrPanic, action.Name, r))
			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

func (d *Dispatcher) clampCount(count int) int {
	if count <= 0 {
		return 1
	}
	if limit := d.config.MaxRepeatCount; limit > 0 && count > limit {
		return limit
	}
	return count
}

// runPreHooks runs all pre-dispatch hooks.
// Returns false if any hook cancels the action.
func (d *Dispatcher) runPreHooks(action *input.Action, ctx *execctx.ExecutionContext) bool {
	d.mu.RLock()
	hooks := make([]PreDispatchHook, len(d.preHooks))
	copy(hooks, d.preHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// runPostHooks runs all post-dispatch hooks.
func (d *Dispatcher) runPostHooks(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	d.mu.RLock()
	hooks := make([]PostDispatchHook, len(d.postHooks))
	copy(hooks, d.postHooks)
	d.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}
