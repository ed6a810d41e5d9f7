// Package dispatcher routes actions to handlers and runs each one as a
// single buffer transaction.
//
// Command names resolve through the Registry, which holds exact names and
// aliases (vim_tab_press is an alias of editor.indent), then through the
// namespace Router ("editor.indent" reaches the handler for "editor").
//
// For every dispatch the dispatcher:
//
//  1. runs pre-dispatch hooks, which may cancel the action
//  2. begins a transaction on the buffer and gives it to the handler as
//     its engine, with a copy of the cursors
//  3. runs the handler, recovering panics
//  4. commits the transaction, or rolls it back if the handler failed
//  5. maps the cursors through the committed changes and records an
//     undo entry
//  6. runs post-dispatch hooks and records metrics
//
// A failed command therefore never leaves a partial edit behind.
package dispatcher
