// Package editor provides handlers for text editing operations.
//
// # Indent Operations
//
// The IndentHandler type runs the column-aligned indent commands:
//   - editor.indent: insert spaces up to the next indent stop at each cursor,
//     or at the first non-blank of each selected line
//   - editor.unindent: remove one indent step from the leading whitespace
//     of each line a selection touches
//
// Both read tab_size, vimdentation_indent_size and vimdentation_mixed_tabs
// from the execution context. A repeat count applies the command that many
// times inside the same transaction.
//
// # Edit Operations
//
// The EditHandler type provides typing for interactive hosts:
//   - editor.insertText: replace each selection with the "text" argument
//   - editor.insertNewline: insert a line break
//   - editor.deleteBack: delete the selection or the character before the cursor
//   - editor.deleteChar: delete the selection or the character under the cursor
//
// Selections are processed last to first so earlier offsets stay valid.
package editor
