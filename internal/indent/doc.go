// Package indent implements tab-key indentation for editors whose visual tab
// width differs from their logical indent step.
//
// Columns are counted flatly: a tab is worth Options.TabSize columns wherever
// it appears on the line, every other rune is worth one. Indent inserts
// spaces up to the next multiple of the indent step and, with mixed tabs,
// folds each space run that crosses a tab boundary into tabs. Unindent
// removes one step of leading columns and re-emits what is left.
//
// Both commands edit a Buffer in place, walking regions and lines back to
// front so pending offsets stay valid. Run them against a transaction so a
// failure leaves nothing behind.
package indent
