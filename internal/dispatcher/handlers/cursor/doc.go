// Package cursor provides handlers for cursor movement operations.
//
// The Handler type moves every selection's head:
//   - cursor.moveLeft: back [count] characters
//   - cursor.moveRight: forward [count] characters
//   - cursor.moveUp: up [count] lines, keeping the visual column
//   - cursor.moveDown: down [count] lines, keeping the visual column
//   - cursor.moveLineStart: to the start of the line
//   - cursor.moveLineEnd: to the end of the line
//
// Selections collapse to the new head unless the action carries a true
// "extend" argument. Visual columns count a tab as tab_size columns, the
// same rule the indent commands use.
package cursor
