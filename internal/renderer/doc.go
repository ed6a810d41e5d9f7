// Package renderer draws a document to a terminal backend.
//
// Lines are laid out grapheme by grapheme using Unicode cell widths, with
// a tab drawn tab_size cells wide regardless of its position, so the
// screen agrees with the column arithmetic of the indent commands. The
// view scrolls to keep the primary cursor visible, and the last row is a
// status line.
//
// Usage:
//
//	be, _ := backend.NewTerminal()
//	_ = be.Init()
//	r := renderer.New(be)
//	r.Draw(renderer.Frame{Buffer: buf, Cursor: p, TabSize: 4})
package renderer
