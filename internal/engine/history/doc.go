// Package history provides undo/redo for committed buffer transactions.
//
// Each Entry holds the changes one transaction committed, in the order they
// were applied, with the selections before and after. Undo replays the
// inverted changes back to front in a single atomic buffer update; Redo
// replays the originals.
//
//	h := history.NewHistory(0) // DefaultMaxEntries
//	h.Push(history.NewEntry(id, "editor.indent", changes, before, after))
//	h.Undo(buf, cursors)
package history
