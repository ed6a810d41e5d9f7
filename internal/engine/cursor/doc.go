// Package cursor provides the ordered selection set of a view and the
// transforms that keep it valid across buffer edits.
//
// A Selection uses an anchor/head model: Anchor is where the selection
// started, Head is where typing occurs. Anchor == Head is a bare cursor.
//
// CursorSet keeps its selections sorted by position and merges any that
// overlap, so commands can walk Ranges() in order (or in reverse, when they
// edit in place). After a transaction commits, Transform maps every
// selection through the committed changes:
//
//	changes, _ := txn.Commit()
//	cursors.Transform(changes)
//
// CursorSet is not thread-safe.
package cursor
