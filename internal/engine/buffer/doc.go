// Package buffer provides the thread-safe text buffer a document is edited
// through, and the transactions commands stage their edits in.
//
// Offsets are bytes. A Point is a 0-indexed line and a byte column within
// that line. Line terminators are normalized to the buffer's LineEnding on
// load and on every insertion. Text lives in a rope.Rope, so edits and line
// lookups stay logarithmic and a Txn snapshot is the rope it began from.
//
// Commands never write to a Buffer directly. They run against a Txn:
//
//	txn := buf.Begin()
//	if _, err := txn.Insert(0, "    "); err != nil {
//	    txn.Rollback()
//	    return err
//	}
//	changes, err := txn.Commit()
//
// Until Commit, readers of the Buffer see the old text; a failed command
// rolls back and leaves no partial edit behind.
package buffer
