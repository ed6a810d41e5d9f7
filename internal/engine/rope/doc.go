// Package rope provides an immutable rope for document text.
//
// A rope is a B+ tree whose leaves hold bounded text chunks and whose
// internal nodes cache the byte and line-break counts of their subtrees.
// Edits copy only the path from the root to the touched leaves, so a
// Replace costs O(log n) plus the size of one chunk, and the rope a
// transaction started from stays valid as a snapshot.
//
//	r := rope.FromString("hello world")
//	r = r.Insert(5, ",")   // "hello, world"
//	r = r.Delete(0, 7)     // "world"
//	line := r.LineOf(3)    // 0
//
// Lines end at '\n' unless WithLineBreak selects '\r'.
package rope
