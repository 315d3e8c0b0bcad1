// Package history provides undo/redo for the document engine.
//
// The history is a linear list of full snapshots with a cursor. There are no
// diffs or inverse operations: undo and redo only move the cursor, so an undo
// restores the previous snapshot exactly.
//
// # Committing
//
// Commit is the only way new state enters the history. It discards any
// snapshots after the cursor (the redo future), appends the new value, and
// moves the cursor to it:
//
//	h := history.New(initial, 1000)
//	h.Commit(next, "Add text")
//
//	h.Undo() // back to initial
//	h.Redo() // forward to next
//
// Undo at the first snapshot and Redo at the last are no-ops that report false.
//
// # Immutability
//
// Stored values are returned as-is. Callers must treat them as immutable and
// produce a new value for every commit; the engine's Document type enforces
// this by exposing copies only.
//
// # Limits
//
// The store keeps at most maxEntries snapshots. When a commit exceeds the
// limit, the oldest snapshots are dropped.
package history
