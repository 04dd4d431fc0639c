// Package history provides undo/redo over immutable document snapshots.
//
// Documents never change in place, so an undo entry is just the pair of
// states on either side of an edit. Undo returns the earlier state and Redo
// the later one; the caller swaps it in.
//
// # History Stack
//
//	history := NewHistory(1000) // Max 1000 undo entries
//
//	history.Push("Tab", before, after)
//
//	state, err := history.Undo()
//	state, err = history.Redo()
//
// # Grouping
//
// Multiple edits can be grouped as a single undo unit:
//
//	scope := history.GroupScope("fixture keys")
//	// ... multiple edits ...
//	scope.End()
//
// Undoing the group returns the state before its first edit.
package history
