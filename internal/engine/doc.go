// Package engine is the editing facade for tablekeys.
//
// An Engine holds the current document snapshot and selection, sends each key
// through a dispatcher, and swaps in the snapshot of every applied result.
// Edits are recorded in an undo history.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - document: immutable keyed document trees, points and selections
//   - transform: chained edits over a document with a sticky error
//   - history: snapshot-based undo/redo
//
// # Thread Safety
//
// All Engine operations are thread-safe. Keys are handled one at a time
// under a write lock; Snapshot and the other readers take a read lock.
//
// # Basic Usage
//
//	e, err := engine.New(doc)
//	if err != nil {
//	    return err
//	}
//
//	result := e.HandleKey(key.MustParse("Tab"))
//	if !result.PreventDefault() {
//	    // run the host's default behavior for the key
//	}
//
//	_ = e.Undo()
package engine
