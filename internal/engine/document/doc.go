// Package document provides the immutable node tree edited by tablekeys.
//
// A Document wraps a root Node together with an index built once per
// version. The index maps every node key to its path from the root, so
// parent and sibling queries are lookups rather than back-pointers:
//
//   - Parent, NextSibling, PreviousSibling: structural neighbours
//   - Ancestors, FindAncestor, ClosestBlock: upward walks
//   - Leaves, StartOf, ComparePoints: document-order queries
//
// Nodes are never mutated. ReplaceNode and InsertChild copy the path from
// the root to the edited node and return a new Document; every node off
// that path is shared with the previous version and keeps its key.
//
// Selection Model:
//
// A Selection is an anchor Point and a focus Point. Points address a text
// leaf by key and a rune offset inside it. A selection is only meaningful
// for the Document version it was created against; Validate checks that.
//
// Thread Safety:
//
// Node, Document, Point and Selection are immutable values and are safe for
// concurrent use.
package document
