// Package table provides table geometry and structural edits over a document.
//
// The package has three parts:
//
//   - Locate resolves the table enclosing a selection and the (x, y)
//     position of the focused cell.
//   - MoveTo collapses a transform's selection into the cell at (x, y).
//   - InsertRow and InsertColumn add empty rows and columns relative to the
//     focused cell.
//
// Shape Invariant:
//
// A table's children are rows, a row's children are cells, and every row
// has the same number of cells. Locate reports ErrMalformedTable for a
// table that breaks this. InsertColumn replaces the whole table node in one
// edit so no intermediate ragged state is ever visible.
package table
