// Package table provides the key handler for editing inside tables.
//
// The Handler declines every key unless the selection focus is inside a
// table. Inside a table it interprets:
//
//   - Backspace/Delete: clear the cell (structural chord), suppress at the
//     start of a cell, or delete across several cells
//   - Down/Up: move one row, leave the table at the bottom or top edge, or
//     insert a row (structural chord)
//   - Enter: move one row down, adding a row on the last one
//   - Tab: move to the next cell, wrapping rows and adding a row at the
//     bottom-right corner
//   - Left/Right: insert a column (structural chord); declined otherwise
//
// The structural chord defaults to Ctrl+Shift. The exit modifier (default
// Alt) leaves the table from any row, creating an empty paragraph above or
// below when there is no block to land in.
package table
