// Package key provides the normalized key tokens consumed by command handlers.
//
// This package defines:
//
//   - Key: a closed set of keys handlers can match on exhaustively
//   - Modifier: a bitset of held modifier keys (Ctrl, Alt, Shift, Meta)
//   - Event: one key press with its modifiers
//   - Sequence: an ordered list of events, as replayed by the CLI
//
// # Key Specifications
//
// Events can be written as:
//
//   - Key names: "Tab", "Enter", "Backspace", "Down"
//   - With modifiers: "Ctrl+Shift+Down", "Alt+Up"
//   - Vim-style: "<C-S-Down>", "<CR>", "<BS>"
//   - Single characters: "a", "A"
//
// Mapping raw terminal or DOM events onto these tokens is the host's job.
package key
