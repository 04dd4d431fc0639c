// Package config loads tablekeys settings.
//
// Settings come from three layers, higher layers overriding lower:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, typically tablekeys.toml
//  3. TABLEKEYS_* environment variables
//
// A file looks like:
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[keys]
//	structural = "Ctrl+Shift"
//	exit = "Alt"
//
//	[history]
//	max_entries = 500
//
//	[dispatcher]
//	recover_panics = true
//	metrics = false
//
// Environment variables map by section: TABLEKEYS_KEYS_EXIT sets keys.exit
// and TABLEKEYS_HISTORY_MAX_ENTRIES sets history.max_entries. The short forms
// TABLEKEYS_STRUCTURAL, TABLEKEYS_EXIT and TABLEKEYS_METRICS are also read.
//
// Unknown keys are rejected so typos surface as errors rather than silently
// falling back to defaults.
package config
