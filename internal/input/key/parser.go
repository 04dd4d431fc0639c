package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Key names: "Enter", "Tab", "Backspace", "Down"
//   - With modifiers: "Ctrl+Shift+Down", "Alt+Up"
//   - Vim-style: "<C-S-Down>", "<CR>", "<BS>", "<A-Up>"
//   - Single characters: "a", "A" (uppercase implies Shift)
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseDelimited(spec[1:len(spec)-1], "-")
	}
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseDelimited(spec, "+")
	}
	return parseKey(spec, ModNone)
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) Event {
	e, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return e
}

// ParseSequence parses each spec in order.
func ParseSequence(specs ...string) (Sequence, error) {
	seq := make(Sequence, 0, len(specs))
	for i, spec := range specs {
		e, err := Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("key %d (%q): %w", i+1, spec, err)
		}
		seq = append(seq, e)
	}
	return seq, nil
}

// parseDelimited parses "Ctrl+Shift+Down" (sep "+") or "C-S-Down" (sep "-").
// All but the last part are modifiers.
func parseDelimited(spec, sep string) (Event, error) {
	parts := strings.Split(spec, sep)
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

// parseKey parses a key name or single character with already-known modifiers.
func parseKey(name string, mods Modifier) (Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if k := KeyFromName(name); k != KeyNone {
		return NewEvent(k, mods), nil
	}
	if strings.EqualFold(name, "space") {
		return NewRuneEvent(' ', mods), nil
	}

	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, name)
	}
	r := runes[0]
	if unicode.IsUpper(r) {
		mods = mods.With(ModShift)
	}
	return NewRuneEvent(r, mods), nil
}
