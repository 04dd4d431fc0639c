package key

import "strings"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewEvent creates an event for a special key.
func NewEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// NewRuneEvent creates an event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// String returns a canonical representation like "Ctrl+Shift+Down" or "a".
func (e Event) String() string {
	name := e.Key.String()
	if e.IsRune() {
		name = string(e.Rune)
		if e.Rune == ' ' {
			name = "Space"
		}
	}
	if e.Modifiers.IsEmpty() {
		return name
	}
	return e.Modifiers.String() + "+" + name
}

// Sequence is an ordered list of key events.
type Sequence []Event

// String returns the events separated by spaces.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
