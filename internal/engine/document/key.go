package document

import "github.com/google/uuid"

// Key identifies a node across document versions.
// Structural edits keep the keys of every node they do not replace.
type Key string

// NewKey returns a fresh random key.
func NewKey() Key {
	return Key(uuid.NewString())
}

// String returns the key as a string.
func (k Key) String() string {
	return string(k)
}

// IsZero reports whether the key is empty.
func (k Key) IsZero() bool {
	return k == ""
}
