// Package loader reads configuration sources into maps.
//
// TOML files and TABLEKEYS_* environment variables are loaded into
// map[string]any trees that are layered with Merge and decoded into a
// typed struct with Decode.
package loader

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem reads configuration files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Decode stores a configuration map into v, which must be a pointer to a
// struct with toml tags. Fields absent from the map keep their value, so v
// can be pre-filled with defaults. Unknown keys are rejected.
func Decode(m map[string]any, v any) error {
	if len(m) == 0 {
		return nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// Encode writes v as TOML to w.
func Encode(w io.Writer, v any) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	return enc.Encode(v)
}
