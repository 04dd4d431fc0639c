package loader

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// ReadTOML parses the TOML file at path. A file that does not exist yields
// a nil map and no error.
func ReadTOML(fsys FileSystem, path string) (map[string]any, error) {
	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return ParseTOML(path, data)
}

// ParseTOML parses data into a map. source names the data in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	var m map[string]any
	err := toml.Unmarshal(data, &m)
	if err == nil {
		return m, nil
	}
	perr := &ParseError{Source: source, Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return nil, perr
}

// ParseError is malformed TOML, with the position when the parser knows it.
type ParseError struct {
	Source       string
	Line, Column int
	Err          error
}

func (e *ParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %v", e.Source, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Merge combines layers into a new map; later layers win. Nested tables are
// merged key by key, anything else is replaced. The layers are not modified.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		for k, v := range layer {
			sub, isTable := v.(map[string]any)
			prev, wasTable := out[k].(map[string]any)
			switch {
			case isTable && wasTable:
				out[k] = Merge(prev, sub)
			case isTable:
				out[k] = Merge(sub)
			default:
				out[k] = v
			}
		}
	}
	return out
}
