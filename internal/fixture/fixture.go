// Package fixture reads and writes documents with a selection as YAML.
//
// A fixture file looks like:
//
//	document:
//	  type: document
//	  nodes:
//	    - type: table
//	      key: t
//	      nodes:
//	        - type: row
//	          nodes:
//	            - {type: cell, key: a, text: A}
//	            - {type: cell, key: b, text: B}
//	selection:
//	  anchor: {key: b, offset: 1}
//	keys: [Tab, Enter]
//
// A block written with text: holds a single text leaf keyed "<block>.text".
// Selection points may name a block; the offset then counts runes across the
// block's text leaves. A missing focus equals the anchor and a missing
// selection is the start of the document. Nodes without a key get a fresh one.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/tablekeys/internal/engine/document"
)

// TextSuffix is appended to a block key to name the leaf created by the
// text: shorthand.
const TextSuffix = ".text"

// Errors returned while building a fixture.
var (
	ErrEmpty         = errors.New("fixture: empty input")
	ErrMissingType   = errors.New("fixture: node has no type")
	ErrTextAndNodes  = errors.New("fixture: node has both text and nodes")
	ErrTextWithNodes = errors.New("fixture: text node cannot have nodes")
	ErrNoStart       = errors.New("fixture: document has no text to place the selection in")
	ErrBadPoint      = errors.New("fixture: invalid selection point")
)

// File is the YAML layout of a fixture.
type File struct {
	Document  Node       `yaml:"document"`
	Selection *Selection `yaml:"selection,omitempty"`
	Keys      []string   `yaml:"keys,omitempty,flow"`
}

// Node is the YAML layout of a document node.
type Node struct {
	Type  string  `yaml:"type,omitempty"`
	Key   string  `yaml:"key,omitempty"`
	Text  *string `yaml:"text,omitempty"`
	Nodes []Node  `yaml:"nodes,omitempty"`
}

// Selection is the YAML layout of a selection.
type Selection struct {
	Anchor Point  `yaml:"anchor,flow"`
	Focus  *Point `yaml:"focus,omitempty,flow"`
}

// Point is the YAML layout of a selection point.
type Point struct {
	Key    string `yaml:"key"`
	Offset int    `yaml:"offset"`
}

// Fixture is a decoded fixture.
type Fixture struct {
	Document  *document.Document
	Selection document.Selection
	// Keys are key specs to replay, in order.
	Keys []string
}

// Load reads the fixture at path.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Decode reads a fixture from r.
func Decode(r io.Reader) (*Fixture, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("fixture: %w", err)
	}
	return file.Build()
}

// Parse decodes a fixture held in memory.
func Parse(data []byte) (*Fixture, error) {
	return Decode(bytes.NewReader(data))
}

// Build turns the YAML layout into a document and selection.
func (f File) Build() (*Fixture, error) {
	root, err := f.Document.build("document")
	if err != nil {
		return nil, err
	}
	doc, err := document.New(root)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	sel, err := f.Selection.resolve(doc)
	if err != nil {
		return nil, err
	}
	return &Fixture{Document: doc, Selection: sel, Keys: f.Keys}, nil
}

func (n Node) build(path string) (*document.Node, error) {
	typ := n.Type
	if typ == "" {
		if n.Text == nil || len(n.Nodes) > 0 {
			return nil, fmt.Errorf("%w at %s", ErrMissingType, path)
		}
		typ = string(document.TypeText)
	}

	var node *document.Node
	switch {
	case typ == string(document.TypeText):
		if len(n.Nodes) > 0 {
			return nil, fmt.Errorf("%w at %s", ErrTextWithNodes, path)
		}
		node = document.NewText(deref(n.Text))

	case n.Text != nil:
		if len(n.Nodes) > 0 {
			return nil, fmt.Errorf("%w at %s", ErrTextAndNodes, path)
		}
		leaf := document.NewText(*n.Text)
		if n.Key != "" {
			leaf = leaf.WithKey(document.Key(n.Key + TextSuffix))
		}
		node = document.NewBlock(document.Type(typ), leaf)

	default:
		children := make([]*document.Node, 0, len(n.Nodes))
		for i, c := range n.Nodes {
			child, err := c.build(fmt.Sprintf("%s.nodes[%d]", path, i))
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		node = document.NewBlock(document.Type(typ), children...)
	}

	if n.Key != "" {
		node = node.WithKey(document.Key(n.Key))
	}
	return node, nil
}

func (s *Selection) resolve(doc *document.Document) (document.Selection, error) {
	if s == nil {
		p, ok := doc.Start()
		if !ok {
			return document.Selection{}, ErrNoStart
		}
		return document.Collapsed(p), nil
	}

	anchor, err := s.Anchor.resolve(doc)
	if err != nil {
		return document.Selection{}, fmt.Errorf("anchor: %w", err)
	}
	if s.Focus == nil {
		return document.Collapsed(anchor), nil
	}
	focus, err := s.Focus.resolve(doc)
	if err != nil {
		return document.Selection{}, fmt.Errorf("focus: %w", err)
	}
	return document.NewSelection(anchor, focus), nil
}

// resolve maps a point that may name a block onto a text leaf.
func (p Point) resolve(doc *document.Document) (document.Point, error) {
	n, ok := doc.Get(document.Key(p.Key))
	if !ok {
		return document.Point{}, fmt.Errorf("%w: unknown key %q", ErrBadPoint, p.Key)
	}
	if n.IsText() {
		pt := document.Point{Key: n.Key(), Offset: p.Offset}
		if err := doc.ValidatePoint(pt); err != nil {
			return document.Point{}, fmt.Errorf("%w: %w", ErrBadPoint, err)
		}
		return pt, nil
	}

	leaves := n.TextLeaves()
	if len(leaves) == 0 {
		return document.Point{}, fmt.Errorf("%w: %q has no text", ErrBadPoint, p.Key)
	}
	if p.Offset < 0 || p.Offset > n.Len() {
		return document.Point{}, fmt.Errorf("%w: offset %d in %q (len %d)", ErrBadPoint, p.Offset, p.Key, n.Len())
	}
	rest := p.Offset
	for _, leaf := range leaves {
		if rest <= leaf.Len() {
			return document.Point{Key: leaf.Key(), Offset: rest}, nil
		}
		rest -= leaf.Len()
	}
	last := leaves[len(leaves)-1]
	return document.Point{Key: last.Key(), Offset: last.Len()}, nil
}

// Encode writes doc and sel to w as a fixture.
func Encode(w io.Writer, doc *document.Document, sel document.Selection) error {
	file := File{
		Document:  encodeNode(doc.Root()),
		Selection: encodeSelection(sel),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("fixture: %w", err)
	}
	return enc.Close()
}

// Marshal is like Encode but returns the YAML.
func Marshal(doc *document.Document, sel document.Selection) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, sel); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeNode(n *document.Node) Node {
	out := Node{Type: n.Type().String(), Key: n.Key().String()}
	if n.IsText() {
		text := n.Text()
		out.Text = &text
		return out
	}
	if n.NumChildren() == 1 {
		if leaf := n.Child(0); leaf.IsText() && leaf.Key() == n.Key()+TextSuffix {
			text := leaf.Text()
			out.Text = &text
			return out
		}
	}
	for _, c := range n.Children() {
		out.Nodes = append(out.Nodes, encodeNode(c))
	}
	return out
}

func encodeSelection(sel document.Selection) *Selection {
	s := &Selection{Anchor: Point{Key: sel.Anchor.Key.String(), Offset: sel.Anchor.Offset}}
	if !sel.IsCollapsed() {
		s.Focus = &Point{Key: sel.Focus.Key.String(), Offset: sel.Focus.Offset}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
