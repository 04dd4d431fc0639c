package document

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Type tags a node.
type Type string

const (
	// TypeDocument is the conventional root type.
	TypeDocument Type = "document"
	// TypeParagraph is a plain text block.
	TypeParagraph Type = "paragraph"
	// TypeTable is a table; its children are rows.
	TypeTable Type = "table"
	// TypeRow is a table row; its children are cells.
	TypeRow Type = "row"
	// TypeCell is a table cell; its children are text leaves.
	TypeCell Type = "cell"
	// TypeText is a text leaf.
	TypeText Type = "text"
)

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Node is an immutable tree node.
// Text leaves carry a string and no children; every other node is a block.
type Node struct {
	key      Key
	typ      Type
	text     string
	children []*Node
}

// NewText creates a text leaf with a fresh key.
func NewText(text string) *Node {
	return &Node{key: NewKey(), typ: TypeText, text: text}
}

// NewBlock creates a block node of the given type with a fresh key.
func NewBlock(typ Type, children ...*Node) *Node {
	return &Node{key: NewKey(), typ: typ, children: slices.Clone(children)}
}

// NewParagraph creates an empty paragraph holding one empty text leaf.
func NewParagraph() *Node {
	return NewBlock(TypeParagraph, NewText(""))
}

// Key returns the node key.
func (n *Node) Key() Key {
	return n.key
}

// Type returns the node type.
func (n *Node) Type() Type {
	return n.typ
}

// IsText reports whether the node is a text leaf.
func (n *Node) IsText() bool {
	return n.typ == TypeText
}

// Text returns the leaf text, or the concatenated text of all leaves below a block.
func (n *Node) Text() string {
	if n.IsText() {
		return n.text
	}
	var sb strings.Builder
	for _, leaf := range n.TextLeaves() {
		sb.WriteString(leaf.text)
	}
	return sb.String()
}

// Len returns the length of Text in runes.
func (n *Node) Len() int {
	return utf8.RuneCountInString(n.Text())
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// Child returns the child at index i, or nil if out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns a copy of the child slice.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// WithKey returns a copy of the node carrying the given key.
func (n *Node) WithKey(key Key) *Node {
	c := *n
	c.key = key
	return &c
}

// WithText returns a copy of a text leaf with new text. The key is kept.
func (n *Node) WithText(text string) *Node {
	c := *n
	c.text = text
	return &c
}

// WithChildren returns a copy of a block with new children. The key is kept.
func (n *Node) WithChildren(children []*Node) *Node {
	c := *n
	c.children = slices.Clone(children)
	return &c
}

// Walk visits the node and its descendants in pre-order.
// Returning false from fn skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.children {
		child.Walk(fn)
	}
}

// TextLeaves returns the text leaves below the node in document order.
func (n *Node) TextLeaves() []*Node {
	var leaves []*Node
	n.Walk(func(c *Node) bool {
		if c.IsText() {
			leaves = append(leaves, c)
		}
		return true
	})
	return leaves
}

// FirstText returns the first text leaf at or below the node, or nil.
func (n *Node) FirstText() *Node {
	if n.IsText() {
		return n
	}
	for _, child := range n.children {
		if leaf := child.FirstText(); leaf != nil {
			return leaf
		}
	}
	return nil
}
