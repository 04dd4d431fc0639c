package document

import (
	"fmt"
	"slices"
)

// location records where a node sits in one document version.
type location struct {
	path   []int
	parent Key
}

// Document is an immutable snapshot of a node tree plus its key index.
type Document struct {
	root    *Node
	nodes   map[Key]*Node
	index   map[Key]location
	leaves  []*Node
	leafPos map[Key]int
}

// New indexes root and returns a Document.
// Every node in the tree must carry a unique, non-empty key.
func New(root *Node) (*Document, error) {
	if root == nil {
		return nil, ErrNilRoot
	}

	d := &Document{
		root:    root,
		nodes:   make(map[Key]*Node),
		index:   make(map[Key]location),
		leafPos: make(map[Key]int),
	}
	if err := d.build(root, nil, ""); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is like New but panics on error. It is meant for fixtures and tests.
func MustNew(root *Node) *Document {
	d, err := New(root)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Document) build(n *Node, path []int, parent Key) error {
	if n.key.IsZero() {
		return fmt.Errorf("%w: %s node at %v", ErrEmptyKey, n.typ, path)
	}
	if _, dup := d.nodes[n.key]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, n.key)
	}

	d.nodes[n.key] = n
	d.index[n.key] = location{path: slices.Clone(path), parent: parent}
	if n.IsText() {
		d.leafPos[n.key] = len(d.leaves)
		d.leaves = append(d.leaves, n)
		return nil
	}

	for i, child := range n.children {
		if err := d.build(child, append(path, i), n.key); err != nil {
			return err
		}
	}
	return nil
}

// Root returns the root node.
func (d *Document) Root() *Node {
	return d.root
}

// Get returns the node with the given key.
func (d *Document) Get(key Key) (*Node, bool) {
	n, ok := d.nodes[key]
	return n, ok
}

// Has reports whether the key is present.
func (d *Document) Has(key Key) bool {
	_, ok := d.nodes[key]
	return ok
}

// Path returns the child-index path from the root to the node.
func (d *Document) Path(key Key) ([]int, bool) {
	loc, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(loc.path), true
}

// Parent returns the parent of the node, or nil for the root or an unknown key.
func (d *Document) Parent(key Key) *Node {
	loc, ok := d.index[key]
	if !ok || loc.parent.IsZero() {
		return nil
	}
	return d.nodes[loc.parent]
}

// IndexOf returns the position of the node among its siblings, or -1.
func (d *Document) IndexOf(key Key) int {
	loc, ok := d.index[key]
	if !ok || len(loc.path) == 0 {
		return -1
	}
	return loc.path[len(loc.path)-1]
}

// NextSibling returns the sibling right after the node, or nil.
func (d *Document) NextSibling(key Key) *Node {
	parent := d.Parent(key)
	if parent == nil {
		return nil
	}
	return parent.Child(d.IndexOf(key) + 1)
}

// PreviousSibling returns the sibling right before the node, or nil.
func (d *Document) PreviousSibling(key Key) *Node {
	parent := d.Parent(key)
	if parent == nil {
		return nil
	}
	return parent.Child(d.IndexOf(key) - 1)
}

// Ancestors returns the ancestors of the node, nearest first.
func (d *Document) Ancestors(key Key) []*Node {
	var out []*Node
	for p := d.Parent(key); p != nil; p = d.Parent(p.key) {
		out = append(out, p)
	}
	return out
}

// FindAncestor returns the nearest ancestor of the given type, or nil.
func (d *Document) FindAncestor(key Key, typ Type) *Node {
	for p := d.Parent(key); p != nil; p = d.Parent(p.key) {
		if p.typ == typ {
			return p
		}
	}
	return nil
}

// ClosestBlock returns the node itself if it is a block, otherwise its parent.
func (d *Document) ClosestBlock(key Key) *Node {
	n, ok := d.nodes[key]
	if !ok {
		return nil
	}
	if !n.IsText() {
		return n
	}
	return d.Parent(key)
}

// Leaves returns all text leaves in document order.
func (d *Document) Leaves() []*Node {
	return slices.Clone(d.leaves)
}

// LeafIndex returns the document-order position of a text leaf.
func (d *Document) LeafIndex(key Key) (int, bool) {
	i, ok := d.leafPos[key]
	return i, ok
}

// ReplaceNode returns a new document with the node at key replaced by n.
// The replacement may carry a different key; ancestors keep theirs.
func (d *Document) ReplaceNode(key Key, n *Node) (*Document, error) {
	loc, ok := d.index[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, key)
	}
	return New(rebuild(d.root, loc.path, n))
}

// InsertChild returns a new document with child inserted under parent at index.
func (d *Document) InsertChild(parent Key, index int, child *Node) (*Document, error) {
	p, ok := d.nodes[parent]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, parent)
	}
	if p.IsText() {
		return nil, fmt.Errorf("%w: %q", ErrNotBlock, parent)
	}
	if index < 0 || index > len(p.children) {
		return nil, fmt.Errorf("%w: child %d of %q", ErrIndexOutOfRange, index, parent)
	}
	return d.ReplaceNode(parent, p.WithChildren(slices.Insert(p.Children(), index, child)))
}

// RemoveChild returns a new document without the node at key.
func (d *Document) RemoveChild(key Key) (*Document, error) {
	parent := d.Parent(key)
	if parent == nil {
		return nil, fmt.Errorf("%w: %q has no parent", ErrNodeNotFound, key)
	}
	i := d.IndexOf(key)
	return d.ReplaceNode(parent.key, parent.WithChildren(slices.Delete(parent.Children(), i, i+1)))
}

// rebuild copies the nodes along path and swaps in n at its end.
func rebuild(cur *Node, path []int, n *Node) *Node {
	if len(path) == 0 {
		return n
	}
	children := cur.Children()
	children[path[0]] = rebuild(children[path[0]], path[1:], n)
	return cur.WithChildren(children)
}
