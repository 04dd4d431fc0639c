package document

import (
	"fmt"
	"slices"
)

// Point addresses a rune offset inside a text leaf.
type Point struct {
	Key    Key
	Offset int
}

// String returns "key:offset".
func (p Point) String() string {
	return fmt.Sprintf("%s:%d", p.Key, p.Offset)
}

// Selection is an anchor/focus pair.
// Anchor is where the selection started; Focus is where the caret is.
// Selection is an immutable value type.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns a selection with anchor and focus at p.
func Collapsed(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

// NewSelection creates a selection from anchor to focus.
func NewSelection(anchor, focus Point) Selection {
	return Selection{Anchor: anchor, Focus: focus}
}

// IsCollapsed returns true if anchor equals focus.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// String returns a compact representation.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return "[" + s.Focus.String() + "]"
	}
	return "[" + s.Anchor.String() + " -> " + s.Focus.String() + "]"
}

// StartOf returns the point at offset 0 of the first text leaf at or below key.
func (d *Document) StartOf(key Key) (Point, bool) {
	n, ok := d.nodes[key]
	if !ok {
		return Point{}, false
	}
	leaf := n.FirstText()
	if leaf == nil {
		return Point{}, false
	}
	return Point{Key: leaf.key}, true
}

// Start returns the first point of the document, if it has any text leaf.
func (d *Document) Start() (Point, bool) {
	return d.StartOf(d.root.key)
}

// ValidatePoint checks that p addresses an existing text leaf within its length.
func (d *Document) ValidatePoint(p Point) error {
	n, ok := d.nodes[p.Key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, p.Key)
	}
	if !n.IsText() {
		return fmt.Errorf("%w: %q", ErrNotText, p.Key)
	}
	if p.Offset < 0 || p.Offset > n.Len() {
		return fmt.Errorf("%w: offset %d in %q (len %d)", ErrIndexOutOfRange, p.Offset, p.Key, n.Len())
	}
	return nil
}

// Validate checks both points of the selection against this document.
func (d *Document) Validate(s Selection) error {
	if err := d.ValidatePoint(s.Anchor); err != nil {
		return fmt.Errorf("anchor: %w", err)
	}
	if err := d.ValidatePoint(s.Focus); err != nil {
		return fmt.Errorf("focus: %w", err)
	}
	return nil
}

// ComparePoints orders two points in document order (-1, 0, 1).
// A point on an unknown key compares as if it were on the first leaf.
func (d *Document) ComparePoints(a, b Point) int {
	ai, bi := d.leafPos[a.Key], d.leafPos[b.Key]
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

// Ordered returns the selection's points as (start, end) in document order.
func (d *Document) Ordered(s Selection) (Point, Point) {
	if d.ComparePoints(s.Anchor, s.Focus) <= 0 {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// BlockOffset returns the offset of p measured from the start of its closest block.
func (d *Document) BlockOffset(p Point) int {
	block := d.ClosestBlock(p.Key)
	if block == nil {
		return p.Offset
	}
	offset := p.Offset
	for _, leaf := range block.TextLeaves() {
		if leaf.key == p.Key {
			break
		}
		offset += leaf.Len()
	}
	return offset
}

// BlocksInRange returns the closest blocks of every leaf between start and end,
// deduplicated, in document order.
func (d *Document) BlocksInRange(start, end Point) []*Node {
	from, ok := d.leafPos[start.Key]
	if !ok {
		return nil
	}
	to, ok := d.leafPos[end.Key]
	if !ok {
		return nil
	}
	if from > to {
		from, to = to, from
	}

	var blocks []*Node
	for _, leaf := range d.leaves[from : to+1] {
		block := d.Parent(leaf.key)
		if block == nil || slices.Contains(blocks, block) {
			continue
		}
		blocks = append(blocks, block)
	}
	return blocks
}
