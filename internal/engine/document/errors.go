package document

import "errors"

// Document errors.
var (
	// ErrNilRoot indicates a document was created without a root node.
	ErrNilRoot = errors.New("document: root node is nil")

	// ErrDuplicateKey indicates two nodes in one tree share a key.
	ErrDuplicateKey = errors.New("document: duplicate node key")

	// ErrEmptyKey indicates a node has no key.
	ErrEmptyKey = errors.New("document: empty node key")

	// ErrNodeNotFound indicates a key is not present in the document.
	ErrNodeNotFound = errors.New("document: node not found")

	// ErrNotText indicates a text operation targeted a block node.
	ErrNotText = errors.New("document: node is not a text leaf")

	// ErrNotBlock indicates a child operation targeted a text leaf.
	ErrNotBlock = errors.New("document: node is not a block")

	// ErrIndexOutOfRange indicates a child index or text offset is out of range.
	ErrIndexOutOfRange = errors.New("document: index out of range")
)
