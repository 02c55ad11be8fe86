// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package tree builds in-memory document trees from parse events.
//
// A tree is made of Node values, each of which is a Hash (string-keyed
// members), an Array (ordered elements), or a Scalar (a single value). Every
// node records its parent, so lookups can move upward as well as down. The
// root of a document is always a Hash with no parent.
//
// Hash keys are case-folded (see FoldKey) when the tree is built.
//
// Trees are built by a single goroutine and are not modified afterward, so a
// completed tree may be shared freely among concurrent readers.
package tree

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/creachadair/jdoc"
	"golang.org/x/text/cases"
)

// Kind identifies the variant of a Node.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // the zero Kind; no node has this kind
	Hash                // string-keyed members
	Array               // ordered elements
	Scalar              // a single value
)

var kindStr = [...]string{
	Invalid: "invalid",
	Hash:    "hash",
	Array:   "array",
	Scalar:  "scalar",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// A Value is the content of a Scalar node: the type tag and text of the event
// that produced it.
type Value struct {
	Type jdoc.ValueType
	Text string
}

// A Node is a single element of a document tree.
//
// A node owns its children. The parent pointer is a back-reference used only
// for upward lookups; it is nil for the root of a document.
type Node struct {
	kind   Kind
	parent *Node

	members map[string]*Node // Hash
	elems   []*Node          // Array
	value   Value            // Scalar
}

// New returns a new empty document root.
func New() *Node { return newHash(nil) }

func newHash(parent *Node) *Node {
	return &Node{kind: Hash, parent: parent, members: make(map[string]*Node)}
}

func newArray(parent *Node) *Node { return &Node{kind: Array, parent: parent} }

func newScalar(parent *Node, v Value) *Node {
	return &Node{kind: Scalar, parent: parent, value: v}
}

// Kind reports the variant of n. It returns Invalid if n == nil.
func (n *Node) Kind() Kind {
	if n == nil {
		return Invalid
	}
	return n.kind
}

// Parent returns the parent of n, or nil if n is a root or nil.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// IsRoot reports whether n is a non-nil node without a parent.
func (n *Node) IsRoot() bool { return n != nil && n.parent == nil }

// Root follows the parent chain of n to the top and returns the node found
// there. It returns nil if n == nil.
func (n *Node) Root() *Node {
	if n == nil {
		return nil
	}
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Len reports the number of members of a Hash or elements of an Array.
// It returns 0 for a Scalar or nil.
func (n *Node) Len() int {
	switch n.Kind() {
	case Hash:
		return len(n.members)
	case Array:
		return len(n.elems)
	default:
		return 0
	}
}

// Member returns the member of a Hash with the given key, which must already
// be folded. It returns nil, false if n is not a Hash or has no such key.
func (n *Node) Member(key string) (*Node, bool) {
	if n.Kind() != Hash {
		return nil, false
	}
	m, ok := n.members[key]
	return m, ok
}

// Elem returns element i of an Array. It returns nil, false if n is not an
// Array or i is out of range.
func (n *Node) Elem(i int) (*Node, bool) {
	if n.Kind() != Array || i < 0 || i >= len(n.elems) {
		return nil, false
	}
	return n.elems[i], true
}

// Members iterates over the key-value members of a Hash in unspecified
// order. It yields nothing for other kinds.
func (n *Node) Members() iter.Seq2[string, *Node] {
	if n.Kind() != Hash {
		return func(func(string, *Node) bool) {}
	}
	return maps.All(n.members)
}

// Elems iterates over the elements of an Array in order. It yields nothing
// for other kinds.
func (n *Node) Elems() iter.Seq2[int, *Node] {
	if n.Kind() != Array {
		return func(func(int, *Node) bool) {}
	}
	return slices.All(n.elems)
}

// Value returns the content of a Scalar, or a zero Value for other kinds.
func (n *Node) Value() Value {
	if n.Kind() != Scalar {
		return Value{}
	}
	return n.value
}

func (n *Node) String() string {
	switch n.Kind() {
	case Hash:
		return fmt.Sprintf("Hash(len=%d)", len(n.members))
	case Array:
		return fmt.Sprintf("Array(len=%d)", len(n.elems))
	case Scalar:
		return fmt.Sprintf("Scalar(%s %q)", n.value.Type, n.value.Text)
	default:
		return "<nil>"
	}
}

// attach adds child to n under key (Hash) or at the end (Array).
func (n *Node) attach(key string, child *Node) {
	switch n.kind {
	case Hash:
		n.members[key] = child // last write wins
	case Array:
		n.elems = append(n.elems, child)
	default:
		panic(fmt.Sprintf("attach to %v node", n.kind))
	}
}

// FoldKey returns the normalized form of key used for Hash members.
// Keys that differ only in case fold to the same string.
func FoldKey(key string) string { return cases.Fold().String(key) }
