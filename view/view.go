// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package view provides permissive read access to a document tree.
//
// A View wraps a single node of a tree, or nothing at all. Lookups and
// coercions on a View never fail: a lookup that does not resolve yields an
// empty View, and a coercion that does not apply yields the zero value of its
// result type. This makes it possible to chain lookups without checking each
// step:
//
//	root, err := tree.ParseString(input, nil)
//	...
//	port := view.Of(root).Path("server", "listen", "port").Int()
//
// Hash keys are matched without regard to case. For an Array, a lookup token
// is a non-negative decimal index. The token ParentToken moves to the parent
// of the current node.
package view

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/jdoc/path"
	"github.com/creachadair/jdoc/tree"
	"github.com/creachadair/mds/mapset"
)

// ParentToken is the lookup token that denotes the parent of a node.
const ParentToken = path.ParentToken

// A View is a read-only handle to a node of a document tree. The zero View
// is empty. Views are comparable, and two views are equal if they wrap the
// same node.
type View struct{ n *tree.Node }

// Of returns a View of n. If n == nil the result is empty.
func Of(n *tree.Node) View { return View{n: n} }

// Node returns the node wrapped by v, or nil if v is empty.
func (v View) Node() *tree.Node { return v.n }

// Kind reports the kind of the node wrapped by v, or tree.Invalid if v is
// empty.
func (v View) Kind() tree.Kind { return v.n.Kind() }

// Exists reports whether v wraps a node.
func (v View) Exists() bool { return v.n != nil }

// Get resolves a single lookup token relative to v.
//
// For a Hash, token is case-folded and matched against the member keys. For
// an Array, token must be a decimal index less than the length of the array.
// If no member matches, ParentToken resolves to the parent of v. Any other
// lookup yields an empty View.
func (v View) Get(token string) View {
	switch v.n.Kind() {
	case tree.Hash:
		if m, ok := v.n.Member(tree.FoldKey(token)); ok {
			return View{m}
		}
	case tree.Array:
		if i, err := strconv.ParseUint(token, 10, 0); err == nil && i < uint64(v.n.Len()) {
			e, _ := v.n.Elem(int(i))
			return View{e}
		}
	default:
		return View{}
	}
	if token == ParentToken {
		return View{v.n.Parent()}
	}
	return View{}
}

// Path resolves a sequence of lookup tokens relative to v, as if by repeated
// calls to Get. The walk stops at the first step that yields an empty View,
// and that empty View is the result. With no tokens, Path returns v.
func (v View) Path(tokens ...string) View {
	cur := v
	for _, tok := range tokens {
		cur = cur.Get(tok)
		if !cur.Exists() {
			break
		}
	}
	return cur
}

// At returns a View of element i of an Array, or an empty View.
func (v View) At(i int) View {
	e, ok := v.n.Elem(i)
	if !ok {
		return View{}
	}
	return View{e}
}

// Eval parses expr as a path expression and resolves it relative to v.
// If expr is not a valid expression, Eval returns an empty View.
func (v View) Eval(expr string) View {
	e, err := path.Parse(expr)
	if err != nil {
		return View{}
	}
	return v.Path(e.Tokens()...)
}

// Keys returns the set of member keys of a Hash. It returns an empty set for
// any other kind.
func (v View) Keys() mapset.Set[string] {
	keys := mapset.New[string]()
	for k := range v.n.Members() {
		keys.Add(k)
	}
	return keys
}

// Count reports the number of members of a Hash or elements of an Array.
// It returns 0 otherwise.
func (v View) Count() int { return v.n.Len() }

// IsEmpty reports whether v is empty or wraps a container with no entries.
func (v View) IsEmpty() bool {
	switch v.n.Kind() {
	case tree.Hash, tree.Array:
		return v.n.Len() == 0
	case tree.Scalar:
		return false
	default:
		return true
	}
}

// text returns the text of a Scalar with surrounding space removed, and
// reports whether v is a Scalar.
func (v View) text() (string, bool) {
	if v.n.Kind() != tree.Scalar {
		return "", false
	}
	return strings.TrimSpace(v.n.Value().Text), true
}

// Int returns the value of a Scalar parsed as a decimal integer, or 0.
func (v View) Int() int64 {
	s, ok := v.text()
	if !ok {
		return 0
	}
	z, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return z
}

// Real returns the value of a Scalar parsed as a floating-point number, or 0.
func (v View) Real() float64 {
	s, ok := v.text()
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// Bool returns the value of a Scalar interpreted as a Boolean. The words
// "true" and "false" are recognized in any case. Otherwise, a Scalar that
// parses as a nonzero integer is true. All other values are false.
func (v View) Bool() bool {
	s, ok := v.text()
	if !ok {
		return false
	}
	switch {
	case strings.EqualFold(s, "true"):
		return true
	case strings.EqualFold(s, "false"):
		return false
	}
	z, err := strconv.ParseInt(s, 10, 64)
	return err == nil && z != 0
}

// String returns the text of a Scalar, or "" for any other kind.
func (v View) String() string { return v.n.Value().Text }

// Time returns the value of a Scalar parsed as an RFC 3339 timestamp, or the
// zero time.
func (v View) Time() time.Time {
	s, ok := v.text()
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Bytes returns the value of a Scalar decoded as base64, or nil.
func (v View) Bytes() []byte {
	s, ok := v.text()
	if !ok {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return b
}

// Map returns a new map from the member keys of a Hash to their nodes. It
// returns an empty map for any other kind. The map shares nodes with the
// tree, but modifying the map does not affect the tree.
func (v View) Map() map[string]*tree.Node {
	m := make(map[string]*tree.Node, v.n.Len())
	for k, c := range v.n.Members() {
		m[k] = c
	}
	return m
}

// List returns a new slice of the elements of an Array. It returns an empty
// slice for any other kind.
func (v View) List() []*tree.Node {
	out := make([]*tree.Node, 0, v.n.Len())
	for _, e := range v.n.Elems() {
		out = append(out, e)
	}
	return out
}

// Parent returns a View of the parent of v. It is empty if v is empty or
// wraps a root.
func (v View) Parent() View { return View{v.n.Parent()} }

// Root returns a View of the root of the document containing v, following
// the full chain of parents. It is empty if v is empty.
func (v View) Root() View { return View{v.n.Root()} }
