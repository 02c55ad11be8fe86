// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"errors"
	"fmt"
	"io"

	"github.com/creachadair/jdoc"
)

// ErrTooDeep is reported when a document nests containers more deeply than
// the configured limit.
var ErrTooDeep = errors.New("document nesting too deep")

// Build consumes events from src and returns the document tree they
// describe. Build always returns a non-nil Hash root. If reading src fails
// before the document is complete, Build returns the portion of the tree
// constructed so far along with the error; reaching the end of src is not an
// error.
//
// The outermost object of the document populates the root directly. Any
// other value at the top level is stored in the root under its pending key,
// or under "" if there is none.
func Build(src jdoc.Reader, opts *Options) (*Node, error) {
	b := &builder{src: src, root: New(), maxDepth: opts.maxDepth()}
	err := b.fill(b.root, 0)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		opts.logger().Warn("document build ended early",
			"err", err, "members", b.root.Len(), "events", b.nev)
	}
	return b.root, err
}

// A builder is the state of a single call to Build.
type builder struct {
	src      jdoc.Reader
	root     *Node
	rootObj  bool // the outermost object has populated root
	started  bool // a container has begun at the top level
	maxDepth int
	nev      int // events consumed
}

// fill consumes events into the container n until the event that closes it.
// It returns nil when n is closed, io.EOF if the input ends first, or another
// error if reading fails.
func (b *builder) fill(n *Node, depth int) error {
	var key string // pending key; "" when none
	for {
		ev, err := b.src.Next()
		if err != nil {
			return err
		}
		b.nev++

		switch ev.Kind {
		case jdoc.PropertyName:
			key = FoldKey(ev.Text)

		case jdoc.StartObject:
			if n == b.root && !b.started && key == "" {
				// The outermost object is the document root.
				b.started, b.rootObj = true, true
				continue
			}
			b.started = true
			if err := b.nest(n, newHash(n), key, depth); err != nil {
				return err
			}
			key = ""

		case jdoc.StartArray:
			b.started = true
			if err := b.nest(n, newArray(n), key, depth); err != nil {
				return err
			}
			key = ""

		case jdoc.Value:
			if ev.Type != jdoc.Null {
				n.attach(key, newScalar(n, Value{Type: ev.Type, Text: ev.Text}))
			}
			key = ""

		case jdoc.EndObject, jdoc.EndArray:
			if n == b.root && !b.rootObj {
				continue // unbalanced close at the top level
			}
			return nil
		}
	}
}

// nest fills the new container c and attaches it to its parent n.
func (b *builder) nest(n, c *Node, key string, depth int) error {
	if depth+1 > b.maxDepth {
		return fmt.Errorf("%w (limit %d)", ErrTooDeep, b.maxDepth)
	}
	err := b.fill(c, depth+1)
	n.attach(key, c)
	return err
}
