// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package yamlsrc implements a jdoc.Reader for YAML documents, using
// gopkg.in/yaml.v3.
//
// Mappings and sequences are reported as objects and arrays. Scalars are
// typed by their resolved YAML tag:
//
//	!!int        Integer
//	!!float      Float
//	!!bool       Boolean
//	!!null       Null
//	!!timestamp  Date (formatted as RFC 3339)
//	!!binary     Bytes (base64)
//	other        String
//
// Aliases are expanded in place. Only the first document of a stream is read.
package yamlsrc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/creachadair/jdoc"
	"gopkg.in/yaml.v3"
)

// MaxDepth is the maximum nesting depth of collections, including those
// reached through aliases.
const MaxDepth = 1000

// MaxAliases is the maximum number of alias expansions in one document.
const MaxAliases = 10000

// ErrTooDeep is reported when a document exceeds MaxDepth or MaxAliases.
var ErrTooDeep = errors.New("yaml document too deep")

// Reader reports parse events for a YAML document.
type Reader struct {
	r      io.Reader
	loaded bool
	events []jdoc.Event
	err    error // reported after events are exhausted
}

// NewReader constructs a Reader that consumes a YAML document from r.
// The document is decoded on the first call to Next.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// New returns a jdoc.Reader for r. It has the signature expected by the
// NewReader field of tree.Options.
func New(r io.Reader) jdoc.Reader { return NewReader(r) }

// Next implements the jdoc.Reader interface. If the document is invalid, the
// events for the part of the document that was processed are delivered
// before the error.
func (y *Reader) Next() (jdoc.Event, error) {
	if !y.loaded {
		y.loaded = true
		y.load()
	}
	if len(y.events) == 0 {
		return jdoc.Event{}, y.err
	}
	next := y.events[0]
	y.events = y.events[1:]
	return next, nil
}

func (y *Reader) load() {
	var doc yaml.Node
	if err := yaml.NewDecoder(y.r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			y.err = io.EOF
		} else {
			y.err = fmt.Errorf("yamlsrc: %w", err)
		}
		return
	}
	w := &walker{}
	if err := w.walk(&doc, 0); err != nil {
		y.err = fmt.Errorf("yamlsrc: %w", err)
	} else {
		y.err = io.EOF
	}
	y.events = w.out
}

type walker struct {
	out     []jdoc.Event
	aliases int
}

func (w *walker) emit(ev jdoc.Event) { w.out = append(w.out, ev) }

func (w *walker) walk(n *yaml.Node, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w (depth limit %d)", ErrTooDeep, MaxDepth)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return w.walk(n.Content[0], depth)

	case yaml.AliasNode:
		w.aliases++
		if w.aliases > MaxAliases {
			return fmt.Errorf("%w (alias limit %d)", ErrTooDeep, MaxAliases)
		}
		return w.walk(n.Alias, depth+1)

	case yaml.SequenceNode:
		w.emit(jdoc.Event{Kind: jdoc.StartArray, Text: "["})
		for _, elt := range n.Content {
			if err := w.walk(elt, depth+1); err != nil {
				return err
			}
		}
		w.emit(jdoc.Event{Kind: jdoc.EndArray, Text: "]"})

	case yaml.MappingNode:
		w.emit(jdoc.Event{Kind: jdoc.StartObject, Text: "{"})
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind == yaml.AliasNode {
				key = key.Alias
			}
			if key.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: non-scalar mapping key", key.Line)
			}
			w.emit(jdoc.Event{Kind: jdoc.PropertyName, Text: key.Value})
			if err := w.walk(n.Content[i+1], depth+1); err != nil {
				return err
			}
		}
		w.emit(jdoc.Event{Kind: jdoc.EndObject, Text: "}"})

	case yaml.ScalarNode:
		w.emit(scalarEvent(n))

	default:
		return fmt.Errorf("line %d: unknown node kind %v", n.Line, n.Kind)
	}
	return nil
}

// scalarEvent reports the value event for a scalar node. Where the node can
// be decoded as its tagged type, the text is normalized to the form the JSON
// reader would report for the same value.
func scalarEvent(n *yaml.Node) jdoc.Event {
	ev := jdoc.Event{Kind: jdoc.Value, Type: jdoc.String, Text: n.Value}
	switch n.ShortTag() {
	case "!!int":
		ev.Type = jdoc.Integer
		var z int64
		if n.Decode(&z) == nil {
			ev.Text = strconv.FormatInt(z, 10)
		}
	case "!!float":
		ev.Type = jdoc.Float
		var f float64
		if n.Decode(&f) == nil {
			ev.Text = strconv.FormatFloat(f, 'g', -1, 64)
		}
	case "!!bool":
		ev.Type = jdoc.Boolean
		var b bool
		if n.Decode(&b) == nil {
			ev.Text = strconv.FormatBool(b)
		}
	case "!!null":
		ev.Type = jdoc.Null
		ev.Text = "null"
	case "!!timestamp":
		ev.Type = jdoc.Date
		var t time.Time
		if n.Decode(&t) == nil {
			ev.Text = t.Format(time.RFC3339Nano)
		}
	case "!!binary":
		ev.Type = jdoc.Bytes
		ev.Text = strings.Join(strings.Fields(n.Value), "")
	}
	return ev
}
