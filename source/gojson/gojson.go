// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package gojson implements a jdoc.Reader backed by the token stream of a
// github.com/goccy/go-json decoder.
//
// For well-formed input the events match those of a jdoc.TextReader. This
// reader is more lenient, however: the decoder does not check the placement
// of commas and colons, so input such as [1 2] or {"a":1,} is accepted
// without error where a TextReader reports a *jdoc.SyntaxError.
package gojson

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jdoc"
	j "github.com/goccy/go-json"
)

type frame struct {
	array   bool
	wantKey bool
}

// Reader reports parse events for JSON text decoded by go-json.
type Reader struct {
	dec *j.Decoder
	stk []frame
	err error
}

// NewReader constructs a Reader that consumes JSON text from r.
func NewReader(r io.Reader) *Reader {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &Reader{dec: dec}
}

// NewBytes constructs a Reader that consumes JSON text from b.
func NewBytes(b []byte) *Reader { return NewReader(bytes.NewReader(b)) }

// New returns a jdoc.Reader for r. It has the signature expected by the
// NewReader field of tree.Options.
func New(r io.Reader) jdoc.Reader { return NewReader(r) }

// Next implements the jdoc.Reader interface. Once Next has reported an error,
// it reports the same error on every later call.
func (s *Reader) Next() (jdoc.Event, error) {
	if s.err != nil {
		return jdoc.Event{}, s.err
	}
	ev, err := s.next()
	if err != nil {
		s.err = err
	}
	return ev, err
}

func (s *Reader) next() (jdoc.Event, error) {
	tok, err := s.dec.Token()
	if errors.Is(err, io.EOF) {
		if len(s.stk) != 0 {
			return jdoc.Event{}, fmt.Errorf("gojson: %w", io.ErrUnexpectedEOF)
		}
		return jdoc.Event{}, io.EOF
	} else if err != nil {
		return jdoc.Event{}, fmt.Errorf("gojson: %w", err)
	}

	if d, ok := tok.(j.Delim); ok {
		switch d {
		case '{':
			s.stk = append(s.stk, frame{wantKey: true})
			return jdoc.Event{Kind: jdoc.StartObject, Text: "{"}, nil
		case '[':
			s.stk = append(s.stk, frame{array: true})
			return jdoc.Event{Kind: jdoc.StartArray, Text: "["}, nil
		case '}':
			s.pop()
			return jdoc.Event{Kind: jdoc.EndObject, Text: "}"}, nil
		case ']':
			s.pop()
			return jdoc.Event{Kind: jdoc.EndArray, Text: "]"}, nil
		}
		return jdoc.Event{}, fmt.Errorf("gojson: unexpected delimiter %q", rune(d))
	}

	if n := len(s.stk); n > 0 && !s.stk[n-1].array {
		top := &s.stk[n-1]
		if top.wantKey {
			key, ok := tok.(string)
			if !ok {
				return jdoc.Event{}, fmt.Errorf("gojson: invalid object key %v", tok)
			}
			top.wantKey = false
			return jdoc.Event{Kind: jdoc.PropertyName, Text: key}, nil
		}
		top.wantKey = true
	}
	return valueEvent(tok), nil
}

// pop closes the innermost container. If the enclosing container is an
// object, it expects a key next.
func (s *Reader) pop() {
	if n := len(s.stk); n > 0 {
		s.stk = s.stk[:n-1]
	}
	if n := len(s.stk); n > 0 && !s.stk[n-1].array {
		s.stk[n-1].wantKey = true
	}
}

func valueEvent(tok j.Token) jdoc.Event {
	switch v := tok.(type) {
	case string:
		return jdoc.Event{Kind: jdoc.Value, Type: jdoc.String, Text: v}
	case bool:
		return jdoc.Event{Kind: jdoc.Value, Type: jdoc.Boolean, Text: strconv.FormatBool(v)}
	case j.Number:
		typ := jdoc.Integer
		if strings.ContainsAny(string(v), ".eE") {
			typ = jdoc.Float
		}
		return jdoc.Event{Kind: jdoc.Value, Type: typ, Text: string(v)}
	case float64:
		return jdoc.Event{Kind: jdoc.Value, Type: jdoc.Float, Text: strconv.FormatFloat(v, 'g', -1, 64)}
	default:
		return jdoc.Event{Kind: jdoc.Value, Type: jdoc.Null, Text: "null"}
	}
}
