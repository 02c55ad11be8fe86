// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"time"
)

// A TextReader is a Reader that parses JSON text from an input stream.
// It consumes any number of whitespace-separated top-level values.
type TextReader struct {
	s     *Scanner
	stk   []frame
	dates bool // report RFC 3339 strings as Date values
	err   error
}

// parseState records what a container frame expects next.
type parseState byte

const (
	wantFirst parseState = iota // just opened: a member/element or the close
	wantKey                     // after a comma in an object
	wantValue                   // after a key, or after a comma in an array
	wantNext                    // after a member/element: a comma or the close
)

type frame struct {
	array bool
	state parseState
}

// NewReader constructs a new TextReader that consumes input from r.
func NewReader(r io.Reader) *TextReader { return &TextReader{s: NewScanner(r)} }

// NewBytesReader constructs a new TextReader that consumes data.
func NewBytesReader(data []byte) *TextReader { return NewReader(bytes.NewReader(data)) }

// DetectDates configures the reader to report string values that parse as
// RFC 3339 timestamps as Date values (true) or as String values (false).
func (r *TextReader) DetectDates(ok bool) { r.dates = ok }

// Depth reports the number of containers currently open.
func (r *TextReader) Depth() int { return len(r.stk) }

// Next reports the next event from the input. At the end of the input, Next
// returns io.EOF. A grammar violation is reported as a *SyntaxError, and once
// Next has reported an error it reports the same error on every later call.
func (r *TextReader) Next() (Event, error) {
	if r.err != nil {
		return Event{}, r.err
	}
	ev, err := r.next()
	if err != nil {
		r.err = err
	}
	return ev, err
}

func (r *TextReader) next() (Event, error) {
	for {
		tok, err := r.advance()
		if err == io.EOF {
			if len(r.stk) != 0 {
				return Event{}, r.syntaxError(io.ErrUnexpectedEOF, "unexpected end of input")
			}
			return Event{}, io.EOF
		} else if err != nil {
			return Event{}, r.syntaxError(err, "%v", err)
		}
		if len(r.stk) == 0 {
			return r.value(tok)
		}

		top := &r.stk[len(r.stk)-1]
		switch {
		case top.state == wantNext && tok == Comma:
			if top.array {
				top.state = wantValue
			} else {
				top.state = wantKey
			}
			continue // commas are not reported

		case top.state == wantFirst || top.state == wantNext:
			if top.array && tok == RSquare {
				r.pop()
				return Event{Kind: EndArray, Text: "]"}, nil
			} else if !top.array && tok == RBrace {
				r.pop()
				return Event{Kind: EndObject, Text: "}"}, nil
			} else if top.state == wantNext {
				return Event{}, r.syntaxError(nil, "%v", tokLabel(top.closer(), Comma, tok))
			}
		}

		if top.array || top.state == wantValue {
			top.state = wantNext
			return r.value(tok)
		}

		// In an object, expecting a key.
		if tok != StrToken {
			if top.state == wantFirst {
				return Event{}, r.syntaxError(nil, "%v", tokLabel(RBrace, StrToken, tok))
			}
			return Event{}, r.syntaxError(nil, "expected string, got %v", tok)
		}
		key, err := Unquote(string(r.s.Text()))
		if err != nil {
			return Event{}, r.syntaxError(err, "invalid key: %v", err)
		}
		if next, err := r.advance(); err != nil {
			return Event{}, r.syntaxError(err, "expected %v, got error: %v", Colon, err)
		} else if next != Colon {
			return Event{}, r.syntaxError(nil, "expected %v, got %v", Colon, next)
		}
		top.state = wantValue
		return Event{Kind: PropertyName, Text: string(key)}, nil
	}
}

// value reports the event for a token in value position.
func (r *TextReader) value(tok Token) (Event, error) {
	switch tok {
	case LBrace:
		r.stk = append(r.stk, frame{array: false})
		return Event{Kind: StartObject, Text: "{"}, nil
	case LSquare:
		r.stk = append(r.stk, frame{array: true})
		return Event{Kind: StartArray, Text: "["}, nil
	case IntToken:
		return Event{Kind: Value, Type: Integer, Text: string(r.s.Text())}, nil
	case NumToken:
		return Event{Kind: Value, Type: Float, Text: string(r.s.Text())}, nil
	case True, False:
		return Event{Kind: Value, Type: Boolean, Text: string(r.s.Text())}, nil
	case NullToken:
		return Event{Kind: Value, Type: Null, Text: "null"}, nil
	case StrToken:
		dec, err := Unquote(string(r.s.Text()))
		if err != nil {
			return Event{}, r.syntaxError(err, "invalid string: %v", err)
		}
		typ := String
		if r.dates && isTimestamp(dec) {
			typ = Date
		}
		return Event{Kind: Value, Type: typ, Text: string(dec)}, nil
	default:
		return Event{}, r.syntaxError(nil, "unexpected %v", tok)
	}
}

func (r *TextReader) advance() (Token, error) {
	if err := r.s.Next(); err != nil {
		return Invalid, err
	}
	return r.s.Token(), nil
}

func (r *TextReader) pop() { r.stk = r.stk[:len(r.stk)-1] }

func (f frame) closer() Token {
	if f.array {
		return RSquare
	}
	return RBrace
}

// syntaxError reports a grammar failure at the current location. The end of
// input is never a clean stop here, so io.EOF is reported as
// io.ErrUnexpectedEOF.
func (r *TextReader) syntaxError(err error, msg string, args ...any) error {
	err = cmp.Or(err, r.s.Err())
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return &SyntaxError{
		Location: r.s.Location().First,
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	}
}

// tokLabel describes a mismatch between the expected tokens and got.
func tokLabel(a, b Token, got Token) string {
	return fmt.Sprintf("expected %v or %v, got %v", a, b, got)
}

func isTimestamp(text []byte) bool {
	if len(text) < len("2006-01-02T15:04:05Z") || len(text) > len(time.RFC3339Nano)+6 {
		return false
	}
	_, err := time.Parse(time.RFC3339Nano, string(text))
	return err == nil
}

// SyntaxError is the concrete type of errors reported by a TextReader for
// input that violates the JSON grammar.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
