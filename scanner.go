// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	IntToken             // number: integer with no fraction or exponent
	NumToken             // number with fraction and/or exponent
	StrToken             // quoted string
	True                 // constant: true
	False                // constant: false
	NullToken            // constant: null
)

var tokenStr = [...]string{
	Invalid:   "invalid token",
	LBrace:    `"{"`,
	RBrace:    `"}"`,
	LSquare:   `"["`,
	RSquare:   `"]"`,
	Comma:     `","`,
	Colon:     `":"`,
	IntToken:  "integer",
	NumToken:  "number",
	StrToken:  "string",
	True:      "true",
	False:     "false",
	NullToken: "null",
}

func (t Token) String() string {
	if int(t) >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[t]
}

// A Scanner reads lexical tokens from an input stream. Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	r   *bufio.Reader
	buf bytes.Buffer // text of the current token
	tok Token
	err error

	pos, end int // start and end offsets of current token
	last     int // size in bytes of the last rune read

	// Line and column offsets (0-based) of the token start and end.
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Scanner{r: br}
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.buf.Reset()
	s.err = nil
	s.tok = Invalid
	s.mark()

	for {
		ch, err := s.rune()
		if err == io.EOF {
			return s.setErr(err)
		} else if err != nil {
			return s.fail(err)
		}

		switch {
		case isSpace(ch):
			if ch == '\n' {
				s.eline++
				s.ecol = 0
			}
			s.mark()
			continue

		case ch == '"':
			return s.scanString()

		case isNumStart(ch):
			return s.scanNumber(ch)
		}

		if t, ok := selfDelim(ch); ok {
			s.buf.WriteRune(ch)
			s.tok = t
			return nil
		}

		var want mem.RO
		switch ch {
		case 't':
			s.tok, want = True, mem.S("true")
		case 'f':
			s.tok, want = False, mem.S("false")
		case 'n':
			s.tok, want = NullToken, mem.S("null")
		default:
			return s.failf("unexpected %q", ch)
		}
		if err := s.scanName(ch); err != nil {
			return err
		} else if got := mem.B(s.buf.Bytes()); !got.Equal(want) {
			s.tok = Invalid
			return s.failf("unknown constant %q", got.StringCopy())
		}
		return nil
	}
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The slice is only
// valid until the next call of Next.
func (s *Scanner) Text() []byte { return s.buf.Bytes() }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// mark moves the start of the current token to the current read position.
func (s *Scanner) mark() { s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol }

func (s *Scanner) scanString() error {
	s.buf.WriteByte('"')
	var esc bool
	for {
		ch, err := s.rune()
		if err != nil {
			return s.fail(err)
		}
		switch {
		case esc:
			esc = false
			switch ch {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.buf.WriteByte(byte(ch))
			case 'u':
				s.buf.WriteByte('u')
				if err := s.readHex4(); err != nil {
					return s.failf("invalid Unicode escape: %w", err)
				}
			default:
				return s.failf("invalid %q after escape", ch)
			}
		case ch == '"':
			s.buf.WriteByte('"')
			s.tok = StrToken
			return nil
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		case ch > unicode.MaxRune:
			return s.failf("invalid Unicode rune %q", ch)
		default:
			s.buf.WriteRune(ch)
			esc = ch == '\\'
		}
	}
}

func (s *Scanner) scanNumber(start rune) error {
	s.buf.WriteRune(start)
	if start == '-' {
		// A sign must be followed by at least one digit.
		ch, err := s.require(isDigit, "digit")
		if err != nil {
			return err
		}
		s.buf.WriteRune(ch)
	}

	// Integer part.
	_, ch, err := s.readWhile(isDigit)
	if err != nil && err != io.EOF {
		return s.fail(err)
	} else if hasExtraLeadingZeroes(s.buf.Bytes()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = IntToken
	if err == io.EOF {
		return nil
	}

	// Fraction.
	if ch == '.' {
		s.buf.WriteByte('.')
		var nr int
		nr, ch, err = s.readWhile(isDigit)
		if err != nil && err != io.EOF {
			return s.fail(err)
		} else if nr == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = NumToken
		if err == io.EOF {
			return nil
		}
	}

	// Exponent.
	if ch != 'e' && ch != 'E' {
		s.unrune()
		return nil
	}
	s.buf.WriteRune(ch)
	sign, err := s.require(isExpStart, "sign or digit")
	if err != nil {
		return err
	}
	s.buf.WriteRune(sign)
	nr, _, err := s.readWhile(isDigit)
	if nr == 0 && (sign == '-' || sign == '+') {
		return s.failf("missing exponent digits")
	}
	s.tok = NumToken
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) scanName(first rune) error {
	s.buf.WriteRune(first)
	_, _, err := s.readWhile(isNameRune)
	if err == io.EOF {
		return nil
	} else if err != nil {
		return s.fail(err)
	}
	s.unrune()
	return nil
}

func (s *Scanner) rune() (rune, error) {
	ch, nb, err := s.r.ReadRune()
	s.last = nb
	s.end += nb
	s.ecol += nb
	return ch, err
}

func (s *Scanner) unrune() {
	s.end -= s.last
	s.ecol -= s.last
	s.last = 0
	s.r.UnreadRune()
}

// require reads a single rune matching f, or returns an error mentioning the
// desired label.
func (s *Scanner) require(f func(rune) bool, label string) (rune, error) {
	ch, err := s.rune()
	if err != nil {
		return 0, s.failf("want %s, got error: %w", label, err)
	} else if !f(ch) {
		s.unrune()
		return 0, s.failf("got %q, want %s", ch, label)
	}
	return ch, nil
}

// readWhile consumes runes matching f until EOF or a non-matching rune, which
// is returned but not buffered. The int reports the number of runes consumed.
func (s *Scanner) readWhile(f func(rune) bool) (int, rune, error) {
	var nr int
	for {
		ch, err := s.rune()
		if err != nil {
			return nr, 0, err
		} else if !f(ch) {
			return nr, ch, nil
		}
		s.buf.WriteRune(ch)
		nr++
	}
}

func (s *Scanner) readHex4() error {
	for range 4 {
		ch, err := s.rune()
		if err != nil {
			return err
		} else if !isHexDigit(ch) {
			return fmt.Errorf("not a hex digit: %q", ch)
		}
		s.buf.WriteRune(ch)
	}
	return nil
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string { return fmt.Sprintf("%v (offset %d)", p.err, p.pos) }

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error { s.err = err; return err }

// fail records err as a failure inside a token. The end of input is
// reported as io.ErrUnexpectedEOF, since a token was in progress.
func (s *Scanner) fail(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return s.setErr(posError{s.end, err})
}

func (s *Scanner) failf(msg string, args ...any) error {
	for i, arg := range args {
		if arg == io.EOF {
			args[i] = io.ErrUnexpectedEOF
		}
	}
	return s.setErr(posError{s.end, fmt.Errorf(msg, args...)})
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch rune) bool { return ch == '-' || isDigit(ch) }
func isExpStart(ch rune) bool { return ch == '-' || ch == '+' || isDigit(ch) }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch rune) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the integer part in buf has redundant
// leading zeroes: 0, -0, 0.1 are fine; 01, -01, 00.1 are not.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:]
	}
	return buf[0] == '0' && len(buf) > 1
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Token, bool) {
	if i := strings.IndexRune("{}[],:", ch); i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
