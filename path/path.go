// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package path implements a small path expression language for addressing
// nodes of a document tree.
package path

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar:

  expr = [root] steps
  root = "$"
 steps = step [steps]
  step = "." WORD
  step = "[" value "]"
 value = "'" QTEXT "'"
 value = INDEX
 value = "^"

  WORD = RE `\w+`
 QTEXT = RE `([^'\\]|\\.)*`
 INDEX = RE `\d+`

A step of the form "[^]" moves to the parent of the current node.
*/

// ParentToken is the lookup token that denotes the parent of a node.
const ParentToken = "."

// An Expr is a parsed path expression.
type Expr []Step

// Parse parses s as a path expression. The leading "$" is optional.
func Parse(s string) (Expr, error) {
	t, _ := strings.CutPrefix(s, "$")
	var out Expr
	for t != "" {
		step, rest, err := parseStep(t)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", len(s)-len(t), err)
		}
		out = append(out, step)
		t = rest
	}
	return out, nil
}

// MustParse is as Parse, but panics if s is not a valid expression.
func MustParse(s string) Expr {
	e, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("path.MustParse %q: %v", s, err))
	}
	return e
}

// Tokens returns the lookup tokens for the steps of e, in order.
func (e Expr) Tokens() []string {
	out := make([]string, len(e))
	for i, s := range e {
		out[i] = s.Token()
	}
	return out
}

func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		buf.WriteString(s.String())
	}
	return buf.String()
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		m := wordRE.FindStringSubmatch(t)
		if m == nil {
			return Step{}, s, errors.New("invalid .name")
		}
		return Step{Op: Member, Arg: m[1]}, t[len(m[0]):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		step, u, err := parseValue(t)
		if err != nil {
			return Step{}, s, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Step{}, u, errors.New("missing close bracket")
		}
		return step, u, nil
	}
	return Step{}, s, errors.New("invalid path step")
}

func parseValue(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "^"); ok {
		return Step{Op: Parent}, t, nil
	}
	if m := indexRE.FindStringSubmatch(s); m != nil {
		return Step{Op: Index, Arg: m[1]}, s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return Step{Op: Member, Arg: unescape(m[1])}, s[len(m[0]):], nil
	}
	return Step{}, s, fmt.Errorf("invalid value: %q", s)
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(\d+)`)
	quoteRE = regexp.MustCompile(`^'((?:[^'\\]|\\.)*)'`)
	fullRE  = regexp.MustCompile(`^\w+$`)

	quoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
)

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		buf.WriteByte(s[i])
	}
	return buf.String()
}

// An Op is a path operator.
type Op byte

const (
	Invalid Op = iota // invalid operator
	Member            // member lookup by name
	Index             // array index lookup
	Parent            // parent lookup (^)
)

var opText = [...]string{
	Invalid: "invalid",
	Member:  "member",
	Index:   "index",
	Parent:  "parent",
}

func (o Op) String() string {
	if int(o) >= len(opText) {
		return opText[Invalid]
	}
	return opText[o]
}

// A Step is a single step of a path expression.
type Step struct {
	Op  Op
	Arg string // name or index; empty for Parent
}

// Token returns the lookup token for s.
func (s Step) Token() string {
	if s.Op == Parent {
		return ParentToken
	}
	return s.Arg
}

func (s Step) String() string {
	switch s.Op {
	case Member:
		if fullRE.MatchString(s.Arg) {
			return "." + s.Arg
		}
		return "['" + quoter.Replace(s.Arg) + "']"
	case Index:
		return "[" + s.Arg + "]"
	case Parent:
		return "[^]"
	default:
		return "[?]"
	}
}
