// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/tree"
	"github.com/creachadair/jdoc/view"
)

// render writes v to w as JSON text followed by a newline. Object members are
// written in key order. If raw is true and v is a scalar, its text is written
// without quotation. An empty view is written as null, as are non-finite
// numbers.
func render(w io.Writer, v view.View, raw bool) error {
	var buf strings.Builder
	if raw && v.Kind() == tree.Scalar {
		buf.WriteString(v.String())
	} else {
		writeNode(&buf, v.Node())
	}
	buf.WriteByte('\n')
	_, err := io.WriteString(w, buf.String())
	return err
}

func writeNode(buf *strings.Builder, n *tree.Node) {
	switch n.Kind() {
	case tree.Hash:
		keys := view.Of(n).Keys().Slice()
		slices.Sort(keys)
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			m, _ := n.Member(key)
			buf.WriteString(jdoc.Quote(key))
			buf.WriteByte(':')
			writeNode(buf, m)
		}
		buf.WriteByte('}')

	case tree.Array:
		buf.WriteByte('[')
		for i, e := range n.Elems() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNode(buf, e)
		}
		buf.WriteByte(']')

	case tree.Scalar:
		v := n.Value()
		switch v.Type {
		case jdoc.Integer, jdoc.Boolean:
			buf.WriteString(v.Text)
		case jdoc.Float:
			// JSON has no spelling for infinities or NaN.
			if f, err := strconv.ParseFloat(v.Text, 64); err == nil && (math.IsInf(f, 0) || math.IsNaN(f)) {
				buf.WriteString("null")
			} else {
				buf.WriteString(v.Text)
			}
		case jdoc.Null:
			buf.WriteString("null")
		default:
			buf.WriteString(jdoc.Quote(v.Text))
		}

	default:
		buf.WriteString("null")
	}
}
