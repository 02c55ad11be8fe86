// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jdoc

import (
	"bytes"
	"errors"
	"strings"

	"github.com/creachadair/jdoc/internal/escape"
	"github.com/tailscale/hujson"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	buf := make([]byte, 1, len(src)+2)
	buf[0] = '"'
	return string(append(escape.AppendQuote(buf, mem.S(src)), '"'))
}

// Unquote decodes a JSON string value.  Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	body := src[1 : len(src)-1]
	return escape.AppendUnquote(make([]byte, 0, len(body)), mem.S(body))
}

// Standardize converts JSON with comments and trailing commas (JWCC) into
// standard JSON. Comments are replaced by whitespace, so source offsets are
// preserved. The input is not modified.
func Standardize(data []byte) ([]byte, error) {
	return hujson.Standardize(bytes.Clone(data))
}
