// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

const hexDigit = "0123456789abcdef"

// shortEsc maps control characters to their short escape letters.
var shortEsc = [' ']byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
}

// AppendQuote appends the escaped form of src to dst, for inclusion in a JSON
// string, and returns the extended slice. Quotation marks are not added.
func AppendQuote(dst []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r < ' ':
			if b := shortEsc[r]; b != 0 {
				dst = append(dst, '\\', b)
			} else {
				dst = append(dst, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '\\' || r == '"':
			dst = append(dst, '\\', byte(r))
		case r < utf8.RuneSelf:
			dst = append(dst, byte(r))
		case r == utf8.RuneError, r == '\u2028', r == '\u2029':
			dst = append(dst, '\\', 'u',
				hexDigit[r>>12&15], hexDigit[r>>8&15], hexDigit[r>>4&15], hexDigit[r&15])
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return dst
}

// AppendUnquote appends the decoded form of src to dst and returns the
// extended slice. The input must have the enclosing double quotation marks
// already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// UTF-16 surrogate pair written as two escapes is combined. Invalid escapes
// are replaced by the Unicode replacement rune. AppendUnquote reports an
// error for an incomplete escape sequence.
func AppendUnquote(dst []byte, src mem.RO) ([]byte, error) {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dst = append(dst, c)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			r := hexRune(src.SliceTo(4))
			src = src.SliceFrom(4)
			if utf16.IsSurrogate(r) {
				if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
					if pr := utf16.DecodeRune(r, hexRune(src.Slice(2, 6))); pr != utf8.RuneError {
						r = pr
						src = src.SliceFrom(6)
					}
				}
			}
			dst = utf8.AppendRune(dst, r) // a lone surrogate becomes RuneError
		default:
			dst = utf8.AppendRune(dst, utf8.RuneError)
		}
	}
}

// hexRune decodes four hex digits, or returns utf8.RuneError.
func hexRune(data mem.RO) rune {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return utf8.RuneError
		}
	}
	return v
}
