// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/jdoc"
)

// ParseString builds a document tree from the text of s.
// See Build for the handling of errors.
func ParseString(s string, opts *Options) (*Node, error) {
	if opts.relaxed() {
		return ParseBytes([]byte(s), opts)
	}
	return Build(opts.newReader(strings.NewReader(s)), opts)
}

// ParseBytes builds a document tree from data.
// See Build for the handling of errors.
func ParseBytes(data []byte, opts *Options) (*Node, error) {
	if opts.relaxed() {
		std, err := jdoc.Standardize(data)
		if err != nil {
			opts.logger().Warn("invalid relaxed input", "err", err)
			return New(), err
		}
		data = std
	}
	return Build(opts.newReader(bytes.NewReader(data)), opts)
}

// ParseReader builds a document tree from the contents of r.
//
// If r implements io.Seeker, it is positioned at the start before parsing
// begins and again after parsing ends, whether or not parsing succeeded. If
// the first seek fails, r is read from its current position.
// Unless opts.KeepOpen is set, r is closed afterward if it implements
// io.Closer. See Build for the handling of errors.
func ParseReader(r io.Reader, opts *Options) (*Node, error) {
	if c, ok := r.(io.Closer); ok && !opts.keepOpen() {
		defer func() {
			if err := c.Close(); err != nil {
				opts.logger().Debug("closing input", "err", err)
			}
		}()
	}
	if s, ok := r.(io.Seeker); ok {
		// Some seekers, such as pipes, report an error for any seek.
		// These are read from their current position.
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			opts.logger().Debug("input is not seekable", "err", err)
		} else {
			defer s.Seek(0, io.SeekStart)
		}
	}

	if opts.relaxed() {
		data, err := io.ReadAll(r)
		if err != nil {
			opts.logger().Warn("reading input", "err", err)
			return New(), err
		}
		return ParseBytes(data, opts)
	}
	return Build(opts.newReader(bufio.NewReaderSize(r, opts.bufferSize())), opts)
}

// ParseFile builds a document tree from the contents of the named file.
// The file is closed before ParseFile returns.
func ParseFile(path string, opts *Options) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		opts.logger().Warn("opening input", "path", path, "err", err)
		return New(), err
	}
	defer f.Close()

	var fopts Options
	if opts != nil {
		fopts = *opts
	}
	fopts.KeepOpen = true // closed here
	root, err := ParseReader(f, &fopts)
	if err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return root, err
}

// A Result is the outcome of a background parse.
type Result struct {
	Root *Node
	Err  error
}

// ParseStringAsync runs ParseString in a separate goroutine and delivers its
// result on the returned channel, which is then closed.
func ParseStringAsync(s string, opts *Options) <-chan Result {
	return async(func() (*Node, error) { return ParseString(s, opts) })
}

// ParseReaderAsync runs ParseReader in a separate goroutine and delivers its
// result on the returned channel, which is then closed. The caller must not
// use r until the result has been delivered.
func ParseReaderAsync(r io.Reader, opts *Options) <-chan Result {
	return async(func() (*Node, error) { return ParseReader(r, opts) })
}

func async(parse func() (*Node, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		root, err := parse()
		ch <- Result{Root: root, Err: err}
	}()
	return ch
}

// errNoInput is returned by Wait for a channel closed without a result.
var errNoInput = errors.New("no result delivered")

// Wait blocks until a result is available on ch and returns it.
func Wait(ch <-chan Result) (*Node, error) {
	res, ok := <-ch
	if !ok {
		return New(), errNoInput
	}
	return res.Root, res.Err
}
