// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package tree

import (
	"io"
	"log/slog"

	"github.com/creachadair/jdoc"
)

// Default option values.
const (
	DefaultBufferSize = 4096
	DefaultMaxDepth   = 10000
)

// Options control how a tree is built. A nil *Options is ready for use and
// provides default values as documented on each field.
type Options struct {
	// BufferSize is the size in bytes of the read buffer placed over a byte
	// stream. If zero, DefaultBufferSize is used.
	BufferSize int

	// KeepOpen, if true, prevents ParseReader from closing its input when
	// parsing ends. By default an input that implements io.Closer is closed.
	KeepOpen bool

	// MaxDepth limits the nesting depth of containers. Building stops with
	// ErrTooDeep when the limit is exceeded. If zero, DefaultMaxDepth is used.
	MaxDepth int

	// Relaxed, if true, accepts JSON with comments and trailing commas.
	// The input is read fully into memory and standardized before parsing.
	Relaxed bool

	// DetectDates, if true, reports RFC 3339 string values as Date scalars.
	// It applies only to the default event source.
	DetectDates bool

	// NewReader, if set, constructs the event source for a byte stream.
	// If nil, jdoc.NewReader is used.
	NewReader func(io.Reader) jdoc.Reader

	// Logger receives diagnostics when a build ends early.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

func (o *Options) bufferSize() int {
	if o == nil || o.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return o.BufferSize
}

func (o *Options) keepOpen() bool { return o != nil && o.KeepOpen }

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) relaxed() bool { return o != nil && o.Relaxed }

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

func (o *Options) newReader(r io.Reader) jdoc.Reader {
	if o != nil && o.NewReader != nil {
		return o.NewReader(r)
	}
	tr := jdoc.NewReader(r)
	tr.DetectDates(o != nil && o.DetectDates)
	return tr
}
