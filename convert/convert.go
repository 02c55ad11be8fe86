// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package convert implements a streaming conversion of parse events into
// caller-defined values.
//
// A Converter reads events from a jdoc.Reader and reports each one to a
// Handler. The value a handler returns for the start of an object or array
// becomes the instance of a new frame on the conversion stack, and remains
// available to the handler (via the Context) until the matching end event.
//
// If a handler returns the zero value of T for the start of a container,
// no further events inside that container are reported, though the stack is
// still maintained. The handler may call Abort on the Context to stop the
// conversion; frames open at that point are not reported as ended.
package convert

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/mds/stack"
)

// EventKind identifies the kind of event reported to a Handler.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	StartObject EventKind = iota + 1
	EndObject
	StartArray
	EndArray
	Value
)

var kindStr = [...]string{
	0:           "Invalid",
	StartObject: "StartObject",
	EndObject:   "EndObject",
	StartArray:  "StartArray",
	EndArray:    "EndArray",
	Value:       "Value",
}

func (k EventKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// An Item is a frame of the conversion stack, one per open container.
type Item[T comparable] struct {
	Name     string // the property name of the container, or ""
	IsArray  bool   // whether the container is an array
	Instance T      // the value returned by the handler for the start event
}

// A Context carries the state of a conversion in progress.
type Context[T comparable] struct {
	stk     *stack.Stack[Item[T]]
	aborted bool
}

// Abort requests that the conversion stop. No further events are read once
// the current handler call returns.
func (c *Context[T]) Abort() { c.aborted = true }

// Aborted reports whether Abort has been called.
func (c *Context[T]) Aborted() bool { return c.aborted }

// Depth reports the number of open containers.
func (c *Context[T]) Depth() int { return c.stk.Len() }

// Top returns the innermost open frame, and reports whether there is one.
func (c *Context[T]) Top() (Item[T], bool) { return c.stk.Peek(0) }

// Frame returns the open frame n levels out from the innermost, so that
// Frame(0) is the same as Top. It reports false if n is out of range.
func (c *Context[T]) Frame(n int) (Item[T], bool) {
	if n < 0 || n >= c.stk.Len() {
		return Item[T]{}, false
	}
	return c.stk.Peek(n)
}

// Enabled reports whether events are currently reported to the handler:
// either no container is open, or the innermost frame has a non-zero
// instance.
func (c *Context[T]) Enabled() bool {
	top, ok := c.stk.Peek(0)
	var zero T
	return !ok || top.Instance != zero
}

// A Handler is called by a Converter for each event reported.
//
// For StartObject and StartArray, name is the pending property name (or "")
// and the result becomes the instance of the new frame. For EndObject and
// EndArray, name is the name of the frame being closed, which is still the
// top of the stack during the call. For Value, name is the pending property
// name and text is the text of the value. The result is ignored except for
// start events.
type Handler[T comparable] func(ctx *Context[T], kind EventKind, name, text string) T

// A Converter dispatches parse events to a Handler.
type Converter[T comparable] struct {
	handle Handler[T]

	// Logger receives debug records about the progress of a conversion.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// New constructs a Converter that reports events to h.
func New[T comparable](h Handler[T]) *Converter[T] {
	if h == nil {
		panic("convert: nil handler")
	}
	return &Converter[T]{handle: h}
}

func (c *Converter[T]) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

// Perform reads events from src and reports them to the handler until src
// is exhausted or the conversion is aborted.
//
// Reaching the end of src or an abort by the handler is not an error. If src
// reports any other error, Perform returns it. If ctx ends before the
// conversion is complete, Perform stops as if aborted and returns the error
// from ctx. Null values are not reported, but consume a pending name.
func (c *Converter[T]) Perform(ctx context.Context, src jdoc.Reader) error {
	cc := &Context[T]{stk: stack.New[Item[T]]()}
	var name string // pending property name
	for !cc.aborted {
		if err := ctx.Err(); err != nil {
			c.logger().Debug("conversion cancelled", "depth", cc.Depth(), "err", err)
			return err
		}
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		switch ev.Kind {
		case jdoc.PropertyName:
			name = ev.Text

		case jdoc.StartObject, jdoc.StartArray:
			isArray := ev.Kind == jdoc.StartArray
			kind := StartObject
			if isArray {
				kind = StartArray
			}
			var inst T
			if cc.Enabled() {
				inst = c.handle(cc, kind, name, ev.Text)
			}
			cc.stk.Push(Item[T]{Name: name, IsArray: isArray, Instance: inst})
			name = ""

		case jdoc.Value:
			if ev.Type != jdoc.Null && cc.Enabled() {
				c.handle(cc, Value, name, ev.Text)
			}
			name = ""

		case jdoc.EndObject, jdoc.EndArray:
			top, ok := cc.stk.Peek(0)
			if !ok {
				continue // unbalanced close
			}
			kind := EndObject
			if top.IsArray {
				kind = EndArray
			}
			if cc.Enabled() {
				c.handle(cc, kind, top.Name, ev.Text)
			}
			cc.stk.Pop()
		}
	}
	c.logger().Debug("conversion aborted", "depth", cc.Depth())
	return nil
}

// PerformReader is as Perform, reading JSON text from r.
func (c *Converter[T]) PerformReader(ctx context.Context, r io.Reader) error {
	return c.Perform(ctx, jdoc.NewReader(r))
}

// Start runs Perform in a separate goroutine, and delivers its result on the
// returned channel, which is then closed. The caller must not use src until
// the result has been delivered.
func (c *Converter[T]) Start(ctx context.Context, src jdoc.Reader) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- c.Perform(ctx, src)
	}()
	return ch
}
