package convert_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/convert"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

// recorder is a handler that logs each call and returns the non-empty
// instance "ok" for each start event, unless skip reports true.
type recorder struct {
	log  []string
	skip func(name string) bool
	stop func(kind convert.EventKind, name string) bool
}

func (r *recorder) handle(ctx *convert.Context[string], kind convert.EventKind, name, text string) string {
	r.log = append(r.log, fmt.Sprintf("%v %q %q", kind, name, text))
	if r.stop != nil && r.stop(kind, name) {
		ctx.Abort()
	}
	if r.skip != nil && r.skip(name) {
		return ""
	}
	return "ok"
}

func newConverter(r *recorder) *convert.Converter[string] {
	c := convert.New(r.handle)
	c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return c
}

const input = `{"a": 1, "b": {"c": [true, null, "s"], "d": {}}, "e": "last"}`

func TestPerform(t *testing.T) {
	var r recorder
	if err := newConverter(&r).PerformReader(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Perform: unexpected error: %v", err)
	}
	want := []string{
		`StartObject "" "{"`,
		`Value "a" "1"`,
		`StartObject "b" "{"`,
		`StartArray "c" "["`,
		`Value "" "true"`,
		`Value "" "s"`,
		`EndArray "c" "]"`,
		`StartObject "d" "{"`,
		`EndObject "d" "}"`,
		`EndObject "b" "}"`,
		`Value "e" "last"`,
		`EndObject "" "}"`,
	}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestSuppress(t *testing.T) {
	r := recorder{skip: func(name string) bool { return name == "b" }}
	if err := newConverter(&r).PerformReader(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Perform: unexpected error: %v", err)
	}
	want := []string{
		`StartObject "" "{"`,
		`Value "a" "1"`,
		`StartObject "b" "{"`,
		`Value "e" "last"`,
		`EndObject "" "}"`,
	}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestAbort(t *testing.T) {
	r := recorder{stop: func(_ convert.EventKind, name string) bool { return name == "c" }}
	if err := newConverter(&r).PerformReader(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Perform: unexpected error: %v", err)
	}
	want := []string{
		`StartObject "" "{"`,
		`Value "a" "1"`,
		`StartObject "b" "{"`,
		`StartArray "c" "["`,
	}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestFrames(t *testing.T) {
	type frame struct {
		Name    string
		IsArray bool
	}
	var got [][]frame
	c := convert.New(func(ctx *convert.Context[int], kind convert.EventKind, name, text string) int {
		if kind == convert.Value {
			var fs []frame
			for i := 0; ; i++ {
				f, ok := ctx.Frame(i)
				if !ok {
					break
				}
				fs = append(fs, frame{f.Name, f.IsArray})
			}
			if len(fs) != ctx.Depth() {
				t.Errorf("Value %q: got %d frames, depth %d", text, len(fs), ctx.Depth())
			}
			got = append(got, fs)
		}
		return ctx.Depth() + 1
	})
	if err := c.PerformReader(context.Background(), strings.NewReader(`{"x": [{"y": 1}], "z": 2}`)); err != nil {
		t.Fatalf("Perform: unexpected error: %v", err)
	}
	want := [][]frame{
		{{"", false}, {"x", true}, {"", false}},
		{{"", false}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Frames (-want, +got):\n%s", diff)
	}
}

func TestInstances(t *testing.T) {
	var ends []string
	c := convert.New(func(ctx *convert.Context[string], kind convert.EventKind, name, text string) string {
		switch kind {
		case convert.StartObject, convert.StartArray:
			return "inst:" + name
		case convert.EndObject, convert.EndArray:
			top, ok := ctx.Top()
			if !ok {
				t.Errorf("%v %q: no frame on the stack", kind, name)
			}
			ends = append(ends, top.Instance)
		}
		return ""
	})
	if err := c.PerformReader(context.Background(), strings.NewReader(`{"p": {"q": []}}`)); err != nil {
		t.Fatalf("Perform: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"inst:q", "inst:p", "inst:"}, ends); diff != "" {
		t.Errorf("End instances (-want, +got):\n%s", diff)
	}
}

func TestReadError(t *testing.T) {
	var r recorder
	err := newConverter(&r).PerformReader(context.Background(), strings.NewReader(`{"a": 1, "b": ]`))
	var serr *jdoc.SyntaxError
	if !errors.As(err, &serr) {
		t.Errorf("Perform: got error %v, want *SyntaxError", err)
	}
	want := []string{`StartObject "" "{"`, `Value "a" "1"`}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestTruncated(t *testing.T) {
	for _, input := range []string{`{"a": 1, "k"`, `{"a": [1, 2`, `{"a": "x`} {
		var r recorder
		err := newConverter(&r).PerformReader(context.Background(), strings.NewReader(input))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("Perform %#q: got error %v, want %v", input, err, io.ErrUnexpectedEOF)
		}
	}
}

func TestTopLevel(t *testing.T) {
	type state struct {
		Kind    convert.EventKind
		HasTop  bool
		Enabled bool
	}
	var got []state
	c := convert.New(func(ctx *convert.Context[int], kind convert.EventKind, name, text string) int {
		_, ok := ctx.Top()
		got = append(got, state{kind, ok, ctx.Enabled()})
		return 1
	})
	if err := c.PerformReader(context.Background(), strings.NewReader(`[1]`)); err != nil {
		t.Fatalf("Perform: unexpected error: %v", err)
	}
	want := []state{
		{convert.StartArray, false, true},
		{convert.Value, true, true},
		{convert.EndArray, true, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("States (-want, +got):\n%s", diff)
	}
}

func TestCancel(t *testing.T) {
	t.Run("Before", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var r recorder
		err := newConverter(&r).PerformReader(ctx, strings.NewReader(input))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Perform: got error %v, want %v", err, context.Canceled)
		}
		if len(r.log) != 0 {
			t.Errorf("Events: got %q, want none", r.log)
		}
	})

	t.Run("During", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		r := recorder{stop: func(_ convert.EventKind, name string) bool {
			if name == "a" {
				cancel()
			}
			return false
		}}
		err := newConverter(&r).PerformReader(ctx, strings.NewReader(input))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Perform: got error %v, want %v", err, context.Canceled)
		}
		want := []string{`StartObject "" "{"`, `Value "a" "1"`}
		if diff := cmp.Diff(want, r.log); diff != "" {
			t.Errorf("Events (-want, +got):\n%s", diff)
		}
	})
}

func TestStart(t *testing.T) {
	var r recorder
	ch := newConverter(&r).Start(context.Background(), jdoc.NewReader(strings.NewReader(`[1, 2]`)))
	if err := <-ch; err != nil {
		t.Fatalf("Start: unexpected error: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("Result channel was not closed")
	}
	want := []string{`StartArray "" "["`, `Value "" "1"`, `Value "" "2"`, `EndArray "" "]"`}
	if diff := cmp.Diff(want, r.log); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestNilHandler(t *testing.T) {
	mtest.MustPanic(t, func() { convert.New[string](nil) })
}
