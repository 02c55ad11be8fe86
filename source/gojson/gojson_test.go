package gojson_test

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/source/gojson"
	"github.com/creachadair/jdoc/tree"
	"github.com/creachadair/jdoc/view"
	"github.com/google/go-cmp/cmp"
)

func readAll(t *testing.T, r jdoc.Reader) []string {
	t.Helper()
	var out []string
	for {
		ev, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		} else if err != nil {
			t.Fatalf("Next: unexpected error: %v", err)
		}
		out = append(out, ev.String())
	}
}

func TestEvents(t *testing.T) {
	r := gojson.NewBytes([]byte(`{"a": [1, 2.5, "x", true, null], "b": {"c": {}}, "d": -3e2}`))
	got := readAll(t, r)
	want := []string{
		"StartObject",
		"PropertyName <a>",
		"StartArray",
		"Value integer <1>",
		"Value float <2.5>",
		"Value string <x>",
		"Value boolean <true>",
		"Value null <null>",
		"EndArray",
		"PropertyName <b>",
		"StartObject",
		"PropertyName <c>",
		"StartObject",
		"EndObject",
		"EndObject",
		"PropertyName <d>",
		"Value float <-3e2>",
		"EndObject",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}

	// The end of input is sticky.
	if _, err := r.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("Next after end: got error %v, want %v", err, io.EOF)
	}
}

func TestMatchesTextReader(t *testing.T) {
	const input = `{"name": "x", "list": [{"k": [1, [2, {}]]}, "s"], "empty": [], "f": false}`
	want := readAll(t, jdoc.NewReader(strings.NewReader(input)))
	got := readAll(t, gojson.NewReader(strings.NewReader(input)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestLenient(t *testing.T) {
	// Missing commas are not diagnosed.
	want := readAll(t, gojson.NewReader(strings.NewReader(`[1, 2]`)))
	got := readAll(t, gojson.NewReader(strings.NewReader(`[1 2]`)))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Events (-want, +got):\n%s", diff)
	}
}

func TestTruncated(t *testing.T) {
	r := gojson.NewReader(strings.NewReader(`{"a": [1, 2`))
	var err error
	for err == nil {
		_, err = r.Next()
	}
	if errors.Is(err, io.EOF) {
		t.Errorf("Truncated input: got error %v, want a non-EOF error", err)
	}
	if _, again := r.Next(); again != err {
		t.Errorf("Next after error: got %v, want %v", again, err)
	}
}

func TestTree(t *testing.T) {
	root, err := tree.ParseString(`{"Server": {"port": 8080, "hosts": ["a", "b"]}}`, &tree.Options{
		NewReader: gojson.New,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}

	v := view.Of(root)
	if got := v.Path("server", "port").Int(); got != 8080 {
		t.Errorf("Port: got %d, want 8080", got)
	}
	if got := v.Eval("$.server.hosts[1]").String(); got != "b" {
		t.Errorf("Host: got %q, want %q", got, "b")
	}
}
