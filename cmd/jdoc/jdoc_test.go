package main

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/convert"
	"github.com/creachadair/jdoc/source/yamlsrc"
	"github.com/creachadair/jdoc/tree"
	"github.com/creachadair/jdoc/view"
	"github.com/google/go-cmp/cmp"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRender(t *testing.T) {
	root, err := tree.ParseString(`{"b": [1, 2.5, "x\ty", true, null], "A": {"z": {}, "y": []}}`, &tree.Options{Logger: quiet})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	doc := view.Of(root)
	tests := []struct {
		v    view.View
		raw  bool
		want string
	}{
		{doc, false, `{"a":{"y":[],"z":{}},"b":[1,2.5,"x\ty",true]}`},
		{doc.Get("b"), false, `[1,2.5,"x\ty",true]`},
		{doc.Path("b", "2"), false, `"x\ty"`},
		{doc.Path("b", "2"), true, "x\ty"},
		{doc.Path("b", "1"), true, "2.5"},
		{doc.Get("a"), true, `{"y":[],"z":{}}`},
		{doc.Get("nope"), false, "null"},
	}
	for _, test := range tests {
		var buf strings.Builder
		if err := render(&buf, test.v, test.raw); err != nil {
			t.Errorf("render: unexpected error: %v", err)
		}
		if diff := cmp.Diff(test.want+"\n", buf.String()); diff != "" {
			t.Errorf("render %v (-want, +got):\n%s", test.v.Node(), diff)
		}
	}
}

func TestRenderNonFinite(t *testing.T) {
	root, err := tree.ParseString("a: .inf\nb: -.Inf\nc: .nan\nd: 1.5\n", &tree.Options{
		Logger:    quiet,
		NewReader: yamlsrc.New,
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf strings.Builder
	if err := render(&buf, view.Of(root), false); err != nil {
		t.Fatalf("render: unexpected error: %v", err)
	}
	const want = `{"a":null,"b":null,"c":null,"d":1.5}` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("render (-want, +got):\n%s", diff)
	}
}

func TestOutline(t *testing.T) {
	const input = `{"name": "x", "skip": {"a": [1]}, "list": [1, {"k": "v"}], "stop": 2, "after": 3}`
	tests := []struct {
		skip, stop string
		want       string
	}{
		{"", "", `{
  "name": x
  "skip": {
    "a": [
      1
    ]
  }
  "list": [
    1
    {
      "k": v
    }
  ]
  "stop": 2
  "after": 3
}
`},
		{"skip", "stop", `{
  "name": x
  "skip": {...
  "list": [
    1
    {
      "k": v
    }
  ]
  "stop": 2
`},
	}
	for _, test := range tests {
		var buf strings.Builder
		c := convert.New(outliner(&buf, test.skip, test.stop))
		c.Logger = quiet
		if err := c.Perform(context.Background(), jdoc.NewReader(strings.NewReader(input))); err != nil {
			t.Fatalf("Perform: unexpected error: %v", err)
		}
		if diff := cmp.Diff(test.want, buf.String()); diff != "" {
			t.Errorf("Outline skip=%q stop=%q (-want, +got):\n%s", test.skip, test.stop, diff)
		}
	}
}

func TestNewReader(t *testing.T) {
	const input = `{"when": "2024-01-02T03:04:05Z"}`
	tests := []struct {
		cfg  MainConfig
		want jdoc.ValueType
	}{
		{MainConfig{}, jdoc.String},
		{MainConfig{Dates: true}, jdoc.Date},
		{MainConfig{G: true}, jdoc.String},
	}
	for _, test := range tests {
		cfg := test.cfg
		cfg.log = quiet
		root, err := tree.ParseString(input, cfg.treeOptions())
		if err != nil {
			t.Fatalf("Parse %+v: %v", test.cfg, err)
		}
		when, _ := root.Member("when")
		if got := when.Value().Type; got != test.want {
			t.Errorf("Config %+v: got type %v, want %v", test.cfg, got, test.want)
		}
	}

	cfg := &MainConfig{Y: true, log: quiet}
	if _, ok := cfg.newReader(strings.NewReader("a: 1")).(*yamlsrc.Reader); !ok {
		t.Error("YAML input did not select the YAML reader")
	}
}
