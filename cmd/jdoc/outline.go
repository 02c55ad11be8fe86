// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/convert"
	"github.com/scott-cotton/cli"
)

func outline(cfg *OutlineConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Outline.Parse(cc, args)
	if err != nil {
		cfg.Outline.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	c := convert.New(outliner(cc.Out, cfg.Skip, cfg.Stop))
	c.Logger = cfg.logger()
	for _, name := range inputs(args) {
		if err := outlineFile(ctx, cfg, c, name); err != nil {
			return fmt.Errorf("error reading %s: %w", name, err)
		}
	}
	return nil
}

func outlineFile(ctx context.Context, cfg *OutlineConfig, c *convert.Converter[bool], name string) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if cfg.Relaxed && !cfg.Y {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		std, err := jdoc.Standardize(data)
		if err != nil {
			return err
		}
		r = bytes.NewReader(std)
	}
	return c.Perform(ctx, cfg.newReader(r))
}

// outliner returns a conversion handler that writes an indented outline of
// the document to w. Containers named skip are elided, and the conversion
// stops after the first member named stop.
func outliner(w io.Writer, skip, stop string) convert.Handler[bool] {
	return func(ctx *convert.Context[bool], kind convert.EventKind, name, text string) bool {
		depth := ctx.Depth()
		if kind == convert.EndObject || kind == convert.EndArray {
			depth--
		}
		label := ""
		if name != "" && kind != convert.EndObject && kind != convert.EndArray {
			label = jdoc.Quote(name) + ": "
		}
		elide := name != "" && name == skip
		if elide && (kind == convert.StartObject || kind == convert.StartArray) {
			fmt.Fprintf(w, "%s%s%s...\n", strings.Repeat("  ", depth), label, text)
		} else {
			fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), label, text)
		}
		if name != "" && name == stop {
			ctx.Abort()
		}
		return !elide
	}
}
