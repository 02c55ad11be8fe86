// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/creachadair/jdoc"
	"github.com/creachadair/jdoc/source/gojson"
	"github.com/creachadair/jdoc/source/yamlsrc"
	"github.com/creachadair/jdoc/tree"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Y       bool `cli:"name=y aliases=yaml desc='read input as yaml'"`
	G       bool `cli:"name=g aliases=gojson desc='read json with the go-json decoder'"`
	Relaxed bool `cli:"name=relaxed desc='allow comments and trailing commas in json'"`
	Dates   bool `cli:"name=dates desc='report RFC 3339 strings as dates'"`
	V       bool `cli:"name=v desc='verbose logging'"`

	Main *cli.Command

	log *slog.Logger
}

func (cfg *MainConfig) logger() *slog.Logger {
	if cfg.log == nil {
		level := slog.LevelInfo
		if cfg.V {
			level = slog.LevelDebug
		}
		cfg.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					return slog.Attr{}
				}
				return a
			},
		}))
	}
	return cfg.log
}

// newReader returns an event source for r according to the input flags.
func (cfg *MainConfig) newReader(r io.Reader) jdoc.Reader {
	switch {
	case cfg.Y:
		return yamlsrc.New(r)
	case cfg.G:
		return gojson.New(r)
	}
	tr := jdoc.NewReader(r)
	tr.DetectDates(cfg.Dates)
	return tr
}

func (cfg *MainConfig) treeOptions() *tree.Options {
	return &tree.Options{
		KeepOpen:  true,
		Relaxed:   cfg.Relaxed && !cfg.Y,
		NewReader: cfg.newReader,
		Logger:    cfg.logger(),
	}
}

type GetConfig struct {
	*MainConfig
	Raw bool `cli:"name=r aliases=raw desc='print string values without quotes'"`

	Get *cli.Command
}

type KeysConfig struct {
	*MainConfig

	Keys *cli.Command
}

type OutlineConfig struct {
	*MainConfig
	Skip string `cli:"name=skip desc='do not descend into members with this name'"`
	Stop string `cli:"name=stop desc='stop reading at the first member with this name'"`

	Outline *cli.Command
}
