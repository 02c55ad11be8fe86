// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jdoc").
		WithSynopsis("jdoc [opts] command [opts]").
		WithDescription("jdoc is a tool for looking inside JSON and YAML documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jdocMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			KeysCommand(cfg),
			OutlineCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [opts] <path> [files]").
		WithDescription("print the value at a path in each document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func KeysCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &KeysConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Keys, "keys").
		WithAliases("k").
		WithSynopsis("keys [$path] [files]").
		WithDescription("list the member keys of an object in each document").
		WithRun(func(cc *cli.Context, args []string) error {
			return keys(cfg, cc, args)
		})
}

func OutlineCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &OutlineConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Outline, "outline").
		WithAliases("o", "out").
		WithSynopsis("outline [-skip name] [-stop name] [files]").
		WithDescription("print the structure of each document as it is read").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return outline(cfg, cc, args)
		})
}
