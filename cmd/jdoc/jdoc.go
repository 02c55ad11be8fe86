// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/creachadair/jdoc/tree"
	"github.com/scott-cotton/cli"
)

func jdocMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Y && cfg.G {
		return fmt.Errorf("%w: must specify at most one of -y[aml] -g[ojson]", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

// inputs returns the input names from args, defaulting to standard input.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// loadTree builds the document tree for the named input. If the input is
// not valid, the partial tree is returned along with the error.
func loadTree(cfg *MainConfig, name string) (*tree.Node, error) {
	opts := cfg.treeOptions()
	var root *tree.Node
	var err error
	if name == "-" {
		root, err = tree.ParseReader(os.Stdin, opts)
	} else {
		root, err = tree.ParseFile(name, opts)
	}
	if err != nil {
		return root, fmt.Errorf("error reading %s: %w", name, err)
	}
	cfg.logger().Debug("loaded document", "input", name, "members", root.Len())
	return root, nil
}
