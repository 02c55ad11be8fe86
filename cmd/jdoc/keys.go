// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/creachadair/jdoc/path"
	"github.com/creachadair/jdoc/view"
	"github.com/scott-cotton/cli"
)

func keys(cfg *KeysConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Keys.Parse(cc, args)
	if err != nil {
		cfg.Keys.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var expr path.Expr
	if len(args) != 0 && strings.HasPrefix(args[0], "$") {
		expr, err = path.Parse(args[0])
		if err != nil {
			return fmt.Errorf("%w: invalid path %q: %w", cli.ErrUsage, args[0], err)
		}
		args = args[1:]
	}

	var errs []error
	for _, name := range inputs(args) {
		root, err := loadTree(cfg.MainConfig, name)
		if err != nil {
			errs = append(errs, err)
		}
		ks := view.Of(root).Path(expr.Tokens()...).Keys().Slice()
		slices.Sort(ks)
		for _, k := range ks {
			fmt.Fprintln(cc.Out, k)
		}
	}
	return errors.Join(errs...)
}
