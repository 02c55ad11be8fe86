// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jdoc/path"
	"github.com/creachadair/jdoc/view"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	expr, err := path.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid path %q: %w", cli.ErrUsage, args[0], err)
	}

	var errs []error
	for _, name := range inputs(args[1:]) {
		root, err := loadTree(cfg.MainConfig, name)
		if err != nil {
			errs = append(errs, err)
		}
		v := view.Of(root).Path(expr.Tokens()...)
		if !v.Exists() {
			cfg.logger().Debug("path not found", "input", name, "path", expr)
		}
		if err := render(cc.Out, v, cfg.Raw); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}
