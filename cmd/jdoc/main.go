// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jdoc reads JSON and YAML documents and reports on their contents.
//
// Usage:
//
//	jdoc [opts] get <path> [files]
//	jdoc [opts] keys [$path] [files]
//	jdoc [opts] outline [-skip name] [-stop name] [files]
//
// A file named "-", or no files at all, means standard input.
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
