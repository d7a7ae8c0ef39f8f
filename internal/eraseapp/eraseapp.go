// Package eraseapp wires the synrec-erase executable: read one
// reference tree, canonicalize it, emit the erased tree.
package eraseapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"synrec-core/erase"

	"synrec/internal/appcore"
	"synrec/internal/erasecli"
	"synrec/internal/iosink"
)

// RunContext runs the tool and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, err := erasecli.Parse(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	iosink.InteractiveHint(stderr, opts.Input,
		"Input the tree to be erased and finish with Ctrl-D:\n")

	t, err := appcore.LoadTree(opts.Input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	erase.Tree(t)

	if err := appcore.StoreTree(opts.Output, t); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
