// Package recapp wires the synrec executable: read one tree, run the
// selected reconciliation engine, emit the labeled tree.
package recapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"synrec-core/reconcile"

	"synrec/internal/appcore"
	"synrec/internal/iosink"
	"synrec/internal/reccli"
)

// RunContext runs the tool and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, err := reccli.Parse(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	iosink.InteractiveHint(stderr, opts.Input,
		"Input the tree to be reconciled and finish with Ctrl-D:\n")

	t, err := appcore.LoadTree(opts.Input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	if opts.Unordered {
		if err := reconcile.Unordered(t); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		cost, err := reconcile.Ordered(t)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintf(stderr, "Reconciled tree with cost %d (use `synrec-viz` to visualize):\n", cost)
	}

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
