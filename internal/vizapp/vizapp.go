// Package vizapp wires the synrec-viz executable: read one tree, emit
// its Graphviz rendering.
package vizapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"synrec/internal/appcore"
	"synrec/internal/iosink"
	"synrec/internal/pretty"
	"synrec/internal/viz"
	"synrec/internal/vizcli"
)

// RunContext runs the tool and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, err := vizcli.Parse(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	iosink.InteractiveHint(stderr, opts.Input,
		"Input the tree to be visualized and finish with Ctrl-D:\n")

	t, err := appcore.LoadTree(opts.Input)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var rendered string
	switch opts.Format {
	case "dot":
		rendered = viz.Dot(t)
	case "text":
		rendered = pretty.Render(t)
	default:
		fmt.Fprintf(stderr, "unknown format %q, want 'dot' or 'text'\n", opts.Format)
		return 2
	}

	if err := appcore.StoreText(opts.Output, rendered); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
