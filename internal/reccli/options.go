// Package reccli parses the command line of the reconciliation tool.
package reccli

import (
	"io"

	"synrec/internal/clibase"
)

// Options holds all flags of the synrec executable.
type Options struct {
	// Unordered selects the unordered engine instead of the ordered
	// dynamic program.
	Unordered bool

	Input  string
	Output string
}

// Parse reads argv. Errors and usage output go to errw.
func Parse(argv []string, errw io.Writer) (Options, error) {
	fs := clibase.NewFlagSet("synrec",
		"label a synteny tree with ancestral syntenies and segmental losses")
	fs.SetOutput(errw)

	var opt Options
	fs.BoolVar(&opt.Unordered, "unordered", false, "use the unordered super-reconciliation algorithm [false]")
	fs.BoolVar(&opt.Unordered, "U", false, "alias of --unordered")
	fs.StringVar(&opt.Input, "input", "-", "path of the input tree, or '-' for standard input [-]")
	fs.StringVar(&opt.Input, "i", "-", "alias of --input")
	fs.StringVar(&opt.Output, "output", "-", "path of the output tree, or '-' for standard output [-]")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")

	err := fs.Parse(argv)
	return opt, err
}
