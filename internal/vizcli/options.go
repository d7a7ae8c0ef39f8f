// Package vizcli parses the command line of the visualization tool.
package vizcli

import (
	"io"

	"synrec/internal/clibase"
)

// Options holds all flags of the synrec-viz executable.
type Options struct {
	Input  string
	Output string

	// Format selects the rendering: "dot" for Graphviz, "text" for an
	// indented ASCII tree.
	Format string
}

// Parse reads argv. Errors and usage output go to errw.
func Parse(argv []string, errw io.Writer) (Options, error) {
	fs := clibase.NewFlagSet("synrec-viz",
		"render a synteny tree as a Graphviz graph")
	fs.SetOutput(errw)

	var opt Options
	fs.StringVar(&opt.Input, "input", "-", "path of the input tree, or '-' for standard input [-]")
	fs.StringVar(&opt.Input, "i", "-", "alias of --input")
	fs.StringVar(&opt.Output, "output", "-", "path of the output graph, or '-' for standard output [-]")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")
	fs.StringVar(&opt.Format, "format", "dot", "output format: dot | text [dot]")
	fs.StringVar(&opt.Format, "f", "dot", "alias of --format")

	err := fs.Parse(argv)
	return opt, err
}
