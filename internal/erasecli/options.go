// Package erasecli parses the command line of the erasure tool.
package erasecli

import (
	"io"

	"synrec/internal/clibase"
)

// Options holds all flags of the synrec-erase executable.
type Options struct {
	Input  string
	Output string
}

// Parse reads argv. Errors and usage output go to errw.
func Parse(argv []string, errw io.Writer) (Options, error) {
	fs := clibase.NewFlagSet("synrec-erase",
		"strip internal labels and loss information from a reference tree")
	fs.SetOutput(errw)

	var opt Options
	fs.StringVar(&opt.Input, "input", "-", "path of the input tree, or '-' for standard input [-]")
	fs.StringVar(&opt.Input, "i", "-", "alias of --input")
	fs.StringVar(&opt.Output, "output", "-", "path of the output tree, or '-' for standard output [-]")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")

	err := fs.Parse(argv)
	return opt, err
}
