// Package simcli parses the command line of the simulation tool.
package simcli

import (
	"io"

	"synrec/internal/clibase"
)

// Options holds all flags of the synrec-simulate executable.
type Options struct {
	BaseSize    int
	Depth       int
	PDup        float64
	PDupLength  float64
	PLoss       float64
	PLossLength float64
	PRearr      float64

	// Seed for the pseudo-random number generator. 0 draws a seed from
	// the system entropy source.
	Seed int64

	Output string
}

// Parse reads argv. Errors and usage output go to errw.
func Parse(argv []string, errw io.Writer) (Options, error) {
	fs := clibase.NewFlagSet("synrec-simulate",
		"simulate the evolution of a synteny and emit the reference tree")
	fs.SetOutput(errw)

	var opt Options
	fs.IntVar(&opt.BaseSize, "base-size", 5, "number of genes in the ancestral synteny [5]")
	fs.IntVar(&opt.BaseSize, "s", 5, "alias of --base-size")
	fs.IntVar(&opt.Depth, "depth", 5, "maximum depth of events on a branch, not counting losses [5]")
	fs.IntVar(&opt.Depth, "H", 5, "alias of --depth")
	fs.Float64Var(&opt.PDup, "p-dup", 0.5, "probability for any internal node to be a duplication [0.5]")
	fs.Float64Var(&opt.PDup, "d", 0.5, "alias of --p-dup")
	fs.Float64Var(&opt.PDupLength, "p-dup-length", 0.3, "parameter of the geometric distribution of duplicated segment lengths [0.3]")
	fs.Float64Var(&opt.PDupLength, "D", 0.3, "alias of --p-dup-length")
	fs.Float64Var(&opt.PLoss, "p-loss", 0.2, "probability for a loss under any given node [0.2]")
	fs.Float64Var(&opt.PLoss, "l", 0.2, "alias of --p-loss")
	fs.Float64Var(&opt.PLossLength, "p-loss-length", 0.7, "parameter of the geometric distribution of lost segment lengths [0.7]")
	fs.Float64Var(&opt.PLossLength, "L", 0.7, "alias of --p-loss-length")
	fs.Float64Var(&opt.PRearr, "p-rearr", 1, "parameter of the geometric distribution of the number of rearranged gene pairs (1 disables rearrangement) [1]")
	fs.Float64Var(&opt.PRearr, "R", 1, "alias of --p-rearr")
	fs.Int64Var(&opt.Seed, "seed", 0, "seed for the pseudo-random number generator (0 = system entropy) [0]")
	fs.StringVar(&opt.Output, "output", "-", "path of the output tree, or '-' for standard output [-]")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")

	err := fs.Parse(argv)
	return opt, err
}
