// Package evalcli parses the command line of the evaluation harness.
// Simulation parameters accept a single value, a set `{a, b, c}`, or a
// range `[min:max]` / `[min:max:step]`.
package evalcli

import (
	"errors"
	"flag"
	"io"

	"synrec/internal/clibase"
)

// Options holds all flags of the synrec-evaluate executable. The Seen
// set records which flags were given explicitly, so configuration-file
// values only fill the gaps.
type Options struct {
	Output  string
	Metrics clibase.StringSlice
	Config  string

	SampleSize int
	Jobs       int
	Unordered  bool

	BaseSize    clibase.IntGrid
	Depth       clibase.IntGrid
	PDup        clibase.FloatGrid
	PDupLength  clibase.FloatGrid
	PLoss       clibase.FloatGrid
	PLossLength clibase.FloatGrid
	PRearr      clibase.FloatGrid

	Seen map[string]bool
}

// Parse reads argv. Errors and usage output go to errw.
func Parse(argv []string, errw io.Writer) (Options, error) {
	fs := clibase.NewFlagSet("synrec-evaluate",
		"evaluate reconciliation metrics over a grid of simulated evolutions")
	fs.SetOutput(errw)

	opt := Options{
		BaseSize:    clibase.Ints(5),
		Depth:       clibase.Ints(5),
		PDup:        clibase.Floats(0.5),
		PDupLength:  clibase.Floats(0.3),
		PLoss:       clibase.Floats(0.2),
		PLossLength: clibase.Floats(0.7),
		PRearr:      clibase.Floats(1),
	}

	fs.StringVar(&opt.Output, "output", "", "path in which to create the output file [*]")
	fs.StringVar(&opt.Output, "o", "", "alias of --output")
	fs.Var(&opt.Metrics, "metrics", "metric to evaluate, 'dlscore' or 'duration' (repeatable) [*]")
	fs.Var(&opt.Metrics, "m", "alias of --metrics")
	fs.StringVar(&opt.Config, "config", "", "YAML file declaring the parameter grid")

	fs.IntVar(&opt.SampleSize, "sample-size", 1, "number of samples to take for each set of parameters [1]")
	fs.IntVar(&opt.SampleSize, "S", 1, "alias of --sample-size")
	fs.IntVar(&opt.Jobs, "jobs", 0, "number of worker threads (0 = one per CPU, 1 = no parallelism) [0]")
	fs.IntVar(&opt.Jobs, "j", 0, "alias of --jobs")
	fs.BoolVar(&opt.Unordered, "unordered", false, "use the unordered super-reconciliation algorithm [false]")
	fs.BoolVar(&opt.Unordered, "U", false, "alias of --unordered")

	fs.Var(&opt.BaseSize, "base-size", "number of genes in the ancestral synteny [5]")
	fs.Var(&opt.BaseSize, "s", "alias of --base-size")
	fs.Var(&opt.Depth, "depth", "maximum depth of events on a branch, not counting losses [5]")
	fs.Var(&opt.Depth, "H", "alias of --depth")
	fs.Var(&opt.PDup, "p-dup", "probability for any internal node to be a duplication [0.5]")
	fs.Var(&opt.PDup, "d", "alias of --p-dup")
	fs.Var(&opt.PDupLength, "p-dup-length", "parameter of the geometric distribution of duplicated segment lengths [0.3]")
	fs.Var(&opt.PDupLength, "D", "alias of --p-dup-length")
	fs.Var(&opt.PLoss, "p-loss", "probability for a loss under any given node [0.2]")
	fs.Var(&opt.PLoss, "l", "alias of --p-loss")
	fs.Var(&opt.PLossLength, "p-loss-length", "parameter of the geometric distribution of lost segment lengths [0.7]")
	fs.Var(&opt.PLossLength, "L", "alias of --p-loss-length")
	fs.Var(&opt.PRearr, "p-rearr", "parameter of the geometric distribution of the number of rearranged gene pairs (1 disables rearrangement) [1]")
	fs.Var(&opt.PRearr, "R", "alias of --p-rearr")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}

	opt.Seen = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opt.Seen[canonical(f.Name)] = true })
	return opt, nil
}

// canonical maps short aliases onto their long flag names.
func canonical(name string) string {
	switch name {
	case "o":
		return "output"
	case "m":
		return "metrics"
	case "S":
		return "sample-size"
	case "j":
		return "jobs"
	case "U":
		return "unordered"
	case "s":
		return "base-size"
	case "H":
		return "depth"
	case "d":
		return "p-dup"
	case "D":
		return "p-dup-length"
	case "l":
		return "p-loss"
	case "L":
		return "p-loss-length"
	case "R":
		return "p-rearr"
	}
	return name
}

// ErrUsage reports missing required arguments.
var ErrUsage = errors.New("missing required argument")
