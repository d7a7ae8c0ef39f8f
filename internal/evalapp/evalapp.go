// Package evalapp wires the synrec-evaluate executable: expand the
// parameter grid, run the evaluation pool, and emit the JSON report.
package evalapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"synrec-core/evaluate"

	"synrec/internal/evalcli"
	"synrec/internal/iosink"
	"synrec/internal/jsonutil"
	"synrec/internal/nhx"
	"synrec/internal/treecodec"
)

// RunContext runs the harness and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	opts, err := evalcli.Parse(argv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	grid, output, err := buildGrid(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	total := len(grid.Points()) * grid.SampleSize
	fmt.Fprintf(stderr, "Evaluation run %s: %d tasks\n", uuid.NewString(), total)

	percent := color.New(color.FgCyan)
	progress := func(done, total int) {
		if done != total && done%10 != 0 {
			return
		}
		fmt.Fprintf(stderr, "[%s] %d/%d tasks performed\n",
			percent.Sprintf("%6.2f%%", float64(done)/float64(total)*100),
			done, total)
	}

	entries, err := evaluate.Run(ctx, grid, progress)
	if err != nil {
		reportFailure(stderr, err)
		return 1
	}

	w, err := iosink.Output(output)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := jsonutil.EncodePretty(w, entries); err != nil {
		_ = w.Close()
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := w.Close(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// buildGrid merges flags with the optional configuration file and
// validates the result. Flags given explicitly win over file values.
func buildGrid(opts evalcli.Options) (evaluate.Grid, string, error) {
	grid := evaluate.Grid{
		BaseSize:    opts.BaseSize.Values,
		Depth:       opts.Depth.Values,
		PDup:        opts.PDup.Values,
		PDupLength:  opts.PDupLength.Values,
		PLoss:       opts.PLoss.Values,
		PLossLength: opts.PLossLength.Values,
		PRearr:      opts.PRearr.Values,
		SampleSize:  opts.SampleSize,
		Jobs:        opts.Jobs,
		Unordered:   opts.Unordered,
	}
	output := opts.Output
	metrics := opts.Metrics.Values

	if opts.Config != "" {
		cfg, err := loadConfig(opts.Config)
		if err != nil {
			return grid, "", err
		}
		seen := opts.Seen

		if !seen["output"] && cfg.Output != nil {
			output = *cfg.Output
		}
		if !seen["metrics"] && len(cfg.Metrics) > 0 {
			metrics = cfg.Metrics
		}
		if !seen["sample-size"] && cfg.SampleSize != nil {
			grid.SampleSize = *cfg.SampleSize
		}
		if !seen["jobs"] && cfg.Jobs != nil {
			grid.Jobs = *cfg.Jobs
		}
		if !seen["unordered"] && cfg.Unordered != nil {
			grid.Unordered = *cfg.Unordered
		}
		if !seen["base-size"] && cfg.BaseSize != nil {
			grid.BaseSize = []int(cfg.BaseSize)
		}
		if !seen["depth"] && cfg.Depth != nil {
			grid.Depth = []int(cfg.Depth)
		}
		if !seen["p-dup"] && cfg.PDup != nil {
			grid.PDup = []float64(cfg.PDup)
		}
		if !seen["p-dup-length"] && cfg.PDupLength != nil {
			grid.PDupLength = []float64(cfg.PDupLength)
		}
		if !seen["p-loss"] && cfg.PLoss != nil {
			grid.PLoss = []float64(cfg.PLoss)
		}
		if !seen["p-loss-length"] && cfg.PLossLength != nil {
			grid.PLossLength = []float64(cfg.PLossLength)
		}
		if !seen["p-rearr"] && cfg.PRearr != nil {
			grid.PRearr = []float64(cfg.PRearr)
		}
	}

	if output == "" {
		return grid, "", fmt.Errorf("%w: --output", evalcli.ErrUsage)
	}
	if len(metrics) == 0 {
		return grid, "", fmt.Errorf("%w: --metrics", evalcli.ErrUsage)
	}
	for _, m := range metrics {
		switch evaluate.Metric(m) {
		case evaluate.MetricDLScore, evaluate.MetricDuration:
			grid.Metrics = append(grid.Metrics, evaluate.Metric(m))
		default:
			return grid, "", fmt.Errorf("unknown metric %q, want 'dlscore' or 'duration'", m)
		}
	}
	if grid.SampleSize < 1 {
		return grid, "", fmt.Errorf("--sample-size must be at least 1")
	}

	return grid, output, nil
}

// reportFailure renders evaluation errors, embedding both trees of a
// divergence so the offending input can be replayed.
func reportFailure(stderr io.Writer, err error) {
	var div *evaluate.DivergenceError
	if errors.As(err, &div) {
		fmt.Fprintf(stderr,
			"Error: %v\n\nReference tree (DL-score = %d):\n%s\n\nReconciled tree (DL-score = %d):\n%s\n",
			err,
			div.ReferenceScore, nhx.Format(treecodec.Encode(div.Reference)),
			div.ReconciledScore, nhx.Format(treecodec.Encode(div.Reconciled)))
		return
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
}
