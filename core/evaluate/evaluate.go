// Package evaluate runs parameter sweeps over the simulator and the
// reconciliation engines: for every point of a parameter grid it
// simulates reference trees, erases them, reconciles the result and
// measures how the reconciliation compares to the reference.
package evaluate

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	mathrand "math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"synrec-core/erase"
	"synrec-core/event"
	"synrec-core/reconcile"
	"synrec-core/simulate"
	"synrec-core/synteny"
)

// Metric names a measurement the evaluator can take per sample.
type Metric string

const (
	// MetricDLScore measures the difference between the reference
	// DL-score and the reconciled DL-score (never negative).
	MetricDLScore Metric = "dlscore"

	// MetricDuration measures the wall-clock duration of the
	// reconciliation step in microseconds, on a monotonic clock.
	MetricDuration Metric = "duration"
)

// ErrDiverged reports a reconciled tree scoring worse than its
// reference, which indicates a flaw in the engine under evaluation.
var ErrDiverged = errors.New("reconciled tree is less parsimonious than the reference")

// DivergenceError carries the diagnostic payload of a divergence: both
// trees and their scores, so the boundary can render them.
type DivergenceError struct {
	Params          simulate.Params
	Reference       *event.Tree
	Reconciled      *event.Tree
	ReferenceScore  int
	ReconciledScore int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf(
		"%v (reference DL-score %d, reconciled DL-score %d)",
		ErrDiverged, e.ReferenceScore, e.ReconciledScore)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }

// Grid declares the Cartesian product of simulation parameters to
// sweep, and how to evaluate each point.
type Grid struct {
	BaseSize    []int
	Depth       []int
	PDup        []float64
	PDupLength  []float64
	PLoss       []float64
	PLossLength []float64
	PRearr      []float64

	// SampleSize is the number of simulated evolutions per grid point.
	SampleSize int

	// Jobs is the number of parallel workers; 0 uses one per logical
	// CPU, 1 disables parallelism.
	Jobs int

	// Unordered selects the unordered engine instead of the ordered
	// one.
	Unordered bool

	// Metrics lists the measurements to take.
	Metrics []Metric
}

// Points expands the grid into the list of simulation parameter sets.
func (g Grid) Points() []simulate.Params {
	var out []simulate.Params
	for _, size := range g.BaseSize {
		for _, depth := range g.Depth {
			for _, pDup := range g.PDup {
				for _, pDupLength := range g.PDupLength {
					for _, pLoss := range g.PLoss {
						for _, pLossLength := range g.PLossLength {
							for _, pRearr := range g.PRearr {
								out = append(out, simulate.Params{
									Base:        synteny.Dummy(size),
									Depth:       depth,
									PDup:        pDup,
									PDupLength:  pDupLength,
									PLoss:       pLoss,
									PLossLength: pLossLength,
									PRearr:      pRearr,
								})
							}
						}
					}
				}
			}
		}
	}
	return out
}

func (g Grid) needs(m Metric) bool {
	for _, have := range g.Metrics {
		if have == m {
			return true
		}
	}
	return false
}

// Params is the JSON rendering of one grid point.
type Params struct {
	BaseSize    int     `json:"base_size"`
	Depth       int     `json:"depth"`
	PDup        float64 `json:"p_dup"`
	PDupLength  float64 `json:"p_dup_length"`
	PLoss       float64 `json:"p_loss"`
	PLossLength float64 `json:"p_loss_length"`
	PRearr      float64 `json:"p_rearr"`
}

// Summary aggregates one metric over the samples of a grid point.
type Summary struct {
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
}

// Entry is the result record of one grid point. The metric arrays hold
// one element per sample, in completion order.
type Entry struct {
	Params   Params             `json:"params"`
	DLScore  []int              `json:"dlscore,omitempty"`
	Duration []int64            `json:"duration,omitempty"`
	Summary  map[string]Summary `json:"summary,omitempty"`
}

// sample is the result of one simulate-erase-reconcile cycle.
type sample struct {
	dlScore  int
	duration int64
}

// Run evaluates the grid and returns one entry per grid point, ordered
// by first sample completion. The progress callback, if non-nil, is
// invoked under the results lock after every completed work unit.
//
// A failing sample fails the whole run: outstanding work drains and the
// first error is returned without results.
func Run(ctx context.Context, g Grid, progress func(done, total int)) ([]Entry, error) {
	points := g.Points()
	if g.SampleSize <= 0 {
		g.SampleSize = 1
	}
	total := len(points) * g.SampleSize

	jobs := g.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	type unit struct{ point int }
	work := make(chan unit)

	var (
		mu        sync.Mutex
		performed int
		entries   []Entry
		indexOf   = make(map[simulate.Key]int, len(points))
	)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		defer close(work)
		for p := range points {
			for s := 0; s < g.SampleSize; s++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case work <- unit{point: p}:
				}
			}
		}
		return nil
	})

	for w := 0; w < jobs; w++ {
		group.Go(func() error {
			// Thread-local generator, seeded from system entropy at
			// worker startup. Never shared between workers.
			rng := mathrand.New(mathrand.NewSource(entropySeed()))

			for u := range work {
				if gctx.Err() != nil {
					// A sibling failed: drain without computing.
					continue
				}
				params := points[u.point]
				result, err := evaluateOne(rng, g, params)
				if err != nil {
					return err
				}

				mu.Lock()
				idx, ok := indexOf[params.Key()]
				if !ok {
					idx = len(entries)
					indexOf[params.Key()] = idx
					entries = append(entries, Entry{Params: Params{
						BaseSize:    len(params.Base),
						Depth:       params.Depth,
						PDup:        params.PDup,
						PDupLength:  params.PDupLength,
						PLoss:       params.PLoss,
						PLossLength: params.PLossLength,
						PRearr:      params.PRearr,
					}})
				}
				if g.needs(MetricDLScore) {
					entries[idx].DLScore = append(entries[idx].DLScore, result.dlScore)
				}
				if g.needs(MetricDuration) {
					entries[idx].Duration = append(entries[idx].Duration, result.duration)
				}
				performed++
				if progress != nil {
					progress(performed, total)
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Summary = summarize(g, entries[i])
	}
	return entries, nil
}

// evaluateOne runs one simulate-erase-reconcile cycle and measures the
// requested metrics.
func evaluateOne(rng *mathrand.Rand, g Grid, params simulate.Params) (sample, error) {
	reference := simulate.Evolve(rng, params)
	reconciled := reference.Clone()
	erase.Tree(reconciled)

	var out sample

	start := time.Now()
	var err error
	if g.Unordered {
		err = reconcile.Unordered(reconciled)
	} else {
		_, err = reconcile.Ordered(reconciled)
	}
	if err != nil {
		return out, err
	}
	if g.needs(MetricDuration) {
		out.duration = time.Since(start).Microseconds()
	}

	if g.needs(MetricDLScore) {
		refScore := event.DLScore(reference)
		recScore := event.DLScore(reconciled)
		if refScore < recScore {
			return out, &DivergenceError{
				Params:          params,
				Reference:       reference,
				Reconciled:      reconciled,
				ReferenceScore:  refScore,
				ReconciledScore: recScore,
			}
		}
		out.dlScore = refScore - recScore
	}

	return out, nil
}

// summarize computes the per-metric aggregates of one entry.
func summarize(g Grid, e Entry) map[string]Summary {
	out := make(map[string]Summary, len(g.Metrics))
	if g.needs(MetricDLScore) && len(e.DLScore) > 0 {
		values := make([]float64, len(e.DLScore))
		for i, v := range e.DLScore {
			values[i] = float64(v)
		}
		out[string(MetricDLScore)] = newSummary(values)
	}
	if g.needs(MetricDuration) && len(e.Duration) > 0 {
		values := make([]float64, len(e.Duration))
		for i, v := range e.Duration {
			values[i] = float64(v)
		}
		out[string(MetricDuration)] = newSummary(values)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func newSummary(values []float64) Summary {
	s := Summary{Mean: stat.Mean(values, nil)}
	if len(values) > 1 {
		s.Stddev = stat.StdDev(values, nil)
	}
	return s
}

// entropySeed draws a 64-bit seed from the system entropy source.
func entropySeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fall back to the wall clock; only reachable when the system
		// entropy source is unavailable.
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
