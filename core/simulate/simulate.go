// Package simulate generates reference event trees by evolving an
// ancestral synteny through random speciations, segmental duplications,
// segmental losses and rearrangements.
package simulate

import (
	"math"
	"math/rand"

	"synrec-core/event"
	"synrec-core/synteny"
)

// Params configures one simulated evolution.
type Params struct {
	// Base is the ancestral synteny the simulation evolves from.
	Base synteny.Synteny

	// Depth is the maximum number of events on a branch, not counting
	// losses.
	Depth int

	// PDup is the probability for any internal node to be a
	// duplication rather than a speciation.
	PDup float64

	// PDupLength parameterizes the geometric distribution of segment
	// lengths in segmental duplications.
	PDupLength float64

	// PLoss is the probability for a loss under each branch of an
	// internal node.
	PLoss float64

	// PLossLength parameterizes the geometric distribution of segment
	// lengths in segmental losses.
	PLossLength float64

	// PRearr parameterizes the geometric distribution of the number of
	// gene pairs swapped from a node to each child. A value of 1
	// disables rearrangement.
	PRearr float64
}

// Key is a comparable form of Params, usable as a map key.
type Key struct {
	Base        string
	Depth       int
	PDup        float64
	PDupLength  float64
	PLoss       float64
	PLossLength float64
	PRearr      float64
}

// Key folds the parameters into a comparable value.
func (p Params) Key() Key {
	return Key{
		Base:        p.Base.String(),
		Depth:       p.Depth,
		PDup:        p.PDup,
		PDupLength:  p.PDupLength,
		PLoss:       p.PLoss,
		PLossLength: p.PLossLength,
		PRearr:      p.PRearr,
	}
}

// Evolve simulates the evolution of p.Base and returns the tree
// recording the simulated events. All randomness comes from rng, so a
// fixed seed reproduces the exact same tree.
func Evolve(rng *rand.Rand, p Params) *event.Tree {
	t := event.New(event.Event{})
	grow(rng, p, t, t.Root(), p.Base.Clone(), p.Depth)
	return t
}

// grow fills node n of t for the lineage carrying current with the
// given remaining depth.
func grow(
	rng *rand.Rand,
	p Params,
	t *event.Tree,
	n event.Node,
	current synteny.Synteny,
	depth int,
) {
	ev := t.Event(n)

	// An empty synteny has nowhere to evolve: the lineage is dead.
	if current.IsEmpty() {
		ev.Kind = event.Loss
		ev.Synteny = synteny.Synteny{}
		return
	}

	if depth == 0 {
		ev.Kind = event.None
		ev.Synteny = current
		return
	}

	ev.Synteny = current
	branches := [2]synteny.Synteny{current.Clone(), current.Clone()}

	if rng.Float64() < p.PDup {
		ev.Kind = event.Duplication

		// One side receives only a copied segment of the synteny.
		length := clamp(geometric(rng, p.PDupLength), 1, len(current))
		start := rng.Intn(len(current) - length + 1)
		seg := synteny.Segment{First: start, Second: start + length}
		ev.Segment = seg
		branches[rng.Intn(2)] = current.Slice(seg)
	} else {
		ev.Kind = event.Speciation
	}

	for _, branch := range branches {
		parent := n
		if !branch.IsEmpty() && rng.Float64() < p.PLoss {
			length := clamp(geometric(rng, p.PLossLength)+1, 1, len(branch))
			start := rng.Intn(len(branch) - length + 1)
			seg := synteny.Segment{First: start, Second: start + length}

			parent = t.Add(n, event.Event{
				Kind:    event.Loss,
				Synteny: branch.Clone(),
				Segment: seg,
			})
			branch = branch.Remove(seg)
		}

		branch = rearrange(rng, p.PRearr, branch)
		child := t.Add(parent, event.Event{})
		grow(rng, p, t, child, branch, depth-1)
	}
}

// rearrange swaps a geometric number of gene pairs in s.
func rearrange(rng *rand.Rand, pRearr float64, s synteny.Synteny) synteny.Synteny {
	if len(s) < 2 {
		return s
	}
	for swaps := geometric(rng, pRearr); swaps > 0; swaps-- {
		i := rng.Intn(len(s))
		j := rng.Intn(len(s))
		s[i], s[j] = s[j], s[i]
	}
	return s
}

// geometric draws the number of failures before the first success of a
// Bernoulli trial with probability p, by inversion.
func geometric(rng *rand.Rand, p float64) int {
	if p >= 1 {
		return 0
	}
	if p <= 0 {
		return 0
	}
	return int(math.Floor(math.Log(1-rng.Float64()) / math.Log(1-p)))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
